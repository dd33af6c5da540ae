package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// UsernameKey is the gin context key holding the authenticated username.
const UsernameKey = "username"

// TokenAuthenticator resolves a bearer token to a username.
type TokenAuthenticator interface {
	Authenticate(ctx context.Context, token string) (string, error)
}

// BearerAuth rejects requests without a valid bearer token.
func BearerAuth(auth TokenAuthenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		username, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			_ = c.Error(err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(UsernameKey, username)
		c.Next()
	}
}

// extractToken extracts the token from the Authorization header.
func extractToken(c *gin.Context) string {
	scheme, token, ok := strings.Cut(c.GetHeader("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
