package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
)

// NewRelicAttributes annotates the nrgin transaction with the authenticated
// user and records handler errors. It must run after nrgin.Middleware.
func NewRelicAttributes() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		txn := nrgin.Transaction(c)
		if txn == nil {
			return
		}

		if username := c.GetString(UsernameKey); username != "" {
			txn.AddAttribute("username", username)
		}

		// Record error if present.
		for _, err := range c.Errors {
			txn.NoticeError(err.Err)
		}
	}
}
