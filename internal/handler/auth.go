package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"paydash/internal/domain"
	"paydash/internal/service"
)

// AuthHandler handles HTTP requests for sign-in.
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req domain.Credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	token, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, domain.AccessToken{AccessToken: token})
}
