package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"paydash/internal/repository"
	"paydash/internal/service"
	"paydash/internal/telemetry"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError sends an error response with the appropriate HTTP status code.
// Internal errors are logged and not echoed to the client.
func respondError(c *gin.Context, err error) {
	code := mapErrorToHTTPStatus(err)
	msg := err.Error()
	if code == http.StatusInternalServerError {
		telemetry.Logger.Error("Request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		msg = "internal server error"
	}
	_ = c.Error(err)
	c.JSON(code, ErrorResponse{Error: msg})
}

// respondJSON sends a JSON response with the given status code.
func respondJSON(c *gin.Context, code int, data any) {
	c.JSON(code, data)
}

// mapErrorToHTTPStatus maps service/repository errors to HTTP status codes.
func mapErrorToHTTPStatus(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound

	// Validation errors - Bad Request
	case errors.Is(err, service.ErrInvalidPaymentAmount),
		errors.Is(err, service.ErrInvalidReceiver),
		errors.Is(err, service.ErrInvalidPaymentID),
		errors.Is(err, service.ErrInvalidPaymentMethod),
		errors.Is(err, service.ErrInvalidPaymentStatus):
		return http.StatusBadRequest

	// Authentication errors
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidToken):
		return http.StatusUnauthorized

	// Conflict errors
	case errors.Is(err, repository.ErrDuplicate):
		return http.StatusConflict

	// Default to internal server error
	default:
		return http.StatusInternalServerError
	}
}
