package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnauthorized matches API errors with status 401 or 403.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound matches API errors with status 404.
	ErrNotFound = errors.New("not found")

	// ErrEmptyToken is returned when a login succeeds without an access token.
	ErrEmptyToken = errors.New("login response carried no access token")
)

// APIError is returned for any non-2xx response.
type APIError struct {
	StatusCode int
	Method     string
	Path       string
	Body       string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}

// Is lets callers match broad classes with errors.Is.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	}
	return false
}
