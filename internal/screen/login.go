package screen

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"paydash/internal/credential"
	"paydash/internal/domain"
	"paydash/internal/telemetry"
)

// Route is the area a user lands in.
type Route string

const (
	RouteLogin Route = "login"
	RouteMain  Route = "main"
)

// InitialRoute picks the start screen: the main area when a token is stored,
// the login screen otherwise.
func InitialRoute(ctx context.Context, store credential.Store) (Route, error) {
	token, ok, err := store.Get(ctx, domain.TokenKey)
	if err != nil {
		return RouteLogin, fmt.Errorf("read credential: %w", err)
	}
	if !ok || token == "" {
		return RouteLogin, nil
	}
	return RouteMain, nil
}

// LoginResult is the outcome of one login attempt.
type LoginResult struct {
	Authenticated bool
	Next          Route
	Message       string
}

// Login is the login screen. It is the only writer of the stored token.
type Login struct {
	auth  Authenticator
	store credential.Store

	mu      sync.Mutex
	loading bool
}

// NewLogin creates a login screen.
func NewLogin(auth Authenticator, store credential.Store) *Login {
	return &Login{auth: auth, store: store}
}

// Loading reports whether a login call is in flight.
func (l *Login) Loading() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loading
}

// Submit makes a single login attempt. On success the token is stored and the
// result points at the main area; on any failure the stored token is left as
// it was and the failure message is returned.
func (l *Login) Submit(ctx context.Context, username, password string) LoginResult {
	l.setLoading(true)
	defer l.setLoading(false)

	token, err := l.auth.Login(ctx, username, password)
	if err != nil {
		telemetry.Logger.Info("Login rejected", zap.String("username", username), zap.Error(err))
		return LoginResult{Next: RouteLogin, Message: MsgLoginFailed}
	}

	if err := l.store.Set(ctx, domain.TokenKey, token); err != nil {
		telemetry.Logger.Error("Failed to store access token", zap.Error(err))
		return LoginResult{Next: RouteLogin, Message: MsgLoginFailed}
	}

	return LoginResult{Authenticated: true, Next: RouteMain}
}

func (l *Login) setLoading(v bool) {
	l.mu.Lock()
	l.loading = v
	l.mu.Unlock()
}
