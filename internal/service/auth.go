package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"paydash/internal/domain"
	"paydash/internal/metrics"
	internalRedis "paydash/internal/redis"
	"paydash/internal/repository"
	"paydash/internal/telemetry"
)

// tokenBytes is the entropy of an access token before hex encoding.
const tokenBytes = 32

// AuthService signs sandbox users in and resolves their bearer tokens.
type AuthService struct {
	userRepo repository.UserRepository
	sessions internalRedis.SessionStoreInterface
	ttl      time.Duration
}

// NewAuthService creates a new AuthService. Tokens live for ttl.
func NewAuthService(userRepo repository.UserRepository, sessions internalRedis.SessionStoreInterface, ttl time.Duration) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		sessions: sessions,
		ttl:      ttl,
	}
}

// SeedUsers stores the configured accounts with bcrypt password hashes.
func (s *AuthService) SeedUsers(ctx context.Context, users map[string]string) error {
	for username, password := range users {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash password for %s: %w", username, err)
		}
		if err := s.userRepo.Upsert(ctx, &domain.User{
			ID:           uuid.New().String(),
			Username:     username,
			PasswordHash: string(hash),
			CreatedAt:    time.Now().UTC(),
		}); err != nil {
			return fmt.Errorf("failed to seed user %s: %w", username, err)
		}
	}
	return nil
}

// Login checks the credentials and issues a new access token.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			metrics.LoginAttempts.WithLabelValues("rejected").Inc()
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		telemetry.Logger.Info("Login rejected", zap.String("username", username))
		metrics.LoginAttempts.WithLabelValues("rejected").Inc()
		return "", ErrInvalidCredentials
	}

	token, err := newToken()
	if err != nil {
		return "", err
	}
	if err := s.sessions.CreateSession(ctx, token, user.Username, s.ttl); err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}

	metrics.LoginAttempts.WithLabelValues("accepted").Inc()
	telemetry.Logger.Info("User logged in", zap.String("username", user.Username))
	return token, nil
}

// Authenticate resolves a bearer token to its username.
func (s *AuthService) Authenticate(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", ErrInvalidToken
	}

	username, ok, err := s.sessions.LookupSession(ctx, token)
	if err != nil {
		return "", fmt.Errorf("failed to look up session: %w", err)
	}
	if !ok {
		return "", ErrInvalidToken
	}
	return username, nil
}

func newToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
