package repository

import (
	"context"

	"paydash/internal/domain"
)

// UserRepository defines the persistence operations for sandbox accounts.
type UserRepository interface {
	// Upsert creates the user or replaces the password hash of an existing one.
	Upsert(ctx context.Context, user *domain.User) error

	// GetByUsername retrieves a user by username.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}
