package memory

import (
	"context"
	"sync"

	"paydash/internal/domain"
	"paydash/internal/repository"
)

// UserRepository is an in-memory implementation of repository.UserRepository.
type UserRepository struct {
	mu    sync.RWMutex
	users map[string]domain.User
}

// NewUserRepository creates an empty in-memory user repository.
func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]domain.User)}
}

// Upsert creates the user or replaces the password hash of an existing one.
func (r *UserRepository) Upsert(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.users[user.Username]; ok {
		existing.PasswordHash = user.PasswordHash
		r.users[user.Username] = existing
		return nil
	}
	r.users[user.Username] = *user
	return nil
}

// GetByUsername retrieves a user by username.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[username]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
