package postgres

import (
	"context"
	"database/sql"

	"paydash/internal/domain"
	"paydash/internal/repository"
)

// UserRepository implements repository.UserRepository using PostgreSQL.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Upsert creates the user or replaces the password hash of an existing one.
func (r *UserRepository) Upsert(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (id, username, password_hash) VALUES ($1, $2, $3)
		ON CONFLICT (username) DO UPDATE SET password_hash = EXCLUDED.password_hash
	`
	_, err := r.db.ExecContext(ctx, query, user.ID, user.Username, user.PasswordHash)
	return err
}

// GetByUsername retrieves a user by username.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `SELECT id, username, password_hash, created_at FROM users WHERE username = $1`
	row := r.db.QueryRowContext(ctx, query, username)

	var user domain.User
	err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
