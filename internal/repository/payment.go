package repository

import (
	"context"

	"paydash/internal/domain"
)

// PaymentRepository defines the persistence operations for payments.
type PaymentRepository interface {
	// Create persists a new payment.
	Create(ctx context.Context, payment *domain.Payment) error

	// GetByID retrieves a payment by ID.
	GetByID(ctx context.Context, id domain.PaymentID) (*domain.Payment, error)

	// List retrieves all payments, newest first.
	List(ctx context.Context) ([]domain.Payment, error)
}
