package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"paydash/internal/domain"
	"paydash/internal/repository"
)

// uniqueViolation is the PostgreSQL error code for a unique constraint failure.
const uniqueViolation = "23505"

// PaymentRepository is a PostgreSQL implementation of repository.PaymentRepository.
type PaymentRepository struct {
	q Querier
}

// NewPaymentRepository creates a new PostgreSQL payment repository.
func NewPaymentRepository(db *sql.DB) *PaymentRepository {
	return &PaymentRepository{q: db}
}

// Create persists a new payment.
func (r *PaymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	query := `
		INSERT INTO payments (id, amount, receiver, method, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.q.ExecContext(ctx, query,
		payment.ID,
		payment.Amount,
		payment.Receiver,
		payment.Method,
		payment.Status,
		payment.CreatedAt,
	)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return repository.ErrDuplicate
	}
	return err
}

// GetByID retrieves a payment by ID.
func (r *PaymentRepository) GetByID(ctx context.Context, id domain.PaymentID) (*domain.Payment, error) {
	query := `
		SELECT id, amount, receiver, method, status, created_at
		FROM payments WHERE id = $1
	`

	payment, err := scanPayment(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return payment, nil
}

// List retrieves all payments, newest first.
func (r *PaymentRepository) List(ctx context.Context) ([]domain.Payment, error) {
	query := `
		SELECT id, amount, receiver, method, status, created_at
		FROM payments ORDER BY created_at DESC, id DESC
	`

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payments := []domain.Payment{}
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, *p)
	}
	return payments, rows.Err()
}

func scanPayment(row rowScanner) (*domain.Payment, error) {
	var payment domain.Payment
	err := row.Scan(
		&payment.ID,
		&payment.Amount,
		&payment.Receiver,
		&payment.Method,
		&payment.Status,
		&payment.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	payment.CreatedAt = payment.CreatedAt.UTC()
	return &payment, nil
}

var _ repository.PaymentRepository = (*PaymentRepository)(nil)
