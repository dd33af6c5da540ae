package memory

import (
	"context"
	"sort"
	"sync"

	"paydash/internal/domain"
	"paydash/internal/repository"
)

// PaymentRepository is an in-memory implementation of repository.PaymentRepository.
type PaymentRepository struct {
	mu       sync.RWMutex
	payments map[domain.PaymentID]domain.Payment
}

// NewPaymentRepository creates an empty in-memory payment repository.
func NewPaymentRepository() *PaymentRepository {
	return &PaymentRepository{payments: make(map[domain.PaymentID]domain.Payment)}
}

// Create persists a new payment.
func (r *PaymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.payments[payment.ID]; exists {
		return repository.ErrDuplicate
	}
	r.payments[payment.ID] = *payment
	return nil
}

// GetByID retrieves a payment by ID.
func (r *PaymentRepository) GetByID(ctx context.Context, id domain.PaymentID) (*domain.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.payments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

// List retrieves all payments, newest first. Ties are broken by ID so the
// order is stable.
func (r *PaymentRepository) List(ctx context.Context) ([]domain.Payment, error) {
	r.mu.RLock()
	out := make([]domain.Payment, 0, len(r.payments))
	for _, p := range r.payments {
		out = append(out, p)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

var _ repository.PaymentRepository = (*PaymentRepository)(nil)
