// Package screen holds the per-screen orchestration of the paydash front end:
// what each screen fetches, which local state it keeps, and which message it
// shows. Rendering is left to the caller.
package screen

import (
	"context"
	"errors"
	"sync/atomic"

	"paydash/internal/domain"
)

// User-facing messages.
const (
	MsgLoginFailed       = "Login Failed. Please check your credentials."
	MsgMissingFields     = "Please enter both amount and receiver."
	MsgInvalidAmount     = "Please enter a valid amount."
	MsgInvalidMethod     = "Please select a valid payment method."
	MsgPaymentAdded      = "Payment added successfully!"
	MsgPaymentAttempted  = "Payment attempted successfully!"
	MsgPaymentFailed     = "Failed to add payment."
	MsgDashboardFailed   = "Failed to load dashboard."
	MsgTransactionFailed = "Failed to load transaction."
	MsgNoTransactions    = "No transactions found"
)

// ErrStale is returned when a response arrived after a newer request was
// issued by the same screen. The response has been discarded.
var ErrStale = errors.New("stale response discarded")

// Authenticator exchanges credentials for an access token.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (string, error)
}

// StatsSource fetches the dashboard summary.
type StatsSource interface {
	Stats(ctx context.Context) (*domain.Stats, error)
}

// PaymentLister fetches every payment record.
type PaymentLister interface {
	ListPayments(ctx context.Context) ([]domain.Payment, error)
}

// PaymentGetter fetches a single payment record.
type PaymentGetter interface {
	GetPayment(ctx context.Context, id domain.PaymentID) (*domain.Payment, error)
}

// PaymentCreator submits a new payment.
type PaymentCreator interface {
	CreatePayment(ctx context.Context, p domain.NewPayment) (*domain.Payment, error)
}

// Generation issues monotonically increasing request tokens. Only a response
// carrying the latest token may be applied to screen state.
type Generation struct {
	n atomic.Uint64
}

// Next issues a new token, invalidating all earlier ones.
func (g *Generation) Next() uint64 {
	return g.n.Add(1)
}

// IsLatest reports whether token is the most recently issued one.
func (g *Generation) IsLatest(token uint64) bool {
	return g.n.Load() == token
}
