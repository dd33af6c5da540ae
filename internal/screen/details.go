package screen

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"paydash/internal/domain"
	"paydash/internal/telemetry"
)

// DetailsView is what the transaction details screen renders.
type DetailsView struct {
	Loading bool
	Payment *domain.Payment
	Message string
}

// Details shows a single transaction.
type Details struct {
	payments PaymentGetter

	mu   sync.Mutex
	view DetailsView
}

// NewDetails creates a transaction details screen. It starts in the loading
// state.
func NewDetails(payments PaymentGetter) *Details {
	return &Details{
		payments: payments,
		view:     DetailsView{Loading: true},
	}
}

// View returns the current view.
func (d *Details) View() DetailsView {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.view
}

// Open fetches the payment with the given id. The view stays loading until
// the response arrives.
func (d *Details) Open(ctx context.Context, id domain.PaymentID) (DetailsView, error) {
	d.mu.Lock()
	d.view = DetailsView{Loading: true}
	d.mu.Unlock()

	p, err := d.payments.GetPayment(ctx, id)

	d.mu.Lock()
	defer d.mu.Unlock()

	if err != nil {
		telemetry.Logger.Warn("Failed to fetch transaction",
			zap.String("payment_id", string(id)),
			zap.Error(err),
		)
		d.view = DetailsView{Message: MsgTransactionFailed}
		return d.view, err
	}
	d.view = DetailsView{Payment: p}
	return d.view, nil
}
