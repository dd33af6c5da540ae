package screen

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"paydash/internal/domain"
	"paydash/internal/listview"
	"paydash/internal/telemetry"
)

// TransactionsView is what the transaction list renders.
type TransactionsView struct {
	listview.View
	Loading    bool
	Refreshing bool
}

// Transactions is the transaction list screen. It fetches the full record set
// and filters and paginates it locally.
type Transactions struct {
	payments PaymentLister
	gen      Generation

	mu         sync.Mutex
	records    []domain.Payment
	state      listview.State
	loading    bool
	refreshing bool
}

// NewTransactions creates a transaction list screen in the loading state.
func NewTransactions(payments PaymentLister) *Transactions {
	return &Transactions{
		payments: payments,
		state:    listview.Initial(),
		loading:  true,
	}
}

// View derives the current view.
func (s *Transactions) View() TransactionsView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

// Focus returns to the first page and re-fetches. The filter is kept.
func (s *Transactions) Focus(ctx context.Context) (TransactionsView, error) {
	s.mu.Lock()
	s.state = s.state.Reset()
	s.mu.Unlock()

	return s.fetch(ctx)
}

// Refresh is pull-to-refresh: it marks the screen refreshing, returns to the
// first page and re-fetches with the current filter.
func (s *Transactions) Refresh(ctx context.Context) (TransactionsView, error) {
	s.mu.Lock()
	s.refreshing = true
	s.state = s.state.Reset()
	s.mu.Unlock()

	return s.fetch(ctx)
}

// SelectTab switches the filter and resets to the first page.
func (s *Transactions) SelectTab(t listview.Tab) TransactionsView {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = s.state.WithTab(t)
	return s.viewLocked()
}

// SelectPage jumps to page p.
func (s *Transactions) SelectPage(p int) TransactionsView {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = s.state.WithPage(p)
	return s.viewLocked()
}

func (s *Transactions) fetch(ctx context.Context) (TransactionsView, error) {
	token := s.gen.Next()

	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	records, err := s.payments.ListPayments(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.gen.IsLatest(token) {
		return s.viewLocked(), ErrStale
	}

	s.loading = false
	s.refreshing = false
	if err != nil {
		telemetry.Logger.Warn("Failed to fetch transactions", zap.Error(err))
		return s.viewLocked(), err
	}

	s.records = records
	return s.viewLocked(), nil
}

func (s *Transactions) viewLocked() TransactionsView {
	return TransactionsView{
		View:       listview.Derive(s.records, s.state),
		Loading:    s.loading,
		Refreshing: s.refreshing,
	}
}
