package screen

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"paydash/internal/domain"
)

func payment(id string, status domain.PaymentStatus, amount int64, at time.Time) domain.Payment {
	return domain.Payment{
		ID:        domain.PaymentID(id),
		Amount:    decimal.NewFromInt(amount),
		Status:    status,
		Method:    domain.PaymentMethodUPI,
		CreatedAt: at,
	}
}

func TestDashboard_StartsLoading(t *testing.T) {
	d := NewDashboard(newMockAPI())

	if !d.View().Loading {
		t.Error("dashboard should start in the loading state")
	}
}

func TestDashboard_FocusFetchesEveryTime(t *testing.T) {
	api := newMockAPI()
	api.setStats(&domain.Stats{TotalPayments: 3, TotalRevenue: decimal.NewFromInt(600), FailedCount: 1})
	d := NewDashboard(api)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := d.Focus(ctx); err != nil {
			t.Fatalf("focus %d failed: %v", i, err)
		}
	}

	if api.StatsCalls != 3 {
		t.Errorf("expected 3 fetches, got %d", api.StatsCalls)
	}
	v := d.View()
	if v.Loading || v.Stats == nil || v.Stats.TotalPayments != 3 || v.Message != "" {
		t.Errorf("unexpected view %+v", v)
	}
}

func TestDashboard_ErrorShowsMessageAndKeepsStats(t *testing.T) {
	api := newMockAPI()
	api.setStats(&domain.Stats{TotalPayments: 2})
	d := NewDashboard(api)
	ctx := context.Background()

	if _, err := d.Focus(ctx); err != nil {
		t.Fatalf("first focus failed: %v", err)
	}

	api.mu.Lock()
	api.StatsError = errors.New("boom")
	api.mu.Unlock()

	v, err := d.Focus(ctx)
	if err == nil {
		t.Fatal("expected error")
	}
	if v.Loading {
		t.Error("loading should be cleared after a failure")
	}
	if v.Message != MsgDashboardFailed {
		t.Errorf("expected %q, got %q", MsgDashboardFailed, v.Message)
	}
	if v.Stats == nil || v.Stats.TotalPayments != 2 {
		t.Errorf("previous stats should be kept, got %+v", v.Stats)
	}
}

func TestDashboard_StaleResponseDiscarded(t *testing.T) {
	api := newMockAPI()
	api.setStats(&domain.Stats{TotalPayments: 1})

	release := make(chan struct{})
	entered := make(chan struct{})
	api.gate = func(call int32) {
		if call == 1 {
			close(entered)
			<-release
		}
	}
	d := NewDashboard(api)
	ctx := context.Background()

	var wg sync.WaitGroup
	var firstErr error
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, firstErr = d.Focus(ctx)
	}()
	<-entered

	// The second focus completes while the first is still in flight.
	api.setStats(&domain.Stats{TotalPayments: 2})
	if _, err := d.Focus(ctx); err != nil {
		t.Fatalf("second focus failed: %v", err)
	}

	api.setStats(&domain.Stats{TotalPayments: 99})
	close(release)
	wg.Wait()

	if !errors.Is(firstErr, ErrStale) {
		t.Errorf("expected ErrStale for the overtaken response, got %v", firstErr)
	}
	if got := d.View().Stats.TotalPayments; got != 2 {
		t.Errorf("expected stats from the newest request (2), got %d", got)
	}
}

func TestRevenueSeries(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2025, 6, d, 12, 0, 0, 0, time.UTC) }
	payments := []domain.Payment{
		payment("1", domain.PaymentStatusSuccess, 100, day(2)), // outside the window
		payment("2", domain.PaymentStatusSuccess, 200, day(3)),
		payment("3", domain.PaymentStatusFailed, 999, day(5)),
		payment("4", domain.PaymentStatusSuccess, 50, day(7)),
		payment("5", domain.PaymentStatusSuccess, 25, day(7)),
	}

	series := RevenueSeries(payments, 5)

	if len(series) != 5 {
		t.Fatalf("expected 5 points, got %d", len(series))
	}
	want := []struct {
		label  string
		amount string
	}{
		{"Tue", "200"}, {"Wed", "0"}, {"Thu", "0"}, {"Fri", "0"}, {"Sat", "75"},
	}
	for i, w := range want {
		if series[i].Label != w.label || series[i].Amount.String() != w.amount {
			t.Errorf("point %d: expected %s=%s, got %s=%s", i, w.label, w.amount, series[i].Label, series[i].Amount)
		}
	}
}

func TestRevenueSeries_NoPayments(t *testing.T) {
	if s := RevenueSeries(nil, 5); s != nil {
		t.Errorf("expected nil series, got %v", s)
	}
}
