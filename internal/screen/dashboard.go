package screen

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"paydash/internal/domain"
	"paydash/internal/telemetry"
)

// RevenueDays is the width of the dashboard revenue series.
const RevenueDays = 5

// RevenuePoint is one day of successful revenue.
type RevenuePoint struct {
	Day    time.Time
	Label  string
	Amount decimal.Decimal
}

// DashboardView is what the dashboard renders.
type DashboardView struct {
	Loading bool
	Stats   *domain.Stats
	Revenue []RevenuePoint
	Message string
}

// Dashboard re-fetches the stats summary every time it gains focus.
type Dashboard struct {
	stats StatsSource
	gen   Generation

	mu   sync.Mutex
	view DashboardView
}

// NewDashboard creates a dashboard screen. It starts in the loading state.
func NewDashboard(stats StatsSource) *Dashboard {
	return &Dashboard{
		stats: stats,
		view:  DashboardView{Loading: true},
	}
}

// View returns the current view.
func (d *Dashboard) View() DashboardView {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.view
}

// Focus fetches a fresh summary. A failed fetch keeps the previous stats and
// sets an error message. A response overtaken by a later Focus is dropped and
// reported as ErrStale.
func (d *Dashboard) Focus(ctx context.Context) (DashboardView, error) {
	token := d.gen.Next()

	d.mu.Lock()
	d.view.Loading = true
	d.mu.Unlock()

	stats, err := d.stats.Stats(ctx)

	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.gen.IsLatest(token) {
		return d.view, ErrStale
	}

	d.view.Loading = false
	if err != nil {
		telemetry.Logger.Warn("Failed to load dashboard stats", zap.Error(err))
		d.view.Message = MsgDashboardFailed
		return d.view, err
	}

	d.view.Stats = stats
	d.view.Revenue = RevenueSeries(stats.Payments, RevenueDays)
	d.view.Message = ""
	return d.view, nil
}

// RevenueSeries sums successful payment amounts per UTC day for the given
// number of days, ending on the day of the newest payment. Days without
// revenue are present with a zero amount.
func RevenueSeries(payments []domain.Payment, days int) []RevenuePoint {
	if days <= 0 || len(payments) == 0 {
		return nil
	}

	var last time.Time
	for _, p := range payments {
		if p.CreatedAt.After(last) {
			last = p.CreatedAt
		}
	}
	if last.IsZero() {
		return nil
	}
	end := truncateDay(last)

	series := make([]RevenuePoint, days)
	for i := range series {
		day := end.AddDate(0, 0, i-days+1)
		series[i] = RevenuePoint{
			Day:    day,
			Label:  day.Weekday().String()[:3],
			Amount: decimal.Zero,
		}
	}

	for _, p := range payments {
		if p.Status != domain.PaymentStatusSuccess || p.CreatedAt.IsZero() {
			continue
		}
		offset := int(end.Sub(truncateDay(p.CreatedAt)).Hours() / 24)
		if offset < 0 || offset >= days {
			continue
		}
		idx := days - 1 - offset
		series[idx].Amount = series[idx].Amount.Add(p.Amount)
	}

	return series
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
