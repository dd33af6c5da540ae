package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"

	"paydash/internal/domain"
	"paydash/internal/repository"
	"paydash/internal/service"
)

func newPaymentService() (*service.PaymentService, *MockPaymentRepository, *MockStatsCache, *MockPublisher) {
	repo := NewMockPaymentRepository()
	cache := NewMockStatsCache()
	publisher := NewMockPublisher()
	svc := service.NewPaymentService(repo, cache, service.NewNotificationService(publisher))
	return svc, repo, cache, publisher
}

func validRequest() service.CreatePaymentRequest {
	return service.CreatePaymentRequest{
		Amount:   decimal.RequireFromString("125.50"),
		Receiver: "alice",
		Method:   "card",
		Status:   "success",
	}
}

// ──────────────────────────────────────────────
// 1. PAYMENT CREATION
// ──────────────────────────────────────────────

func TestCreatePayment_ValidInput_Succeeds(t *testing.T) {
	t.Parallel()

	svc, repo, cache, publisher := newPaymentService()

	payment, err := svc.CreatePayment(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if payment.ID == "" {
		t.Error("expected payment ID to be set")
	}
	if payment.CreatedAt.IsZero() || payment.CreatedAt.Location() != time.UTC {
		t.Errorf("expected UTC creation time, got %v", payment.CreatedAt)
	}
	if payment.Method != domain.PaymentMethodCard || payment.Status != domain.PaymentStatusSuccess {
		t.Errorf("unexpected payment %+v", payment)
	}
	if repo.CountPayments() != 1 {
		t.Errorf("expected 1 stored payment, got %d", repo.CountPayments())
	}
	if cache.InvalidateCallCount != 1 {
		t.Errorf("expected stats cache invalidation, got %d", cache.InvalidateCallCount)
	}

	msgs := publisher.Messages()
	if len(msgs) != 1 || msgs[0].Key != string(payment.ID) {
		t.Fatalf("expected one event keyed by payment id, got %+v", msgs)
	}
	var event service.Notification
	if err := json.Unmarshal(msgs[0].Value, &event); err != nil {
		t.Fatalf("event is not JSON: %v", err)
	}
	if event.Type != service.NotificationPaymentSuccess || event.Receiver != "alice" {
		t.Errorf("unexpected event %+v", event)
	}
}

func TestCreatePayment_InvalidInput_Rejected(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		mutate  func(r *service.CreatePaymentRequest)
		wantErr error
	}{
		{
			name:    "zero amount",
			mutate:  func(r *service.CreatePaymentRequest) { r.Amount = decimal.Zero },
			wantErr: service.ErrInvalidPaymentAmount,
		},
		{
			name:    "negative amount",
			mutate:  func(r *service.CreatePaymentRequest) { r.Amount = decimal.NewFromInt(-1) },
			wantErr: service.ErrInvalidPaymentAmount,
		},
		{
			name:    "more than two decimal places",
			mutate:  func(r *service.CreatePaymentRequest) { r.Amount = decimal.RequireFromString("10.005") },
			wantErr: service.ErrInvalidPaymentAmount,
		},
		{
			name:    "blank receiver",
			mutate:  func(r *service.CreatePaymentRequest) { r.Receiver = "  " },
			wantErr: service.ErrInvalidReceiver,
		},
		{
			name:    "unknown method",
			mutate:  func(r *service.CreatePaymentRequest) { r.Method = "cash" },
			wantErr: service.ErrInvalidPaymentMethod,
		},
		{
			name:    "missing status",
			mutate:  func(r *service.CreatePaymentRequest) { r.Status = "" },
			wantErr: service.ErrInvalidPaymentStatus,
		},
		{
			name:    "unknown status",
			mutate:  func(r *service.CreatePaymentRequest) { r.Status = "pending" },
			wantErr: service.ErrInvalidPaymentStatus,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			svc, repo, _, publisher := newPaymentService()
			req := validRequest()
			tc.mutate(&req)

			_, err := svc.CreatePayment(context.Background(), req)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("expected %v, got %v", tc.wantErr, err)
			}
			if repo.CreateCallCount != 0 {
				t.Error("invalid payment must not be stored")
			}
			if len(publisher.Messages()) != 0 {
				t.Error("invalid payment must not be published")
			}
		})
	}
}

func TestCreatePayment_DefaultsMethodAndNormalises(t *testing.T) {
	t.Parallel()

	svc, _, _, _ := newPaymentService()
	req := validRequest()
	req.Method = ""
	req.Status = " FAILED "
	req.Receiver = "  bob "

	payment, err := svc.CreatePayment(context.Background(), req)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if payment.Method != domain.PaymentMethodUPI || payment.Status != domain.PaymentStatusFailed || payment.Receiver != "bob" {
		t.Errorf("unexpected payment %+v", payment)
	}
}

func TestCreatePayment_RepositoryError_Propagates(t *testing.T) {
	t.Parallel()

	svc, repo, cache, publisher := newPaymentService()
	repo.CreateError = errors.New("db down")

	if _, err := svc.CreatePayment(context.Background(), validRequest()); err == nil {
		t.Fatal("expected error")
	}
	if cache.InvalidateCallCount != 0 || len(publisher.Messages()) != 0 {
		t.Error("failed create must not invalidate or publish")
	}
}

func TestCreatePayment_PublishError_DoesNotFail(t *testing.T) {
	t.Parallel()

	svc, repo, _, publisher := newPaymentService()
	publisher.PublishError = errors.New("broker down")

	if _, err := svc.CreatePayment(context.Background(), validRequest()); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if repo.CountPayments() != 1 {
		t.Error("payment should be stored even when the event is lost")
	}
}

// ──────────────────────────────────────────────
// 2. LOOKUP
// ──────────────────────────────────────────────

func TestGetPayment(t *testing.T) {
	t.Parallel()

	svc, repo, _, _ := newPaymentService()
	repo.AddPayment(&domain.Payment{ID: "p1", Receiver: "alice"})

	p, err := svc.GetPayment(context.Background(), "p1")
	if err != nil || p.Receiver != "alice" {
		t.Errorf("expected alice, got %+v %v", p, err)
	}
	if _, err := svc.GetPayment(context.Background(), "nope"); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := svc.GetPayment(context.Background(), ""); !errors.Is(err, service.ErrInvalidPaymentID) {
		t.Errorf("expected ErrInvalidPaymentID, got %v", err)
	}
}

// ──────────────────────────────────────────────
// 3. STATS
// ──────────────────────────────────────────────

func TestSummarize(t *testing.T) {
	t.Parallel()

	payments := []domain.Payment{
		{ID: "1", Amount: decimal.RequireFromString("100.25"), Status: domain.PaymentStatusSuccess},
		{ID: "2", Amount: decimal.RequireFromString("50"), Status: domain.PaymentStatusFailed},
		{ID: "3", Amount: decimal.RequireFromString("0.75"), Status: domain.PaymentStatusSuccess},
	}

	stats := service.Summarize(payments)

	if stats.TotalPayments != 3 || stats.FailedCount != 1 {
		t.Errorf("unexpected counts %+v", stats)
	}
	if !stats.TotalRevenue.Equal(decimal.NewFromInt(101)) {
		t.Errorf("expected revenue 101, got %s", stats.TotalRevenue)
	}
	if len(stats.Payments) != 3 {
		t.Errorf("expected payments to be included, got %d", len(stats.Payments))
	}
}

func TestSummarize_Empty(t *testing.T) {
	t.Parallel()

	stats := service.Summarize(nil)

	if stats.TotalPayments != 0 || !stats.TotalRevenue.IsZero() || stats.Payments == nil {
		t.Errorf("unexpected empty summary %+v", stats)
	}
}

func TestStats_CachedUntilCreate(t *testing.T) {
	t.Parallel()

	svc, repo, _, _ := newPaymentService()
	ctx := context.Background()

	if _, err := svc.Stats(ctx); err != nil {
		t.Fatalf("stats: %v", err)
	}
	if _, err := svc.Stats(ctx); err != nil {
		t.Fatalf("stats: %v", err)
	}
	if repo.ListCallCount != 1 {
		t.Errorf("expected second call served from cache, got %d list calls", repo.ListCallCount)
	}

	if _, err := svc.CreatePayment(ctx, validRequest()); err != nil {
		t.Fatalf("create: %v", err)
	}
	stats, err := svc.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if repo.ListCallCount != 2 || stats.TotalPayments != 1 {
		t.Errorf("expected fresh stats after create, got %d list calls and %+v", repo.ListCallCount, stats)
	}
}

func TestStats_CreateDuringListIsNotHiddenByCache(t *testing.T) {
	t.Parallel()

	svc, repo, _, _ := newPaymentService()
	ctx := context.Background()

	var created bool
	repo.AfterList = func() {
		if created {
			return
		}
		created = true
		if _, err := svc.CreatePayment(ctx, validRequest()); err != nil {
			t.Errorf("create: %v", err)
		}
	}

	first, err := svc.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if first.TotalPayments != 0 {
		t.Fatalf("expected the snapshot taken before the create, got %+v", first)
	}

	second, err := svc.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if second.TotalPayments != 1 {
		t.Errorf("expected the new payment to be visible, got %d payments", second.TotalPayments)
	}
	if repo.ListCallCount != 2 {
		t.Errorf("expected the earlier snapshot not to be served, got %d list calls", repo.ListCallCount)
	}
}

func TestStats_CacheVersionErrorSkipsCache(t *testing.T) {
	t.Parallel()

	svc, repo, cache, _ := newPaymentService()
	cache.VersionError = errors.New("redis down")
	repo.AddPayment(&domain.Payment{ID: "1", Amount: decimal.NewFromInt(5), Status: domain.PaymentStatusSuccess})

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if stats.TotalPayments != 1 {
		t.Errorf("expected 1 payment, got %d", stats.TotalPayments)
	}
	if cache.SetCallCount != 0 {
		t.Errorf("expected no cache write without a version, got %d", cache.SetCallCount)
	}
}

func TestStats_CacheErrorFallsBackToRepository(t *testing.T) {
	t.Parallel()

	svc, repo, cache, _ := newPaymentService()
	cache.GetError = errors.New("redis down")
	repo.AddPayment(&domain.Payment{ID: "1", Amount: decimal.NewFromInt(5), Status: domain.PaymentStatusSuccess})

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if stats.TotalPayments != 1 {
		t.Errorf("expected 1 payment, got %d", stats.TotalPayments)
	}
}

func TestStats_RepositoryError_Propagates(t *testing.T) {
	t.Parallel()

	svc, repo, _, _ := newPaymentService()
	repo.ListError = errors.New("db down")

	if _, err := svc.Stats(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}
