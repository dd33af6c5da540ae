package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"paydash/internal/domain"
	"paydash/internal/metrics"
	internalRedis "paydash/internal/redis"
	"paydash/internal/repository"
	"paydash/internal/telemetry"
)

// PaymentService handles payment operations.
type PaymentService struct {
	paymentRepo  repository.PaymentRepository
	cache        internalRedis.StatsCacheInterface
	notification *NotificationService
	now          func() time.Time
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(paymentRepo repository.PaymentRepository, cache internalRedis.StatsCacheInterface, notification *NotificationService) *PaymentService {
	return &PaymentService{
		paymentRepo:  paymentRepo,
		cache:        cache,
		notification: notification,
		now:          time.Now,
	}
}

// CreatePaymentRequest contains the parameters for recording a payment.
type CreatePaymentRequest struct {
	Amount   decimal.Decimal
	Receiver string
	Method   string
	Status   string
}

// CreatePayment validates and records a payment. The status is decided by the
// caller; the sandbox does not move money.
func (s *PaymentService) CreatePayment(ctx context.Context, req CreatePaymentRequest) (*domain.Payment, error) {
	if !domain.ValidAmount(req.Amount) {
		return nil, ErrInvalidPaymentAmount
	}

	receiver := strings.TrimSpace(req.Receiver)
	if receiver == "" {
		return nil, ErrInvalidReceiver
	}

	method, err := domain.ParsePaymentMethod(req.Method)
	if err != nil {
		return nil, ErrInvalidPaymentMethod
	}

	status := domain.PaymentStatus(strings.ToLower(strings.TrimSpace(req.Status)))
	if !status.Valid() {
		return nil, ErrInvalidPaymentStatus
	}

	payment := &domain.Payment{
		ID:        domain.PaymentID(uuid.New().String()),
		Amount:    req.Amount,
		Receiver:  receiver,
		Method:    method,
		Status:    status,
		CreatedAt: s.now().UTC(),
	}

	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}

	if err := s.cache.InvalidateStats(ctx); err != nil {
		telemetry.Logger.Warn("Failed to invalidate stats cache", zap.Error(err))
	}

	_ = s.notification.NotifyPaymentCreated(ctx, payment)
	metrics.PaymentsCreated.WithLabelValues(string(payment.Status), string(payment.Method)).Inc()

	telemetry.Logger.Info("Payment recorded",
		zap.String("payment_id", string(payment.ID)),
		zap.String("status", string(payment.Status)),
		zap.String("method", string(payment.Method)),
		zap.String("amount", payment.Amount.String()),
	)

	return payment, nil
}

// GetPayment retrieves a payment by ID.
func (s *PaymentService) GetPayment(ctx context.Context, paymentID string) (*domain.Payment, error) {
	if paymentID == "" {
		return nil, ErrInvalidPaymentID
	}

	return s.paymentRepo.GetByID(ctx, domain.PaymentID(paymentID))
}

// ListPayments returns every payment, newest first.
func (s *PaymentService) ListPayments(ctx context.Context) ([]domain.Payment, error) {
	return s.paymentRepo.List(ctx)
}

// Stats returns the dashboard summary, served from cache when fresh. The
// cache version is read before listing, so a payment created while the list
// runs leaves the snapshot under a version nobody reads.
func (s *PaymentService) Stats(ctx context.Context) (*domain.Stats, error) {
	version, err := s.cache.StatsVersion(ctx)
	cacheable := err == nil
	if err != nil {
		telemetry.Logger.Warn("Failed to read stats cache version", zap.Error(err))
	}

	if cacheable {
		cached, err := s.cache.GetStats(ctx, version)
		if err != nil {
			telemetry.Logger.Warn("Failed to read stats cache", zap.Error(err))
		}
		if cached != nil {
			return cached, nil
		}
	}

	payments, err := s.paymentRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	stats := Summarize(payments)
	if cacheable {
		if err := s.cache.SetStats(ctx, version, stats); err != nil {
			telemetry.Logger.Warn("Failed to write stats cache", zap.Error(err))
		}
	}
	return stats, nil
}

// Summarize aggregates payments into the dashboard summary. Revenue counts
// successful payments only.
func Summarize(payments []domain.Payment) *domain.Stats {
	stats := &domain.Stats{
		TotalPayments: len(payments),
		TotalRevenue:  decimal.Zero,
		Payments:      payments,
	}
	if stats.Payments == nil {
		stats.Payments = []domain.Payment{}
	}
	for _, p := range payments {
		switch p.Status {
		case domain.PaymentStatusSuccess:
			stats.TotalRevenue = stats.TotalRevenue.Add(p.Amount)
		case domain.PaymentStatusFailed:
			stats.FailedCount++
		}
	}
	return stats
}
