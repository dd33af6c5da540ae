package service

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"paydash/internal/domain"
	"paydash/internal/events"
	"paydash/internal/telemetry"
)

// NotificationType represents the type of notification.
type NotificationType string

const (
	NotificationPaymentSuccess NotificationType = "PAYMENT_SUCCESS"
	NotificationPaymentFailed  NotificationType = "PAYMENT_FAILED"
)

// Notification is the payload published for a created payment.
type Notification struct {
	Type      NotificationType `json:"type"`
	PaymentID string           `json:"payment_id"`
	Receiver  string           `json:"receiver"`
	Amount    decimal.Decimal  `json:"amount"`
	Method    string           `json:"method"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	CreatedAt time.Time        `json:"created_at"`
}

// NotificationService publishes payment events.
type NotificationService struct {
	publisher events.Publisher
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(publisher events.Publisher) *NotificationService {
	return &NotificationService{publisher: publisher}
}

// NotifyPaymentCreated publishes the event for a newly recorded payment.
func (s *NotificationService) NotifyPaymentCreated(ctx context.Context, payment *domain.Payment) error {
	notification := Notification{
		PaymentID: string(payment.ID),
		Receiver:  payment.Receiver,
		Amount:    payment.Amount,
		Method:    string(payment.Method),
		CreatedAt: payment.CreatedAt,
	}
	if payment.Status == domain.PaymentStatusSuccess {
		notification.Type = NotificationPaymentSuccess
		notification.Title = "Payment Successful"
		notification.Message = fmt.Sprintf("Payment of ₹%s to %s was successful", payment.Amount.StringFixed(2), payment.Receiver)
	} else {
		notification.Type = NotificationPaymentFailed
		notification.Title = "Payment Failed"
		notification.Message = fmt.Sprintf("Payment of ₹%s to %s failed. Please try again.", payment.Amount.StringFixed(2), payment.Receiver)
	}
	return s.send(ctx, notification)
}

// send delivers a notification. Delivery failures are logged, not returned
// to the payment flow.
func (s *NotificationService) send(ctx context.Context, notification Notification) error {
	data, err := json.Marshal(notification)
	if err != nil {
		return err
	}

	if err := s.publisher.Publish(ctx, notification.PaymentID, data); err != nil {
		telemetry.Logger.Error("Failed to publish payment event",
			zap.String("payment_id", notification.PaymentID),
			zap.Error(err),
		)
		return nil
	}

	telemetry.Logger.Debug("Payment event published",
		zap.String("type", string(notification.Type)),
		zap.String("payment_id", notification.PaymentID),
	)
	return nil
}
