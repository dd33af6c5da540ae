package screen

import (
	"context"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"paydash/internal/domain"
	"paydash/internal/telemetry"
)

// PaymentForm is the add-payment form as typed by the user.
type PaymentForm struct {
	Amount   string
	Receiver string
	Method   domain.PaymentMethod
}

// SubmitResult is the outcome of one submission.
type SubmitResult struct {
	Message string
	// Done signals the caller to leave the screen.
	Done    bool
	Payment *domain.Payment
}

// AddPayment is the add-payment screen.
type AddPayment struct {
	payments PaymentCreator
	outcome  OutcomeDecider

	mu      sync.Mutex
	form    PaymentForm
	loading bool
}

// NewAddPayment creates an add-payment screen with UPI preselected.
func NewAddPayment(payments PaymentCreator, outcome OutcomeDecider) *AddPayment {
	return &AddPayment{
		payments: payments,
		outcome:  outcome,
		form:     PaymentForm{Method: domain.PaymentMethodUPI},
	}
}

// Form returns the current form contents.
func (s *AddPayment) Form() PaymentForm {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.form
}

// Loading reports whether a submission is in flight.
func (s *AddPayment) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// SetAmount updates the amount field.
func (s *AddPayment) SetAmount(v string) {
	s.mu.Lock()
	s.form.Amount = v
	s.mu.Unlock()
}

// SetReceiver updates the receiver field.
func (s *AddPayment) SetReceiver(v string) {
	s.mu.Lock()
	s.form.Receiver = v
	s.mu.Unlock()
}

// SetMethod selects the payment method.
func (s *AddPayment) SetMethod(m domain.PaymentMethod) {
	s.mu.Lock()
	s.form.Method = m
	s.mu.Unlock()
}

// Submit validates the form and, when valid, submits the payment. Invalid
// input never reaches the network.
func (s *AddPayment) Submit(ctx context.Context) SubmitResult {
	form := s.Form()

	draft, msg := validateForm(form)
	if msg != "" {
		return SubmitResult{Message: msg}
	}

	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
	}()

	status, err := s.outcome.Decide(ctx, draft)
	if err != nil {
		telemetry.Logger.Warn("Failed to decide payment outcome", zap.Error(err))
		return SubmitResult{Message: MsgPaymentFailed}
	}
	draft.Status = status

	created, err := s.payments.CreatePayment(ctx, draft)
	if err != nil {
		telemetry.Logger.Warn("Failed to add payment",
			zap.String("receiver", draft.Receiver),
			zap.Error(err),
		)
		return SubmitResult{Message: MsgPaymentFailed}
	}

	s.mu.Lock()
	s.form.Amount = ""
	s.form.Receiver = ""
	s.mu.Unlock()

	msg = MsgPaymentAdded
	if status != domain.PaymentStatusSuccess {
		msg = MsgPaymentAttempted
	}
	return SubmitResult{Message: msg, Done: true, Payment: created}
}

// validateForm returns the request to send, or a validation message.
func validateForm(form PaymentForm) (domain.NewPayment, string) {
	amount := strings.TrimSpace(form.Amount)
	receiver := strings.TrimSpace(form.Receiver)
	if amount == "" || receiver == "" {
		return domain.NewPayment{}, MsgMissingFields
	}

	d, err := decimal.NewFromString(amount)
	if err != nil || !domain.ValidAmount(d) {
		return domain.NewPayment{}, MsgInvalidAmount
	}

	method, err := domain.ParsePaymentMethod(string(form.Method))
	if err != nil {
		return domain.NewPayment{}, MsgInvalidMethod
	}

	return domain.NewPayment{
		Amount:   d,
		Receiver: receiver,
		Method:   method,
	}, ""
}
