package screen

import (
	"context"
	"math/rand"

	"paydash/internal/domain"
)

// OutcomeDecider decides the status a submitted payment is recorded with.
// A gateway integration replaces the simulated implementations here without
// touching the submission flow.
type OutcomeDecider interface {
	Decide(ctx context.Context, p domain.NewPayment) (domain.PaymentStatus, error)
}

// DefaultSuccessRate is the share of simulated payments that succeed.
const DefaultSuccessRate = 0.8

// RandomOutcome is a simulation stand-in for a payment processor: it marks a
// payment successful with probability Rate. It does not move money.
type RandomOutcome struct {
	rate float64
	draw func() float64
}

// NewRandomOutcome creates a RandomOutcome. Rates outside [0, 1] are clamped.
func NewRandomOutcome(rate float64) *RandomOutcome {
	return newRandomOutcome(rate, rand.Float64)
}

func newRandomOutcome(rate float64, draw func() float64) *RandomOutcome {
	if rate < 0 {
		rate = 0
	}
	if rate > 1 {
		rate = 1
	}
	return &RandomOutcome{rate: rate, draw: draw}
}

// Decide draws an outcome.
func (o *RandomOutcome) Decide(ctx context.Context, p domain.NewPayment) (domain.PaymentStatus, error) {
	if o.draw() < o.rate {
		return domain.PaymentStatusSuccess, nil
	}
	return domain.PaymentStatusFailed, nil
}

// FixedOutcome always decides the same status.
type FixedOutcome domain.PaymentStatus

// Decide returns the fixed status.
func (o FixedOutcome) Decide(ctx context.Context, p domain.NewPayment) (domain.PaymentStatus, error) {
	return domain.PaymentStatus(o), nil
}
