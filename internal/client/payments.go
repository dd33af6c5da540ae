package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/google/uuid"

	"paydash/internal/domain"
)

// IdempotencyHeader carries a per-submission key so a replayed POST does not
// create a second payment.
const IdempotencyHeader = "Idempotency-Key"

// Login posts credentials to /auth/login and returns the access token. It does
// not store the token; that is the caller's decision.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	var resp domain.AccessToken
	err := c.Do(ctx, http.MethodPost, "/auth/login", domain.Credentials{
		Username: username,
		Password: password,
	}, &resp)
	if err != nil {
		return "", err
	}
	if resp.AccessToken == "" {
		return "", ErrEmptyToken
	}
	return resp.AccessToken, nil
}

// Stats fetches the dashboard summary.
func (c *Client) Stats(ctx context.Context) (*domain.Stats, error) {
	var stats domain.Stats
	if err := c.Do(ctx, http.MethodGet, "/payments/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// ListPayments fetches every payment record.
func (c *Client) ListPayments(ctx context.Context) ([]domain.Payment, error) {
	var payments []domain.Payment
	if err := c.Do(ctx, http.MethodGet, "/payments", nil, &payments); err != nil {
		return nil, err
	}
	return payments, nil
}

// GetPayment fetches a single payment.
func (c *Client) GetPayment(ctx context.Context, id domain.PaymentID) (*domain.Payment, error) {
	var p domain.Payment
	if err := c.Do(ctx, http.MethodGet, "/payments/"+url.PathEscape(string(id)), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// CreatePayment submits a new payment and returns the created record.
func (c *Client) CreatePayment(ctx context.Context, p domain.NewPayment) (*domain.Payment, error) {
	header := http.Header{}
	header.Set(IdempotencyHeader, uuid.New().String())

	var created domain.Payment
	if err := c.do(ctx, http.MethodPost, "/payments", p, &created, header); err != nil {
		return nil, err
	}
	return &created, nil
}
