// Package client is the authenticated HTTP client for the payments API.
package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/newrelic/go-agent/v3/newrelic"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"paydash/internal/credential"
	"paydash/internal/domain"
	"paydash/internal/telemetry"
)

// maxErrorBody bounds how much of an error response is kept in APIError.
const maxErrorBody = 4 << 10

// Client sends requests to a fixed base URL and attaches the stored bearer
// token, when one exists, to every request. It never caches or retries.
type Client struct {
	baseURL    string
	httpClient *http.Client
	store      credential.Store
	tracer     trace.Tracer
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithNewRelic records outbound calls as external segments of the
// transaction carried by the request context.
func WithNewRelic(app *newrelic.Application) Option {
	return func(c *Client) {
		if app == nil {
			return
		}
		c.httpClient.Transport = newrelic.NewRoundTripper(c.httpClient.Transport)
	}
}

// New creates a Client for baseURL reading credentials from store.
func New(baseURL string, store credential.Store, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
		store:      store,
		tracer:     telemetry.Tracer("paydash/client"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Do sends a request for path with the given verb. body, when non-nil, is
// JSON-encoded; out, when non-nil, receives the decoded response.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	return c.do(ctx, method, path, body, out, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any, header http.Header) error {
	ctx, span := c.tracer.Start(ctx, method+" "+path, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		telemetry.Logger.Warn("API request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	telemetry.Logger.Debug("API request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		apiErr := &APIError{
			StatusCode: resp.StatusCode,
			Method:     method,
			Path:       path,
			Body:       strings.TrimSpace(string(b)),
		}
		span.SetStatus(codes.Error, apiErr.Error())
		return apiErr
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		span.RecordError(err)
		return fmt.Errorf("%s %s: decode response: %w", method, path, err)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var r io.Reader
	if body != nil {
		buf := &bytes.Buffer{}
		if err := json.NewEncoder(buf).Encode(body); err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		r = buf
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/"+strings.TrimLeft(path, "/"), r)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	// An unreadable credential is treated as absent so that login can
	// still replace it.
	token, ok, err := c.store.Get(ctx, domain.TokenKey)
	if err != nil {
		telemetry.Logger.Warn("Failed to read credential, sending unauthenticated",
			zap.String("path", path),
			zap.Error(err),
		)
		return req, nil
	}
	if ok && token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}
