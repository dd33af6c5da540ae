package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequests counts sandbox requests by route and status code.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "paydash",
		Subsystem: "sandbox",
		Name:      "http_requests_total",
		Help:      "HTTP requests handled by the sandbox API.",
	}, []string{"method", "route", "code"})

	// HTTPDuration observes sandbox request latency.
	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "paydash",
		Subsystem: "sandbox",
		Name:      "http_request_duration_seconds",
		Help:      "Latency of HTTP requests handled by the sandbox API.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	// PaymentsCreated counts recorded payments by status and method.
	PaymentsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "paydash",
		Subsystem: "sandbox",
		Name:      "payments_created_total",
		Help:      "Payments recorded by the sandbox API.",
	}, []string{"status", "method"})

	// LoginAttempts counts login attempts by result.
	LoginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "paydash",
		Subsystem: "sandbox",
		Name:      "login_attempts_total",
		Help:      "Login attempts against the sandbox API.",
	}, []string{"result"})
)
