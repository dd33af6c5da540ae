package app

import (
	"github.com/newrelic/go-agent/v3/newrelic"
	"go.uber.org/zap"

	"paydash/internal/config"
	"paydash/internal/telemetry"
)

// NewRelicApplication starts the New Relic agent. It returns nil when New
// Relic is disabled or fails to start; callers treat nil as "not instrumented".
func NewRelicApplication(cfg config.NewRelicConfig) *newrelic.Application {
	if !cfg.Enabled || cfg.LicenseKey == "" {
		return nil
	}

	nrApp, err := newrelic.NewApplication(
		newrelic.ConfigAppName(cfg.AppName),
		newrelic.ConfigLicense(cfg.LicenseKey),
		newrelic.ConfigDistributedTracerEnabled(true),
		newrelic.ConfigAppLogForwardingEnabled(true),
	)
	if err != nil {
		telemetry.Logger.Warn("Failed to initialize New Relic", zap.Error(err))
		return nil
	}

	telemetry.Logger.Info("New Relic enabled", zap.String("app", cfg.AppName))
	return nrApp
}
