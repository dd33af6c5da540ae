// Package telemetry owns the process-wide logger and tracer provider.
package telemetry

import (
	"context"
	"fmt"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the shared structured logger. It is a no-op logger until Init runs.
var Logger = zap.NewNop()

var tracerProvider *sdktrace.TracerProvider

// Options configures Init.
type Options struct {
	ServiceName string
	// Level is a zap level name: debug, info, warn, error.
	Level string
	// Console selects the human-readable encoder; JSON otherwise.
	Console bool
	// OTLPEndpoint enables span export when non-empty (host:port).
	OTLPEndpoint string
}

// Init builds the global logger and, when an OTLP endpoint is configured, the
// global tracer provider.
func Init(ctx context.Context, opts Options) error {
	level := zapcore.InfoLevel
	if opts.Level != "" {
		if err := level.UnmarshalText([]byte(opts.Level)); err != nil {
			return fmt.Errorf("invalid log level %q: %w", opts.Level, err)
		}
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	var enc zapcore.Encoder
	if opts.Console {
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		enc = zapcore.NewConsoleEncoder(encCfg)
	} else {
		enc = zapcore.NewJSONEncoder(encCfg)
	}

	core := zapcore.NewCore(enc, zapcore.Lock(os.Stderr), level)
	Logger = zap.New(core, zap.AddCaller()).With(zap.String("service", opts.ServiceName))

	if opts.OTLPEndpoint == "" {
		return nil
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(opts.OTLPEndpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return fmt.Errorf("failed to create trace exporter: %w", err)
	}

	res := resource.NewWithAttributes("",
		attribute.String("service.name", opts.ServiceName),
	)

	tracerProvider = sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tracerProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return nil
}

// Tracer returns a named tracer from the global provider.
func Tracer(name string) trace.Tracer {
	return otel.Tracer(name)
}

// Shutdown flushes pending spans and log entries.
func Shutdown(ctx context.Context) {
	if tracerProvider != nil {
		if err := tracerProvider.Shutdown(ctx); err != nil {
			Logger.Warn("Failed to shut down tracer provider", zap.Error(err))
		}
	}
	_ = Logger.Sync()
}
