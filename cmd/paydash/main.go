// Command paydash is the terminal front end of the payments dashboard: it signs
// in against the payments API and shows the dashboard, the transaction list,
// single transactions and the add-payment form.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"paydash/internal/app"
	"paydash/internal/config"
	"paydash/internal/credential"
	"paydash/internal/screen"
	"paydash/internal/telemetry"
)

func main() {
	os.Exit(realMain())
}

func realMain() int {
	cfg := config.LoadClient()

	if err := telemetry.Init(context.Background(), telemetry.Options{
		ServiceName:  "paydash-client",
		Level:        cfg.Telemetry.LogLevel,
		Console:      true,
		OTLPEndpoint: cfg.Telemetry.OTLPEndpoint,
	}); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitFailure
	}
	defer telemetry.Shutdown(context.Background())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	nrApp := app.NewRelicApplication(cfg.NewRelic)
	if nrApp != nil {
		defer nrApp.Shutdown(5 * time.Second)
	}

	store, closeStore, err := openCredentialStore(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "paydash: %v\n", err)
		return exitFailure
	}
	defer closeStore()

	return run(ctx, os.Args[1:], &env{
		cfg:     cfg,
		stdin:   os.Stdin,
		stdout:  os.Stdout,
		stderr:  os.Stderr,
		store:   store,
		outcome: screen.NewRandomOutcome(cfg.SuccessRate),
		nrApp:   nrApp,
	})
}

// openCredentialStore opens the configured token store.
func openCredentialStore(ctx context.Context, cfg *config.ClientConfig) (credential.Store, func(), error) {
	switch cfg.Credentials.Backend {
	case config.CredentialFile:
		return credential.NewFileStore(cfg.Credentials.Dir, cfg.Credentials.Secret), func() {}, nil
	case config.CredentialRedis:
		client, err := app.NewRedisClient(ctx, cfg.Redis, nil)
		if err != nil {
			return nil, nil, err
		}
		telemetry.Logger.Debug("Using redis credential store", zap.String("addr", cfg.Redis.Addr))
		return credential.NewRedisStore(client), func() { client.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown credential store %q", cfg.Credentials.Backend)
	}
}
