package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"paydash/internal/app"
	"paydash/internal/config"
	"paydash/internal/events"
	"paydash/internal/telemetry"
)

func main() {
	cfg := config.Load()

	if err := telemetry.Init(context.Background(), telemetry.Options{
		ServiceName:  app.ServiceName,
		Level:        cfg.Telemetry.LogLevel,
		OTLPEndpoint: cfg.Telemetry.OTLPEndpoint,
	}); err != nil {
		panic(err)
	}
	defer telemetry.Shutdown(context.Background())

	gin.SetMode(gin.ReleaseMode)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize New Relic FIRST (before database so we can instrument DB).
	nrApp := app.NewRelicApplication(cfg.NewRelic)
	if nrApp != nil {
		defer nrApp.Shutdown(5 * time.Second)
	}

	var db *sql.DB
	if cfg.Storage == config.StoragePostgres {
		var err error
		db, err = app.NewDatabase(ctx, cfg.Database, nrApp)
		if err != nil {
			telemetry.Logger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer db.Close()
		telemetry.Logger.Info("Connected to PostgreSQL", zap.String("host", cfg.Database.Host))
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		var err error
		redisClient, err = app.NewRedisClient(ctx, cfg.Redis, nrApp)
		if err != nil {
			telemetry.Logger.Fatal("Failed to connect to redis", zap.Error(err))
		}
		defer redisClient.Close()
		telemetry.Logger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))
	}

	var publisher events.Publisher = events.LogPublisher{}
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaPublisher := events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
		telemetry.Logger.Info("Publishing payment events",
			zap.Strings("brokers", cfg.Kafka.Brokers),
			zap.String("topic", cfg.Kafka.Topic),
		)
	}

	router, err := app.NewSandbox(ctx, cfg, app.Backends{
		DB:          db,
		Redis:       redisClient,
		Publisher:   publisher,
		NewRelicApp: nrApp,
	})
	if err != nil {
		telemetry.Logger.Fatal("Failed to build sandbox", zap.Error(err))
	}

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		telemetry.Logger.Info("Starting sandbox",
			zap.String("port", cfg.Server.Port),
			zap.String("storage", cfg.Storage),
			zap.Int("users", len(cfg.Session.Users)),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			telemetry.Logger.Fatal("Server error", zap.Error(err))
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	telemetry.Logger.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		telemetry.Logger.Error("Server forced to shutdown", zap.Error(err))
	}

	telemetry.Logger.Info("Server exited")
}
