package app

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"paydash/internal/config"
	"paydash/internal/events"
	"paydash/internal/handler"
	internalRedis "paydash/internal/redis"
	"paydash/internal/repository"
	"paydash/internal/repository/memory"
	"paydash/internal/repository/postgres"
	"paydash/internal/service"
)

// Backends holds the external connections of a sandbox. A nil DB selects the
// in-memory repositories; a nil Redis selects in-process stores.
type Backends struct {
	DB          *sql.DB
	Redis       *redis.Client
	Publisher   events.Publisher
	NewRelicApp *newrelic.Application
}

// NewSandbox wires repositories, stores, services and handlers, seeds the
// configured accounts and returns the router.
func NewSandbox(ctx context.Context, cfg *config.Config, b Backends) (*gin.Engine, error) {
	var (
		userRepo    repository.UserRepository
		paymentRepo repository.PaymentRepository
	)
	if b.DB != nil {
		if err := postgres.Migrate(ctx, b.DB); err != nil {
			return nil, err
		}
		userRepo = postgres.NewUserRepository(b.DB)
		paymentRepo = postgres.NewPaymentRepository(b.DB)
	} else {
		userRepo = memory.NewUserRepository()
		paymentRepo = memory.NewPaymentRepository()
	}

	var (
		sessions  internalRedis.SessionStoreInterface
		cache     internalRedis.StatsCacheInterface
		locks     internalRedis.LockStoreInterface
		responses internalRedis.ResponseStoreInterface
	)
	if b.Redis != nil {
		sessions = internalRedis.NewSessionStore(b.Redis)
		cache = internalRedis.NewCacheStore(b.Redis)
		locks = internalRedis.NewLockStore(b.Redis)
		responses = internalRedis.NewResponseStore(b.Redis)
	} else {
		sessions = internalRedis.NewMemorySessionStore()
		cache = internalRedis.NewMemoryCacheStore()
		locks = internalRedis.NewMemoryLockStore()
		responses = internalRedis.NewMemoryResponseStore()
	}

	publisher := b.Publisher
	if publisher == nil {
		publisher = events.LogPublisher{}
	}

	authService := service.NewAuthService(userRepo, sessions, cfg.Session.TTL)
	if err := authService.SeedUsers(ctx, cfg.Session.Users); err != nil {
		return nil, fmt.Errorf("failed to seed users: %w", err)
	}
	notificationService := service.NewNotificationService(publisher)
	paymentService := service.NewPaymentService(paymentRepo, cache, notificationService)

	return NewRouter(RouterDeps{
		AuthHandler:    handler.NewAuthHandler(authService),
		PaymentHandler: handler.NewPaymentHandler(paymentService),
		Authenticator:  authService,
		Responses:      responses,
		Locks:          locks,
		NewRelicApp:    b.NewRelicApp,
	}), nil
}
