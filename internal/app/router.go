package app

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"paydash/internal/handler"
	"paydash/internal/middleware"
	internalRedis "paydash/internal/redis"
)

// ServiceName identifies the sandbox in traces and logs.
const ServiceName = "paydash-sandbox"

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	AuthHandler    *handler.AuthHandler
	PaymentHandler *handler.PaymentHandler
	Authenticator  middleware.TokenAuthenticator
	Responses      internalRedis.ResponseStoreInterface
	Locks          internalRedis.LockStoreInterface
	NewRelicApp    *newrelic.Application
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(middleware.Tracing(ServiceName))
	router.Use(middleware.RequestLogger())
	router.Use(middleware.Metrics())
	router.Use(middleware.CORSMiddleware())

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
		router.Use(middleware.NewRelicAttributes())
	}

	// Health check and metrics.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": ServiceName})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.POST("/auth/login", deps.AuthHandler.Login)

	// Payment routes.
	payments := router.Group("/payments")
	payments.Use(middleware.BearerAuth(deps.Authenticator))
	{
		payments.GET("", deps.PaymentHandler.ListPayments)
		payments.GET("/stats", deps.PaymentHandler.Stats)
		payments.GET("/:id", deps.PaymentHandler.GetPayment)
		payments.POST("", middleware.IdempotencyMiddleware(deps.Responses, deps.Locks), deps.PaymentHandler.CreatePayment)
	}

	return router
}
