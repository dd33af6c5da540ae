package middleware

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"go.uber.org/zap"

	internalRedis "paydash/internal/redis"
	"paydash/internal/telemetry"
)

const (
	idempotencyHeader  = "Idempotency-Key"
	idempotencyTTL     = 24 * time.Hour
	idempotencyLockTTL = 30 * time.Second
)

// cachedResponse stores the response for idempotent requests.
type cachedResponse struct {
	StatusCode int             `json:"status_code"`
	Body       json.RawMessage `json:"body"`
	Headers    http.Header     `json:"headers"`
}

// responseWriter wraps gin.ResponseWriter to capture the response.
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// IdempotencyMiddleware replays the stored response for a repeated
// Idempotency-Key. A key whose first request is still running gets 409.
func IdempotencyMiddleware(responses internalRedis.ResponseStoreInterface, locks internalRedis.LockStoreInterface) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Only apply to mutating methods.
		if c.Request.Method != http.MethodPost && c.Request.Method != http.MethodPut && c.Request.Method != http.MethodPatch {
			c.Next()
			return
		}

		key := c.GetHeader(idempotencyHeader)
		if key == "" {
			c.Next()
			return
		}

		ctx := c.Request.Context()

		cached, err := getCachedResponse(c, responses, key)
		if err != nil {
			// Store error - proceed without idempotency.
			telemetry.Logger.Warn("Idempotency lookup failed", zap.Error(err))
			c.Next()
			return
		}

		if cached != nil {
			for k, v := range cached.Headers {
				for _, val := range v {
					c.Header(k, val)
				}
			}
			c.Header("Idempotent-Replayed", "true")
			c.Data(cached.StatusCode, "application/json", cached.Body)
			c.Abort()
			return
		}

		owner, acquired, err := locks.AcquireIdempotencyLock(ctx, key, idempotencyLockTTL)
		if err != nil {
			telemetry.Logger.Warn("Idempotency lock failed", zap.Error(err))
			c.Next()
			return
		}
		if !acquired {
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "request with this Idempotency-Key is in progress"})
			return
		}
		defer func() {
			_ = locks.ReleaseIdempotencyLock(ctx, key, owner)
		}()

		w := &responseWriter{
			ResponseWriter: c.Writer,
			body:           &bytes.Buffer{},
		}
		c.Writer = w

		c.Next()

		if c.Writer.Status() >= 200 && c.Writer.Status() < 500 {
			response := cachedResponse{
				StatusCode: c.Writer.Status(),
				Body:       w.body.Bytes(),
				Headers:    extractResponseHeaders(c),
			}
			if data, err := json.Marshal(&response); err == nil {
				_ = responses.SetResponse(ctx, key, data, idempotencyTTL)
			}
		}
	}
}

// getCachedResponse retrieves a stored response. A miss returns nil, nil.
func getCachedResponse(c *gin.Context, responses internalRedis.ResponseStoreInterface, key string) (*cachedResponse, error) {
	data, err := responses.GetResponse(c.Request.Context(), key)
	if err != nil || data == nil {
		return nil, err
	}

	var cached cachedResponse
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, err
	}

	return &cached, nil
}

// extractResponseHeaders extracts headers to cache.
func extractResponseHeaders(c *gin.Context) http.Header {
	headers := make(http.Header)
	// Only cache Content-Type header.
	if ct := c.Writer.Header().Get("Content-Type"); ct != "" {
		headers.Set("Content-Type", ct)
	}
	return headers
}
