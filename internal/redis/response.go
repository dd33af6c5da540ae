package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const idempotencyPrefix = "idempotency:"

// ResponseStore keeps serialized responses keyed by idempotency key.
type ResponseStore struct {
	client *redis.Client
}

// NewResponseStore creates a new ResponseStore.
func NewResponseStore(client *redis.Client) *ResponseStore {
	return &ResponseStore{client: client}
}

// GetResponse returns the stored response, or nil on a miss.
func (s *ResponseStore) GetResponse(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, idempotencyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	return data, err
}

// SetResponse stores a response for ttl.
func (s *ResponseStore) SetResponse(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return s.client.Set(ctx, idempotencyPrefix+key, data, ttl).Err()
}
