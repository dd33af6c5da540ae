package credential

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

const credentialPrefix = "paydash:credential:"

// RedisStore keeps values in Redis, for shared terminals and CI runners where
// several processes act as the same user.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a RedisStore.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	if err := validKey(key); err != nil {
		return "", false, err
	}
	v, err := s.client.Get(ctx, credentialPrefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, err
	}
	return v, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	if err := validKey(key); err != nil {
		return err
	}
	return s.client.Set(ctx, credentialPrefix+key, value, 0).Err()
}
