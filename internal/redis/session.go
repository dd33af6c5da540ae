package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const sessionPrefix = "session:"

// SessionStore keeps sandbox access tokens in Redis with a TTL.
type SessionStore struct {
	client *redis.Client
}

// NewSessionStore creates a new SessionStore.
func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

// CreateSession maps token to username until ttl elapses.
func (s *SessionStore) CreateSession(ctx context.Context, token, username string, ttl time.Duration) error {
	return s.client.Set(ctx, sessionPrefix+token, username, ttl).Err()
}

// LookupSession returns the username behind token.
func (s *SessionStore) LookupSession(ctx context.Context, token string) (string, bool, error) {
	username, err := s.client.Get(ctx, sessionPrefix+token).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return username, true, nil
}
