package redis

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const idempotencyLockPrefix = "lock:idempotency:"

// releaseIfOwner deletes the lock only while it still carries the caller's
// owner token.
var releaseIfOwner = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// LockStore holds short-lived idempotency locks in Redis. Each lock records
// an owner token so a holder whose TTL lapsed cannot release a lock that a
// later request has since taken.
type LockStore struct {
	client *redis.Client
}

// NewLockStore creates a new LockStore.
func NewLockStore(client *redis.Client) *LockStore {
	return &LockStore{client: client}
}

// AcquireIdempotencyLock takes the lock for key. It returns the owner token
// to pass to ReleaseIdempotencyLock, or acquired=false while another request
// holds it.
func (s *LockStore) AcquireIdempotencyLock(ctx context.Context, key string, ttl time.Duration) (string, bool, error) {
	owner := uuid.NewString()
	acquired, err := s.client.SetNX(ctx, idempotencyLockPrefix+key, owner, ttl).Result()
	if err != nil || !acquired {
		return "", false, err
	}
	return owner, true, nil
}

// ReleaseIdempotencyLock drops the lock for key if owner still holds it.
func (s *LockStore) ReleaseIdempotencyLock(ctx context.Context, key, owner string) error {
	return releaseIfOwner.Run(ctx, s.client, []string{idempotencyLockPrefix + key}, owner).Err()
}
