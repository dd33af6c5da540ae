package redis

import (
	"context"
	"time"

	"paydash/internal/domain"
)

// SessionStoreInterface defines the operations on sandbox access tokens.
type SessionStoreInterface interface {
	CreateSession(ctx context.Context, token, username string, ttl time.Duration) error
	LookupSession(ctx context.Context, token string) (string, bool, error)
}

// StatsCacheInterface defines the operations on the cached dashboard summary.
// Entries are keyed by version so a summary computed before an invalidation
// is never served after it.
type StatsCacheInterface interface {
	StatsVersion(ctx context.Context) (int64, error)
	GetStats(ctx context.Context, version int64) (*domain.Stats, error)
	SetStats(ctx context.Context, version int64, stats *domain.Stats) error
	InvalidateStats(ctx context.Context) error
}

// LockStoreInterface defines owner-checked locks around idempotent requests.
type LockStoreInterface interface {
	AcquireIdempotencyLock(ctx context.Context, key string, ttl time.Duration) (owner string, acquired bool, err error)
	ReleaseIdempotencyLock(ctx context.Context, key, owner string) error
}

// ResponseStoreInterface defines storage for replayable responses.
type ResponseStoreInterface interface {
	GetResponse(ctx context.Context, key string) ([]byte, error)
	SetResponse(ctx context.Context, key string, data []byte, ttl time.Duration) error
}

// Ensure concrete types implement interfaces.
var (
	_ SessionStoreInterface  = (*SessionStore)(nil)
	_ SessionStoreInterface  = (*MemorySessionStore)(nil)
	_ StatsCacheInterface    = (*CacheStore)(nil)
	_ StatsCacheInterface    = (*MemoryCacheStore)(nil)
	_ LockStoreInterface     = (*LockStore)(nil)
	_ LockStoreInterface     = (*MemoryLockStore)(nil)
	_ ResponseStoreInterface = (*ResponseStore)(nil)
	_ ResponseStoreInterface = (*MemoryResponseStore)(nil)
)
