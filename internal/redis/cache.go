package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"paydash/internal/domain"
)

// CacheStore handles the dashboard summary cache in Redis.
type CacheStore struct {
	client *redis.Client
}

// NewCacheStore creates a new CacheStore.
func NewCacheStore(client *redis.Client) *CacheStore {
	return &CacheStore{client: client}
}

// StatsCacheTTL bounds how stale the dashboard summary may be.
const StatsCacheTTL = 10 * time.Second

const statsVersionKey = "cache:payments:stats:version"

func statsCacheKey(version int64) string {
	return fmt.Sprintf("cache:payments:stats:%d", version)
}

// StatsVersion returns the current summary version. It starts at 0 and moves
// forward on every invalidation.
func (s *CacheStore) StatsVersion(ctx context.Context) (int64, error) {
	v, err := s.client.Get(ctx, statsVersionKey).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return v, err
}

// GetStats retrieves the summary cached for version. A miss returns nil, nil.
func (s *CacheStore) GetStats(ctx context.Context, version int64) (*domain.Stats, error) {
	data, err := s.client.Get(ctx, statsCacheKey(version)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // Cache miss
		}
		return nil, err
	}

	var stats domain.Stats
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// SetStats stores a summary computed under version. Once the version has
// moved on the entry is never read again and lapses with its TTL.
func (s *CacheStore) SetStats(ctx context.Context, version int64, stats *domain.Stats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, statsCacheKey(version), data, StatsCacheTTL).Err()
}

// InvalidateStats advances the summary version.
func (s *CacheStore) InvalidateStats(ctx context.Context) error {
	return s.client.Incr(ctx, statsVersionKey).Err()
}
