package redis

import (
	"bytes"
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"paydash/internal/domain"
)

// The Memory* stores mirror the Redis stores for a sandbox started without
// REDIS_ADDR. State is per process.

type expiring struct {
	value     []byte
	expiresAt time.Time
}

type memoryKV struct {
	mu    sync.Mutex
	items map[string]expiring
	now   func() time.Time
}

func newMemoryKV() *memoryKV {
	return &memoryKV{items: make(map[string]expiring), now: time.Now}
}

func (m *memoryKV) get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	item, ok := m.items[key]
	if !ok {
		return nil, false
	}
	if !item.expiresAt.IsZero() && !m.now().Before(item.expiresAt) {
		delete(m.items, key)
		return nil, false
	}
	return item.value, true
}

func (m *memoryKV) set(key string, value []byte, ttl time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setLocked(key, value, ttl)
}

func (m *memoryKV) setLocked(key string, value []byte, ttl time.Duration) {
	item := expiring{value: value}
	if ttl > 0 {
		item.expiresAt = m.now().Add(ttl)
	}
	m.items[key] = item
}

// setNX stores value only when key is absent or expired.
func (m *memoryKV) setNX(key string, value []byte, ttl time.Duration) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if item, ok := m.items[key]; ok && (item.expiresAt.IsZero() || m.now().Before(item.expiresAt)) {
		return false
	}
	m.setLocked(key, value, ttl)
	return true
}

// delIf removes key only while it still holds value.
func (m *memoryKV) delIf(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if item, ok := m.items[key]; ok && bytes.Equal(item.value, value) {
		delete(m.items, key)
	}
}

// MemorySessionStore is an in-process SessionStoreInterface.
type MemorySessionStore struct {
	kv *memoryKV
}

// NewMemorySessionStore creates an empty MemorySessionStore.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{kv: newMemoryKV()}
}

func (s *MemorySessionStore) CreateSession(ctx context.Context, token, username string, ttl time.Duration) error {
	s.kv.set(sessionPrefix+token, []byte(username), ttl)
	return nil
}

func (s *MemorySessionStore) LookupSession(ctx context.Context, token string) (string, bool, error) {
	v, ok := s.kv.get(sessionPrefix + token)
	return string(v), ok, nil
}

// MemoryCacheStore is an in-process StatsCacheInterface.
type MemoryCacheStore struct {
	mu        sync.Mutex
	version   int64
	stats     *domain.Stats
	expiresAt time.Time
	now       func() time.Time
}

// NewMemoryCacheStore creates an empty MemoryCacheStore.
func NewMemoryCacheStore() *MemoryCacheStore {
	return &MemoryCacheStore{now: time.Now}
}

func (s *MemoryCacheStore) StatsVersion(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version, nil
}

func (s *MemoryCacheStore) GetStats(ctx context.Context, version int64) (*domain.Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if version != s.version || s.stats == nil || !s.now().Before(s.expiresAt) {
		return nil, nil
	}
	cp := *s.stats
	cp.Payments = append([]domain.Payment(nil), s.stats.Payments...)
	return &cp, nil
}

func (s *MemoryCacheStore) SetStats(ctx context.Context, version int64, stats *domain.Stats) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if version != s.version {
		return nil
	}
	cp := *stats
	cp.Payments = append([]domain.Payment(nil), stats.Payments...)
	s.stats = &cp
	s.expiresAt = s.now().Add(StatsCacheTTL)
	return nil
}

func (s *MemoryCacheStore) InvalidateStats(ctx context.Context) error {
	s.mu.Lock()
	s.version++
	s.stats = nil
	s.mu.Unlock()
	return nil
}

// MemoryLockStore is an in-process LockStoreInterface.
type MemoryLockStore struct {
	kv *memoryKV
}

// NewMemoryLockStore creates an empty MemoryLockStore.
func NewMemoryLockStore() *MemoryLockStore {
	return &MemoryLockStore{kv: newMemoryKV()}
}

func (s *MemoryLockStore) AcquireIdempotencyLock(ctx context.Context, key string, ttl time.Duration) (string, bool, error) {
	owner := uuid.NewString()
	if !s.kv.setNX(idempotencyLockPrefix+key, []byte(owner), ttl) {
		return "", false, nil
	}
	return owner, true, nil
}

func (s *MemoryLockStore) ReleaseIdempotencyLock(ctx context.Context, key, owner string) error {
	s.kv.delIf(idempotencyLockPrefix+key, []byte(owner))
	return nil
}

// MemoryResponseStore is an in-process ResponseStoreInterface.
type MemoryResponseStore struct {
	kv *memoryKV
}

// NewMemoryResponseStore creates an empty MemoryResponseStore.
func NewMemoryResponseStore() *MemoryResponseStore {
	return &MemoryResponseStore{kv: newMemoryKV()}
}

func (s *MemoryResponseStore) GetResponse(ctx context.Context, key string) ([]byte, error) {
	v, ok := s.kv.get(idempotencyPrefix + key)
	if !ok {
		return nil, nil
	}
	return v, nil
}

func (s *MemoryResponseStore) SetResponse(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	s.kv.set(idempotencyPrefix+key, append([]byte(nil), data...), ttl)
	return nil
}
