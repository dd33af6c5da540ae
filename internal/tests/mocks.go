package tests

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"paydash/internal/domain"
	"paydash/internal/events"
	"paydash/internal/redis"
	"paydash/internal/repository"
)

// ──────────────────────────────────────────────
// MOCK PAYMENT REPOSITORY
// ──────────────────────────────────────────────

// MockPaymentRepository is a mock implementation of PaymentRepository.
type MockPaymentRepository struct {
	mu       sync.RWMutex
	payments map[domain.PaymentID]*domain.Payment

	// Counters for verification
	CreateCallCount int32
	ListCallCount   int32

	// Error injection
	CreateError error
	ListError   error

	// AfterList runs once List has taken its snapshot.
	AfterList func()
}

// NewMockPaymentRepository creates a new mock payment repository.
func NewMockPaymentRepository() *MockPaymentRepository {
	return &MockPaymentRepository{
		payments: make(map[domain.PaymentID]*domain.Payment),
	}
}

// AddPayment adds a payment to the mock repository.
func (m *MockPaymentRepository) AddPayment(payment *domain.Payment) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payments[payment.ID] = payment
}

func (m *MockPaymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.payments[payment.ID]; exists {
		return repository.ErrDuplicate
	}
	copy := *payment
	m.payments[payment.ID] = &copy
	return nil
}

func (m *MockPaymentRepository) GetByID(ctx context.Context, id domain.PaymentID) (*domain.Payment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	payment, ok := m.payments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	// Return a copy to avoid mutation issues.
	copy := *payment
	return &copy, nil
}

func (m *MockPaymentRepository) List(ctx context.Context) ([]domain.Payment, error) {
	atomic.AddInt32(&m.ListCallCount, 1)
	if m.ListError != nil {
		return nil, m.ListError
	}
	m.mu.RLock()
	out := make([]domain.Payment, 0, len(m.payments))
	for _, p := range m.payments {
		out = append(out, *p)
	}
	m.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if m.AfterList != nil {
		m.AfterList()
	}
	return out, nil
}

// CountPayments returns the number of stored payments.
func (m *MockPaymentRepository) CountPayments() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.payments)
}

// ──────────────────────────────────────────────
// MOCK USER REPOSITORY
// ──────────────────────────────────────────────

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mu    sync.RWMutex
	users map[string]*domain.User

	// Error injection
	UpsertError error
	GetError    error
}

// NewMockUserRepository creates a new mock user repository.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{users: make(map[string]*domain.User)}
}

func (m *MockUserRepository) Upsert(ctx context.Context, user *domain.User) error {
	if m.UpsertError != nil {
		return m.UpsertError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copy := *user
	m.users[user.Username] = &copy
	return nil
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[username]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *u
	return &copy, nil
}

// GetUser returns the stored user (for assertions).
func (m *MockUserRepository) GetUser(username string) *domain.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.users[username]
}

// ──────────────────────────────────────────────
// MOCK SESSION STORE
// ──────────────────────────────────────────────

// MockSessionStore is a mock implementation of SessionStoreInterface.
type MockSessionStore struct {
	mu       sync.Mutex
	sessions map[string]string
	ttls     map[string]time.Duration

	// Error injection
	CreateError error
	LookupError error
}

// NewMockSessionStore creates a new mock session store.
func NewMockSessionStore() *MockSessionStore {
	return &MockSessionStore{
		sessions: make(map[string]string),
		ttls:     make(map[string]time.Duration),
	}
}

func (m *MockSessionStore) CreateSession(ctx context.Context, token, username string, ttl time.Duration) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[token] = username
	m.ttls[token] = ttl
	return nil
}

func (m *MockSessionStore) LookupSession(ctx context.Context, token string) (string, bool, error) {
	if m.LookupError != nil {
		return "", false, m.LookupError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.sessions[token]
	return u, ok, nil
}

// TTL returns the ttl a token was stored with.
func (m *MockSessionStore) TTL(token string) time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ttls[token]
}

// ──────────────────────────────────────────────
// MOCK STATS CACHE
// ──────────────────────────────────────────────

// MockStatsCache is a mock implementation of StatsCacheInterface.
type MockStatsCache struct {
	mu      sync.Mutex
	version int64
	stats   map[int64]*domain.Stats

	// Counters for verification
	GetCallCount        int32
	SetCallCount        int32
	InvalidateCallCount int32

	// Error injection
	GetError     error
	VersionError error
}

// NewMockStatsCache creates a new mock stats cache.
func NewMockStatsCache() *MockStatsCache {
	return &MockStatsCache{stats: make(map[int64]*domain.Stats)}
}

func (m *MockStatsCache) StatsVersion(ctx context.Context) (int64, error) {
	if m.VersionError != nil {
		return 0, m.VersionError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.version, nil
}

func (m *MockStatsCache) GetStats(ctx context.Context, version int64) (*domain.Stats, error) {
	atomic.AddInt32(&m.GetCallCount, 1)
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stats[version], nil
}

func (m *MockStatsCache) SetStats(ctx context.Context, version int64, stats *domain.Stats) error {
	atomic.AddInt32(&m.SetCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stats[version] = stats
	return nil
}

func (m *MockStatsCache) InvalidateStats(ctx context.Context) error {
	atomic.AddInt32(&m.InvalidateCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.version++
	return nil
}

// ──────────────────────────────────────────────
// MOCK EVENT PUBLISHER
// ──────────────────────────────────────────────

// PublishedMessage is one message captured by MockPublisher.
type PublishedMessage struct {
	Key   string
	Value []byte
}

// MockPublisher captures published events.
type MockPublisher struct {
	mu       sync.Mutex
	messages []PublishedMessage

	// Error injection
	PublishError error
}

// NewMockPublisher creates a new mock publisher.
func NewMockPublisher() *MockPublisher {
	return &MockPublisher{}
}

func (m *MockPublisher) Publish(ctx context.Context, key string, value []byte) error {
	if m.PublishError != nil {
		return m.PublishError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, PublishedMessage{Key: key, Value: value})
	return nil
}

func (m *MockPublisher) Close() error { return nil }

// Messages returns the captured messages.
func (m *MockPublisher) Messages() []PublishedMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]PublishedMessage(nil), m.messages...)
}

// Ensure mocks implement interfaces.
var (
	_ repository.PaymentRepository = (*MockPaymentRepository)(nil)
	_ repository.UserRepository    = (*MockUserRepository)(nil)
	_ redis.SessionStoreInterface  = (*MockSessionStore)(nil)
	_ redis.StatsCacheInterface    = (*MockStatsCache)(nil)
	_ events.Publisher             = (*MockPublisher)(nil)
)
