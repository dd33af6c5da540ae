package screen

import (
	"context"
	"sync"
	"sync/atomic"

	"paydash/internal/domain"
)

// mockAPI is a configurable stand-in for the payments API client.
type mockAPI struct {
	mu sync.Mutex

	token    string
	stats    *domain.Stats
	payments []domain.Payment
	created  []domain.NewPayment

	// Counters for verification
	LoginCalls  int32
	StatsCalls  int32
	ListCalls   int32
	GetCalls    int32
	CreateCalls int32

	// Error injection
	LoginError  error
	StatsError  error
	ListError   error
	GetError    error
	CreateError error

	// gate, when set, is called before a response is produced. Tests use it
	// to hold a call open.
	gate func(call int32)
}

func newMockAPI() *mockAPI {
	return &mockAPI{}
}

func (m *mockAPI) Login(ctx context.Context, username, password string) (string, error) {
	atomic.AddInt32(&m.LoginCalls, 1)
	if m.LoginError != nil {
		return "", m.LoginError
	}
	return m.token, nil
}

func (m *mockAPI) Stats(ctx context.Context) (*domain.Stats, error) {
	n := atomic.AddInt32(&m.StatsCalls, 1)
	if m.gate != nil {
		m.gate(n)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.StatsError != nil {
		return nil, m.StatsError
	}
	s := *m.stats
	return &s, nil
}

func (m *mockAPI) ListPayments(ctx context.Context) ([]domain.Payment, error) {
	n := atomic.AddInt32(&m.ListCalls, 1)
	if m.gate != nil {
		m.gate(n)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListError != nil {
		return nil, m.ListError
	}
	return append([]domain.Payment(nil), m.payments...), nil
}

func (m *mockAPI) GetPayment(ctx context.Context, id domain.PaymentID) (*domain.Payment, error) {
	n := atomic.AddInt32(&m.GetCalls, 1)
	if m.gate != nil {
		m.gate(n)
	}
	if m.GetError != nil {
		return nil, m.GetError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.payments {
		if p.ID == id {
			copy := p
			return &copy, nil
		}
	}
	return nil, errNotFound
}

func (m *mockAPI) CreatePayment(ctx context.Context, p domain.NewPayment) (*domain.Payment, error) {
	atomic.AddInt32(&m.CreateCalls, 1)
	if m.CreateError != nil {
		return nil, m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.created = append(m.created, p)
	return &domain.Payment{
		ID:       domain.PaymentID("new"),
		Amount:   p.Amount,
		Receiver: p.Receiver,
		Method:   p.Method,
		Status:   p.Status,
	}, nil
}

func (m *mockAPI) setPayments(ps []domain.Payment) {
	m.mu.Lock()
	m.payments = ps
	m.mu.Unlock()
}

func (m *mockAPI) setStats(s *domain.Stats) {
	m.mu.Lock()
	m.stats = s
	m.mu.Unlock()
}

// lastCreated returns the last payment submitted (for assertions).
func (m *mockAPI) lastCreated() (domain.NewPayment, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.created) == 0 {
		return domain.NewPayment{}, false
	}
	return m.created[len(m.created)-1], true
}
