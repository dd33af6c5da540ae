// Package credential provides the secure key-value storage that holds the
// bearer token between invocations.
package credential

import (
	"context"
	"errors"
	"sync"
)

// ErrInvalidKey is returned for empty or path-like keys.
var ErrInvalidKey = errors.New("invalid credential key")

// Store is a small key-value store for secrets.
type Store interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error
}

// Ensure concrete types implement Store.
var (
	_ Store = (*MemoryStore)(nil)
	_ Store = (*FileStore)(nil)
	_ Store = (*RedisStore)(nil)
)

// MemoryStore keeps values in process memory.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (s *MemoryStore) Get(ctx context.Context, key string) (string, bool, error) {
	if err := validKey(key); err != nil {
		return "", false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *MemoryStore) Set(ctx context.Context, key, value string) error {
	if err := validKey(key); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func validKey(key string) error {
	if key == "" {
		return ErrInvalidKey
	}
	for _, r := range key {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
		default:
			return ErrInvalidKey
		}
	}
	if key == "." || key == ".." {
		return ErrInvalidKey
	}
	return nil
}
