package credential

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestMemoryStore_GetMissing(t *testing.T) {
	s := NewMemoryStore()

	v, ok, err := s.Get(context.Background(), "token")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok || v != "" {
		t.Errorf("expected absent value, got %q (ok=%v)", v, ok)
	}
}

func TestMemoryStore_SetThenGet(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if err := s.Set(ctx, "token", "abc123"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	v, ok, err := s.Get(ctx, "token")
	if err != nil || !ok || v != "abc123" {
		t.Errorf("expected abc123, got %q ok=%v err=%v", v, ok, err)
	}
}

func TestStores_RejectInvalidKeys(t *testing.T) {
	stores := map[string]Store{
		"memory": NewMemoryStore(),
		"file":   NewFileStore(t.TempDir(), "secret"),
	}

	for name, s := range stores {
		for _, key := range []string{"", "..", "../token", "a/b"} {
			t.Run(name+"/"+key, func(t *testing.T) {
				if err := s.Set(context.Background(), key, "v"); !errors.Is(err, ErrInvalidKey) {
					t.Errorf("expected ErrInvalidKey for %q, got %v", key, err)
				}
			})
		}
	}
}

func TestFileStore_RoundTripAcrossInstances(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	if err := NewFileStore(dir, "").Set(ctx, "token", "abc123"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	// A fresh instance re-derives the key from the persisted master key.
	v, ok, err := NewFileStore(dir, "").Get(ctx, "token")
	if err != nil || !ok || v != "abc123" {
		t.Fatalf("expected abc123, got %q ok=%v err=%v", v, ok, err)
	}
}

func TestFileStore_EncryptsAtRest(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	if err := NewFileStore(dir, "secret").Set(ctx, "token", "plain-token-value"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	raw, err := os.ReadFile(filepath.Join(dir, "token"+fileSuffix))
	if err != nil {
		t.Fatalf("read blob: %v", err)
	}
	if strings.Contains(string(raw), "plain-token-value") {
		t.Error("credential stored in plaintext")
	}

	info, err := os.Stat(filepath.Join(dir, "token"+fileSuffix))
	if err != nil {
		t.Fatalf("stat blob: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("expected mode 0600, got %o", perm)
	}
}

func TestFileStore_WrongSecretFails(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	if err := NewFileStore(dir, "right").Set(ctx, "token", "abc123"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if _, _, err := NewFileStore(dir, "wrong").Get(ctx, "token"); err == nil {
		t.Error("expected decryption error with wrong secret")
	}
}

func TestFileStore_Overwrite(t *testing.T) {
	s := NewFileStore(t.TempDir(), "secret")
	ctx := context.Background()

	_ = s.Set(ctx, "token", "first")
	if err := s.Set(ctx, "token", "second"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	v, _, _ := s.Get(ctx, "token")
	if v != "second" {
		t.Errorf("expected second, got %q", v)
	}
}

func TestFileStore_CancelledContext(t *testing.T) {
	s := NewFileStore(t.TempDir(), "secret")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, _, err := s.Get(ctx, "token"); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
