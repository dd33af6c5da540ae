package screen

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"paydash/internal/client"
	"paydash/internal/credential"
	"paydash/internal/domain"
)

var errNotFound = errors.New("not found")

func TestLogin_SuccessStoresToken(t *testing.T) {
	api := newMockAPI()
	api.token = "abc123"
	store := credential.NewMemoryStore()
	login := NewLogin(api, store)

	res := login.Submit(context.Background(), "admin", "secret")

	if !res.Authenticated || res.Next != RouteMain || res.Message != "" {
		t.Errorf("unexpected result %+v", res)
	}
	if v, ok, _ := store.Get(context.Background(), domain.TokenKey); !ok || v != "abc123" {
		t.Errorf("expected stored token abc123, got %q", v)
	}
	if login.Loading() {
		t.Error("loading flag should be cleared")
	}
}

func TestLogin_FailureKeepsPreviousToken(t *testing.T) {
	api := newMockAPI()
	api.LoginError = errors.New("401")
	store := credential.NewMemoryStore()
	_ = store.Set(context.Background(), domain.TokenKey, "previous")
	login := NewLogin(api, store)

	res := login.Submit(context.Background(), "admin", "wrong")

	if res.Authenticated || res.Next != RouteLogin {
		t.Errorf("expected to stay on login, got %+v", res)
	}
	if res.Message != MsgLoginFailed {
		t.Errorf("expected %q, got %q", MsgLoginFailed, res.Message)
	}
	if v, _, _ := store.Get(context.Background(), domain.TokenKey); v != "previous" {
		t.Errorf("previous token must be untouched, got %q", v)
	}
	if api.LoginCalls != 1 {
		t.Errorf("expected a single attempt, got %d", api.LoginCalls)
	}
}

func TestLogin_TokenReachesNextRequest(t *testing.T) {
	var (
		mu       sync.Mutex
		lastAuth string
		lastPath string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		lastAuth = r.Header.Get("Authorization")
		lastPath = r.URL.Path
		mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/auth/login":
			_, _ = io.WriteString(w, `{"access_token":"abc123"}`)
		default:
			_, _ = io.WriteString(w, `[]`)
		}
	}))
	defer srv.Close()

	store := credential.NewMemoryStore()
	api := client.New(srv.URL, store)
	ctx := context.Background()

	if res := NewLogin(api, store).Submit(ctx, "admin", "secret"); !res.Authenticated {
		t.Fatalf("login failed: %+v", res)
	}
	if _, err := NewTransactions(api).Focus(ctx); err != nil {
		t.Fatalf("fetch failed: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if lastPath != "/payments" {
		t.Errorf("expected GET /payments, got %s", lastPath)
	}
	if lastAuth != "Bearer abc123" {
		t.Errorf("expected Bearer abc123, got %q", lastAuth)
	}
}

func TestInitialRoute(t *testing.T) {
	ctx := context.Background()
	store := credential.NewMemoryStore()

	if r, err := InitialRoute(ctx, store); err != nil || r != RouteLogin {
		t.Errorf("expected login route without token, got %s (%v)", r, err)
	}

	_ = store.Set(ctx, domain.TokenKey, "abc123")
	if r, err := InitialRoute(ctx, store); err != nil || r != RouteMain {
		t.Errorf("expected main route with token, got %s (%v)", r, err)
	}
}

func TestLogin_ReplacesUnreadableToken(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"access_token":"fresh"}`)
	}))
	defer srv.Close()

	dir := t.TempDir()
	ctx := context.Background()
	if err := credential.NewFileStore(dir, "old-secret").Set(ctx, domain.TokenKey, "stale"); err != nil {
		t.Fatalf("seed token: %v", err)
	}
	store := credential.NewFileStore(dir, "new-secret")
	api := client.New(srv.URL, store)

	res := NewLogin(api, store).Submit(ctx, "admin", "secret")

	if !res.Authenticated || res.Next != RouteMain {
		t.Fatalf("expected login to succeed, got %+v", res)
	}
	if calls.Load() != 1 {
		t.Errorf("expected one server call, got %d", calls.Load())
	}
	if v, ok, err := store.Get(ctx, domain.TokenKey); err != nil || !ok || v != "fresh" {
		t.Errorf("expected stored token fresh, got %q ok=%v err=%v", v, ok, err)
	}
}
