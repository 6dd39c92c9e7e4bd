package otp

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rahulmehta/fieldcrm-backend/pkg/config"
	redislib "github.com/redis/go-redis/v9"
)

type mockStore struct {
	mu   sync.Mutex
	data map[string]string
	ttls map[string]time.Duration
}

func newMockStore() *mockStore {
	return &mockStore{data: make(map[string]string), ttls: make(map[string]time.Duration)}
}

func (m *mockStore) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = fmt.Sprint(value)
	m.ttls[key] = ttl
	return nil
}

func (m *mockStore) Get(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.data[key]
	if !ok {
		return "", redislib.Nil
	}
	return val, nil
}

func (m *mockStore) TTL(ctx context.Context, key string) (time.Duration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ttl, ok := m.ttls[key]
	if !ok {
		return 0, redislib.Nil
	}
	return ttl, nil
}

func (m *mockStore) Del(ctx context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, key := range keys {
		delete(m.data, key)
		delete(m.ttls, key)
	}
	return nil
}

func (m *mockStore) OTPKey(contactNumber string) string {
	return fmt.Sprintf("otp:code:%s", contactNumber)
}

func (m *mockStore) OTPVerifiedKey(contactNumber string) string {
	return fmt.Sprintf("otp:verified:%s", contactNumber)
}

func testConfig() config.OTPConfig {
	return config.OTPConfig{
		TTL:          5 * time.Minute,
		ResendAfter:  time.Minute,
		VerifiedTTL:  15 * time.Minute,
		ArgonMemory:  32768,
		ArgonTime:    1,
		ArgonThreads: 1,
	}
}

func newTestStore(mock *mockStore) *Store {
	return &Store{store: mock, keyer: mock, cfg: testConfig()}
}

func TestIssueAndVerify(t *testing.T) {
	mock := newMockStore()
	store := newTestStore(mock)
	ctx := context.Background()

	code, err := store.Issue(ctx, "9876543210")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if len(code) != 6 {
		t.Fatalf("expected 6-digit code, got %q", code)
	}
	if stored := mock.data[mock.OTPKey("9876543210")]; stored == code {
		t.Fatal("plain code stored instead of hash")
	}

	if err := store.Verify(ctx, "9876543210", "000000"); !errors.Is(err, ErrMismatch) {
		// Astronomically unlikely collision with the random code aside.
		t.Fatalf("expected mismatch error, got %v", err)
	}

	if err := store.Verify(ctx, "9876543210", code); err != nil {
		t.Fatalf("verify: %v", err)
	}

	// Code is consumed after successful verification.
	if err := store.Verify(ctx, "9876543210", code); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found after consume, got %v", err)
	}
}

func TestVerifyMissingCode(t *testing.T) {
	store := newTestStore(newMockStore())
	if err := store.Verify(context.Background(), "9876543210", "123456"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCanResend(t *testing.T) {
	mock := newMockStore()
	store := newTestStore(mock)
	ctx := context.Background()

	ok, _, err := store.CanResend(ctx, "9876543210")
	if err != nil {
		t.Fatalf("can resend: %v", err)
	}
	if !ok {
		t.Fatal("expected resend allowed when no code exists")
	}

	if _, err := store.Issue(ctx, "9876543210"); err != nil {
		t.Fatalf("issue: %v", err)
	}

	// The mock returns the full TTL, so no time has elapsed since issue.
	ok, wait, err := store.CanResend(ctx, "9876543210")
	if err != nil {
		t.Fatalf("can resend: %v", err)
	}
	if ok {
		t.Fatal("expected resend blocked right after issue")
	}
	if wait != time.Minute {
		t.Fatalf("expected full resend window remaining, got %s", wait)
	}

	// Simulate a code issued two minutes ago.
	mock.ttls[mock.OTPKey("9876543210")] = 3 * time.Minute
	ok, _, err = store.CanResend(ctx, "9876543210")
	if err != nil {
		t.Fatalf("can resend: %v", err)
	}
	if !ok {
		t.Fatal("expected resend allowed after the window elapsed")
	}
}

func TestVerifiedMarker(t *testing.T) {
	mock := newMockStore()
	store := newTestStore(mock)
	ctx := context.Background()

	ok, err := store.IsVerified(ctx, "9876543210")
	if err != nil {
		t.Fatalf("is verified: %v", err)
	}
	if ok {
		t.Fatal("expected unverified phone")
	}

	if err := store.MarkVerified(ctx, "9876543210"); err != nil {
		t.Fatalf("mark verified: %v", err)
	}
	ok, err = store.IsVerified(ctx, "9876543210")
	if err != nil {
		t.Fatalf("is verified: %v", err)
	}
	if !ok {
		t.Fatal("expected verified phone")
	}

	if err := store.ClearVerified(ctx, "9876543210"); err != nil {
		t.Fatalf("clear verified: %v", err)
	}
	ok, err = store.IsVerified(ctx, "9876543210")
	if err != nil {
		t.Fatalf("is verified: %v", err)
	}
	if ok {
		t.Fatal("expected marker cleared")
	}
}
