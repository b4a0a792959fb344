package middleware

import (
	"testing"
	"time"

	"github.com/kaikhaya123/Roomza-educated-secret-sub001/internal/config"
)

func newTestLimiter(max int, window time.Duration) *RateLimiter {
	return NewRateLimiter(RateLimitConfig{
		Max:    max,
		Window: window,
		KeyFn:  KeyByIP,
	}, nil)
}

func TestRateLimiter_AllowsUpToMax(t *testing.T) {
	rl := newTestLimiter(5, time.Minute)

	for i := 0; i < 5; i++ {
		if !rl.Allow("test-ip") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
}

func TestRateLimiter_BlocksAfterMax(t *testing.T) {
	rl := newTestLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		rl.Allow("test-ip")
	}

	if rl.Allow("test-ip") {
		t.Fatal("4th request should be blocked")
	}
}

func TestRateLimiter_DifferentKeysIndependent(t *testing.T) {
	rl := newTestLimiter(2, time.Minute)

	rl.Allow("ip-a")
	rl.Allow("ip-a")

	// ip-a is exhausted
	if rl.Allow("ip-a") {
		t.Fatal("ip-a should be blocked")
	}

	// ip-b should still be allowed
	if !rl.Allow("ip-b") {
		t.Fatal("ip-b should be allowed (independent key)")
	}
}

func TestRateLimiter_WindowResets(t *testing.T) {
	rl := newTestLimiter(2, 50*time.Millisecond)

	rl.Allow("test")
	rl.Allow("test")

	if rl.Allow("test") {
		t.Fatal("should be blocked within window")
	}

	// Wait for window to expire
	time.Sleep(60 * time.Millisecond)

	res := rl.Check("test")
	if !res.Allowed {
		t.Fatal("should be allowed after window reset")
	}
	if res.Remaining != 1 {
		t.Fatalf("fresh window should have count 1, remaining = %d", res.Remaining)
	}
}

func TestRateLimiter_CheckResultFields(t *testing.T) {
	rl := newTestLimiter(3, time.Minute)

	res := rl.Check("key")
	if !res.Allowed {
		t.Fatal("first request should be allowed")
	}
	if res.Limit != 3 {
		t.Errorf("Limit = %d, want 3", res.Limit)
	}
	if res.Remaining != 2 {
		t.Errorf("Remaining = %d, want 2", res.Remaining)
	}
	if res.ResetAt.Before(time.Now()) {
		t.Error("ResetAt should be in the future")
	}

	rl.Check("key")
	rl.Check("key")
	res = rl.Check("key")
	if res.Allowed {
		t.Fatal("4th request should be rejected")
	}
	if res.Remaining != 0 {
		t.Errorf("rejected request Remaining = %d, want 0", res.Remaining)
	}
}

func TestMemoryStore_SweepRemovesExpired(t *testing.T) {
	store := NewMemoryStore()

	store.Incr("old", 10*time.Millisecond)
	store.Incr("fresh", time.Minute)

	time.Sleep(20 * time.Millisecond)
	store.Sweep(time.Now())

	if store.Len() != 1 {
		t.Fatalf("store should keep only the fresh entry, has %d", store.Len())
	}
}

func TestRateLimiter_InjectedStore(t *testing.T) {
	store := NewMemoryStore()
	rl := NewRateLimiter(RateLimitConfig{Max: 1, Window: time.Minute, KeyFn: KeyByIP}, store)

	rl.Allow("shared")
	if store.Len() != 1 {
		t.Fatal("limiter should write through the injected store")
	}
	if rl.Allow("shared") {
		t.Fatal("2nd request should be blocked")
	}
}

func TestRateLimiter_VoteClassConfig(t *testing.T) {
	rl := NewVoteRateLimiter(config.RateLimit{Max: 10, Window: time.Minute})
	for i := 0; i < 10; i++ {
		if !rl.Allow("user:abc123") {
			t.Fatalf("vote request %d should be allowed (max 10)", i+1)
		}
	}
	if rl.Allow("user:abc123") {
		t.Fatal("11th vote should be blocked")
	}
}

func TestRateLimiter_AuthClassConfig(t *testing.T) {
	rl := NewAuthRateLimiter(config.RateLimit{Max: 5, Window: 15 * time.Minute})
	for i := 0; i < 5; i++ {
		if !rl.Allow("ip:127.0.0.1") {
			t.Fatalf("auth request %d should be allowed (max 5)", i+1)
		}
	}
	if rl.Allow("ip:127.0.0.1") {
		t.Fatal("6th auth request should be blocked")
	}
}

func TestRateLimiter_SMSClassConfig(t *testing.T) {
	rl := NewSMSRateLimiter(config.RateLimit{Max: 3, Window: 15 * time.Minute})
	for i := 0; i < 3; i++ {
		if !rl.Allow("ip:127.0.0.1") {
			t.Fatalf("sms request %d should be allowed (max 3)", i+1)
		}
	}
	if rl.Allow("ip:127.0.0.1") {
		t.Fatal("4th sms request should be blocked")
	}
}

func TestRateLimiter_APIClassConfig(t *testing.T) {
	rl := NewAPIRateLimiter(config.RateLimit{Max: 100, Window: 15 * time.Minute})
	for i := 0; i < 100; i++ {
		if !rl.Allow("ip:127.0.0.1") {
			t.Fatalf("api request %d should be allowed (max 100)", i+1)
		}
	}
	if rl.Allow("ip:127.0.0.1") {
		t.Fatal("101st api request should be blocked")
	}
}
