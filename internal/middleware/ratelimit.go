package middleware

import (
	"fmt"
	"sync"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/kaikhaya123/Roomza-educated-secret-sub001/internal/config"
)

// RateLimitConfig defines the limit for a specific route or group.
type RateLimitConfig struct {
	Max    int                      // Maximum requests allowed in the window
	Window time.Duration            // Time window for the limit
	KeyFn  func(c fiber.Ctx) string // Returns the key to rate limit on (IP, userID, etc.)
}

// RateLimitResult is the outcome of a single admission check.
type RateLimitResult struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// RateLimitStore tracks request counts per key within a window. The default
// is process-local; a shared store can be injected for multi-instance
// deployments without changing call sites.
type RateLimitStore interface {
	// Incr bumps the counter for key, opening a fresh window when none is
	// active, and returns the new count with the window's reset time.
	Incr(key string, window time.Duration) (count int, resetAt time.Time)
	// Sweep drops entries whose window ended before now.
	Sweep(now time.Time)
}

// entry tracks request count and window end for a single key.
type entry struct {
	count     int
	windowEnd time.Time
}

// MemoryStore is the in-memory RateLimitStore. Increment-and-compare per key;
// concurrent requests may over-admit slightly, which is fine for a
// best-effort guard.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*entry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]*entry)}
}

func (s *MemoryStore) Incr(key string, window time.Duration) (int, time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	e, exists := s.entries[key]
	if !exists || now.After(e.windowEnd) {
		e = &entry{windowEnd: now.Add(window)}
		s.entries[key] = e
	}
	e.count++
	return e.count, e.windowEnd
}

func (s *MemoryStore) Sweep(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, e := range s.entries {
		if now.After(e.windowEnd) {
			delete(s.entries, key)
		}
	}
}

// Len reports the number of live entries (for tests).
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// RateLimiter is a sliding-window rate limiter over an injectable store.
type RateLimiter struct {
	store  RateLimitStore
	config RateLimitConfig
}

// NewRateLimiter creates a rate limiter backed by store, defaulting to a
// fresh MemoryStore when store is nil.
func NewRateLimiter(cfg RateLimitConfig, store RateLimitStore) *RateLimiter {
	if store == nil {
		store = NewMemoryStore()
	}
	rl := &RateLimiter{store: store, config: cfg}
	// Background sweep every 5 minutes bounds memory
	go rl.sweepLoop()
	return rl
}

// Check admits or rejects one request for key.
func (rl *RateLimiter) Check(key string) RateLimitResult {
	count, resetAt := rl.store.Incr(key, rl.config.Window)
	remaining := rl.config.Max - count
	return RateLimitResult{
		Allowed:   count <= rl.config.Max,
		Limit:     rl.config.Max,
		Remaining: max(remaining, 0),
		ResetAt:   resetAt,
	}
}

// Allow reports whether a request with the given key is admitted.
func (rl *RateLimiter) Allow(key string) bool {
	return rl.Check(key).Allowed
}

// Handler returns a Fiber middleware handler that enforces the rate limit.
func (rl *RateLimiter) Handler() fiber.Handler {
	return func(c fiber.Ctx) error {
		res := rl.Check(rl.config.KeyFn(c))

		c.Set("X-RateLimit-Limit", fmt.Sprintf("%d", res.Limit))
		c.Set("X-RateLimit-Remaining", fmt.Sprintf("%d", res.Remaining))
		c.Set("X-RateLimit-Reset", fmt.Sprintf("%d", res.ResetAt.Unix()))

		if !res.Allowed {
			retryAfter := int(time.Until(res.ResetAt).Seconds()) + 1
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": fiber.Map{
					"code":       "RATE_LIMITED",
					"message":    fmt.Sprintf("Too many requests. Try again in %d seconds.", retryAfter),
					"retryAfter": retryAfter,
				},
			})
		}

		return c.Next()
	}
}

func (rl *RateLimiter) sweepLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	for range ticker.C {
		rl.store.Sweep(time.Now())
	}
}

// KeyByIP returns the client IP as the rate limit key.
func KeyByIP(c fiber.Ctx) string {
	return "ip:" + c.IP()
}

// KeyByUserID extracts the userId from the X-User-ID header.
// Falls back to IP if no userId is available.
func KeyByUserID(c fiber.Ctx) string {
	if uid := c.Get("X-User-ID"); uid != "" {
		return "user:" + uid
	}
	return "ip:" + c.IP()
}

// --- Pre-configured rate limiters for the endpoint classes ---

// NewAPIRateLimiter guards generic read endpoints, per IP.
func NewAPIRateLimiter(cfg config.RateLimit) *RateLimiter {
	return NewRateLimiter(RateLimitConfig{Max: cfg.Max, Window: cfg.Window, KeyFn: KeyByIP}, nil)
}

// NewVoteRateLimiter guards vote submission, per user.
func NewVoteRateLimiter(cfg config.RateLimit) *RateLimiter {
	return NewRateLimiter(RateLimitConfig{Max: cfg.Max, Window: cfg.Window, KeyFn: KeyByUserID}, nil)
}

// NewAuthRateLimiter guards login/signup proxies, per IP.
func NewAuthRateLimiter(cfg config.RateLimit) *RateLimiter {
	return NewRateLimiter(RateLimitConfig{Max: cfg.Max, Window: cfg.Window, KeyFn: KeyByIP}, nil)
}

// NewSMSRateLimiter guards SMS-triggering endpoints, per IP.
func NewSMSRateLimiter(cfg config.RateLimit) *RateLimiter {
	return NewRateLimiter(RateLimitConfig{Max: cfg.Max, Window: cfg.Window, KeyFn: KeyByIP}, nil)
}
