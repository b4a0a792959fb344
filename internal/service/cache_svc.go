package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache TTL presets. Listings are volatile (votes land continuously), the
// longer classes cover aggregates that change on admin action only.
const (
	TTLShort  = 5 * time.Minute
	TTLMedium = 30 * time.Minute
	TTLLong   = time.Hour
	TTLDay    = 24 * time.Hour
)

// DedupTTL is the window during which an identical (user, contestant)
// submission is treated as a duplicate client retry.
const DedupTTL = 10 * time.Second

// cacheBackend is the slice of the Redis command surface the cache layer
// uses. *redis.Client satisfies it; tests inject an in-memory store.
type cacheBackend interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	SetNX(ctx context.Context, key string, value any, expiration time.Duration) *redis.BoolCmd
	Scan(ctx context.Context, cursor uint64, match string, count int64) *redis.ScanCmd
}

// CacheService is a Redis cache-aside layer. Every failure of the backend is
// swallowed and reported as a miss: callers always recompute from the
// database when a read comes back empty.
type CacheService struct {
	backend cacheBackend
	rdb     *redis.Client

	// Optional observation hooks, wired to metrics counters at startup.
	OnHit  func()
	OnMiss func()
}

// NewCacheService creates a new CacheService. If redisURL is empty or the
// connection fails, it returns a CacheService with a nil client and all
// operations become no-ops.
func NewCacheService(redisURL string) *CacheService {
	if redisURL == "" {
		log.Println("redis: no URL configured, caching disabled")
		return &CacheService{}
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("redis: invalid URL %q, caching disabled: %v", redisURL, err)
		return &CacheService{}
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("redis: connection failed, caching disabled: %v", err)
		return &CacheService{}
	}

	log.Println("redis: connected, caching enabled")
	return &CacheService{backend: rdb, rdb: rdb}
}

func newCacheServiceWithBackend(b cacheBackend) *CacheService {
	return &CacheService{backend: b}
}

// Client returns the underlying Redis client (for health checks). May be nil.
func (c *CacheService) Client() *redis.Client {
	return c.rdb
}

// Get unmarshals the cached value for key into dest. The bool reports a hit;
// misses, expired keys and backend failures all return (false, nil-effect).
func (c *CacheService) Get(ctx context.Context, key string, dest any) bool {
	if c.backend == nil {
		return false
	}
	data, err := c.backend.Get(ctx, key).Bytes()
	if err == redis.Nil {
		c.miss()
		return false
	}
	if err != nil {
		log.Printf("cache: get %s: %v", key, err)
		c.miss()
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		log.Printf("cache: unmarshal %s: %v", key, err)
		c.miss()
		return false
	}
	c.hit()
	return true
}

func (c *CacheService) hit() {
	if c.OnHit != nil {
		c.OnHit()
	}
}

func (c *CacheService) miss() {
	if c.OnMiss != nil {
		c.OnMiss()
	}
}

// Set stores value under key with the given TTL. Errors are logged, never returned.
func (c *CacheService) Set(ctx context.Context, key string, value any, ttl time.Duration) {
	if c.backend == nil {
		return
	}
	b, err := json.Marshal(value)
	if err != nil {
		log.Printf("cache: marshal %s: %v", key, err)
		return
	}
	if err := c.backend.Set(ctx, key, b, ttl).Err(); err != nil {
		log.Printf("cache: set %s: %v", key, err)
	}
}

// Delete removes a single key.
func (c *CacheService) Delete(ctx context.Context, key string) {
	if c.backend == nil {
		return
	}
	if err := c.backend.Del(ctx, key).Err(); err != nil {
		log.Printf("cache: delete %s: %v", key, err)
	}
}

// DeleteByPattern removes every key matching pattern (SCAN, not KEYS, so the
// server is never blocked). Used to drop all paginated listing variants at once.
func (c *CacheService) DeleteByPattern(ctx context.Context, pattern string) {
	if c.backend == nil {
		return
	}
	iter := c.backend.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := c.backend.Del(ctx, iter.Val()).Err(); err != nil {
			log.Printf("cache: delete %s: %v", iter.Val(), err)
		}
	}
	if err := iter.Err(); err != nil {
		log.Printf("cache: scan %s: %v", pattern, err)
	}
}

// ClaimDedup marks a (user, contestant) pair as recently submitted. It returns
// false when an identical submission landed within DedupTTL. When Redis is
// unavailable the guard fails open and every claim succeeds.
func (c *CacheService) ClaimDedup(ctx context.Context, userID, contestantID string) bool {
	if c.backend == nil {
		return true
	}
	key := dedupKey(userID, contestantID)
	ok, err := c.backend.SetNX(ctx, key, 1, DedupTTL).Result()
	if err != nil {
		log.Printf("cache: dedup %s: %v", key, err)
		return true
	}
	return ok
}

// ReleaseDedup drops the dedup mark for a (user, contestant) pair so a
// legitimate retry after a failed write is not rejected as a duplicate.
func (c *CacheService) ReleaseDedup(ctx context.Context, userID, contestantID string) {
	if c.backend == nil {
		return
	}
	key := dedupKey(userID, contestantID)
	if err := c.backend.Del(ctx, key).Err(); err != nil {
		log.Printf("cache: dedup release %s: %v", key, err)
	}
}

// Close shuts down the Redis connection.
func (c *CacheService) Close() error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}

// ContestantListKey composes the cache key for one page of the public
// contestant listing. Page, limit and filter are all part of the key so
// distinct combinations never collide.
func ContestantListKey(page, limit int, province string) string {
	if province == "" {
		province = "all"
	}
	return fmt.Sprintf("contestants:page:%d:limit:%d:province:%s", page, limit, province)
}

// ContestantKey is the cache key for a single contestant lookup.
func ContestantKey(id string) string {
	return fmt.Sprintf("contestant:%s", id)
}

// SponsorListKey is the cache key for the sponsor listing.
func SponsorListKey() string {
	return "sponsors:all"
}

func dedupKey(userID, contestantID string) string {
	return fmt.Sprintf("dedup:%s:%s", userID, contestantID)
}
