package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/kaikhaya123/Roomza-educated-secret-sub001/internal/service"
)

// checkResult is one dependency's entry in the readiness payload.
type checkResult struct {
	Status    string `json:"status"`
	LatencyMS int64  `json:"latency_ms,omitempty"`
	Error     string `json:"error,omitempty"`
}

type HealthHandler struct {
	pool    *pgxpool.Pool
	rdb     *redis.Client
	worker  *service.TallyWorker
	startAt time.Time
}

func NewHealthHandler(pool *pgxpool.Pool, rdb *redis.Client, worker *service.TallyWorker) *HealthHandler {
	return &HealthHandler{
		pool:    pool,
		rdb:     rdb,
		worker:  worker,
		startAt: time.Now(),
	}
}

// Live handles GET /health/live — liveness probe.
func (h *HealthHandler) Live(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// Ready handles GET /health/ready — readiness probe over the service's three
// runtime dependencies: Postgres, the optional Redis cache, and the tally
// worker's LISTEN connection feeding the vote stream.
func (h *HealthHandler) Ready(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 3*time.Second)
	defer cancel()

	checks := map[string]checkResult{
		"database":       checkDB(ctx, h.pool),
		"cache":          checkCache(ctx, h.rdb),
		"tally_listener": checkListener(h.worker),
	}

	status := "healthy"
	for _, check := range checks {
		if check.Status == "down" {
			status = "degraded"
		}
	}

	resp := fiber.Map{
		"status":         status,
		"checks":         checks,
		"uptime_seconds": int(time.Since(h.startAt).Seconds()),
		"version":        "1.0.0",
	}

	code := fiber.StatusOK
	if status != "healthy" {
		code = fiber.StatusServiceUnavailable
	}
	return c.Status(code).JSON(resp)
}

func checkDB(ctx context.Context, pool *pgxpool.Pool) checkResult {
	start := time.Now()
	err := pool.Ping(ctx)
	latency := time.Since(start).Milliseconds()

	if err != nil {
		return checkResult{Status: "down", LatencyMS: latency, Error: "connection failed"}
	}
	return checkResult{Status: "up", LatencyMS: latency}
}

// checkCache treats an absent client as "disabled": the cache is optional and
// the service keeps answering from the database without it.
func checkCache(ctx context.Context, rdb *redis.Client) checkResult {
	if rdb == nil {
		return checkResult{Status: "disabled"}
	}

	start := time.Now()
	err := rdb.Ping(ctx).Err()
	latency := time.Since(start).Milliseconds()

	if err != nil {
		return checkResult{Status: "down", LatencyMS: latency, Error: "connection failed"}
	}
	return checkResult{Status: "up", LatencyMS: latency}
}

// checkListener reports whether the tally worker holds its LISTEN connection.
// Without it the vote stream still serves snapshots but deltas stop flowing.
func checkListener(worker *service.TallyWorker) checkResult {
	if worker == nil || !worker.Listening() {
		return checkResult{Status: "down", Error: "not listening on vote_changes"}
	}
	return checkResult{Status: "up"}
}
