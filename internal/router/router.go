package router

import (
	"github.com/gofiber/fiber/v3"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/kaikhaya123/Roomza-educated-secret-sub001/internal/handler"
	"github.com/kaikhaya123/Roomza-educated-secret-sub001/internal/middleware"
)

// Handlers holds all handler instances needed by the router.
type Handlers struct {
	Vote       *handler.VoteHandler
	Contestant *handler.ContestantHandler
	Sponsor    *handler.SponsorHandler
	Dashboard  *handler.DashboardHandler
	Stream     *handler.StreamHandler
	Health     *handler.HealthHandler
	GraphQL    fiber.Handler
}

// Limiters holds the per-class rate limiters applied to route groups.
type Limiters struct {
	API  *middleware.RateLimiter
	Vote *middleware.RateLimiter
}

// Setup configures the middleware stack and all API routes on the given Fiber app.
func Setup(app *fiber.App, h *Handlers, l *Limiters, corsOrigins string) {
	// Middleware stack (order matters)
	app.Use(recoverer.New())
	app.Use(middleware.NewRequestLogger())
	app.Use(middleware.NewCORS(corsOrigins))
	app.Use(handler.MetricsMiddleware())

	// Health checks (before API group, never rate limited)
	app.Get("/health/live", h.Health.Live)
	app.Get("/health/ready", h.Health.Ready)

	// Prometheus metrics
	app.Get("/metrics", handler.MetricsHandler())

	// GraphQL read surface
	app.All("/graphql", h.GraphQL, l.API.Handler())

	// API routes
	api := app.Group("/api")

	// Contestant routes
	api.Get("/contestants", h.Contestant.List, l.API.Handler())
	api.Get("/contestants/:id", h.Contestant.Get, l.API.Handler())

	// Vote routes — the stream route must be registered before :id
	api.Get("/votes/stream", h.Stream.Stream)
	api.Post("/votes", h.Vote.Submit, l.Vote.Handler())
	api.Delete("/votes/:id", h.Vote.Delete, l.API.Handler())

	// Sponsor routes (admin CRUD)
	api.Get("/sponsors", h.Sponsor.List, l.API.Handler())
	api.Get("/sponsors/:id", h.Sponsor.Get, l.API.Handler())
	api.Post("/sponsors", h.Sponsor.Create, l.API.Handler())
	api.Put("/sponsors/:id", h.Sponsor.Update, l.API.Handler())
	api.Delete("/sponsors/:id", h.Sponsor.Delete, l.API.Handler())

	// Dashboard routes
	api.Get("/dashboard/stats", h.Dashboard.Stats, l.API.Handler())
}
