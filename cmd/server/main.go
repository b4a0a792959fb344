package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v3"
	"github.com/joho/godotenv"

	"github.com/kaikhaya123/Roomza-educated-secret-sub001/internal/config"
	"github.com/kaikhaya123/Roomza-educated-secret-sub001/internal/db"
	"github.com/kaikhaya123/Roomza-educated-secret-sub001/internal/graphql"
	"github.com/kaikhaya123/Roomza-educated-secret-sub001/internal/handler"
	"github.com/kaikhaya123/Roomza-educated-secret-sub001/internal/middleware"
	"github.com/kaikhaya123/Roomza-educated-secret-sub001/internal/repository"
	"github.com/kaikhaya123/Roomza-educated-secret-sub001/internal/router"
	"github.com/kaikhaya123/Roomza-educated-secret-sub001/internal/service"
)

func main() {
	// .env is optional; real deployments configure through the environment
	_ = godotenv.Load()

	cfg := config.Load()
	middleware.InitLogger(cfg.LogLevel, "res-api")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer pool.Close()

	cache := service.NewCacheService(cfg.RedisURL)
	defer cache.Close()

	// Repositories
	contestantRepo := repository.NewContestantRepo(pool)
	voteRepo := repository.NewVoteRepo(pool)
	sponsorRepo := repository.NewSponsorRepo(pool)
	statsRepo := repository.NewStatsRepo(pool)

	// Services
	contestantSvc := service.NewContestantService(contestantRepo, cache)
	voteSvc := service.NewVoteService(voteRepo, cache, cfg.VotingRound)
	sponsorSvc := service.NewSponsorService(sponsorRepo, cache)
	dashboardSvc := service.NewDashboardService(statsRepo)

	// Tally push pipeline
	hub := service.NewTallyHub()
	worker := service.NewTallyWorker(pool, contestantRepo, hub)
	go worker.Start(ctx)

	handler.InitMetrics(pool, hub)
	cache.OnHit = handler.Metrics.CacheHits.Inc
	cache.OnMiss = handler.Metrics.CacheMisses.Inc

	schema, err := graphql.NewSchema(statsRepo, voteRepo)
	if err != nil {
		log.Fatalf("failed to build graphql schema: %v", err)
	}

	app := fiber.New(fiber.Config{
		AppName:      "R.E.S. API",
		ServerHeader: "RES",
	})

	h := &router.Handlers{
		Vote:       handler.NewVoteHandler(voteSvc, cfg.IPSalt),
		Contestant: handler.NewContestantHandler(contestantSvc),
		Sponsor:    handler.NewSponsorHandler(sponsorSvc),
		Dashboard:  handler.NewDashboardHandler(dashboardSvc),
		Stream:     handler.NewStreamHandler(contestantRepo, hub),
		Health:     handler.NewHealthHandler(pool, cache.Client(), worker),
		GraphQL:    handler.NewGraphQLHandler(schema),
	}
	l := &router.Limiters{
		API:  middleware.NewAPIRateLimiter(cfg.RateLimits.API),
		Vote: middleware.NewVoteRateLimiter(cfg.RateLimits.Vote),
	}
	router.Setup(app, h, l, cfg.CORSOrigins)

	go func() {
		<-ctx.Done()
		log.Println("shutting down")
		_ = app.Shutdown()
	}()

	log.Printf("R.E.S. backend starting on :%s (env=%s, round=%s)", cfg.Port, cfg.Environment, cfg.VotingRound)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
