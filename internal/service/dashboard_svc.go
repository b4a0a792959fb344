package service

import (
	"context"
	"log"
	"sync"

	"github.com/kaikhaya123/Roomza-educated-secret-sub001/internal/model"
)

// LeaderboardSize is the number of contestants shown on the admin dashboard.
const LeaderboardSize = 5

// StatsSource is the aggregation surface the dashboard needs.
// *repository.StatsRepo is the production implementation.
type StatsSource interface {
	VotesCast(ctx context.Context) (int, error)
	TotalContestants(ctx context.Context) (int, error)
	TotalUsers(ctx context.Context) (int, error)
	Leaderboard(ctx context.Context, limit int) ([]model.LeaderboardEntry, error)
}

type DashboardService struct {
	source StatsSource
}

func NewDashboardService(source StatsSource) *DashboardService {
	return &DashboardService{source: source}
}

// Stats computes the dashboard aggregates with independent parallel queries.
// A failed sub-query zeroes its field and sets Partial instead of failing the
// whole response.
func (s *DashboardService) Stats(ctx context.Context) *model.DashboardStats {
	stats := &model.DashboardStats{Leaderboard: []model.LeaderboardEntry{}}

	var mu sync.Mutex
	var wg sync.WaitGroup

	fail := func(what string, err error) {
		log.Printf("dashboard: %s query failed: %v", what, err)
		mu.Lock()
		stats.Partial = true
		mu.Unlock()
	}

	wg.Add(4)
	go func() {
		defer wg.Done()
		n, err := s.source.VotesCast(ctx)
		if err != nil {
			fail("votesCast", err)
			return
		}
		mu.Lock()
		stats.VotesCast = n
		mu.Unlock()
	}()
	go func() {
		defer wg.Done()
		n, err := s.source.TotalContestants(ctx)
		if err != nil {
			fail("totalContestants", err)
			return
		}
		mu.Lock()
		stats.TotalContestants = n
		mu.Unlock()
	}()
	go func() {
		defer wg.Done()
		n, err := s.source.TotalUsers(ctx)
		if err != nil {
			fail("totalUsers", err)
			return
		}
		mu.Lock()
		stats.TotalUsers = n
		mu.Unlock()
	}()
	go func() {
		defer wg.Done()
		entries, err := s.source.Leaderboard(ctx, LeaderboardSize)
		if err != nil {
			fail("leaderboard", err)
			return
		}
		mu.Lock()
		stats.Leaderboard = entries
		mu.Unlock()
	}()

	wg.Wait()
	return stats
}
