package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kaikhaya123/Roomza-educated-secret-sub001/internal/model"
)

type fakeStatsSource struct {
	votesCast      int
	contestants    int
	users          int
	leaderboard    []model.LeaderboardEntry
	votesErr       error
	contestantsErr error
	usersErr       error
	leaderboardErr error
}

func (f *fakeStatsSource) VotesCast(context.Context) (int, error) {
	return f.votesCast, f.votesErr
}

func (f *fakeStatsSource) TotalContestants(context.Context) (int, error) {
	return f.contestants, f.contestantsErr
}

func (f *fakeStatsSource) TotalUsers(context.Context) (int, error) {
	return f.users, f.usersErr
}

func (f *fakeStatsSource) Leaderboard(_ context.Context, limit int) ([]model.LeaderboardEntry, error) {
	if f.leaderboardErr != nil {
		return nil, f.leaderboardErr
	}
	if limit < len(f.leaderboard) {
		return f.leaderboard[:limit], nil
	}
	return f.leaderboard, nil
}

func TestDashboard_AllQueriesSucceed(t *testing.T) {
	source := &fakeStatsSource{
		votesCast:   3,
		contestants: 2,
		users:       10,
		leaderboard: []model.LeaderboardEntry{
			{ID: "a", Name: "A", Votes: 2},
			{ID: "b", Name: "B", Votes: 1},
		},
	}
	stats := NewDashboardService(source).Stats(context.Background())

	assert.False(t, stats.Partial)
	assert.Equal(t, 3, stats.VotesCast)
	assert.Equal(t, 2, stats.TotalContestants)
	assert.Equal(t, 10, stats.TotalUsers)
	// Leaderboard order is the source's order: votes desc, id asc on ties
	assert.Equal(t, []model.LeaderboardEntry{
		{ID: "a", Name: "A", Votes: 2},
		{ID: "b", Name: "B", Votes: 1},
	}, stats.Leaderboard)
}

func TestDashboard_SubQueryFailureIsPartial(t *testing.T) {
	source := &fakeStatsSource{
		votesCast:   7,
		contestants: 4,
		users:       9,
		usersErr:    errors.New("connection reset"),
	}
	stats := NewDashboardService(source).Stats(context.Background())

	assert.True(t, stats.Partial, "a failed sub-query must be flagged, not silent")
	assert.Equal(t, 0, stats.TotalUsers, "failed count defaults to zero")
	assert.Equal(t, 7, stats.VotesCast, "other queries still land")
	assert.Equal(t, 4, stats.TotalContestants)
}

func TestDashboard_LeaderboardFailureKeepsEmptySlice(t *testing.T) {
	source := &fakeStatsSource{leaderboardErr: errors.New("timeout")}
	stats := NewDashboardService(source).Stats(context.Background())

	assert.True(t, stats.Partial)
	assert.NotNil(t, stats.Leaderboard, "leaderboard must serialize as [], not null")
	assert.Empty(t, stats.Leaderboard)
}

func TestDashboard_LeaderboardTruncatedToSize(t *testing.T) {
	entries := make([]model.LeaderboardEntry, 0, 8)
	for _, id := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		entries = append(entries, model.LeaderboardEntry{ID: id, Name: id, Votes: 1})
	}
	source := &fakeStatsSource{leaderboard: entries}
	stats := NewDashboardService(source).Stats(context.Background())

	assert.Len(t, stats.Leaderboard, LeaderboardSize)
}
