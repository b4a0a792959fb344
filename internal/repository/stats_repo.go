package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kaikhaya123/Roomza-educated-secret-sub001/internal/model"
)

type StatsRepo struct {
	pool *pgxpool.Pool
}

func NewStatsRepo(pool *pgxpool.Pool) *StatsRepo {
	return &StatsRepo{pool: pool}
}

// VotesCast returns the sum of all vote weights across every round.
func (r *StatsRepo) VotesCast(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COALESCE(SUM(vote_count), 0) FROM votes`).Scan(&n)
	return n, err
}

// TotalContestants counts contestants still visible on the public site.
func (r *StatsRepo) TotalContestants(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM contestants WHERE active = true`).Scan(&n)
	return n, err
}

// TotalUsers counts registered voters.
func (r *StatsRepo) TotalUsers(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}

// Leaderboard returns the top contestants by summed vote weight. Ties are
// broken by contestant id ascending so equal tallies always list in the
// same order.
func (r *StatsRepo) Leaderboard(ctx context.Context, limit int) ([]model.LeaderboardEntry, error) {
	query := `
		SELECT c.id, c.name, COALESCE(SUM(v.vote_count), 0) AS votes
		FROM contestants c
		LEFT JOIN votes v ON v.contestant_id = c.id
		WHERE c.active = true
		GROUP BY c.id, c.name
		ORDER BY votes DESC, c.id ASC
		LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []model.LeaderboardEntry{}
	for rows.Next() {
		var e model.LeaderboardEntry
		if err := rows.Scan(&e.ID, &e.Name, &e.Votes); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
