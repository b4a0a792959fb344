package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kaikhaya123/Roomza-educated-secret-sub001/internal/model"
)

type ContestantRepo struct {
	pool *pgxpool.Pool
}

func NewContestantRepo(pool *pgxpool.Pool) *ContestantRepo {
	return &ContestantRepo{pool: pool}
}

// List returns active contestants with their vote totals, one page at a time,
// optionally filtered by province. The second return value is the total number
// of contestants matching the filter (for pagination math).
func (r *ContestantRepo) List(ctx context.Context, page, limit int, province string) ([]model.Contestant, int, error) {
	countQuery := `SELECT COUNT(*) FROM contestants WHERE active = true`
	countArgs := []any{}
	if province != "" {
		countQuery += ` AND province = $1`
		countArgs = append(countArgs, province)
	}

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT c.id, c.name, c.campus, c.province, c.active, c.eliminated,
		       c.photo_url, c.created_at, COALESCE(SUM(v.vote_count), 0) AS votes
		FROM contestants c
		LEFT JOIN votes v ON v.contestant_id = c.id
		WHERE c.active = true`
	args := []any{}
	if province != "" {
		query += ` AND c.province = $1`
		args = append(args, province)
	}
	query += `
		GROUP BY c.id, c.name, c.campus, c.province, c.active, c.eliminated, c.photo_url, c.created_at
		ORDER BY c.name, c.id`
	if province != "" {
		query += ` LIMIT $2 OFFSET $3`
	} else {
		query += ` LIMIT $1 OFFSET $2`
	}
	args = append(args, limit, (page-1)*limit)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	contestants := []model.Contestant{}
	for rows.Next() {
		var c model.Contestant
		if err := rows.Scan(&c.ID, &c.Name, &c.Campus, &c.Province, &c.Active,
			&c.Eliminated, &c.PhotoURL, &c.CreatedAt, &c.VoteTotal); err != nil {
			return nil, 0, err
		}
		contestants = append(contestants, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return contestants, total, nil
}

// FindByID returns a single contestant with its vote total.
func (r *ContestantRepo) FindByID(ctx context.Context, id string) (*model.Contestant, error) {
	query := `
		SELECT c.id, c.name, c.campus, c.province, c.active, c.eliminated,
		       c.photo_url, c.created_at, COALESCE(SUM(v.vote_count), 0) AS votes
		FROM contestants c
		LEFT JOIN votes v ON v.contestant_id = c.id
		WHERE c.id = $1
		GROUP BY c.id, c.name, c.campus, c.province, c.active, c.eliminated, c.photo_url, c.created_at`

	var c model.Contestant
	err := r.pool.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.Campus, &c.Province,
		&c.Active, &c.Eliminated, &c.PhotoURL, &c.CreatedAt, &c.VoteTotal)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrContestantNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Tallies returns the full tally snapshot: every active contestant's id, name
// and current vote total.
func (r *ContestantRepo) Tallies(ctx context.Context) ([]model.TallyEntry, error) {
	query := `
		SELECT c.id, c.name, COALESCE(SUM(v.vote_count), 0) AS votes
		FROM contestants c
		LEFT JOIN votes v ON v.contestant_id = c.id
		WHERE c.active = true
		GROUP BY c.id, c.name
		ORDER BY votes DESC, c.id`

	return r.scanTallies(ctx, query)
}

// TalliesFor returns tallies for the given contestant ids only. Used for
// delta frames on the vote stream.
func (r *ContestantRepo) TalliesFor(ctx context.Context, ids []string) ([]model.TallyEntry, error) {
	query := `
		SELECT c.id, c.name, COALESCE(SUM(v.vote_count), 0) AS votes
		FROM contestants c
		LEFT JOIN votes v ON v.contestant_id = c.id
		WHERE c.id = ANY($1)
		GROUP BY c.id, c.name
		ORDER BY votes DESC, c.id`

	return r.scanTallies(ctx, query, ids)
}

func (r *ContestantRepo) scanTallies(ctx context.Context, query string, args ...any) ([]model.TallyEntry, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []model.TallyEntry{}
	for rows.Next() {
		var e model.TallyEntry
		if err := rows.Scan(&e.ID, &e.Name, &e.Votes); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
