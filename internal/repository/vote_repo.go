package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kaikhaya123/Roomza-educated-secret-sub001/internal/model"
)

type VoteRepo struct {
	pool *pgxpool.Pool
}

func NewVoteRepo(pool *pgxpool.Pool) *VoteRepo {
	return &VoteRepo{pool: pool}
}

// Insert records a single vote atomically. Inside the transaction it verifies
// that the contestant exists and is still in the running, and that the voter
// exists (bumping last_active). The committed transaction notifies the
// vote_changes channel so the tally worker picks up the new count.
func (r *VoteRepo) Insert(ctx context.Context, v *model.Vote) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var active, eliminated bool
	err = tx.QueryRow(ctx, `SELECT active, eliminated FROM contestants WHERE id = $1`,
		v.ContestantID).Scan(&active, &eliminated)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrContestantNotFound
	}
	if err != nil {
		return err
	}
	if !active || eliminated {
		return ErrContestantIneligible
	}

	tag, err := tx.Exec(ctx, `UPDATE users SET last_active = NOW() WHERE id = $1`, v.UserID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO votes (id, contestant_id, user_id, vote_count, is_paid, voting_round, ip_hash)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		v.ID, v.ContestantID, v.UserID, v.VoteCount, v.IsPaid, v.VotingRound, v.IPHash)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `SELECT pg_notify('vote_changes', $1)`, v.ContestantID)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// Delete removes a vote by id (admin moderation) and notifies the tally
// worker for the affected contestant. Returns the contestant id so callers
// can invalidate caches.
func (r *VoteRepo) Delete(ctx context.Context, id string) (string, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return "", err
	}
	defer tx.Rollback(ctx)

	var contestantID string
	err = tx.QueryRow(ctx, `SELECT contestant_id FROM votes WHERE id = $1`, id).Scan(&contestantID)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrVoteNotFound
	}
	if err != nil {
		return "", err
	}

	_, err = tx.Exec(ctx, `DELETE FROM votes WHERE id = $1`, id)
	if err != nil {
		return "", err
	}

	_, err = tx.Exec(ctx, `SELECT pg_notify('vote_changes', $1)`, contestantID)
	if err != nil {
		return "", err
	}

	return contestantID, tx.Commit(ctx)
}

// ContestantTotal returns the current vote total for one contestant.
func (r *VoteRepo) ContestantTotal(ctx context.Context, contestantID string) (int, error) {
	var total int
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(vote_count), 0) FROM votes WHERE contestant_id = $1`,
		contestantID).Scan(&total)
	return total, err
}
