package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/kaikhaya123/Roomza-educated-secret-sub001/internal/model"
)

// ErrDuplicateVote is returned when an identical submission lands within the
// dedup window (client retry, double tap).
var ErrDuplicateVote = errors.New("duplicate vote submission")

// ValidationError reports client-fixable input problems. Never retried.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// VoteStore is the persistence surface the vote service needs.
// *repository.VoteRepo is the production implementation.
type VoteStore interface {
	Insert(ctx context.Context, v *model.Vote) error
	Delete(ctx context.Context, id string) (string, error)
	ContestantTotal(ctx context.Context, contestantID string) (int, error)
}

type VoteService struct {
	store VoteStore
	cache *CacheService
	round string
}

func NewVoteService(store VoteStore, cache *CacheService, round string) *VoteService {
	return &VoteService{store: store, cache: cache, round: round}
}

// Record validates and persists a single vote, then invalidates the listing
// caches touching the contestant. The returned response carries the fresh
// vote total for the contestant.
func (s *VoteService) Record(ctx context.Context, req model.VoteRequest, ipHash string) (*model.VoteResponse, error) {
	req.ContestantID = strings.TrimSpace(req.ContestantID)
	req.UserID = strings.TrimSpace(req.UserID)

	if req.ContestantID == "" {
		return nil, &ValidationError{Field: "contestantId", Reason: "is required"}
	}
	if req.UserID == "" {
		return nil, &ValidationError{Field: "userId", Reason: "is required"}
	}
	if req.VoteCount == 0 {
		req.VoteCount = 1
	}
	if req.VoteCount < 1 {
		return nil, &ValidationError{Field: "voteCount", Reason: "must be at least 1"}
	}

	// Best-effort retry suppression. Fails open when Redis is down.
	if s.cache != nil && !s.cache.ClaimDedup(ctx, req.UserID, req.ContestantID) {
		return nil, ErrDuplicateVote
	}

	vote := &model.Vote{
		ID:           uuid.NewString(),
		ContestantID: req.ContestantID,
		UserID:       req.UserID,
		VoteCount:    req.VoteCount,
		IsPaid:       req.IsPaid,
		VotingRound:  s.round,
		IPHash:       ipHash,
	}

	if err := s.store.Insert(ctx, vote); err != nil {
		// Give the window back so a legitimate retry is not rejected as a
		// duplicate of the failed attempt.
		if s.cache != nil {
			s.cache.ReleaseDedup(ctx, req.UserID, req.ContestantID)
		}
		return nil, err
	}

	s.invalidateContestant(ctx, req.ContestantID)

	total, err := s.store.ContestantTotal(ctx, req.ContestantID)
	if err != nil {
		return nil, err
	}

	return &model.VoteResponse{
		Success:  true,
		VoteID:   vote.ID,
		NewTotal: total,
	}, nil
}

// Delete removes a vote by id (admin moderation) and invalidates caches for
// the affected contestant.
func (s *VoteService) Delete(ctx context.Context, id string) error {
	contestantID, err := s.store.Delete(ctx, id)
	if err != nil {
		return err
	}
	s.invalidateContestant(ctx, contestantID)
	return nil
}

// invalidateContestant drops the cached single lookup and every paginated
// listing variant, so the next read recomputes totals from the database.
func (s *VoteService) invalidateContestant(ctx context.Context, contestantID string) {
	if s.cache == nil {
		return
	}
	s.cache.Delete(ctx, ContestantKey(contestantID))
	s.cache.DeleteByPattern(ctx, "contestants:*")
}
