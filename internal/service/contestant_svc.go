package service

import (
	"context"

	"github.com/kaikhaya123/Roomza-educated-secret-sub001/internal/model"
	"github.com/kaikhaya123/Roomza-educated-secret-sub001/internal/repository"
)

type ContestantService struct {
	repo  *repository.ContestantRepo
	cache *CacheService
}

func NewContestantService(repo *repository.ContestantRepo, cache *CacheService) *ContestantService {
	return &ContestantService{repo: repo, cache: cache}
}

// List serves one page of the public contestant listing, cache-aside with a
// short TTL. A cache miss (or Redis outage) falls through to the database.
func (s *ContestantService) List(ctx context.Context, page, limit int, province string) (*model.ContestantListResponse, error) {
	key := ContestantListKey(page, limit, province)

	var cached model.ContestantListResponse
	if s.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	contestants, total, err := s.repo.List(ctx, page, limit, province)
	if err != nil {
		return nil, err
	}

	resp := &model.ContestantListResponse{
		Contestants: contestants,
		Pagination: model.Pagination{
			Page:  page,
			Limit: limit,
			Total: total,
			Pages: PageCount(total, limit),
		},
	}

	s.cache.Set(ctx, key, resp, TTLShort)
	return resp, nil
}

// Get returns a single contestant, cache-aside.
func (s *ContestantService) Get(ctx context.Context, id string) (*model.Contestant, error) {
	key := ContestantKey(id)

	var cached model.Contestant
	if s.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.cache.Set(ctx, key, c, TTLShort)
	return c, nil
}

// PageCount is ceil(total/limit) with the degenerate cases pinned to zero.
func PageCount(total, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}
