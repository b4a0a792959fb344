package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/kaikhaya123/Roomza-educated-secret-sub001/internal/model"
	"github.com/kaikhaya123/Roomza-educated-secret-sub001/internal/repository"
)

type SponsorService struct {
	repo  *repository.SponsorRepo
	cache *CacheService
}

func NewSponsorService(repo *repository.SponsorRepo, cache *CacheService) *SponsorService {
	return &SponsorService{repo: repo, cache: cache}
}

// List returns all sponsors, cache-aside with a medium TTL. Sponsors change
// on admin action only.
func (s *SponsorService) List(ctx context.Context) ([]model.Sponsor, error) {
	key := SponsorListKey()

	var cached []model.Sponsor
	if s.cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	sponsors, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	s.cache.Set(ctx, key, sponsors, TTLMedium)
	return sponsors, nil
}

func (s *SponsorService) Get(ctx context.Context, id string) (*model.Sponsor, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *SponsorService) Create(ctx context.Context, req model.SponsorRequest) (*model.Sponsor, error) {
	if err := validateSponsor(&req); err != nil {
		return nil, err
	}
	sponsor, err := s.repo.Create(ctx, uuid.NewString(), req)
	if err != nil {
		return nil, err
	}
	s.cache.Delete(ctx, SponsorListKey())
	return sponsor, nil
}

func (s *SponsorService) Update(ctx context.Context, id string, req model.SponsorRequest) (*model.Sponsor, error) {
	if err := validateSponsor(&req); err != nil {
		return nil, err
	}
	sponsor, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}
	s.cache.Delete(ctx, SponsorListKey())
	return sponsor, nil
}

func (s *SponsorService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Delete(ctx, SponsorListKey())
	return nil
}

func validateSponsor(req *model.SponsorRequest) error {
	req.Name = strings.TrimSpace(req.Name)
	req.Tier = strings.ToLower(strings.TrimSpace(req.Tier))

	if req.Name == "" {
		return &ValidationError{Field: "name", Reason: "is required"}
	}
	if !repository.ValidTiers[req.Tier] {
		return &ValidationError{Field: "tier", Reason: "must be one of: title, premium, supporting"}
	}
	return nil
}
