package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kaikhaya123/Roomza-educated-secret-sub001/internal/model"
)

// ValidTiers are the allowed sponsor tier values, ordered title > premium > supporting.
var ValidTiers = map[string]bool{
	"title":      true,
	"premium":    true,
	"supporting": true,
}

type SponsorRepo struct {
	pool *pgxpool.Pool
}

func NewSponsorRepo(pool *pgxpool.Pool) *SponsorRepo {
	return &SponsorRepo{pool: pool}
}

// List returns all sponsors grouped by tier for display.
func (r *SponsorRepo) List(ctx context.Context) ([]model.Sponsor, error) {
	query := `
		SELECT id, name, tier, logo_url, description, created_at, updated_at
		FROM sponsors
		ORDER BY CASE tier WHEN 'title' THEN 0 WHEN 'premium' THEN 1 ELSE 2 END, name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sponsors := []model.Sponsor{}
	for rows.Next() {
		var s model.Sponsor
		if err := rows.Scan(&s.ID, &s.Name, &s.Tier, &s.LogoURL, &s.Description,
			&s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		sponsors = append(sponsors, s)
	}
	return sponsors, rows.Err()
}

// FindByID returns a single sponsor.
func (r *SponsorRepo) FindByID(ctx context.Context, id string) (*model.Sponsor, error) {
	var s model.Sponsor
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, tier, logo_url, description, created_at, updated_at
		FROM sponsors WHERE id = $1`, id).
		Scan(&s.ID, &s.Name, &s.Tier, &s.LogoURL, &s.Description, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrSponsorNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create inserts a sponsor and returns the stored row.
func (r *SponsorRepo) Create(ctx context.Context, id string, req model.SponsorRequest) (*model.Sponsor, error) {
	var s model.Sponsor
	err := r.pool.QueryRow(ctx, `
		INSERT INTO sponsors (id, name, tier, logo_url, description)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, name, tier, logo_url, description, created_at, updated_at`,
		id, req.Name, req.Tier, req.LogoURL, req.Description).
		Scan(&s.ID, &s.Name, &s.Tier, &s.LogoURL, &s.Description, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Update replaces a sponsor's mutable fields.
func (r *SponsorRepo) Update(ctx context.Context, id string, req model.SponsorRequest) (*model.Sponsor, error) {
	var s model.Sponsor
	err := r.pool.QueryRow(ctx, `
		UPDATE sponsors
		SET name = $2, tier = $3, logo_url = $4, description = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING id, name, tier, logo_url, description, created_at, updated_at`,
		id, req.Name, req.Tier, req.LogoURL, req.Description).
		Scan(&s.ID, &s.Name, &s.Tier, &s.LogoURL, &s.Description, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrSponsorNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Delete removes a sponsor.
func (r *SponsorRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM sponsors WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrSponsorNotFound
	}
	return nil
}
