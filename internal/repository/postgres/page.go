package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Rrens/birthday-builder/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PageRepository implements domain.PageRepository
type PageRepository struct {
	pool *pgxpool.Pool
}

// NewPageRepository creates a new page repository
func NewPageRepository(db *DB) *PageRepository {
	return &PageRepository{pool: db.Pool}
}

func (r *PageRepository) Put(ctx context.Context, page *domain.PageRecord) error {
	photoIDs, err := domain.EncodePhotoIDs(page.PhotoIDs)
	if err != nil {
		return fmt.Errorf("failed to encode photo ids: %w", err)
	}

	query := `
		INSERT INTO pages (slug, name, dob_text, age_text, theme_key, photo_ids, audio_id, custom_text, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (slug) DO UPDATE SET
			name = EXCLUDED.name,
			dob_text = EXCLUDED.dob_text,
			age_text = EXCLUDED.age_text,
			theme_key = EXCLUDED.theme_key,
			photo_ids = EXCLUDED.photo_ids,
			audio_id = EXCLUDED.audio_id,
			custom_text = EXCLUDED.custom_text,
			created_at = EXCLUDED.created_at
	`
	_, err = r.pool.Exec(ctx, query,
		page.Slug,
		page.Name,
		page.DOBText,
		page.AgeText,
		page.ThemeKey,
		photoIDs,
		page.AudioID,
		page.CustomText,
		page.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save page: %w", err)
	}
	return nil
}

func (r *PageRepository) Get(ctx context.Context, slug string) (*domain.PageRecord, error) {
	query := `
		SELECT slug, name, dob_text, age_text, theme_key, photo_ids, audio_id, custom_text, created_at
		FROM pages
		WHERE slug = $1
	`
	var p domain.PageRecord
	var photoIDs string
	err := r.pool.QueryRow(ctx, query, slug).Scan(
		&p.Slug,
		&p.Name,
		&p.DOBText,
		&p.AgeText,
		&p.ThemeKey,
		&photoIDs,
		&p.AudioID,
		&p.CustomText,
		&p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrPageNotFound, slug)
		}
		return nil, fmt.Errorf("failed to get page: %w", err)
	}
	p.PhotoIDs = domain.DecodePhotoIDs(photoIDs)
	return &p, nil
}

func (r *PageRepository) Exists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM pages WHERE slug = $1)`, slug).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check page: %w", err)
	}
	return exists, nil
}

func (r *PageRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}
