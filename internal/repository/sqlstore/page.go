package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Rrens/birthday-builder/internal/domain"
	"github.com/rs/zerolog/log"
)

const pageColumns = `slug, name, dob_text, age_text, theme_key, photo_ids, audio_id, custom_text, created_at`

var upsertQueries = map[Dialect]string{
	SQLite: `
		INSERT INTO pages (` + pageColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(slug) DO UPDATE SET
			name = excluded.name,
			dob_text = excluded.dob_text,
			age_text = excluded.age_text,
			theme_key = excluded.theme_key,
			photo_ids = excluded.photo_ids,
			audio_id = excluded.audio_id,
			custom_text = excluded.custom_text,
			created_at = excluded.created_at
	`,
	MySQL: `
		INSERT INTO pages (` + pageColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			name = VALUES(name),
			dob_text = VALUES(dob_text),
			age_text = VALUES(age_text),
			theme_key = VALUES(theme_key),
			photo_ids = VALUES(photo_ids),
			audio_id = VALUES(audio_id),
			custom_text = VALUES(custom_text),
			created_at = VALUES(created_at)
	`,
}

// PageRepository implements domain.PageRepository over database/sql
type PageRepository struct {
	db      *sql.DB
	dialect Dialect
}

// NewPageRepository creates a new page repository
func NewPageRepository(db *sql.DB, dialect Dialect) *PageRepository {
	return &PageRepository{db: db, dialect: dialect}
}

func (r *PageRepository) Put(ctx context.Context, page *domain.PageRecord) error {
	photoIDs, err := domain.EncodePhotoIDs(page.PhotoIDs)
	if err != nil {
		return fmt.Errorf("failed to encode photo ids: %w", err)
	}

	var customText sql.NullString
	if page.CustomText != nil {
		customText = sql.NullString{String: *page.CustomText, Valid: true}
	}

	_, err = r.db.ExecContext(ctx, upsertQueries[r.dialect],
		page.Slug,
		page.Name,
		page.DOBText,
		page.AgeText,
		page.ThemeKey,
		photoIDs,
		page.AudioID,
		customText,
		page.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("failed to save page: %w", err)
	}
	return nil
}

func (r *PageRepository) Get(ctx context.Context, slug string) (*domain.PageRecord, error) {
	query := `SELECT ` + pageColumns + ` FROM pages WHERE slug = ?`

	var p domain.PageRecord
	var photoIDs, createdAt string
	var customText sql.NullString
	err := r.db.QueryRowContext(ctx, query, slug).Scan(
		&p.Slug,
		&p.Name,
		&p.DOBText,
		&p.AgeText,
		&p.ThemeKey,
		&photoIDs,
		&p.AudioID,
		&customText,
		&createdAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrPageNotFound, slug)
		}
		return nil, fmt.Errorf("failed to get page: %w", err)
	}

	p.PhotoIDs = domain.DecodePhotoIDs(photoIDs)
	if customText.Valid {
		p.CustomText = &customText.String
	}
	if p.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		log.Warn().Err(err).Str("slug", slug).Msg("Unparseable created_at")
	}
	return &p, nil
}

func (r *PageRepository) Exists(ctx context.Context, slug string) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM pages WHERE slug = ?`, slug).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to check page: %w", err)
	}
	return n > 0, nil
}

func (r *PageRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
