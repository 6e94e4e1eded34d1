package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/Rrens/birthday-builder/internal/domain"
	"github.com/Rrens/birthday-builder/internal/theme"
	"github.com/rs/zerolog/log"
)

const (
	slugAlphabet     = "abcdefghijklmnopqrstuvwxyz0123456789"
	maxSlugAttempts  = 5
	pagePathTemplate = "%s/p/%s"
)

// PageService assembles completed sessions into pages and prepares pages for rendering
type PageService struct {
	pageRepo domain.PageRepository
	themes   *theme.Catalog
	baseURL  string
	now      func() time.Time
	newSlug  func() (string, error)
}

// NewPageService creates a new page service
func NewPageService(pageRepo domain.PageRepository, themes *theme.Catalog, baseURL string) *PageService {
	return &PageService{
		pageRepo: pageRepo,
		themes:   themes,
		baseURL:  strings.TrimRight(baseURL, "/"),
		now:      time.Now,
		newSlug:  GenerateSlug,
	}
}

// Assemble persists a completed session and returns the shareable page link
func (s *PageService) Assemble(ctx context.Context, session domain.BirthdaySession) (string, error) {
	page, err := s.Create(ctx, session)
	if err != nil {
		return "", err
	}
	return s.Link(page.Slug), nil
}

// Create builds the page record for a completed session and writes it
func (s *PageService) Create(ctx context.Context, session domain.BirthdaySession) (*domain.PageRecord, error) {
	slug, err := s.uniqueSlug(ctx)
	if err != nil {
		return nil, err
	}

	page := &domain.PageRecord{
		Slug:      slug,
		Name:      session.Name,
		DOBText:   session.DOBText,
		AgeText:   session.AgeText,
		ThemeKey:  theme.KeyForCategory(session.Category),
		PhotoIDs:  NormalizePhotos(session.Photos),
		AudioID:   session.AudioID,
		CreatedAt: s.now().UTC(),
	}
	if custom := strings.TrimSpace(session.CustomText); custom != "" {
		page.CustomText = &custom
	}

	if err := page.Validate(); err != nil {
		return nil, fmt.Errorf("%w: invalid page record: %w", domain.ErrPersistence, err)
	}

	if err := s.pageRepo.Put(ctx, page); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}

	log.Info().
		Str("slug", page.Slug).
		Str("theme", page.ThemeKey).
		Int("photos", len(page.PhotoIDs)).
		Msg("Page saved")

	return page, nil
}

// uniqueSlug draws slugs until one is unused
func (s *PageService) uniqueSlug(ctx context.Context) (string, error) {
	for attempt := 1; attempt <= maxSlugAttempts; attempt++ {
		slug, err := s.newSlug()
		if err != nil {
			return "", fmt.Errorf("failed to generate slug: %w", err)
		}

		exists, err := s.pageRepo.Exists(ctx, slug)
		if err != nil {
			return "", fmt.Errorf("%w: %w", domain.ErrPersistence, err)
		}
		if !exists {
			return slug, nil
		}
		log.Warn().Str("slug", slug).Int("attempt", attempt).Msg("Slug collision, drawing again")
	}
	return "", fmt.Errorf("%w: no free slug after %d attempts", domain.ErrPersistence, maxSlugAttempts)
}

// Link returns the externally reachable page path for a slug
func (s *PageService) Link(slug string) string {
	return fmt.Sprintf(pagePathTemplate, s.baseURL, slug)
}

// Render loads a page and merges it with its theme
func (s *PageService) Render(ctx context.Context, slug string) (*domain.RenderContext, error) {
	page, err := s.pageRepo.Get(ctx, slug)
	if err != nil {
		if errors.Is(err, domain.ErrPageNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}

	th := s.themes.Lookup(page.ThemeKey)
	if th.Key != page.ThemeKey {
		log.Warn().Str("slug", slug).Str("theme", page.ThemeKey).Msg("Unknown theme, using default")
	}

	photos := page.PhotoIDs
	if photos == nil {
		photos = []string{}
	}

	return &domain.RenderContext{
		Slug:            page.Slug,
		Name:            page.Name,
		DOBText:         page.DOBText,
		IntroText:       th.IntroText,
		Colors:          th.Colors,
		Slides:          append([]domain.Slide(nil), th.Slides[:]...),
		PhotoIDs:        photos,
		AudioID:         page.AudioID,
		IntroHeader:     "Happy Birthday " + page.Name,
		FinalSlideTitle: FinalSlideTitle(page),
	}, nil
}

// FinalSlideTitle picks custom text, then the ordinal age, then the name
func FinalSlideTitle(page *domain.PageRecord) string {
	if page.CustomText != nil && strings.TrimSpace(*page.CustomText) != "" {
		return *page.CustomText
	}
	if page.AgeText != "" {
		return fmt.Sprintf("Happy %s Birthday", page.AgeText)
	}
	return "Happy Birthday " + page.Name
}

// NormalizePhotos repeats the supplied photos in order until there are exactly PhotoQuota.
// An empty list stays empty.
func NormalizePhotos(photos []string) []string {
	if len(photos) == 0 {
		return []string{}
	}
	out := make([]string, 0, domain.PhotoQuota)
	for len(out) < domain.PhotoQuota {
		out = append(out, photos[len(out)%len(photos)])
	}
	return out
}

// GenerateSlug draws SlugLength characters uniformly from lowercase letters and digits
func GenerateSlug() (string, error) {
	max := big.NewInt(int64(len(slugAlphabet)))
	b := make([]byte, domain.SlugLength)
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = slugAlphabet[n.Int64()]
	}
	return string(b), nil
}
