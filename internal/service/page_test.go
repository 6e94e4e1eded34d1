package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Rrens/birthday-builder/internal/domain"
	"github.com/Rrens/birthday-builder/internal/theme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func newTestPageService(repo domain.PageRepository, slugs ...string) *PageService {
	svc := NewPageService(repo, theme.NewCatalog(), "https://cake.example.com/")
	svc.now = func() time.Time { return time.Date(2026, time.October, 19, 12, 0, 0, 0, time.UTC) }
	if len(slugs) > 0 {
		i := 0
		svc.newSlug = func() (string, error) {
			s := slugs[i%len(slugs)]
			i++
			return s, nil
		}
	}
	return svc
}

func completedSession() domain.BirthdaySession {
	return domain.BirthdaySession{
		OperatorID: 42,
		Category:   domain.CategoryMaleFriend,
		Gender:     domain.GenderMale,
		Name:       "Ravi",
		DOBText:    "May 12, 2000",
		AgeText:    "26th",
		Photos:     []string{"A", "B", "C"},
		AudioID:    "song",
		CustomText: "  ",
	}
}

func TestNormalizePhotos(t *testing.T) {
	assert.Equal(t,
		[]string{"A", "B", "C", "A", "B", "C", "A", "B", "C", "A"},
		NormalizePhotos([]string{"A", "B", "C"}))

	assert.Equal(t,
		[]string{"X", "X", "X", "X", "X", "X", "X", "X", "X", "X"},
		NormalizePhotos([]string{"X"}))

	ten := []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10"}
	assert.Equal(t, ten, NormalizePhotos(ten))

	assert.Equal(t, ten, NormalizePhotos(append(append([]string{}, ten...), "11", "12")))

	assert.Empty(t, NormalizePhotos(nil))
	assert.NotNil(t, NormalizePhotos(nil))
}

func TestFinalSlideTitle(t *testing.T) {
	tests := []struct {
		name string
		page domain.PageRecord
		want string
	}{
		{"custom text wins over age", domain.PageRecord{Name: "Anna", AgeText: "21st", CustomText: strPtr("Love you forever")}, "Love you forever"},
		{"age when no custom text", domain.PageRecord{Name: "Anna", AgeText: "21st"}, "Happy 21st Birthday"},
		{"blank custom text ignored", domain.PageRecord{Name: "Anna", AgeText: "21st", CustomText: strPtr("   ")}, "Happy 21st Birthday"},
		{"name when nothing else", domain.PageRecord{Name: "Anna"}, "Happy Birthday Anna"},
		{"empty custom text and age", domain.PageRecord{Name: "Anna", CustomText: strPtr("")}, "Happy Birthday Anna"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FinalSlideTitle(&tt.page))
		})
	}
}

func TestGenerateSlug(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		slug, err := GenerateSlug()
		require.NoError(t, err)
		assert.Len(t, slug, domain.SlugLength)
		assert.Regexp(t, `^[a-z0-9]{10}$`, slug)
		seen[slug] = true
	}
	assert.Greater(t, len(seen), 190)
}

func TestPageService_Assemble(t *testing.T) {
	repo := new(MockPageRepository)
	svc := newTestPageService(repo, "abcde12345")
	ctx := context.Background()

	repo.On("Exists", ctx, "abcde12345").Return(false, nil).Once()
	repo.On("Put", ctx, mock.MatchedBy(func(p *domain.PageRecord) bool {
		return p.Slug == "abcde12345" &&
			p.ThemeKey == "male_friend" &&
			len(p.PhotoIDs) == 10 &&
			p.PhotoIDs[3] == "A" &&
			p.CustomText == nil &&
			p.AudioID == "song"
	})).Return(nil).Once()

	link, err := svc.Assemble(ctx, completedSession())
	require.NoError(t, err)
	assert.Equal(t, "https://cake.example.com/p/abcde12345", link)
	repo.AssertExpectations(t)
}

func TestPageService_AssembleEmptyPhotos(t *testing.T) {
	repo := new(MockPageRepository)
	svc := newTestPageService(repo, "abcde12345")
	ctx := context.Background()

	session := completedSession()
	session.Photos = nil
	session.Category = domain.Category("cat_unknown")

	repo.On("Exists", ctx, "abcde12345").Return(false, nil)
	repo.On("Put", ctx, mock.MatchedBy(func(p *domain.PageRecord) bool {
		return len(p.PhotoIDs) == 0 && p.ThemeKey == theme.DefaultKey
	})).Return(nil).Once()

	_, err := svc.Assemble(ctx, session)
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestPageService_SlugCollisionRetries(t *testing.T) {
	repo := new(MockPageRepository)
	svc := newTestPageService(repo, "taken00001", "free000002")
	ctx := context.Background()

	repo.On("Exists", ctx, "taken00001").Return(true, nil).Once()
	repo.On("Exists", ctx, "free000002").Return(false, nil).Once()
	repo.On("Put", ctx, mock.MatchedBy(func(p *domain.PageRecord) bool {
		return p.Slug == "free000002"
	})).Return(nil).Once()

	page, err := svc.Create(ctx, completedSession())
	require.NoError(t, err)
	assert.Equal(t, "free000002", page.Slug)
	repo.AssertExpectations(t)
}

func TestPageService_SlugCollisionGivesUp(t *testing.T) {
	repo := new(MockPageRepository)
	svc := newTestPageService(repo, "taken00001")
	ctx := context.Background()

	repo.On("Exists", ctx, "taken00001").Return(true, nil).Times(maxSlugAttempts)

	_, err := svc.Create(ctx, completedSession())
	assert.ErrorIs(t, err, domain.ErrPersistence)
	repo.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}

func TestPageService_PutFailure(t *testing.T) {
	repo := new(MockPageRepository)
	svc := newTestPageService(repo, "abcde12345")
	ctx := context.Background()

	repo.On("Exists", ctx, "abcde12345").Return(false, nil)
	repo.On("Put", ctx, mock.Anything).Return(errors.New("connection reset")).Once()

	_, err := svc.Assemble(ctx, completedSession())
	assert.ErrorIs(t, err, domain.ErrPersistence)
}

func TestPageService_Render(t *testing.T) {
	repo := new(MockPageRepository)
	svc := newTestPageService(repo)
	ctx := context.Background()

	repo.On("Get", ctx, "abcde12345").Return(&domain.PageRecord{
		Slug:     "abcde12345",
		Name:     "Anna",
		DOBText:  "May 12, 2000",
		AgeText:  "21st",
		ThemeKey: "student",
		PhotoIDs: []string{"A", "B"},
		AudioID:  "song",
	}, nil)

	rc, err := svc.Render(ctx, "abcde12345")
	require.NoError(t, err)
	assert.Equal(t, "Anna", rc.Name)
	assert.Equal(t, "Happy Birthday Anna", rc.IntroHeader)
	assert.Equal(t, "Happy 21st Birthday", rc.FinalSlideTitle)
	assert.Equal(t, "#f39c12", rc.Colors.Primary)
	assert.Equal(t, "Hey Scholar", rc.IntroText)
	assert.Len(t, rc.Slides, theme.SlideCount)
	assert.Equal(t, []string{"A", "B"}, rc.PhotoIDs)
	assert.Equal(t, "song", rc.AudioID)
}

func TestPageService_RenderUnknownThemeFallsBack(t *testing.T) {
	repo := new(MockPageRepository)
	svc := newTestPageService(repo)
	ctx := context.Background()

	repo.On("Get", ctx, "abcde12345").Return(&domain.PageRecord{
		Slug:     "abcde12345",
		Name:     "Anna",
		ThemeKey: "retired_theme",
	}, nil)

	rc, err := svc.Render(ctx, "abcde12345")
	require.NoError(t, err)
	assert.Equal(t, "#ff6b9d", rc.Colors.Primary)
	assert.Equal(t, "Happy Birthday Anna", rc.FinalSlideTitle)
	assert.NotNil(t, rc.PhotoIDs)
	assert.Empty(t, rc.PhotoIDs)
}

func TestPageService_RenderNotFound(t *testing.T) {
	repo := new(MockPageRepository)
	svc := newTestPageService(repo)
	ctx := context.Background()

	repo.On("Get", ctx, "missing000").Return(nil, domain.ErrPageNotFound)

	_, err := svc.Render(ctx, "missing000")
	assert.ErrorIs(t, err, domain.ErrPageNotFound)
}

func TestPageService_RenderStoreFailure(t *testing.T) {
	repo := new(MockPageRepository)
	svc := newTestPageService(repo)
	ctx := context.Background()

	repo.On("Get", ctx, "abcde12345").Return(nil, errors.New("database is locked"))

	_, err := svc.Render(ctx, "abcde12345")
	assert.ErrorIs(t, err, domain.ErrPersistence)
	assert.NotErrorIs(t, err, domain.ErrPageNotFound)
}
