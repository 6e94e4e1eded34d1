package api_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Rrens/birthday-builder/internal/api"
	"github.com/Rrens/birthday-builder/internal/api/middleware"
	"github.com/Rrens/birthday-builder/internal/config"
	"github.com/Rrens/birthday-builder/internal/domain"
	"github.com/Rrens/birthday-builder/internal/repository/redis"
	"github.com/stretchr/testify/assert"
)

type fakePages struct{}

func (fakePages) Render(ctx context.Context, slug string) (*domain.RenderContext, error) {
	if slug != "abcde12345" {
		return nil, domain.ErrPageNotFound
	}
	return &domain.RenderContext{Slug: slug, IntroHeader: "Happy Birthday Alice"}, nil
}

type fakeRenderer struct{}

func (fakeRenderer) Page(w io.Writer, rc *domain.RenderContext) error {
	_, err := io.WriteString(w, rc.IntroHeader)
	return err
}

func (fakeRenderer) NotFound(w io.Writer) error {
	_, err := io.WriteString(w, "Page not found")
	return err
}

type fakeMedia struct{}

func (fakeMedia) Open(ctx context.Context, ref string) (*domain.MediaStream, error) {
	return &domain.MediaStream{Body: io.NopCloser(strings.NewReader("bytes")), ContentType: "image/png", ContentLength: 5}, nil
}

type fakeStore struct{}

func (fakeStore) Ping(ctx context.Context) error { return nil }

type denyAll struct{}

func (denyAll) Allow(ctx context.Context, subject string) (redis.Verdict, error) {
	return redis.Verdict{Allowed: false, Limit: 1, Reset: time.Now().Add(time.Minute)}, nil
}

func newTestRouter(limiter middleware.Limiter) http.Handler {
	cfg := &config.Config{Server: config.ServerConfig{MiddlewareTimeout: 5 * time.Second}}
	return api.NewRouter(cfg, api.Dependencies{
		Pages:    fakePages{},
		Renderer: fakeRenderer{},
		Media:    fakeMedia{},
		Store:    fakeStore{},
		Limiter:  limiter,
	})
}

func TestRouter_Routes(t *testing.T) {
	router := newTestRouter(nil)

	tests := []struct {
		path   string
		status int
		body   string
	}{
		{path: "/", status: http.StatusOK, body: "Birthday Builder Bot is Running"},
		{path: "/health", status: http.StatusOK, body: `"status":"ok"`},
		{path: "/ready", status: http.StatusOK, body: `"status":"ready"`},
		{path: "/p/abcde12345", status: http.StatusOK, body: "Happy Birthday Alice"},
		{path: "/p/unknown000", status: http.StatusNotFound, body: "Page not found"},
		{path: "/media/AgADphoto", status: http.StatusOK, body: "bytes"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.status, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.body)
		})
	}
}

func TestRouter_MediaRateLimited(t *testing.T) {
	router := newTestRouter(denyAll{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/media/AgADphoto", nil))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/p/abcde12345", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
