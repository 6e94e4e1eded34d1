package handler

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/Rrens/birthday-builder/internal/domain"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// PageRenderer loads the render context for a slug
type PageRenderer interface {
	Render(ctx context.Context, slug string) (*domain.RenderContext, error)
}

// HTMLRenderer writes page documents
type HTMLRenderer interface {
	Page(w io.Writer, rc *domain.RenderContext) error
	NotFound(w io.Writer) error
}

// PageHandler serves birthday pages
type PageHandler struct {
	pages    PageRenderer
	renderer HTMLRenderer
}

// NewPageHandler creates a new page handler
func NewPageHandler(pages PageRenderer, renderer HTMLRenderer) *PageHandler {
	return &PageHandler{pages: pages, renderer: renderer}
}

// View renders the page stored under the slug in the path
func (h *PageHandler) View(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	rc, err := h.pages.Render(r.Context(), slug)
	if err != nil {
		if errors.Is(err, domain.ErrPageNotFound) {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.WriteHeader(http.StatusNotFound)
			if err := h.renderer.NotFound(w); err != nil {
				log.Error().Err(err).Msg("Failed to render not found page")
			}
			return
		}
		log.Error().Err(err).Str("slug", slug).Msg("Failed to load page")
		http.Error(w, "Something went wrong", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.renderer.Page(w, rc); err != nil {
		log.Error().Err(err).Str("slug", slug).Msg("Failed to render page")
		http.Error(w, "Something went wrong", http.StatusInternalServerError)
	}
}
