package api

import (
	"net/http"

	"github.com/Rrens/birthday-builder/internal/api/handler"
	customMiddleware "github.com/Rrens/birthday-builder/internal/api/middleware"
	"github.com/Rrens/birthday-builder/internal/config"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Dependencies are the collaborators the HTTP surface needs
type Dependencies struct {
	Pages    handler.PageRenderer
	Renderer handler.HTMLRenderer
	Media    handler.MediaOpener
	Store    handler.Pinger
	// Limiter guards the media proxy; nil disables limiting
	Limiter customMiddleware.Limiter
}

// NewRouter creates and configures the HTTP router
func NewRouter(cfg *config.Config, deps Dependencies) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(customMiddleware.Logger)
	r.Use(middleware.Recoverer)

	// Pages embed media from this host, but shared links may be previewed elsewhere
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "HEAD", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Range"},
		ExposedHeaders: []string{"X-Request-ID", "Content-Length", "Content-Type"},
		MaxAge:         300,
	}))

	pageHandler := handler.NewPageHandler(deps.Pages, deps.Renderer)
	mediaHandler := handler.NewMediaHandler(deps.Media)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(cfg.Server.MiddlewareTimeout))

		r.Get("/", handler.Landing)
		r.Get("/health", handler.HealthCheck)
		r.Get("/ready", handler.ReadyCheck(deps.Store))
		r.Get("/p/{slug}", pageHandler.View)
	})

	// Media streams run as long as the visitor keeps reading, so no request timeout here
	r.Group(func(r chi.Router) {
		if deps.Limiter != nil {
			r.Use(customMiddleware.NewRateLimitMiddleware(deps.Limiter).Limit)
		}
		r.Get("/media/{fileID}", mediaHandler.Proxy)
	})

	return r
}
