package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"sync"
	"syscall"

	"github.com/Rrens/birthday-builder/internal/api"
	"github.com/Rrens/birthday-builder/internal/config"
	"github.com/Rrens/birthday-builder/internal/conversation"
	"github.com/Rrens/birthday-builder/internal/logger"
	"github.com/Rrens/birthday-builder/internal/render"
	"github.com/Rrens/birthday-builder/internal/repository"
	"github.com/Rrens/birthday-builder/internal/repository/redis"
	"github.com/Rrens/birthday-builder/internal/service"
	"github.com/Rrens/birthday-builder/internal/telegram"
	"github.com/Rrens/birthday-builder/internal/theme"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load .env file - try multiple locations
	for _, p := range []string{".env", "../.env", "../../.env"} {
		if err := godotenv.Load(p); err == nil {
			fmt.Printf("Loaded .env from: %s\n", p)
			break
		}
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if err := cfg.Telegram.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Telegram bot is not configured")
	}

	// Setup logger
	logFile, err := logger.Setup(cfg.Logging)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to set up logging")
	}
	defer logFile.Close()

	log.Info().
		Str("host", cfg.Server.Host).
		Int("port", cfg.Server.Port).
		Str("base_url", cfg.App.BaseURL).
		Msg("Starting Birthday Builder")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize page store
	pages, closeStore, err := repository.OpenPages(ctx, cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open page store")
	}
	defer closeStore()

	// Initialize Redis
	var limiter *redis.RateLimiter
	if cfg.Redis.Enabled {
		redisClient, err := redis.NewClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer redisClient.Close()

		pages = redis.NewPageCache(redisClient, pages, cfg.Redis.PageTTL)
		limiter = redis.NewRateLimiter(redisClient, "media", cfg.Media.RateLimit.RequestsPerMinute)
		log.Info().Str("addr", cfg.Redis.Addr()).Msg("Redis page cache and media rate limit enabled")
	}

	renderer, err := render.New()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load page templates")
	}

	// Initialize Telegram
	botAPI, err := telegram.NewClient(cfg.Telegram)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Telegram")
	}

	// Initialize services
	pageService := service.NewPageService(pages, theme.NewCatalog(), cfg.App.BaseURL)
	mediaService := service.NewMediaService(
		telegram.NewFileResolver(botAPI, cfg.Telegram.Token, cfg.Telegram.FileEndpoint),
		&http.Client{},
	)
	if cfg.Media.ResolveTimeout > 0 {
		mediaService = mediaService.WithResolveTimeout(cfg.Media.ResolveTimeout)
	}

	manager := conversation.NewManager(cfg.Telegram.AdminID, pageService)
	bot := telegram.NewBot(botAPI, manager, cfg.Telegram.PollTimeout)

	deps := api.Dependencies{
		Pages:    pageService,
		Renderer: renderer,
		Media:    mediaService,
		Store:    pages,
	}
	if limiter != nil {
		deps.Limiter = limiter
	}

	// Create HTTP server
	server := &http.Server{
		Addr:        fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:     api.NewRouter(cfg, deps),
		ReadTimeout: cfg.Server.ReadTimeout,
		IdleTimeout: cfg.Server.IdleTimeout,
	}

	var wg sync.WaitGroup

	// Start bot polling in goroutine
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := bot.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error().Err(err).Msg("Bot stopped")
		}
	}()

	// Start server in goroutine
	go func() {
		log.Info().Msgf("Server listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("Server failed")
			stop()
		}
	}()

	// Wait for interrupt signal
	<-ctx.Done()
	log.Info().Msg("Shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	wg.Wait()

	log.Info().Msg("Server stopped")
}
