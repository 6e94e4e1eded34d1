package main

import (
	"github.com/Rrens/birthday-builder/internal/config"
	"github.com/Rrens/birthday-builder/internal/repository"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if cfg.Database.Driver == "mongo" {
		log.Info().Msg("Mongo page store needs no schema migrations")
		return
	}

	log.Info().Str("driver", cfg.Database.Driver).Msg("Applying migrations")

	if err := repository.Migrate(cfg.Database); err != nil {
		log.Fatal().Err(err).Msg("Migration failed")
	}

	log.Info().Msg("Migrations applied")
}
