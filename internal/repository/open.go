package repository

import (
	"context"
	"fmt"

	"github.com/Rrens/birthday-builder/internal/config"
	"github.com/Rrens/birthday-builder/internal/domain"
	"github.com/Rrens/birthday-builder/internal/repository/mongo"
	"github.com/Rrens/birthday-builder/internal/repository/postgres"
	"github.com/Rrens/birthday-builder/internal/repository/sqlstore"
	"github.com/rs/zerolog/log"
)

// OpenPages connects the page store selected by cfg.Driver.
// The returned func releases the connection.
func OpenPages(ctx context.Context, cfg config.DatabaseConfig) (domain.PageRepository, func(), error) {
	if cfg.AutoMigrate {
		if err := Migrate(cfg); err != nil {
			return nil, nil, err
		}
	}

	log.Info().Str("driver", cfg.Driver).Msg("Opening page store")

	switch cfg.Driver {
	case "postgres":
		db, err := postgres.NewDB(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		return postgres.NewPageRepository(db), db.Close, nil

	case "mongo":
		client, err := mongo.Connect(ctx, cfg.MongoURI)
		if err != nil {
			return nil, nil, err
		}
		repo, err := mongo.NewPageRepository(ctx, client, cfg.Database)
		if err != nil {
			client.Disconnect(context.Background())
			return nil, nil, err
		}
		return repo, func() { client.Disconnect(context.Background()) }, nil

	case "sqlite", "mysql":
		dialect := sqlstore.Dialect(cfg.Driver)
		db, err := sqlstore.Open(ctx, dialect, cfg.DSN())
		if err != nil {
			return nil, nil, err
		}
		return sqlstore.NewPageRepository(db, dialect), func() { db.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}
