package main

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/Kerhoff/rentbook/internal/config"
	"github.com/Kerhoff/rentbook/internal/repository"
	"github.com/Kerhoff/rentbook/internal/repository/memory"
	"github.com/Kerhoff/rentbook/internal/repository/postgres"
	"github.com/Kerhoff/rentbook/internal/seed"
	"github.com/Kerhoff/rentbook/internal/service"
	"github.com/Kerhoff/rentbook/pkg/logger"
)

func setup() (*config.Config, *logrus.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, logger.New(cfg.LogLevel, cfg.LogFormat), nil
}

// openStore returns the PostgreSQL store, migrated to the latest version, when
// DATABASE_URL is set and the in-memory store otherwise.
func openStore(ctx context.Context, cfg *config.Config, l *logrus.Logger) (repository.Store, error) {
	if !cfg.UsesDatabase() {
		l.Warn("DATABASE_URL not set, using in-memory store")
		return memory.NewStore(), nil
	}

	db, err := config.NewDatabase(ctx, cfg.DatabaseURL, l)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.Migrate(cfg.MigrationsPath); err != nil {
		db.Close()
		return nil, err
	}
	return postgres.NewStore(db.DB), nil
}

func applySeed(ctx context.Context, svc *service.Service, path string, l *logrus.Logger) error {
	f, err := seed.LoadFile(path)
	if err != nil {
		return err
	}
	if _, err := seed.Apply(ctx, svc, f, l); err != nil {
		return fmt.Errorf("failed to apply seed %s: %w", path, err)
	}
	return nil
}
