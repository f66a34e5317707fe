package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/Kerhoff/rentbook/internal/config"
)

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back database migrations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(cmd.Context(), func(db *config.Database, path string) error {
				return db.Migrate(path)
			})
		},
	})

	var steps int
	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			if steps < 1 {
				return errors.New("--steps must be at least 1")
			}
			return withDatabase(cmd.Context(), func(db *config.Database, path string) error {
				return db.MigrateDown(path, steps)
			})
		},
	}
	down.Flags().IntVar(&steps, "steps", 1, "Number of migrations to roll back")
	cmd.AddCommand(down)

	return cmd
}

func withDatabase(ctx context.Context, fn func(db *config.Database, migrationsPath string) error) error {
	cfg, l, err := setup()
	if err != nil {
		return err
	}
	if !cfg.UsesDatabase() {
		return errors.New("DATABASE_URL is required for migrations")
	}
	db, err := config.NewDatabase(ctx, cfg.DatabaseURL, l)
	if err != nil {
		return err
	}
	defer db.Close()
	return fn(db, cfg.MigrationsPath)
}
