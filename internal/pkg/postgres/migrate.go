package postgres

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"orderflow/pkg/logger"
)

// Migrate applies every pending goose migration from fsys.
func Migrate(ctx context.Context, log logger.Logger, pool *pgxpool.Pool, fsys fs.FS) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, fsys)
	if err != nil {
		return fmt.Errorf("migrations provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	for _, res := range results {
		log.With(
			logger.NewField("version", res.Source.Version),
			logger.NewField("path", res.Source.Path),
			logger.NewField("duration", res.Duration.String()),
		).Info("migration applied")
	}
	return nil
}
