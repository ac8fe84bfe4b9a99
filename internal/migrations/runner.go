// Package migrations applies the embedded goose migrations for the record
// stores.
package migrations

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/countyhub/go-minisite/internal/logging"
	"github.com/countyhub/go-minisite/pkg/interfaces"
	"github.com/pressly/goose/v3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"
)

var (
	ErrMigrationsRequired = errors.New("migrations: filesystem is required")
	ErrDialectUnsupported = errors.New("migrations: unsupported database dialect")
)

// Root is the directory inside the migrations filesystem holding one
// sub-directory per dialect.
const Root = "data/sql/migrations"

// Up applies every pending migration for db's dialect. fsys must contain
// Root/sqlite and Root/postgres.
func Up(ctx context.Context, db *bun.DB, fsys fs.FS, logger interfaces.Logger) error {
	if fsys == nil {
		return ErrMigrationsRequired
	}
	if logger == nil {
		logger = logging.NoOp()
	}

	gooseDialect, dir, err := dialectFor(db)
	if err != nil {
		return err
	}
	sub, err := fs.Sub(fsys, Root+"/"+dir)
	if err != nil {
		return fmt.Errorf("migrations: open %s: %w", dir, err)
	}

	provider, err := goose.NewProvider(gooseDialect, db.DB, sub)
	if err != nil {
		return fmt.Errorf("migrations: new provider: %w", err)
	}
	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("migrations: up: %w", err)
	}
	for _, result := range results {
		if result == nil || result.Source == nil {
			continue
		}
		logger.Info("migrations.applied",
			"version", result.Source.Version,
			"path", result.Source.Path,
			"duration", result.Duration,
		)
	}
	return nil
}

func dialectFor(db *bun.DB) (goose.Dialect, string, error) {
	if db == nil {
		return "", "", fmt.Errorf("%w: nil database", ErrDialectUnsupported)
	}
	switch db.Dialect().Name() {
	case dialect.SQLite:
		return goose.DialectSQLite3, "sqlite", nil
	case dialect.PG:
		return goose.DialectPostgres, "postgres", nil
	default:
		return "", "", fmt.Errorf("%w: %v", ErrDialectUnsupported, db.Dialect().Name())
	}
}
