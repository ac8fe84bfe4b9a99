// Package storage opens the SQL databases that back the bun repositories.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

// Supported drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

var (
	ErrDriverUnknown = errors.New("storage: unknown driver")
	ErrDSNRequired   = errors.New("storage: dsn is required")
)

// Config captures how to reach the database.
type Config struct {
	Driver string
	DSN    string
	// MaxOpenConns is forced to 1 for in-memory SQLite so every query sees
	// the same database.
	MaxOpenConns int
}

// Open connects to the configured database, pings it and wraps it in bun
// with the matching dialect.
func Open(ctx context.Context, cfg Config) (*bun.DB, error) {
	dsn := strings.TrimSpace(cfg.DSN)
	if dsn == "" {
		return nil, ErrDSNRequired
	}

	var (
		sqlDB *sql.DB
		db    *bun.DB
		err   error
	)
	switch Driver(cfg.Driver) {
	case DriverSQLite:
		sqlDB, err = sql.Open("sqlite3", dsn)
		if err != nil {
			return nil, fmt.Errorf("storage: open sqlite: %w", err)
		}
		db = bun.NewDB(sqlDB, sqlitedialect.New())
		if strings.Contains(dsn, ":memory:") {
			db.SetMaxOpenConns(1)
		} else if cfg.MaxOpenConns > 0 {
			db.SetMaxOpenConns(cfg.MaxOpenConns)
		}
	case DriverPostgres:
		sqlDB, err = sql.Open("pgx", dsn)
		if err != nil {
			return nil, fmt.Errorf("storage: open postgres: %w", err)
		}
		db = bun.NewDB(sqlDB, pgdialect.New())
		if cfg.MaxOpenConns > 0 {
			db.SetMaxOpenConns(cfg.MaxOpenConns)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrDriverUnknown, cfg.Driver)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("storage: ping %s: %w", Driver(cfg.Driver), err)
	}
	return db, nil
}

// Driver normalises a driver name. "sqlite3" is accepted for SQLite and
// "pgx" or "postgresql" for Postgres.
func Driver(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "sqlite", "sqlite3":
		return DriverSQLite
	case "postgres", "postgresql", "pgx":
		return DriverPostgres
	default:
		return strings.ToLower(strings.TrimSpace(raw))
	}
}
