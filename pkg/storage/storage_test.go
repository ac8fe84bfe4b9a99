package storage_test

import (
	"context"
	"errors"
	"testing"

	"github.com/countyhub/go-minisite/pkg/storage"
	"github.com/uptrace/bun/dialect"
)

func TestOpenSQLiteMemory(t *testing.T) {
	db, err := storage.Open(context.Background(), storage.Config{Driver: "sqlite3", DSN: "file::memory:?cache=shared"})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	var one int
	if err := db.NewSelect().ColumnExpr("1").Scan(context.Background(), &one); err != nil {
		t.Fatalf("select: %v", err)
	}
	if one != 1 {
		t.Fatalf("expected 1, got %d", one)
	}
	if db.Dialect().Name() != dialect.SQLite {
		t.Fatalf("expected sqlite dialect, got %v", db.Dialect().Name())
	}
}

func TestOpenRejectsBadConfig(t *testing.T) {
	if _, err := storage.Open(context.Background(), storage.Config{Driver: "sqlite"}); !errors.Is(err, storage.ErrDSNRequired) {
		t.Fatalf("expected ErrDSNRequired, got %v", err)
	}
	if _, err := storage.Open(context.Background(), storage.Config{Driver: "oracle", DSN: "x"}); !errors.Is(err, storage.ErrDriverUnknown) {
		t.Fatalf("expected ErrDriverUnknown, got %v", err)
	}
}

func TestDriverAliases(t *testing.T) {
	cases := map[string]string{
		"sqlite3":    storage.DriverSQLite,
		" SQLite ":   storage.DriverSQLite,
		"pgx":        storage.DriverPostgres,
		"postgresql": storage.DriverPostgres,
	}
	for raw, want := range cases {
		if got := storage.Driver(raw); got != want {
			t.Fatalf("Driver(%q) = %q, want %q", raw, got, want)
		}
	}
}
