// Package testsupport holds helpers shared by the storage integration tests.
package testsupport

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

var dsnReplacer = strings.NewReplacer("/", "_", " ", "_", "#", "_")

// NewBunDB opens an in-memory SQLite database private to tb and creates a
// table for every model. The database is closed when tb completes.
func NewBunDB(tb testing.TB, models ...any) *bun.DB {
	tb.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", dsnReplacer.Replace(tb.Name()))
	sqlDB, err := sql.Open("sqlite3", dsn)
	if err != nil {
		tb.Fatalf("open sqlite: %v", err)
	}

	db := bun.NewDB(sqlDB, sqlitedialect.New())
	// a single connection keeps the named memory database alive and serialised
	db.SetMaxOpenConns(1)
	tb.Cleanup(func() {
		_ = db.Close()
	})

	ctx := context.Background()
	for _, model := range models {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			tb.Fatalf("create table for %T: %v", model, err)
		}
	}
	return db
}
