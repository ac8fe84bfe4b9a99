package minisite

import (
	"embed"
	"io/fs"
)

//go:embed data/sql/migrations/sqlite/*.sql data/sql/migrations/postgres/*.sql
var migrationsFS embed.FS

// GetMigrationsFS returns the embedded goose migrations, one directory per
// dialect under data/sql/migrations.
func GetMigrationsFS() fs.FS {
	return migrationsFS
}
