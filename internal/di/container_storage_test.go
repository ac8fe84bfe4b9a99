package di_test

import (
	"context"
	"errors"
	"testing"

	minisite "github.com/countyhub/go-minisite"
	"github.com/countyhub/go-minisite/internal/di"
	"github.com/countyhub/go-minisite/internal/migrations"
	"github.com/countyhub/go-minisite/internal/runtimeconfig"
	minisitephotos "github.com/countyhub/go-minisite/photos"
)

func TestContainerOpensSQLiteAndMigrates(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Storage.Provider = runtimeconfig.StorageSQLite
	cfg.Storage.DSN = "file::memory:?cache=shared&_fk=1"
	cfg.Storage.AutoMigrate = true

	container, err := di.NewContainer(cfg, di.WithMigrations(minisite.GetMigrationsFS()))
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Close(); err != nil {
			t.Errorf("close: %v", err)
		}
	})

	if container.BunDB() == nil {
		t.Fatal("expected the container to open a database")
	}

	ctx := context.Background()
	editor, err := container.EditorService().NewPage(diner)
	if err != nil {
		t.Fatalf("new page: %v", err)
	}
	editor.SetTitle("Catering")
	editor.SetPublished(true)
	editor.SetAddToNavigation(true)
	if err := editor.Save(ctx); err != nil {
		t.Fatalf("save: %v", err)
	}

	if _, err := container.PhotoService().Add(ctx, minisitephotos.AddPhotoRequest{Owner: diner, URL: "https://cdn.test/a.jpg"}); err != nil {
		t.Fatalf("add photo: %v", err)
	}

	page, err := container.PageService().Get(ctx, diner, editor.State().ID)
	if err != nil {
		t.Fatalf("get page: %v", err)
	}
	if page.Slug != "catering" {
		t.Fatalf("expected slug catering, got %q", page.Slug)
	}
	items, err := container.NavigationService().List(ctx, diner)
	if err != nil || len(items) != 1 {
		t.Fatalf("expected one persisted navigation item, got %d (%v)", len(items), err)
	}
	list, err := container.PhotoService().List(ctx, diner)
	if err != nil || len(list) != 1 {
		t.Fatalf("expected one persisted photo, got %d (%v)", len(list), err)
	}
}

func TestContainerAutoMigrateRequiresMigrations(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Storage.Provider = runtimeconfig.StorageSQLite
	cfg.Storage.DSN = ":memory:"
	cfg.Storage.AutoMigrate = true

	if _, err := di.NewContainer(cfg); !errors.Is(err, migrations.ErrMigrationsRequired) {
		t.Fatalf("expected ErrMigrationsRequired, got %v", err)
	}
}
