package markdown_test

import (
	"context"
	"errors"
	"testing"

	"github.com/countyhub/go-minisite/entity"
	navcmd "github.com/countyhub/go-minisite/internal/commands/navigation"
	pagescmd "github.com/countyhub/go-minisite/internal/commands/pages"
	"github.com/countyhub/go-minisite/internal/editor"
	"github.com/countyhub/go-minisite/internal/identity"
	"github.com/countyhub/go-minisite/internal/markdown"
	"github.com/countyhub/go-minisite/internal/navigation"
	"github.com/countyhub/go-minisite/internal/pages"
	"github.com/countyhub/go-minisite/sections"
)

var firehouse = entity.Service("station-4")

type importHarness struct {
	pages   pages.Service
	nav     navigation.Service
	service *markdown.Service
}

func newImportHarness(t *testing.T) importHarness {
	t.Helper()
	pageSvc := pages.NewService(pages.NewMemoryPageRepository())
	navSvc := navigation.NewService(navigation.NewMemoryItemRepository(), navigation.WithPageLookup(pageSvc))
	pageCmds, err := pagescmd.RegisterPageCommands(nil, pageSvc, nil, nil)
	if err != nil {
		t.Fatalf("page commands: %v", err)
	}
	navCmds, err := navcmd.RegisterNavigationCommands(nil, navSvc, nil, nil)
	if err != nil {
		t.Fatalf("navigation commands: %v", err)
	}
	editorSvc, err := editor.NewService(pageSvc, navSvc, editor.Commands{
		SavePage:         pageCmds.Save,
		SaveNavigation:   navCmds.Save,
		DeleteNavigation: navCmds.Delete,
	})
	if err != nil {
		t.Fatalf("editor: %v", err)
	}
	svc, err := markdown.NewService(markdown.Config{BasePath: "testdata"}, markdown.NewImporter(editorSvc, nil))
	if err != nil {
		t.Fatalf("markdown service: %v", err)
	}
	return importHarness{pages: pageSvc, nav: navSvc, service: svc}
}

func TestImportDirectoryCreatesPagesAndNavigation(t *testing.T) {
	h := newImportHarness(t)
	ctx := context.Background()

	result, err := h.service.ImportDirectory(ctx, firehouse, "firehouse", markdown.ImportOptions{})
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if len(result.Created) != 3 || len(result.Updated) != 0 {
		t.Fatalf("expected 3 created pages, got %+v", result)
	}

	about, err := h.pages.Get(ctx, firehouse, identity.ImportedPageUUID(firehouse, "about"))
	if err != nil {
		t.Fatalf("get about: %v", err)
	}
	if about.Slug != "about" {
		t.Fatalf("expected slug from front matter, got %q", about.Slug)
	}
	if about.Title != "About Station 4" || !about.IsPublished || about.Order != 1 {
		t.Fatalf("unexpected about page %+v", about)
	}
	if about.MetaDescription != "Volunteer fire company serving the north county." {
		t.Fatalf("unexpected meta description %q", about.MetaDescription)
	}
	list := about.Content.Sections
	if len(list) != 3 {
		t.Fatalf("expected intro and two sections, got %d", len(list))
	}
	if heading := list[1].Content.(sections.Text).Heading; heading != "Apparatus" {
		t.Fatalf("unexpected second section heading %q", heading)
	}

	item, err := h.nav.FindAutoManaged(ctx, firehouse, about.ID)
	if err != nil {
		t.Fatalf("expected navigation item for about page: %v", err)
	}
	if item.Label != "About Us" || item.Order != 2 {
		t.Fatalf("unexpected navigation item %+v", item)
	}

	breakfast, err := h.pages.Get(ctx, firehouse, identity.ImportedPageUUID(firehouse, "pancake-breakfast"))
	if err != nil {
		t.Fatalf("get breakfast: %v", err)
	}
	if breakfast.Title != "Pancake Breakfast" || !breakfast.IsHomepage {
		t.Fatalf("expected title from heading and homepage flag, got %+v", breakfast)
	}
	if item, err := h.nav.FindAutoManaged(ctx, firehouse, breakfast.ID); err != nil || item.Label != "Pancake Breakfast" {
		t.Fatalf("expected navigation label to default to the title, got %+v %v", item, err)
	}

	draft, err := h.pages.Get(ctx, firehouse, identity.ImportedPageUUID(firehouse, "draft-notes"))
	if err != nil {
		t.Fatalf("get draft: %v", err)
	}
	if draft.IsPublished {
		t.Fatalf("expected draft to stay unpublished")
	}
	if _, err := h.nav.FindAutoManaged(ctx, firehouse, draft.ID); !errors.Is(err, navigation.ErrItemNotFound) {
		t.Fatalf("expected no navigation item for draft, got %v", err)
	}
}

func TestReimportUpdatesInPlace(t *testing.T) {
	h := newImportHarness(t)
	ctx := context.Background()

	if _, err := h.service.ImportDirectory(ctx, firehouse, "firehouse", markdown.ImportOptions{}); err != nil {
		t.Fatalf("first import: %v", err)
	}
	result, err := h.service.ImportDirectory(ctx, firehouse, "firehouse", markdown.ImportOptions{})
	if err != nil {
		t.Fatalf("second import: %v", err)
	}
	if len(result.Created) != 0 || len(result.Updated) != 3 {
		t.Fatalf("expected all pages updated on reimport, got %+v", result)
	}
	all, err := h.pages.List(ctx, firehouse)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected no duplicate pages, got %d", len(all))
	}
	items, err := h.nav.List(ctx, firehouse)
	if err != nil {
		t.Fatalf("list navigation: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected no duplicate navigation items, got %d", len(items))
	}
}

func TestImportDryRunSavesNothing(t *testing.T) {
	h := newImportHarness(t)
	ctx := context.Background()

	result, err := h.service.ImportDirectory(ctx, firehouse, "firehouse", markdown.ImportOptions{DryRun: true})
	if err != nil {
		t.Fatalf("dry run: %v", err)
	}
	if len(result.Skipped) != 3 || len(result.Created) != 0 {
		t.Fatalf("expected every document to be skipped, got %+v", result)
	}
	all, err := h.pages.List(ctx, firehouse)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 0 {
		t.Fatalf("expected no pages after dry run, got %d", len(all))
	}
}

func TestImportRequiresValidOwner(t *testing.T) {
	h := newImportHarness(t)
	if _, err := h.service.ImportDirectory(context.Background(), entity.Ref{}, "firehouse", markdown.ImportOptions{}); err == nil {
		t.Fatalf("expected owner validation error")
	}
}
