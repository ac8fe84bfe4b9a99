package editor_test

import (
	"context"
	"errors"
	"testing"

	"github.com/countyhub/go-minisite/entity"
	navcmd "github.com/countyhub/go-minisite/internal/commands/navigation"
	pagescmd "github.com/countyhub/go-minisite/internal/commands/pages"
	"github.com/countyhub/go-minisite/internal/editor"
	"github.com/countyhub/go-minisite/internal/identity"
	"github.com/countyhub/go-minisite/internal/navigation"
	"github.com/countyhub/go-minisite/internal/pages"
	"github.com/countyhub/go-minisite/sections"
	command "github.com/goliatone/go-command"
	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

var school = entity.School("lincoln-elementary")

type harness struct {
	pages  pages.Service
	nav    navigation.Service
	editor *editor.Service
}

func newHarness(t *testing.T) harness {
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
	svc, err := editor.NewService(pageSvc, navSvc, editor.Commands{
		SavePage:         pageCmds.Save,
		SaveNavigation:   navCmds.Save,
		DeleteNavigation: navCmds.Delete,
	})
	if err != nil {
		t.Fatalf("editor service: %v", err)
	}
	return harness{pages: pageSvc, nav: navSvc, editor: svc}
}

func TestNewServiceRequiresCommands(t *testing.T) {
	h := newHarness(t)
	if _, err := editor.NewService(h.pages, h.nav, editor.Commands{}); !errors.Is(err, editor.ErrCommandsRequired) {
		t.Fatalf("expected ErrCommandsRequired, got %v", err)
	}
}

func TestSlugFollowsTitleUntilEditedByHand(t *testing.T) {
	h := newHarness(t)
	pe, err := h.editor.NewPage(school)
	if err != nil {
		t.Fatalf("new page: %v", err)
	}

	pe.SetTitle("Bus Routes & Times!")
	if got := pe.State().Slug; got != "bus-routes-times" {
		t.Fatalf("expected derived slug, got %q", got)
	}
	pe.SetSlug("buses")
	pe.SetTitle("Bus Routes 2026")
	if got := pe.State().Slug; got != "buses" {
		t.Fatalf("expected manual slug to stick, got %q", got)
	}
}

func TestEditingExistingPageNeverRederivesSlug(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	pe, _ := h.editor.NewPage(school)
	pe.SetTitle("Lunch Menu")
	if err := pe.Save(ctx); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := h.editor.LoadPage(ctx, school, pe.State().ID)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	loaded.SetTitle("Cafeteria")
	if got := loaded.State().Slug; got != "lunch-menu" {
		t.Fatalf("expected slug unchanged on edit, got %q", got)
	}
}

func TestSectionOperations(t *testing.T) {
	h := newHarness(t)
	pe, _ := h.editor.NewPage(school)

	hero, err := pe.AddSection(sections.TypeHero)
	if err != nil {
		t.Fatalf("add hero: %v", err)
	}
	text, err := pe.AddSection(sections.TypeText)
	if err != nil {
		t.Fatalf("add text: %v", err)
	}
	if _, err := pe.AddSection("carousel"); !errors.Is(err, sections.ErrUnknownType) {
		t.Fatalf("expected ErrUnknownType, got %v", err)
	}

	if err := pe.UpdateSection(text.ID, sections.Text{Heading: "Hours"}); err != nil {
		t.Fatalf("update: %v", err)
	}
	pe.MoveSectionUp(0)
	pe.MoveSectionDown(1)
	pe.MoveSectionUp(1)

	list := pe.Sections()
	if len(list) != 2 || list[0].ID != text.ID || list[1].ID != hero.ID {
		t.Fatalf("expected text before hero, got %+v", list)
	}
	if got := list[0].Content.(sections.Text); got.Heading != "Hours" || got.Body != "" {
		t.Fatalf("expected wholesale replacement, got %+v", got)
	}

	if err := pe.DeleteSection(hero.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := pe.DeleteSection(hero.ID); !errors.Is(err, sections.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestNavigationToggleCreatesUpdatesAndRemovesItem(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	pe, _ := h.editor.NewPage(school)
	pe.SetTitle("Calendar")
	pe.SetPublished(true)
	pe.SetAddToNavigation(true)
	if err := pe.Save(ctx); err != nil {
		t.Fatalf("first save: %v", err)
	}
	pageID := pe.State().ID

	items, err := h.nav.List(ctx, school)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected one nav item, got %d", len(items))
	}
	item := items[0]
	if item.ID != identity.AutoNavigationItemUUID(school, pageID) {
		t.Fatalf("expected deterministic auto item id, got %s", item.ID)
	}
	if item.Label != "Calendar" || !item.TargetsPage(pageID) {
		t.Fatalf("unexpected auto item %+v", item)
	}
	if item.AutoManagedForPageID == nil || *item.AutoManagedForPageID != pageID {
		t.Fatalf("expected auto_managed_for_page_id %s", pageID)
	}

	pe.SetNavigationLabel("Events")
	if err := pe.Save(ctx); err != nil {
		t.Fatalf("second save: %v", err)
	}
	items, _ = h.nav.List(ctx, school)
	if len(items) != 1 || items[0].Label != "Events" {
		t.Fatalf("expected the same item relabelled, got %+v", items)
	}

	reloaded, err := h.editor.LoadPage(ctx, school, pageID)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	state := reloaded.State()
	if !state.AddToNavigation || state.NavigationLabel != "Events" {
		t.Fatalf("expected toggle restored from stored item, got %+v", state)
	}

	reloaded.SetAddToNavigation(false)
	if err := reloaded.Save(ctx); err != nil {
		t.Fatalf("toggle off save: %v", err)
	}
	items, _ = h.nav.List(ctx, school)
	if len(items) != 0 {
		t.Fatalf("expected auto item removed, got %d items", len(items))
	}
	if reloaded.State().NavigationItem != nil {
		t.Fatalf("expected editor to forget the deleted item")
	}
}

func TestFailedSaveKeepsWorkingCopy(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	first, _ := h.editor.NewPage(school)
	first.SetTitle("Staff")
	if err := first.Save(ctx); err != nil {
		t.Fatalf("save first: %v", err)
	}

	second, _ := h.editor.NewPage(school)
	second.SetTitle("Staff")
	if _, err := second.AddSection(sections.TypeText); err != nil {
		t.Fatalf("add section: %v", err)
	}
	err := second.Save(ctx)
	if !goerrors.IsCategory(err, goerrors.CategoryConflict) {
		t.Fatalf("expected slug conflict, got %v", err)
	}
	state := second.State()
	if !state.IsNew || state.Title != "Staff" || len(state.Sections) != 1 {
		t.Fatalf("expected working copy retained, got %+v", state)
	}

	second.SetSlug("staff-directory")
	if err := second.Save(ctx); err != nil {
		t.Fatalf("retry save: %v", err)
	}
	if second.State().IsNew {
		t.Fatalf("expected page to be persisted after retry")
	}
}

func TestOpenPageStartsNewPageWithGivenID(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	id := uuid.New()

	pe, err := h.editor.OpenPage(ctx, school, id)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if !pe.State().IsNew || pe.State().ID != id {
		t.Fatalf("expected new page with id %s, got %+v", id, pe.State())
	}
	pe.SetTitle("About")
	if err := pe.Save(ctx); err != nil {
		t.Fatalf("save: %v", err)
	}

	again, err := h.editor.OpenPage(ctx, school, id)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if again.State().IsNew {
		t.Fatalf("expected existing page on reopen")
	}
}

func TestLoadPageOfAnotherListingIsNotFound(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	pe, _ := h.editor.NewPage(school)
	pe.SetTitle("About")
	if err := pe.Save(ctx); err != nil {
		t.Fatalf("save: %v", err)
	}

	_, err := h.editor.LoadPage(ctx, entity.School("other"), pe.State().ID)
	if !errors.Is(err, pages.ErrPageNotFound) {
		t.Fatalf("expected ErrPageNotFound, got %v", err)
	}
}

func TestUpdateSectionRejectsNilPayload(t *testing.T) {
	h := newHarness(t)
	pe, _ := h.editor.NewPage(school)
	text, err := pe.AddSection(sections.TypeText)
	if err != nil {
		t.Fatalf("add text: %v", err)
	}

	if err := pe.UpdateSection(text.ID, nil); !errors.Is(err, sections.ErrUnknownType) {
		t.Fatalf("expected ErrUnknownType, got %v", err)
	}
	if got := pe.Sections()[0]; got.Type() != sections.TypeText {
		t.Fatalf("expected section left untouched, got %+v", got)
	}
}

func TestSaveLocksSlugWhenNavigationStepFails(t *testing.T) {
	ctx := context.Background()
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
	outage := errors.New("navigation store unavailable")
	svc, err := editor.NewService(pageSvc, navSvc, editor.Commands{
		SavePage: pageCmds.Save,
		SaveNavigation: command.CommandFunc[navcmd.SaveItemCommand](func(context.Context, navcmd.SaveItemCommand) error {
			return outage
		}),
		DeleteNavigation: navCmds.Delete,
	})
	if err != nil {
		t.Fatalf("editor service: %v", err)
	}

	pe, _ := svc.NewPage(school)
	pe.SetTitle("Field Trips")
	pe.SetAddToNavigation(true)
	if err := pe.Save(ctx); !errors.Is(err, outage) {
		t.Fatalf("expected navigation failure, got %v", err)
	}
	if _, err := pageSvc.Get(ctx, school, pe.State().ID); err != nil {
		t.Fatalf("expected page persisted before navigation step: %v", err)
	}

	state := pe.State()
	if state.IsNew || !state.SlugLocked {
		t.Fatalf("expected persisted page state, got IsNew=%t SlugLocked=%t", state.IsNew, state.SlugLocked)
	}
	pe.SetTitle("Class Trips")
	if got := pe.State().Slug; got != "field-trips" {
		t.Fatalf("expected slug kept after partial save, got %q", got)
	}
}
