package editor_test

import (
	"context"
	"testing"

	"github.com/countyhub/go-minisite/internal/editor"
	"github.com/countyhub/go-minisite/internal/navigation"
	"github.com/google/uuid"
)

func TestDashboardListsEverythingAndNestsChildren(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	draft, _ := h.editor.NewPage(school)
	draft.SetTitle("Draft Notes")
	draft.SetOrder(1)
	if err := draft.Save(ctx); err != nil {
		t.Fatalf("save draft: %v", err)
	}
	live, _ := h.editor.NewPage(school)
	live.SetTitle("Welcome")
	live.SetPublished(true)
	if err := live.Save(ctx); err != nil {
		t.Fatalf("save live: %v", err)
	}

	parent, err := h.editor.NewNavigation(ctx, school, nil)
	if err != nil {
		t.Fatalf("new parent: %v", err)
	}
	parent.SetLabel("About")
	if err := parent.SetPage(live.State().ID); err != nil {
		t.Fatalf("set page: %v", err)
	}
	if err := parent.Save(ctx); err != nil {
		t.Fatalf("save parent: %v", err)
	}
	parentID := parent.State().ID

	child, err := h.editor.NewNavigation(ctx, school, &parentID)
	if err != nil {
		t.Fatalf("new child: %v", err)
	}
	child.SetLabel("PTA")
	if err := child.SetLinkType(navigation.LinkTypeExternal); err != nil {
		t.Fatalf("link type: %v", err)
	}
	child.SetExternalURL("https://pta.example")
	child.SetVisible(false)
	if err := child.Save(ctx); err != nil {
		t.Fatalf("save child: %v", err)
	}

	dashboard := h.editor.Dashboard()
	view, err := dashboard.Open(ctx, school)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if len(view.Pages) != 2 || view.Pages[0].Title != "Welcome" {
		t.Fatalf("expected both pages ordered, got %d", len(view.Pages))
	}
	if len(view.Navigation) != 1 || len(view.Navigation[0].Children) != 1 {
		t.Fatalf("expected one parent with one hidden child, got %+v", view.Navigation)
	}
	if view.Navigation[0].Children[0].IsVisible {
		t.Fatalf("expected hidden child to be listed")
	}

	intent := dashboard.NewNavigation(school, &parentID)
	if intent.Kind != editor.IntentNewNavigation || intent.ParentID == nil || *intent.ParentID != parentID {
		t.Fatalf("unexpected intent %+v", intent)
	}
	if got := dashboard.EditPage(school, live.State().ID); got.Kind != editor.IntentEditPage || got.PageID != live.State().ID {
		t.Fatalf("unexpected edit intent %+v", got)
	}

	if err := dashboard.DeleteNavigation(ctx, school, parentID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	view, err = dashboard.Open(ctx, school)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if len(view.Navigation) != 0 {
		t.Fatalf("expected parent and child removed, got %+v", view.Navigation)
	}
}

func TestNestKeepsOrphansReachable(t *testing.T) {
	missing := uuid.New()
	items := []*navigation.Item{
		{ID: uuid.New(), Label: "Top"},
		{ID: uuid.New(), Label: "Orphan", ParentID: &missing},
	}
	nodes := editor.Nest(items)
	if len(nodes) != 2 || nodes[1].Item.Label != "Orphan" {
		t.Fatalf("expected orphan at top level, got %+v", nodes)
	}
}

func TestNavigationEditorRestrictsChoices(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	ne, err := h.editor.NewNavigation(ctx, school, nil)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := ne.SetPage(uuid.New()); err != editor.ErrPageNotOption {
		t.Fatalf("expected ErrPageNotOption, got %v", err)
	}
	missing := uuid.New()
	if err := ne.SetParent(&missing); err != editor.ErrParentNotOption {
		t.Fatalf("expected ErrParentNotOption, got %v", err)
	}
	if err := ne.SetLinkType("map"); err != navigation.ErrLinkTypeInvalid {
		t.Fatalf("expected ErrLinkTypeInvalid, got %v", err)
	}
	if _, err := h.editor.NewNavigation(ctx, school, &missing); err != editor.ErrParentNotOption {
		t.Fatalf("expected unknown parent to be rejected, got %v", err)
	}

	ne.SetLabel("Nowhere")
	if err := ne.Save(ctx); err == nil {
		t.Fatalf("expected page link without page to fail")
	}
	if ne.State().Label != "Nowhere" || !ne.State().IsNew {
		t.Fatalf("expected working copy retained after failed save")
	}
}
