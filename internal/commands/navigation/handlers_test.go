package navcmd

import (
	"context"
	"testing"

	"github.com/countyhub/go-minisite/entity"
	"github.com/countyhub/go-minisite/internal/commands"
	"github.com/countyhub/go-minisite/internal/commands/fixtures"
	"github.com/countyhub/go-minisite/internal/navigation"
	"github.com/countyhub/go-minisite/internal/pages"
	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

var church = entity.Church("st-marks")

type fixture struct {
	pages pages.Service
	nav   navigation.Service
}

func newFixture() fixture {
	pageSvc := pages.NewService(pages.NewMemoryPageRepository())
	return fixture{
		pages: pageSvc,
		nav:   navigation.NewService(navigation.NewMemoryItemRepository(), navigation.WithPageLookup(pageSvc)),
	}
}

func externalItem(id uuid.UUID, label string) SaveItemCommand {
	return SaveItemCommand{
		ItemID:      id,
		EntityType:  string(church.Type),
		EntityID:    church.ID,
		Label:       label,
		LinkType:    string(navigation.LinkTypeExternal),
		ExternalURL: "https://stmarks.example/donate",
		IsVisible:   true,
	}
}

func TestSaveItemHandlerUpsertsByID(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	handler := NewSaveItemHandler(f.nav, commands.CommandLogger(nil, "navigation"))

	id := uuid.New()
	if err := handler.Execute(ctx, externalItem(id, "Donate")); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := handler.Execute(ctx, externalItem(id, "Give")); err != nil {
		t.Fatalf("update: %v", err)
	}

	items, err := f.nav.List(ctx, church)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 1 || items[0].Label != "Give" {
		t.Fatalf("expected one item labelled Give, got %+v", items)
	}
}

func TestSaveItemHandlerValidatesLinkRules(t *testing.T) {
	handler := NewSaveItemHandler(newFixture().nav, nil)
	self := uuid.New()

	cases := map[string]SaveItemCommand{
		"page link without page": {
			ItemID: uuid.New(), EntityType: "church", EntityID: "st-marks",
			Label: "About", LinkType: "page",
		},
		"external link without url": {
			ItemID: uuid.New(), EntityType: "church", EntityID: "st-marks",
			Label: "Donate", LinkType: "external",
		},
		"unknown link type": {
			ItemID: uuid.New(), EntityType: "church", EntityID: "st-marks",
			Label: "Map", LinkType: "map",
		},
		"own parent": {
			ItemID: self, EntityType: "church", EntityID: "st-marks",
			Label: "Loop", LinkType: "external", ExternalURL: "https://x.example", ParentID: &self,
		},
	}
	for name, msg := range cases {
		t.Run(name, func(t *testing.T) {
			err := handler.Execute(context.Background(), msg)
			if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
				t.Fatalf("expected validation category, got %v", err)
			}
		})
	}
}

func TestSaveItemHandlerMapsServiceErrors(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	handler := NewSaveItemHandler(f.nav, nil)

	missing := uuid.New()
	msg := SaveItemCommand{
		ItemID:     uuid.New(),
		EntityType: string(church.Type),
		EntityID:   church.ID,
		Label:      "Ghost",
		LinkType:   string(navigation.LinkTypePage),
		PageID:     &missing,
	}
	err := handler.Execute(ctx, msg)
	if code := commands.TextCode(err); code != codeNavigationPageNotFound {
		t.Fatalf("expected %s, got %q (%v)", codeNavigationPageNotFound, code, err)
	}

	bad := externalItem(uuid.New(), "Donate")
	bad.ExternalURL = "ftp://stmarks.example"
	err = handler.Execute(ctx, bad)
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category for bad url, got %v", err)
	}
}

func TestDeleteItemHandler(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	set, err := RegisterNavigationCommands(fixtures.NewRecordingRegistry(), f.nav, nil, nil)
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	id := uuid.New()
	if err := set.Save.Execute(ctx, externalItem(id, "Donate")); err != nil {
		t.Fatalf("save: %v", err)
	}
	del := DeleteItemCommand{ItemID: id, EntityType: string(church.Type), EntityID: church.ID}
	if err := set.Delete.Execute(ctx, del); err != nil {
		t.Fatalf("delete: %v", err)
	}
	err = set.Delete.Execute(ctx, del)
	if !goerrors.IsCategory(err, goerrors.CategoryNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}
