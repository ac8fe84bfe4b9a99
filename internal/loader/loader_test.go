package loader_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/countyhub/go-minisite/entity"
	"github.com/countyhub/go-minisite/internal/loader"
	"github.com/countyhub/go-minisite/internal/navigation"
	"github.com/countyhub/go-minisite/internal/pages"
	"github.com/countyhub/go-minisite/internal/photos"
	minisitenav "github.com/countyhub/go-minisite/navigation"
	minisitepages "github.com/countyhub/go-minisite/pages"
	minisitephotos "github.com/countyhub/go-minisite/photos"
	"github.com/google/uuid"
)

var school = entity.School("lincoln-elementary")

type stores struct {
	pages  pages.Service
	nav    navigation.Service
	photos photos.Service
}

func newStores() stores {
	pageSvc := pages.NewService(pages.NewMemoryPageRepository())
	return stores{
		pages:  pageSvc,
		nav:    navigation.NewService(navigation.NewMemoryItemRepository(), navigation.WithPageLookup(pageSvc)),
		photos: photos.NewService(photos.NewMemoryPhotoRepository()),
	}
}

func (s stores) savePage(t *testing.T, req pages.SavePageRequest) *pages.Page {
	t.Helper()
	req.Owner = school
	page, err := s.pages.Save(context.Background(), req)
	if err != nil {
		t.Fatalf("save page %q: %v", req.Title, err)
	}
	return page
}

func TestLoadFiltersAndSorts(t *testing.T) {
	ctx := context.Background()
	s := newStores()

	s.savePage(t, pages.SavePageRequest{Title: "Draft", Order: 0})
	late := s.savePage(t, pages.SavePageRequest{Title: "Later", Order: 5, IsPublished: true, IsHomepage: true})
	early := s.savePage(t, pages.SavePageRequest{Title: "Earlier", Order: 2, IsPublished: true, IsHomepage: true})

	if _, err := s.nav.Save(ctx, navigation.SaveItemRequest{Owner: school, Label: "Hidden", LinkType: navigation.LinkTypeExternal, ExternalURL: "https://x.test", Order: 0}); err != nil {
		t.Fatalf("save hidden nav: %v", err)
	}
	for i, page := range []*pages.Page{late, early} {
		if _, err := s.nav.Save(ctx, navigation.SaveItemRequest{Owner: school, Label: page.Title, LinkType: navigation.LinkTypePage, PageID: &page.ID, Order: 2 - i, IsVisible: true}); err != nil {
			t.Fatalf("save nav: %v", err)
		}
	}
	for _, order := range []int{3, 1} {
		o := order
		if _, err := s.photos.Add(ctx, photos.AddPhotoRequest{Owner: school, URL: "/p.jpg", Order: &o}); err != nil {
			t.Fatalf("add photo: %v", err)
		}
	}

	content := loader.New(s.pages, s.nav, s.photos).Load(ctx, loader.Request{
		Owner: school,
		Link:  navigation.LinkContext{TownSlug: "hillview", ListingSlug: "lincoln-elementary"},
	})

	if len(content.Pages) != 2 {
		t.Fatalf("expected 2 published pages, got %d", len(content.Pages))
	}
	for _, page := range content.Pages {
		if !page.IsPublished {
			t.Fatalf("unpublished page leaked: %+v", page)
		}
	}
	if content.Pages[0].ID != early.ID {
		t.Fatalf("expected pages sorted by order")
	}
	if content.Homepage == nil || content.Homepage.ID != early.ID {
		t.Fatalf("expected homepage with order 2, got %+v", content.Homepage)
	}
	if len(content.NavItems) != 2 || content.NavItems[0].Label != "Earlier" {
		t.Fatalf("unexpected nav items %+v", content.NavItems)
	}
	if len(content.Tabs) != 2 || content.Tabs[0].URL != "/hillview/lincoln-elementary" {
		t.Fatalf("unexpected tabs %+v", content.Tabs)
	}
	if content.Photos[0].Order != 1 || content.Photos[1].Order != 3 {
		t.Fatalf("expected photos sorted by order")
	}
	if len(content.Degraded) != 0 {
		t.Fatalf("unexpected degraded collections %v", content.Degraded)
	}
	if got := content.PageBySlug("later"); got == nil || got.ID != late.ID {
		t.Fatalf("expected PageBySlug to find later, got %+v", got)
	}
	if got := content.PageBySlug(""); got != content.Homepage {
		t.Fatalf("expected empty slug to select the homepage")
	}
	if got := content.PageBySlug("draft"); got != nil {
		t.Fatalf("expected unpublished page to be unreachable by slug")
	}
}

type failingPhotos struct{}

func (failingPhotos) List(context.Context, entity.Ref) ([]*minisitephotos.Photo, error) {
	return nil, errors.New("photos table missing")
}

func TestLoadDegradesFailedCollection(t *testing.T) {
	s := newStores()
	s.savePage(t, pages.SavePageRequest{Title: "Home", IsPublished: true})

	content := loader.New(s.pages, s.nav, failingPhotos{}).Load(context.Background(), loader.Request{Owner: school})
	if len(content.Pages) != 1 {
		t.Fatalf("expected pages to load despite photo failure")
	}
	if content.Photos == nil || len(content.Photos) != 0 {
		t.Fatalf("expected empty photo list, got %+v", content.Photos)
	}
	if len(content.Degraded) != 1 || content.Degraded[0] != loader.CollectionPhotos {
		t.Fatalf("unexpected degraded list %v", content.Degraded)
	}
}

func TestSelectHomepage(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	a := &minisitepages.Page{ID: uuid.New(), IsPublished: true, IsHomepage: true, Order: 1, CreatedAt: base.Add(time.Hour)}
	b := &minisitepages.Page{ID: uuid.New(), IsPublished: true, IsHomepage: true, Order: 1, CreatedAt: base}
	hidden := &minisitepages.Page{ID: uuid.New(), IsHomepage: true, Order: 0}
	plain := &minisitepages.Page{ID: uuid.New(), IsPublished: true, Order: 0}

	if got := loader.SelectHomepage([]*minisitepages.Page{a, hidden, b, plain}); got != b {
		t.Fatalf("expected tie broken by creation time, got %+v", got)
	}
	if got := loader.SelectHomepage([]*minisitepages.Page{hidden, plain}); got != plain {
		t.Fatalf("expected fallback to first published page, got %+v", got)
	}
	if got := loader.SelectHomepage([]*minisitepages.Page{hidden}); got != nil {
		t.Fatalf("expected nil when nothing is published")
	}
}

func TestVisibleItemsDropsHidden(t *testing.T) {
	items := []*minisitenav.Item{
		{ID: uuid.New(), Order: 2, IsVisible: true},
		{ID: uuid.New(), Order: 1},
		{ID: uuid.New(), Order: 0, IsVisible: true},
	}
	got := loader.VisibleItems(items)
	if len(got) != 2 || got[0].Order != 0 {
		t.Fatalf("unexpected visible items %+v", got)
	}
}
