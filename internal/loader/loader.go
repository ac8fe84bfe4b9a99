package loader

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/countyhub/go-minisite/entity"
	"github.com/countyhub/go-minisite/internal/logging"
	"github.com/countyhub/go-minisite/internal/metrics"
	"github.com/countyhub/go-minisite/internal/navigation"
	minisitenav "github.com/countyhub/go-minisite/navigation"
	minisitepages "github.com/countyhub/go-minisite/pages"
	minisitephotos "github.com/countyhub/go-minisite/photos"
	"github.com/countyhub/go-minisite/pkg/interfaces"
)

// Collection names used in logs, metrics and Content.Degraded.
const (
	CollectionPages      = "pages"
	CollectionNavigation = "navigation"
	CollectionPhotos     = "photos"
)

type PageLister interface {
	List(ctx context.Context, owner entity.Ref) ([]*minisitepages.Page, error)
}

type NavigationLister interface {
	List(ctx context.Context, owner entity.Ref) ([]*minisitenav.Item, error)
}

type PhotoLister interface {
	List(ctx context.Context, owner entity.Ref) ([]*minisitephotos.Photo, error)
}

// Request identifies the listing to load. Link is only used to build tab
// URLs.
type Request struct {
	Owner entity.Ref
	Link  navigation.LinkContext
}

// Content is the display state of a mini-site: published pages, visible
// navigation and photos, each sorted by order.
type Content struct {
	Owner    entity.Ref
	Pages    []*minisitepages.Page
	NavItems []*minisitenav.Item
	Tabs     []navigation.Tab
	Photos   []*minisitephotos.Photo
	Homepage *minisitepages.Page
	// Degraded lists the collections whose read failed and were emptied.
	Degraded []string
}

type Option func(*Loader)

func WithLogger(logger interfaces.Logger) Option {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

func WithMetrics(recorder metrics.Recorder) Option {
	return func(l *Loader) {
		if recorder != nil {
			l.metrics = recorder
		}
	}
}

func WithURLResolver(resolver navigation.URLResolver) Option {
	return func(l *Loader) {
		if resolver != nil {
			l.urls = resolver
		}
	}
}

// Loader reads the three mini-site collections of a listing.
type Loader struct {
	pages   PageLister
	nav     NavigationLister
	photos  PhotoLister
	urls    navigation.URLResolver
	logger  interfaces.Logger
	metrics metrics.Recorder
}

func New(pages PageLister, nav NavigationLister, photos PhotoLister, opts ...Option) *Loader {
	l := &Loader{
		pages:   pages,
		nav:     nav,
		photos:  photos,
		urls:    navigation.PathResolver{},
		logger:  logging.NoOp(),
		metrics: metrics.NoOp(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load issues the three reads concurrently and waits for all of them. A
// failed read is logged and leaves its collection empty; Load itself does
// not fail.
func (l *Loader) Load(ctx context.Context, req Request) Content {
	logger := logging.WithOwner(l.logger.WithContext(ctx), req.Owner)

	var (
		wg        sync.WaitGroup
		pageList  []*minisitepages.Page
		navList   []*minisitenav.Item
		photoList []*minisitephotos.Photo
		pageErr   error
		navErr    error
		photoErr  error
	)
	wg.Add(3)
	go func() {
		defer wg.Done()
		pageList, pageErr = l.pages.List(ctx, req.Owner)
	}()
	go func() {
		defer wg.Done()
		navList, navErr = l.nav.List(ctx, req.Owner)
	}()
	go func() {
		defer wg.Done()
		photoList, photoErr = l.photos.List(ctx, req.Owner)
	}()
	wg.Wait()

	content := Content{Owner: req.Owner}
	degrade := func(collection string, err error) bool {
		if err == nil {
			return false
		}
		logger.Warn("loader.read_failed", "collection", collection, "error", err)
		l.metrics.LoadFailure(collection)
		content.Degraded = append(content.Degraded, collection)
		return true
	}

	if !degrade(CollectionPages, pageErr) {
		content.Pages = PublishedPages(pageList)
	}
	if !degrade(CollectionNavigation, navErr) {
		content.NavItems = VisibleItems(navList)
	}
	if !degrade(CollectionPhotos, photoErr) {
		content.Photos = slices.Clone(photoList)
		minisitephotos.SortByOrder(content.Photos)
	}
	if content.Pages == nil {
		content.Pages = []*minisitepages.Page{}
	}
	if content.NavItems == nil {
		content.NavItems = []*minisitenav.Item{}
	}
	if content.Photos == nil {
		content.Photos = []*minisitephotos.Photo{}
	}

	content.Homepage = SelectHomepage(content.Pages)
	content.Tabs = navigation.ResolveTabs(ctx, navigation.TabInput{
		Items:    content.NavItems,
		Pages:    content.Pages,
		Homepage: content.Homepage,
		Link:     req.Link,
		Resolver: l.urls,
	})

	logger.Debug("loader.loaded",
		"pages", len(content.Pages),
		"navigation", len(content.NavItems),
		"photos", len(content.Photos),
		"degraded", len(content.Degraded),
	)
	return content
}

// PublishedPages returns the published pages sorted by order.
func PublishedPages(list []*minisitepages.Page) []*minisitepages.Page {
	out := make([]*minisitepages.Page, 0, len(list))
	for _, page := range list {
		if page != nil && page.IsPublished {
			out = append(out, page)
		}
	}
	minisitepages.SortByOrder(out)
	return out
}

// VisibleItems returns the visible navigation items sorted by order.
func VisibleItems(list []*minisitenav.Item) []*minisitenav.Item {
	out := make([]*minisitenav.Item, 0, len(list))
	for _, item := range list {
		if item != nil && item.IsVisible {
			out = append(out, item)
		}
	}
	minisitenav.SortByOrder(out)
	return out
}

// SelectHomepage picks the published homepage: the flagged page with the
// lowest (order, created_at, id), or the first published page when none is
// flagged. Unpublished pages are never chosen.
func SelectHomepage(list []*minisitepages.Page) *minisitepages.Page {
	var (
		flagged *minisitepages.Page
		first   *minisitepages.Page
	)
	for _, page := range list {
		if page == nil || !page.IsPublished {
			continue
		}
		if first == nil || minisitepages.ComparePages(page, first) < 0 {
			first = page
		}
		if page.IsHomepage && (flagged == nil || minisitepages.ComparePages(page, flagged) < 0) {
			flagged = page
		}
	}
	if flagged != nil {
		return flagged
	}
	return first
}

// PageBySlug picks the page to display. An empty slug selects the homepage;
// an unknown slug returns nil.
func (c Content) PageBySlug(slug string) *minisitepages.Page {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return c.Homepage
	}
	for _, page := range c.Pages {
		if page.Slug == slug {
			return page
		}
	}
	return nil
}
