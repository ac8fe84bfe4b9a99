package http

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/countyhub/go-minisite/internal/gallery"
	"github.com/countyhub/go-minisite/internal/loader"
	"github.com/countyhub/go-minisite/internal/logging"
	"github.com/countyhub/go-minisite/internal/navigation"
	"github.com/countyhub/go-minisite/internal/render"
	"github.com/countyhub/go-minisite/internal/resolver"
	"github.com/countyhub/go-minisite/internal/townindex"
	minisitepages "github.com/countyhub/go-minisite/pages"
	"github.com/countyhub/go-minisite/pkg/interfaces"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ListingResolver finds the listing a request names.
type ListingResolver interface {
	Resolve(ctx context.Context, req resolver.Request) resolver.Result
}

// ContentLoader reads the display state of a listing's mini-site.
type ContentLoader interface {
	Load(ctx context.Context, req loader.Request) loader.Content
}

// IndexSource builds the directory of listings grouped by town.
type IndexSource func(ctx context.Context) (*townindex.Index, error)

// Site serves the public mini-site pages.
type Site struct {
	resolver ListingResolver
	loader   ContentLoader
	renderer *render.Renderer
	index    IndexSource
	byIDPath string
	indexURL string
	logger   interfaces.Logger
}

// SiteOption mutates the Site configuration.
type SiteOption func(*Site)

// NewSite constructs a Site.
func NewSite(res ListingResolver, load ContentLoader, renderer *render.Renderer, opts ...SiteOption) *Site {
	site := &Site{
		resolver: res,
		loader:   load,
		renderer: renderer,
		byIDPath: "/listing",
		indexURL: "/",
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(site)
		}
	}
	return site
}

// WithIndexSource enables the directory page at the index URL.
func WithIndexSource(source IndexSource) SiteOption {
	return func(s *Site) {
		if s != nil {
			s.index = source
		}
	}
}

// WithByIDPath overrides the path serving id lookups (defaults to "/listing").
func WithByIDPath(path string) SiteOption {
	return func(s *Site) {
		if s == nil {
			return
		}
		if trimmed := strings.TrimSpace(path); trimmed != "" {
			s.byIDPath = joinPath(trimmed, "")
		}
	}
}

// WithIndexURL sets the link offered back to the listing index.
func WithIndexURL(url string) SiteOption {
	return func(s *Site) {
		if s == nil {
			return
		}
		if trimmed := strings.TrimSpace(url); trimmed != "" {
			s.indexURL = trimmed
		}
	}
}

func WithSiteLogger(logger interfaces.Logger) SiteOption {
	return func(s *Site) {
		if s != nil && logger != nil {
			s.logger = logger
		}
	}
}

// Register attaches the site routes to the provided mux.
func (s *Site) Register(mux *http.ServeMux) error {
	if mux == nil {
		return fmt.Errorf("http: mux is required")
	}
	if s == nil || s.resolver == nil || s.loader == nil || s.renderer == nil {
		return fmt.Errorf("http: site requires resolver, loader and renderer")
	}

	mux.HandleFunc("GET "+s.byIDPath, s.handleByID)
	mux.HandleFunc("GET /{town}/{listing}", s.handleBySlug)
	mux.HandleFunc("GET /{town}/{listing}/{page}", s.handleBySlug)
	if s.index != nil {
		mux.HandleFunc("GET /{$}", s.handleIndex)
	}
	return nil
}

func (s *Site) handleBySlug(w http.ResponseWriter, r *http.Request) {
	req := resolver.Request{
		TownSlug:   r.PathValue("town"),
		EntitySlug: r.PathValue("listing"),
	}
	s.serve(w, r, req, r.PathValue("page"))
}

func (s *Site) handleByID(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := resolver.Request{ID: query.Get("id")}
	s.serve(w, r, req, query.Get("page"))
}

func (s *Site) serve(w http.ResponseWriter, r *http.Request, req resolver.Request, pageSlug string) {
	ctx := r.Context()
	result := s.resolver.Resolve(ctx, req)
	if !result.Found {
		s.notFound(w, "We could not find that listing.")
		return
	}
	listing := result.Listing

	content := s.loader.Load(ctx, loader.Request{
		Owner: result.Ref,
		Link: navigation.LinkContext{
			TownSlug:    listing.TownSlug,
			ListingSlug: listing.Slug,
			ListingID:   listing.ID.String(),
		},
	})

	page := content.Homepage
	if slug := strings.TrimSpace(pageSlug); slug != "" {
		page = content.PageBySlug(slug)
		if page == nil {
			s.notFound(w, "We could not find that page.")
			return
		}
	}

	opts := render.Options{DisplayName: listing.Name, AccentColor: listing.AccentColor}
	view := render.PageView{
		Title:    listing.Name,
		Tabs:     content.Tabs,
		Gallery:  gallery.ForListing(listing, content.Photos),
		IndexURL: s.indexURL,
	}
	if page != nil {
		view.View = s.renderer.Render(page.Content.Sections, opts)
		view.Title = pageTitle(page, listing.Name)
		view.MetaDescription = page.MetaDescription
		view.ActiveURL = activeURL(content.Tabs, page)
	} else {
		view.View = s.renderer.Render(nil, opts)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.renderer.WritePage(w, view); err != nil {
		s.logger.Error("site.render_failed", "entity_type", result.Ref.Type, "entity_id", result.Ref.ID, "error", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
	}
}

func (s *Site) handleIndex(w http.ResponseWriter, r *http.Request) {
	idx, err := s.index(r.Context())
	if err != nil {
		s.logger.Error("site.index_failed", "error", err)
		http.Error(w, "index unavailable", http.StatusInternalServerError)
		return
	}

	titler := cases.Title(language.English)
	view := render.IndexView{Title: "Directory"}
	for _, town := range idx.Towns() {
		group := render.IndexTown{Name: titler.String(strings.ReplaceAll(town, "-", " "))}
		for _, entry := range idx.Listings(town) {
			group.Listings = append(group.Listings, render.IndexEntry{
				Name: entry.Name,
				Kind: titler.String(strings.ReplaceAll(entry.Kind, "_", " ")),
				URL:  s.entryURL(entry),
			})
		}
		view.Towns = append(view.Towns, group)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.renderer.WriteIndex(w, view); err != nil {
		s.logger.Error("site.render_failed", "view", "index", "error", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
	}
}

func (s *Site) entryURL(entry townindex.Entry) string {
	url, _ := navigation.PathResolver{ByIDPath: s.byIDPath}.PageURL(context.Background(), navigation.LinkContext{
		TownSlug:    entry.TownSlug,
		ListingSlug: entry.Slug,
		ListingID:   entry.ID.String(),
	}, nil, true)
	return url
}

func (s *Site) notFound(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	if err := s.renderer.WriteNotFound(w, render.NotFoundView{Message: message, IndexURL: s.indexURL}); err != nil {
		s.logger.Error("site.render_failed", "view", "notfound", "error", err)
	}
}

func pageTitle(page *minisitepages.Page, fallback string) string {
	if title := strings.TrimSpace(page.MetaTitle); title != "" {
		return title
	}
	if title := strings.TrimSpace(page.Title); title != "" {
		return title
	}
	return fallback
}

// activeURL returns the URL of the tab linking to page, searching children
// too.
func activeURL(tabs []navigation.Tab, page *minisitepages.Page) string {
	for _, tab := range tabs {
		if tab.PageID != nil && *tab.PageID == page.ID {
			return tab.URL
		}
		if url := activeURL(tab.Children, page); url != "" {
			return url
		}
	}
	return ""
}
