package minisite

import (
	"context"
	"net/http"

	"github.com/countyhub/go-minisite/internal/di"
	"github.com/countyhub/go-minisite/internal/editor"
	minisitehttp "github.com/countyhub/go-minisite/internal/http"
	"github.com/countyhub/go-minisite/internal/listings"
	"github.com/countyhub/go-minisite/internal/loader"
	"github.com/countyhub/go-minisite/internal/logging"
	"github.com/countyhub/go-minisite/internal/markdown"
	"github.com/countyhub/go-minisite/internal/render"
	"github.com/countyhub/go-minisite/internal/resolver"
	"github.com/countyhub/go-minisite/internal/townindex"
	"github.com/countyhub/go-minisite/navigation"
	"github.com/countyhub/go-minisite/pages"
	"github.com/countyhub/go-minisite/photos"
)

// PageService exports the pages service contract.
type PageService = pages.Service

// NavigationService exports the navigation service contract.
type NavigationService = navigation.Service

// PhotoService exports the photos service contract.
type PhotoService = photos.Service

// ListingRepository exports the listing store contract.
type ListingRepository = listings.ListingRepository

// EditorService exports the dashboard and editor entry point.
type EditorService = *editor.Service

// MarkdownService exports the markdown importer.
type MarkdownService = *markdown.Service

type (
	Resolver = *resolver.Resolver
	Loader   = *loader.Loader
	Renderer = *render.Renderer
)

// Module represents the top level mini-site runtime façade.
type Module struct {
	container *di.Container
}

// New constructs a mini-site module using the provided configuration and
// optional DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Close releases the database handle when the module opened it.
func (m *Module) Close() error {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Close()
}

// Pages returns the configured page service.
func (m *Module) Pages() PageService {
	return m.container.PageService()
}

// Navigation returns the configured navigation service.
func (m *Module) Navigation() NavigationService {
	return m.container.NavigationService()
}

// Photos returns the configured photo service.
func (m *Module) Photos() PhotoService {
	return m.container.PhotoService()
}

// Listings returns the listing store backing the resolver.
func (m *Module) Listings() ListingRepository {
	return m.container.ListingRepository()
}

// Editor returns the dashboard and editor service.
func (m *Module) Editor() EditorService {
	return m.container.EditorService()
}

// Markdown returns the markdown importer, or nil when the feature is off.
func (m *Module) Markdown() MarkdownService {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.MarkdownService()
}

func (m *Module) Resolver() Resolver {
	return m.container.Resolver()
}

func (m *Module) Loader() Loader {
	return m.container.Loader()
}

func (m *Module) Renderer() Renderer {
	return m.container.Renderer()
}

// TownIndex builds the directory of listings grouped by town.
func (m *Module) TownIndex(ctx context.Context) (*townindex.Index, error) {
	return m.container.TownIndex(ctx)
}

// Handler returns a mux serving the public mini-sites, the admin JSON API
// and, when metrics are enabled, the Prometheus endpoint.
func (m *Module) Handler() (http.Handler, error) {
	mux := http.NewServeMux()
	if err := m.Register(mux); err != nil {
		return nil, err
	}
	return mux, nil
}

// Register attaches every route to mux.
func (m *Module) Register(mux *http.ServeMux) error {
	c := m.container
	logger := logging.HTTPLogger(c.LoggerProvider())

	site := minisitehttp.NewSite(c.Resolver(), c.Loader(), c.Renderer(),
		minisitehttp.WithIndexSource(c.TownIndex),
		minisitehttp.WithByIDPath(c.Config.Navigation.ByIDPath),
		minisitehttp.WithSiteLogger(logger),
	)
	if err := site.Register(mux); err != nil {
		return err
	}

	api := minisitehttp.NewAdminAPI(
		minisitehttp.WithEditorService(c.EditorService()),
		minisitehttp.WithPageCommands(c.PageCommands()),
		minisitehttp.WithPhotoCommands(c.PhotoCommands()),
		minisitehttp.WithPhotoService(c.PhotoService()),
		minisitehttp.WithAdminLogger(logger),
	)
	if err := api.Register(mux); err != nil {
		return err
	}

	if gatherer := c.MetricsGatherer(); gatherer != nil {
		if err := minisitehttp.RegisterMetrics(mux, c.Config.Metrics.Path, gatherer); err != nil {
			return err
		}
	}
	return nil
}
