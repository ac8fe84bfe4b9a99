package di

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/countyhub/go-minisite/internal/commands"
	markdowncmd "github.com/countyhub/go-minisite/internal/commands/markdown"
	navcmd "github.com/countyhub/go-minisite/internal/commands/navigation"
	pagescmd "github.com/countyhub/go-minisite/internal/commands/pages"
	photoscmd "github.com/countyhub/go-minisite/internal/commands/photos"
	"github.com/countyhub/go-minisite/internal/editor"
	"github.com/countyhub/go-minisite/internal/listings"
	"github.com/countyhub/go-minisite/internal/loader"
	"github.com/countyhub/go-minisite/internal/logging"
	"github.com/countyhub/go-minisite/internal/logging/console"
	"github.com/countyhub/go-minisite/internal/logging/gologger"
	"github.com/countyhub/go-minisite/internal/markdown"
	"github.com/countyhub/go-minisite/internal/metrics"
	"github.com/countyhub/go-minisite/internal/migrations"
	"github.com/countyhub/go-minisite/internal/navigation"
	"github.com/countyhub/go-minisite/internal/pages"
	"github.com/countyhub/go-minisite/internal/photos"
	"github.com/countyhub/go-minisite/internal/render"
	"github.com/countyhub/go-minisite/internal/resolver"
	"github.com/countyhub/go-minisite/internal/runtimeconfig"
	"github.com/countyhub/go-minisite/internal/townindex"
	"github.com/countyhub/go-minisite/pkg/interfaces"
	"github.com/countyhub/go-minisite/pkg/storage"
	repocache "github.com/goliatone/go-repository-cache/cache"
	urlkit "github.com/goliatone/go-urlkit"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/uptrace/bun"
)

// Container wires module dependencies. Repositories are in-memory unless a
// bun database is supplied or the storage provider names a SQL backend.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	recorder       metrics.Recorder
	prometheus     *metrics.Prometheus
	registry       *prometheus.Registry

	bunDB      *bun.DB
	ownsDB     bool
	migrations fs.FS

	cacheTTL      time.Duration
	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer

	pageRepo    pages.PageRepository
	navRepo     navigation.ItemRepository
	photoRepo   photos.PhotoRepository
	listingRepo listings.ListingRepository

	routeManager *urlkit.RouteManager
	urlResolver  navigation.URLResolver

	pageSvc  pages.Service
	navSvc   navigation.Service
	photoSvc photos.Service

	commandRegistry  commands.Registry
	pageCommands     *pagescmd.HandlerSet
	navCommands      *navcmd.HandlerSet
	photoCommands    *photoscmd.HandlerSet
	markdownCommands *markdowncmd.HandlerSet

	editorSvc   *editor.Service
	markdownFS  fs.FS
	markdownSvc *markdown.Service
	resolver    *resolver.Resolver
	loader      *loader.Loader
	renderer    *render.Renderer
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithBunDB binds the SQL repositories to db. The container does not close
// a database it did not open.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithCache overrides the default cache service and key serializer.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithLoggerProvider overrides the provider selected from the logging config.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithMigrations supplies the embedded migration tree applied when
// Storage.AutoMigrate is set.
func WithMigrations(fsys fs.FS) Option {
	return func(c *Container) {
		c.migrations = fsys
	}
}

// WithMarkdownFS reads markdown content from fsys instead of
// Markdown.ContentDir.
func WithMarkdownFS(fsys fs.FS) Option {
	return func(c *Container) {
		c.markdownFS = fsys
	}
}

// WithCommandRegistry registers every command handler with reg while the
// container is built.
func WithCommandRegistry(reg commands.Registry) Option {
	return func(c *Container) {
		c.commandRegistry = reg
	}
}

func WithPageService(svc pages.Service) Option {
	return func(c *Container) {
		c.pageSvc = svc
	}
}

func WithNavigationService(svc navigation.Service) Option {
	return func(c *Container) {
		c.navSvc = svc
	}
}

func WithPhotoService(svc photos.Service) Option {
	return func(c *Container) {
		c.photoSvc = svc
	}
}

// WithListingRepository overrides the listing store.
func WithListingRepository(repo listings.ListingRepository) Option {
	return func(c *Container) {
		c.listingRepo = repo
	}
}

// WithURLResolver overrides the resolver used to build tab links.
func WithURLResolver(resolver navigation.URLResolver) Option {
	return func(c *Container) {
		c.urlResolver = resolver
	}
}

// NewContainer creates a container with the provided configuration.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{
		Config:   cfg,
		cacheTTL: cfg.Cache.DefaultTTL,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	ctx := context.Background()
	steps := []func(context.Context) error{
		c.configureLoggerProvider,
		c.configureMetrics,
		c.configureStorage,
		c.configureCacheDefaults,
		c.configureRepositories,
		c.configureServices,
		c.configureCommands,
		c.configureEditor,
		c.configureMarkdown,
		c.configureNavigation,
		c.configureSite,
		c.seedListings,
	}
	for _, step := range steps {
		if err := step(ctx); err != nil {
			_ = c.Close()
			return nil, err
		}
	}

	logging.RootLogger(c.loggerProvider).Info("container.configured",
		"storage", c.storageName(),
		"cache", c.cacheService != nil,
		"markdown", c.markdownSvc != nil,
		"metrics", c.prometheus != nil,
	)
	return c, nil
}

// Close releases the database when the container opened it.
func (c *Container) Close() error {
	if c == nil || !c.ownsDB || c.bunDB == nil {
		return nil
	}
	err := c.bunDB.Close()
	c.bunDB = nil
	return err
}

func (c *Container) configureLoggerProvider(context.Context) error {
	if c.loggerProvider != nil || !c.Config.Features.Logger {
		return nil
	}

	cfg := c.Config.Logging
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     cfg.Level,
			Format:    cfg.Format,
			AddSource: cfg.AddSource,
			Focus:     cfg.Focus,
		})
		if err != nil {
			return err
		}
		c.loggerProvider = provider
	default:
		level, _ := console.ParseLevel(cfg.Level)
		c.loggerProvider = console.NewProvider(console.Options{MinLevel: &level})
	}
	return nil
}

func (c *Container) configureMetrics(context.Context) error {
	c.recorder = metrics.NoOp()
	if !c.Config.Features.Metrics {
		return nil
	}
	c.registry = prometheus.NewRegistry()
	c.prometheus = metrics.NewPrometheus(c.Config.Metrics.Namespace)
	c.prometheus.Register(c.registry)
	c.recorder = c.prometheus
	return nil
}

func (c *Container) configureStorage(ctx context.Context) error {
	provider := strings.ToLower(strings.TrimSpace(c.Config.Storage.Provider))
	if c.bunDB == nil && provider != "" && provider != runtimeconfig.StorageMemory {
		db, err := storage.Open(ctx, storage.Config{
			Driver: provider,
			DSN:    c.Config.Storage.DSN,
		})
		if err != nil {
			return err
		}
		c.bunDB = db
		c.ownsDB = true
	}
	if c.bunDB == nil || !c.Config.Storage.AutoMigrate {
		return nil
	}
	return migrations.Up(ctx, c.bunDB, c.migrations, logging.StorageLogger(c.loggerProvider))
}

func (c *Container) configureCacheDefaults(context.Context) error {
	if !c.Config.Cache.Enabled {
		return nil
	}

	if c.cacheService == nil {
		cfg := repocache.DefaultConfig()
		if c.cacheTTL > 0 {
			cfg.TTL = c.cacheTTL
		}
		service, err := repocache.NewCacheService(cfg)
		if err == nil {
			c.cacheService = service
		}
	}

	if c.cacheService != nil && c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
	return nil
}

func (c *Container) configureRepositories(context.Context) error {
	if c.bunDB != nil {
		c.pageRepo = pages.NewBunPageRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
		c.navRepo = navigation.NewBunItemRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
		c.photoRepo = photos.NewBunPhotoRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
		if c.listingRepo == nil {
			c.listingRepo = listings.NewBunListingRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
		}
		return nil
	}

	c.pageRepo = pages.NewMemoryPageRepository()
	c.navRepo = navigation.NewMemoryItemRepository()
	c.photoRepo = photos.NewMemoryPhotoRepository()
	if c.listingRepo == nil {
		c.listingRepo = listings.NewMemoryListingRepository()
	}
	return nil
}

func (c *Container) configureServices(context.Context) error {
	if c.pageSvc == nil {
		c.pageSvc = pages.NewService(c.pageRepo,
			pages.WithLogger(logging.PagesLogger(c.loggerProvider)),
			pages.WithDeleteHook(c.removeAutoNavigationItem),
		)
	}
	if c.navSvc == nil {
		c.navSvc = navigation.NewService(c.navRepo,
			navigation.WithPageLookup(c.pageSvc),
			navigation.WithLogger(logging.NavigationLogger(c.loggerProvider)),
		)
	}
	if c.photoSvc == nil {
		c.photoSvc = photos.NewService(c.photoRepo,
			photos.WithLogger(logging.PhotosLogger(c.loggerProvider)),
		)
	}
	return nil
}

// removeAutoNavigationItem drops the item the page editor manages for a
// deleted page.
func (c *Container) removeAutoNavigationItem(ctx context.Context, page *pages.Page) error {
	if c.navSvc == nil || page == nil {
		return nil
	}
	owner := page.Owner()
	item, err := c.navSvc.FindAutoManaged(ctx, owner, page.ID)
	if err != nil {
		if errors.Is(err, navigation.ErrItemNotFound) {
			return nil
		}
		return err
	}
	return c.navSvc.Delete(ctx, owner, item.ID)
}

func (c *Container) configureCommands(context.Context) error {
	var err error
	if c.pageCommands, err = pagescmd.RegisterPageCommands(c.commandRegistry, c.pageSvc, c.loggerProvider, c.recorder); err != nil {
		return fmt.Errorf("register page commands: %w", err)
	}
	if c.navCommands, err = navcmd.RegisterNavigationCommands(c.commandRegistry, c.navSvc, c.loggerProvider, c.recorder); err != nil {
		return fmt.Errorf("register navigation commands: %w", err)
	}
	if c.photoCommands, err = photoscmd.RegisterPhotoCommands(c.commandRegistry, c.photoSvc, c.loggerProvider, c.recorder); err != nil {
		return fmt.Errorf("register photo commands: %w", err)
	}
	return nil
}

func (c *Container) configureEditor(context.Context) error {
	svc, err := editor.NewService(c.pageSvc, c.navSvc, editor.Commands{
		SavePage:         c.pageCommands.Save,
		SaveNavigation:   c.navCommands.Save,
		DeleteNavigation: c.navCommands.Delete,
	}, editor.WithLogger(logging.EditorLogger(c.loggerProvider)))
	if err != nil {
		return err
	}
	c.editorSvc = svc
	return nil
}

func (c *Container) configureMarkdown(context.Context) error {
	if !c.Config.Features.Markdown || !c.Config.Markdown.Enabled {
		return nil
	}

	cfg := markdown.Config{
		BasePath:  c.Config.Markdown.ContentDir,
		Pattern:   c.Config.Markdown.Pattern,
		Recursive: c.Config.Markdown.Recursive,
	}
	importer := markdown.NewImporter(c.editorSvc, logging.MarkdownLogger(c.loggerProvider))
	if c.markdownFS != nil {
		c.markdownSvc = markdown.NewServiceFS(c.markdownFS, cfg, importer)
	} else {
		svc, err := markdown.NewService(cfg, importer)
		if err != nil {
			return err
		}
		c.markdownSvc = svc
	}

	gates := markdowncmd.FeatureGates{
		MarkdownEnabled: func() bool { return c.Config.Features.Markdown },
	}
	var opts []markdowncmd.Option
	if timeout := c.Config.Commands.Timeout; timeout > 0 {
		opts = append(opts, markdowncmd.WithImportHandlerOptions(
			commands.WithTimeout[markdowncmd.ImportDirectoryCommand](timeout),
		))
	}
	set, err := markdowncmd.RegisterMarkdownCommands(c.commandRegistry, c.markdownSvc, c.loggerProvider, c.recorder, gates, opts...)
	if err != nil {
		return fmt.Errorf("register markdown commands: %w", err)
	}
	c.markdownCommands = set
	return nil
}

func (c *Container) configureNavigation(context.Context) error {
	if c.urlResolver != nil {
		return nil
	}

	navCfg := c.Config.Navigation
	if navCfg.RouteConfig == nil {
		c.urlResolver = navigation.PathResolver{ByIDPath: navCfg.ByIDPath}
		return nil
	}

	manager := urlkit.NewRouteManager(navCfg.RouteConfig)
	c.routeManager = manager
	c.urlResolver = navigation.NewURLKitResolver(navigation.URLKitResolverOptions{
		Manager: manager,
		Group:   strings.TrimSpace(navCfg.Group),
	})
	return nil
}

func (c *Container) configureSite(context.Context) error {
	c.resolver = resolver.New(c.listingRepo,
		resolver.WithLogger(logging.ResolverLogger(c.loggerProvider)),
		resolver.WithMetrics(c.recorder),
	)
	c.loader = loader.New(c.pageSvc, c.navSvc, c.photoSvc,
		loader.WithLogger(logging.LoaderLogger(c.loggerProvider)),
		loader.WithMetrics(c.recorder),
		loader.WithURLResolver(c.urlResolver),
	)

	renderCfg := render.Config{
		TextFormat:    render.TextFormat(c.Config.Render.TextFormat),
		AllowRawHTML:  c.Config.Render.AllowRawHTML,
		DefaultAccent: c.Config.Render.DefaultAccent,
	}
	c.renderer = render.New(renderCfg,
		render.WithMarkdownParser(markdown.NewGoldmarkParser(interfaces.ParseOptions{})),
		render.WithLogger(logging.RenderLogger(c.loggerProvider)),
		render.WithMetrics(c.recorder),
	)
	return nil
}

func (c *Container) seedListings(ctx context.Context) error {
	path := strings.TrimSpace(c.Config.Listings.FixturesPath)
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read listing fixtures: %w", err)
	}
	list, err := listings.DecodeFixtures(data)
	if err != nil {
		return err
	}
	if err := listings.Seed(ctx, c.listingRepo, list); err != nil {
		return err
	}
	logging.ListingsLogger(c.loggerProvider).Info("listings.seeded",
		"path", path,
		"count", len(list),
	)
	return nil
}

func (c *Container) storageName() string {
	if c.bunDB == nil {
		return runtimeconfig.StorageMemory
	}
	return c.bunDB.Dialect().Name().String()
}

// LoggerProvider returns the provider used for module loggers. It may be nil
// when logging is disabled.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

func (c *Container) MetricsRecorder() metrics.Recorder {
	return c.recorder
}

// MetricsGatherer returns the Prometheus registry, or nil when metrics are
// disabled.
func (c *Container) MetricsGatherer() prometheus.Gatherer {
	if c.registry == nil {
		return nil
	}
	return c.registry
}

func (c *Container) BunDB() *bun.DB {
	return c.bunDB
}

func (c *Container) RouteManager() *urlkit.RouteManager {
	return c.routeManager
}

func (c *Container) PageService() pages.Service {
	return c.pageSvc
}

func (c *Container) NavigationService() navigation.Service {
	return c.navSvc
}

func (c *Container) PhotoService() photos.Service {
	return c.photoSvc
}

func (c *Container) ListingRepository() listings.ListingRepository {
	return c.listingRepo
}

func (c *Container) PageCommands() *pagescmd.HandlerSet {
	return c.pageCommands
}

func (c *Container) NavigationCommands() *navcmd.HandlerSet {
	return c.navCommands
}

func (c *Container) PhotoCommands() *photoscmd.HandlerSet {
	return c.photoCommands
}

// MarkdownCommands is nil when markdown imports are disabled.
func (c *Container) MarkdownCommands() *markdowncmd.HandlerSet {
	return c.markdownCommands
}

func (c *Container) EditorService() *editor.Service {
	return c.editorSvc
}

// MarkdownService is nil when markdown imports are disabled.
func (c *Container) MarkdownService() *markdown.Service {
	return c.markdownSvc
}

func (c *Container) Resolver() *resolver.Resolver {
	return c.resolver
}

func (c *Container) Loader() *loader.Loader {
	return c.loader
}

func (c *Container) Renderer() *render.Renderer {
	return c.renderer
}

// TownIndex groups the current listings by town. It is rebuilt on every
// call so newly seeded listings appear.
func (c *Container) TownIndex(ctx context.Context) (*townindex.Index, error) {
	list, err := c.listingRepo.ListByType(ctx, "")
	if err != nil {
		return nil, err
	}
	return townindex.Build(list), nil
}
