package runtimeconfig

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	urlkit "github.com/goliatone/go-urlkit"
)

var (
	ErrStorageProviderUnknown     = errors.New("minisite config: storage provider is invalid")
	ErrStorageDSNRequired         = errors.New("minisite config: storage dsn is required for sql providers")
	ErrCacheTTLInvalid            = errors.New("minisite config: cache ttl must be positive when cache is enabled")
	ErrMarkdownFeatureRequired    = errors.New("minisite config: markdown feature must be enabled to configure markdown")
	ErrMarkdownContentDirRequired = errors.New("minisite config: markdown content directory is required when markdown is enabled")
	ErrMarkdownScheduleInvalid    = errors.New("minisite config: markdown schedule is invalid")
	ErrCommandsCronRequiresImport = errors.New("minisite config: command cron auto-registration requires markdown schedules")
	ErrCommandsTimeoutInvalid     = errors.New("minisite config: command timeout must be zero or positive")
	ErrLoggingProviderRequired    = errors.New("minisite config: logging provider is required when logging feature is enabled")
	ErrLoggingProviderUnknown     = errors.New("minisite config: logging provider is invalid")
	ErrLoggingLevelInvalid        = errors.New("minisite config: logging level is invalid")
	ErrLoggingFormatInvalid       = errors.New("minisite config: logging format is invalid")
	ErrRenderTextFormatInvalid    = errors.New("minisite config: render text format is invalid")
	ErrRenderAccentInvalid        = errors.New("minisite config: default accent must be a #rgb or #rrggbb color")
	ErrMetricsNamespaceInvalid    = errors.New("minisite config: metrics namespace is invalid")
)

// Storage providers.
const (
	StorageMemory   = "memory"
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
)

var (
	accentPattern    = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)
	namespacePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)
)

// Config aggregates feature flags and adapter bindings for the mini-site
// module. Fields use simple types so viper can decode them directly.
type Config struct {
	Storage    StorageConfig
	Cache      CacheConfig
	Navigation NavigationConfig
	Render     RenderConfig
	Features   Features
	Commands   CommandsConfig
	Markdown   MarkdownConfig
	Listings   ListingsConfig
	Metrics    MetricsConfig
	Logging    LoggingConfig
	HTTP       HTTPConfig
}

// StorageConfig selects the record store backend.
type StorageConfig struct {
	Provider    string
	DSN         string
	AutoMigrate bool
}

// CacheConfig captures repository cache behaviour.
type CacheConfig struct {
	Enabled    bool
	DefaultTTL time.Duration
}

// NavigationConfig captures routing configuration for mini-site links. When
// RouteConfig is nil plain relative paths are built.
type NavigationConfig struct {
	RouteConfig *urlkit.Config
	Group       string
	ByIDPath    string
}

// RenderConfig mirrors render.Config.
type RenderConfig struct {
	TextFormat    string
	AllowRawHTML  bool
	DefaultAccent string
}

// Features toggles module functionality.
type Features struct {
	Markdown bool
	Metrics  bool
	Logger   bool
}

// CommandsConfig captures optional command-layer behaviour.
type CommandsConfig struct {
	Timeout                time.Duration
	AutoRegisterDispatcher bool
	AutoRegisterCron       bool
}

// MarkdownConfig captures filesystem behaviour for Markdown imports.
type MarkdownConfig struct {
	Enabled    bool
	ContentDir string
	Pattern    string
	Recursive  bool
	Schedules  []MarkdownScheduleConfig
}

// MarkdownScheduleConfig re-imports Directory into a listing on a cron
// expression.
type MarkdownScheduleConfig struct {
	EntityType string
	EntityID   string
	Directory  string
	Expression string
}

// ListingsConfig points at an optional JSON fixture used to seed the
// listing store.
type ListingsConfig struct {
	FixturesPath string
}

// MetricsConfig controls the Prometheus recorder.
type MetricsConfig struct {
	Namespace string
	Path      string
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// HTTPConfig controls the bundled server.
type HTTPConfig struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// DefaultConfig returns defaults suitable for local development.
func DefaultConfig() Config {
	return Config{
		Storage: StorageConfig{
			Provider: StorageMemory,
		},
		Cache: CacheConfig{
			Enabled:    true,
			DefaultTTL: time.Minute,
		},
		Navigation: NavigationConfig{
			ByIDPath: "/listing",
		},
		Render: RenderConfig{
			TextFormat:    "plain",
			DefaultAccent: "#2563eb",
		},
		Features: Features{
			Metrics: true,
		},
		Commands: CommandsConfig{
			Timeout: 30 * time.Second,
		},
		Markdown: MarkdownConfig{
			ContentDir: "content",
			Pattern:    "*.md",
			Recursive:  true,
		},
		Metrics: MetricsConfig{
			Namespace: "minisite",
			Path:      "/metrics",
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
		HTTP: HTTPConfig{
			Addr:            ":8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    15 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	switch provider := normalize(cfg.Storage.Provider); provider {
	case "", StorageMemory:
	case StorageSQLite, StoragePostgres:
		if strings.TrimSpace(cfg.Storage.DSN) == "" {
			return fmt.Errorf("%w: %s", ErrStorageDSNRequired, provider)
		}
	default:
		return fmt.Errorf("%w: %s", ErrStorageProviderUnknown, provider)
	}
	if cfg.Cache.Enabled && cfg.Cache.DefaultTTL <= 0 {
		return ErrCacheTTLInvalid
	}
	switch normalize(cfg.Render.TextFormat) {
	case "", "plain", "markdown":
	default:
		return fmt.Errorf("%w: %s", ErrRenderTextFormatInvalid, cfg.Render.TextFormat)
	}
	if accent := strings.TrimSpace(cfg.Render.DefaultAccent); accent != "" && !accentPattern.MatchString(accent) {
		return fmt.Errorf("%w: %s", ErrRenderAccentInvalid, accent)
	}
	if cfg.Commands.Timeout < 0 {
		return ErrCommandsTimeoutInvalid
	}
	if cfg.Markdown.Enabled {
		if !cfg.Features.Markdown {
			return ErrMarkdownFeatureRequired
		}
		if strings.TrimSpace(cfg.Markdown.ContentDir) == "" {
			return ErrMarkdownContentDirRequired
		}
	}
	for i, schedule := range cfg.Markdown.Schedules {
		if strings.TrimSpace(schedule.Expression) == "" || strings.TrimSpace(schedule.Directory) == "" ||
			strings.TrimSpace(schedule.EntityType) == "" || strings.TrimSpace(schedule.EntityID) == "" {
			return fmt.Errorf("%w: index %d", ErrMarkdownScheduleInvalid, i)
		}
	}
	if cfg.Commands.AutoRegisterCron && len(cfg.Markdown.Schedules) == 0 {
		return ErrCommandsCronRequiresImport
	}
	if cfg.Features.Metrics {
		if ns := strings.TrimSpace(cfg.Metrics.Namespace); ns != "" && !namespacePattern.MatchString(ns) {
			return fmt.Errorf("%w: %s", ErrMetricsNamespaceInvalid, ns)
		}
	}
	if cfg.Features.Logger {
		provider := normalize(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch normalize(level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch normalize(format) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
