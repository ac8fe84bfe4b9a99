package minisite

import "github.com/countyhub/go-minisite/internal/runtimeconfig"

var (
	ErrStorageProviderUnknown     = runtimeconfig.ErrStorageProviderUnknown
	ErrStorageDSNRequired         = runtimeconfig.ErrStorageDSNRequired
	ErrCacheTTLInvalid            = runtimeconfig.ErrCacheTTLInvalid
	ErrMarkdownFeatureRequired    = runtimeconfig.ErrMarkdownFeatureRequired
	ErrMarkdownContentDirRequired = runtimeconfig.ErrMarkdownContentDirRequired
	ErrMarkdownScheduleInvalid    = runtimeconfig.ErrMarkdownScheduleInvalid
	ErrCommandsCronRequiresImport = runtimeconfig.ErrCommandsCronRequiresImport
	ErrCommandsTimeoutInvalid     = runtimeconfig.ErrCommandsTimeoutInvalid
	ErrLoggingProviderRequired    = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown     = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid        = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid       = runtimeconfig.ErrLoggingFormatInvalid
	ErrRenderTextFormatInvalid    = runtimeconfig.ErrRenderTextFormatInvalid
	ErrRenderAccentInvalid        = runtimeconfig.ErrRenderAccentInvalid
	ErrMetricsNamespaceInvalid    = runtimeconfig.ErrMetricsNamespaceInvalid
)

const (
	StorageMemory   = runtimeconfig.StorageMemory
	StorageSQLite   = runtimeconfig.StorageSQLite
	StoragePostgres = runtimeconfig.StoragePostgres
)

type (
	Config                 = runtimeconfig.Config
	StorageConfig          = runtimeconfig.StorageConfig
	CacheConfig            = runtimeconfig.CacheConfig
	NavigationConfig       = runtimeconfig.NavigationConfig
	RenderConfig           = runtimeconfig.RenderConfig
	Features               = runtimeconfig.Features
	CommandsConfig         = runtimeconfig.CommandsConfig
	MarkdownConfig         = runtimeconfig.MarkdownConfig
	MarkdownScheduleConfig = runtimeconfig.MarkdownScheduleConfig
	ListingsConfig         = runtimeconfig.ListingsConfig
	MetricsConfig          = runtimeconfig.MetricsConfig
	LoggingConfig          = runtimeconfig.LoggingConfig
	HTTPConfig             = runtimeconfig.HTTPConfig
)

// DefaultConfig returns defaults suitable for local development.
func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
