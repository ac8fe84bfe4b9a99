package logging

import (
	"context"

	"github.com/countyhub/go-minisite/pkg/interfaces"
)

const (
	rootModule       = "minisite"
	pagesModule      = "minisite.pages"
	navigationModule = "minisite.navigation"
	photosModule     = "minisite.photos"
	listingsModule   = "minisite.listings"
	resolverModule   = "minisite.resolver"
	loaderModule     = "minisite.loader"
	editorModule     = "minisite.editor"
	markdownModule   = "minisite.markdown"
	httpModule       = "minisite.http"
	storageModule    = "minisite.storage"
	renderModule     = "minisite.render"
)

// ModuleLogger returns the logger for module tagged with a "module" field.
// Without a provider it returns a no-op logger.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}
	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}
	return logger.WithFields(map[string]any{"module": module})
}

func RootLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, rootModule)
}

func PagesLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, pagesModule)
}

func NavigationLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, navigationModule)
}

func PhotosLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, photosModule)
}

func ListingsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, listingsModule)
}

func ResolverLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, resolverModule)
}

func LoaderLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, loaderModule)
}

func EditorLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, editorModule)
}

func MarkdownLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, markdownModule)
}

func HTTPLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, httpModule)
}

func StorageLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, storageModule)
}

func RenderLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, renderModule)
}

// NoOp returns a logger that drops every entry.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
