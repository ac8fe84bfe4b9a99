package gologger

import (
	"context"
	"fmt"
	"maps"
	"strings"

	glog "github.com/goliatone/go-logger/glog"

	"github.com/countyhub/go-minisite/internal/logging"
	"github.com/countyhub/go-minisite/pkg/interfaces"
)

// Config mirrors the logging section of the runtime config.
type Config struct {
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// Provider hands out go-logger child loggers named after mini-site modules.
type Provider struct {
	root *glog.BaseLogger
}

// NewProvider builds a go-logger root from cfg. Format is one of json
// (default), console or pretty.
func NewProvider(cfg Config) (*Provider, error) {
	var options []glog.Option

	if level, ok := glogLevel(cfg.Level); ok {
		options = append(options, glog.WithLevel(level))
	}

	switch strings.ToLower(strings.TrimSpace(cfg.Format)) {
	case "", "json":
		options = append(options, glog.WithLoggerTypeJSON())
	case "console":
		options = append(options, glog.WithLoggerTypeConsole())
	case "pretty":
		options = append(options, glog.WithLoggerTypePretty())
	default:
		return nil, fmt.Errorf("logging: unsupported go-logger format %q", cfg.Format)
	}

	if cfg.AddSource {
		options = append(options, glog.WithAddSource(true))
	}

	root := glog.NewLogger(options...)
	if focus := nonEmpty(cfg.Focus); len(focus) > 0 {
		root.Focus(focus...)
	}
	return &Provider{root: root}, nil
}

// GetLogger returns the child logger for name, or the root for an empty name.
func (p *Provider) GetLogger(name string) interfaces.Logger {
	if p == nil || p.root == nil {
		return logging.NoOp()
	}
	if name = strings.TrimSpace(name); name == "" {
		return adapt(p.root)
	}
	return adapt(p.root.GetLogger(name))
}

func adapt(inner glog.Logger) interfaces.Logger {
	if inner == nil {
		return logging.NoOp()
	}
	return &adapter{inner: inner}
}

type adapter struct {
	inner glog.Logger
}

var _ interfaces.Logger = (*adapter)(nil)

func (a *adapter) Trace(msg string, args ...any) { a.inner.Trace(msg, args...) }
func (a *adapter) Debug(msg string, args ...any) { a.inner.Debug(msg, args...) }
func (a *adapter) Info(msg string, args ...any)  { a.inner.Info(msg, args...) }
func (a *adapter) Warn(msg string, args ...any)  { a.inner.Warn(msg, args...) }
func (a *adapter) Error(msg string, args ...any) { a.inner.Error(msg, args...) }
func (a *adapter) Fatal(msg string, args ...any) { a.inner.Fatal(msg, args...) }

// WithFields needs glog.FieldsLogger support from the wrapped logger; other
// implementations keep their current fields.
func (a *adapter) WithFields(fields map[string]any) interfaces.Logger {
	if len(fields) == 0 {
		return a
	}
	fieldsLogger, ok := a.inner.(glog.FieldsLogger)
	if !ok {
		return a
	}
	return adapt(fieldsLogger.WithFields(maps.Clone(fields)))
}

func (a *adapter) WithContext(ctx context.Context) interfaces.Logger {
	if ctx == nil {
		return a
	}
	inner := a.inner.WithContext(ctx)
	if fields := logging.ContextFields(ctx); len(fields) > 0 {
		if fieldsLogger, ok := inner.(glog.FieldsLogger); ok {
			inner = fieldsLogger.WithFields(fields)
		}
	}
	return adapt(inner)
}

func glogLevel(level string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return glog.Trace, true
	case "debug":
		return glog.Debug, true
	case "info":
		return glog.Info, true
	case "warn", "warning":
		return glog.Warn, true
	case "error":
		return glog.Error, true
	case "fatal":
		return glog.Fatal, true
	default:
		return "", false
	}
}

func nonEmpty(names []string) []string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
