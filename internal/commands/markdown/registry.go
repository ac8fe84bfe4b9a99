package markdowncmd

import (
	"context"
	"errors"

	"github.com/countyhub/go-minisite/internal/commands"
	"github.com/countyhub/go-minisite/internal/metrics"
	"github.com/countyhub/go-minisite/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

// CronRegistrar matches the function signature used by go-command registries.
type CronRegistrar func(command.HandlerConfig, any) error

// HandlerSet groups the markdown command handlers.
type HandlerSet struct {
	Import *ImportDirectoryHandler
}

// Option customises handler wiring during registration.
type Option func(*options)

type options struct {
	importHandlerOpts []commands.HandlerOption[ImportDirectoryCommand]
}

// WithImportHandlerOptions forwards options to the ImportDirectoryHandler constructor.
func WithImportHandlerOptions(opts ...commands.HandlerOption[ImportDirectoryCommand]) Option {
	return func(cfg *options) {
		cfg.importHandlerOpts = append(cfg.importHandlerOpts, opts...)
	}
}

// RegisterMarkdownCommands builds the markdown handlers and registers them
// with reg when one is supplied.
func RegisterMarkdownCommands(reg commands.Registry, importer DirectoryImporter, provider interfaces.LoggerProvider, recorder metrics.Recorder, gates FeatureGates, opts ...Option) (*HandlerSet, error) {
	if importer == nil {
		return nil, errors.New("markdown command registration: importer is nil")
	}

	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	logger := commands.CommandLogger(provider, "markdown")
	handlerOpts := append([]commands.HandlerOption[ImportDirectoryCommand]{
		commands.WithTelemetry(commands.MetricsTelemetry[ImportDirectoryCommand](recorder)),
	}, cfg.importHandlerOpts...)

	set := &HandlerSet{
		Import: NewImportDirectoryHandler(importer, logger, gates, handlerOpts...),
	}
	if err := commands.RegisterAll(reg, set.Import); err != nil {
		return nil, err
	}
	return set, nil
}

// RegisterMarkdownCron schedules msg on reg using cfg. The handler runs with
// a background context.
func RegisterMarkdownCron(reg CronRegistrar, handler *ImportDirectoryHandler, cfg command.HandlerConfig, msg ImportDirectoryCommand) error {
	if reg == nil || handler == nil {
		return nil
	}
	return reg(cfg, func() error {
		return handler.Execute(context.Background(), msg)
	})
}
