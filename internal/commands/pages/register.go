package pagescmd

import (
	"errors"

	"github.com/countyhub/go-minisite/internal/commands"
	"github.com/countyhub/go-minisite/internal/metrics"
	"github.com/countyhub/go-minisite/internal/pages"
	"github.com/countyhub/go-minisite/pkg/interfaces"
)

// HandlerSet groups the page command handlers.
type HandlerSet struct {
	Save    *SavePageHandler
	Delete  *DeletePageHandler
	Reorder *ReorderPagesHandler
}

// RegisterPageCommands builds the page handlers, registers them with reg
// when one is supplied and returns them for direct use.
func RegisterPageCommands(reg commands.Registry, service pages.Service, provider interfaces.LoggerProvider, recorder metrics.Recorder) (*HandlerSet, error) {
	if service == nil {
		return nil, errors.New("page command registration: service is nil")
	}
	logger := commands.CommandLogger(provider, "pages")

	set := &HandlerSet{
		Save: NewSavePageHandler(service, logger,
			commands.WithTelemetry(commands.MetricsTelemetry[SavePageCommand](recorder))),
		Delete: NewDeletePageHandler(service, logger,
			commands.WithTelemetry(commands.MetricsTelemetry[DeletePageCommand](recorder))),
		Reorder: NewReorderPagesHandler(service, logger,
			commands.WithTelemetry(commands.MetricsTelemetry[ReorderPagesCommand](recorder))),
	}
	if err := commands.RegisterAll(reg, set.Save, set.Delete, set.Reorder); err != nil {
		return nil, err
	}
	return set, nil
}
