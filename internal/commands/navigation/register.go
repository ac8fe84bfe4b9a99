package navcmd

import (
	"errors"

	"github.com/countyhub/go-minisite/internal/commands"
	"github.com/countyhub/go-minisite/internal/metrics"
	"github.com/countyhub/go-minisite/internal/navigation"
	"github.com/countyhub/go-minisite/pkg/interfaces"
)

// HandlerSet groups the navigation command handlers.
type HandlerSet struct {
	Save   *SaveItemHandler
	Delete *DeleteItemHandler
}

// RegisterNavigationCommands builds the navigation handlers and registers
// them with reg when one is supplied.
func RegisterNavigationCommands(reg commands.Registry, service navigation.Service, provider interfaces.LoggerProvider, recorder metrics.Recorder) (*HandlerSet, error) {
	if service == nil {
		return nil, errors.New("navigation command registration: service is nil")
	}
	logger := commands.CommandLogger(provider, "navigation")

	set := &HandlerSet{
		Save: NewSaveItemHandler(service, logger,
			commands.WithTelemetry(commands.MetricsTelemetry[SaveItemCommand](recorder))),
		Delete: NewDeleteItemHandler(service, logger,
			commands.WithTelemetry(commands.MetricsTelemetry[DeleteItemCommand](recorder))),
	}
	if err := commands.RegisterAll(reg, set.Save, set.Delete); err != nil {
		return nil, err
	}
	return set, nil
}
