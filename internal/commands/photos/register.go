package photoscmd

import (
	"errors"

	"github.com/countyhub/go-minisite/internal/commands"
	"github.com/countyhub/go-minisite/internal/metrics"
	"github.com/countyhub/go-minisite/internal/photos"
	"github.com/countyhub/go-minisite/pkg/interfaces"
)

// HandlerSet groups the photo command handlers.
type HandlerSet struct {
	Add     *AddPhotoHandler
	Delete  *DeletePhotoHandler
	Reorder *ReorderPhotosHandler
}

// RegisterPhotoCommands builds the photo handlers and registers them with reg
// when one is supplied.
func RegisterPhotoCommands(reg commands.Registry, service photos.Service, provider interfaces.LoggerProvider, recorder metrics.Recorder) (*HandlerSet, error) {
	if service == nil {
		return nil, errors.New("photo command registration: service is nil")
	}
	logger := commands.CommandLogger(provider, "photos")

	set := &HandlerSet{
		Add: NewAddPhotoHandler(service, logger,
			commands.WithTelemetry(commands.MetricsTelemetry[AddPhotoCommand](recorder))),
		Delete: NewDeletePhotoHandler(service, logger,
			commands.WithTelemetry(commands.MetricsTelemetry[DeletePhotoCommand](recorder))),
		Reorder: NewReorderPhotosHandler(service, logger,
			commands.WithTelemetry(commands.MetricsTelemetry[ReorderPhotosCommand](recorder))),
	}
	if err := commands.RegisterAll(reg, set.Add, set.Delete, set.Reorder); err != nil {
		return nil, err
	}
	return set, nil
}
