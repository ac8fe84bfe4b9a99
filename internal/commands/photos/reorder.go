package photoscmd

import (
	"context"

	"github.com/countyhub/go-minisite/internal/commands"
	"github.com/countyhub/go-minisite/internal/logging"
	"github.com/countyhub/go-minisite/internal/photos"
	"github.com/countyhub/go-minisite/pkg/interfaces"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

const reorderPhotosMessageType = "minisite.photos.reorder"

// ReorderPhotosCommand rewrites the order of every photo of a listing.
type ReorderPhotosCommand struct {
	EntityType string      `json:"entity_type"`
	EntityID   string      `json:"entity_id"`
	PhotoIDs   []uuid.UUID `json:"photo_ids"`
}

// Type implements command.Message.
func (ReorderPhotosCommand) Type() string { return reorderPhotosMessageType }

func (m ReorderPhotosCommand) Validate() error {
	errs := validation.Errors{}
	commands.ValidateOwner(errs, "minisite.photos.reorder", m.EntityType, m.EntityID)
	if len(m.PhotoIDs) == 0 {
		errs["photo_ids"] = validation.NewError("minisite.photos.reorder.photo_ids_required", "photo_ids is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ReorderPhotosHandler reorders photos via the photo service.
type ReorderPhotosHandler struct {
	inner *commands.Handler[ReorderPhotosCommand]
}

// NewReorderPhotosHandler constructs a handler wired to the provided photo service.
func NewReorderPhotosHandler(service photos.Service, logger interfaces.Logger, opts ...commands.HandlerOption[ReorderPhotosCommand]) *ReorderPhotosHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg ReorderPhotosCommand) error {
		owner, err := commands.OwnerRef(msg.EntityType, msg.EntityID)
		if err != nil {
			return classify(err, codePhotoReorderFailed)
		}
		_, err = service.Reorder(ctx, owner, msg.PhotoIDs)
		return classify(err, codePhotoReorderFailed)
	}

	handlerOpts := []commands.HandlerOption[ReorderPhotosCommand]{
		commands.WithLogger[ReorderPhotosCommand](baseLogger),
		commands.WithOperation[ReorderPhotosCommand]("photos.reorder"),
		commands.WithMessageFields(func(msg ReorderPhotosCommand) map[string]any {
			return map[string]any{
				"entity_type": msg.EntityType,
				"entity_id":   msg.EntityID,
				"photo_count": len(msg.PhotoIDs),
			}
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[ReorderPhotosCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ReorderPhotosHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[ReorderPhotosCommand].Execute.
func (h *ReorderPhotosHandler) Execute(ctx context.Context, msg ReorderPhotosCommand) error {
	return h.inner.Execute(ctx, msg)
}
