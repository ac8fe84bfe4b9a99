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

const deletePhotoMessageType = "minisite.photos.delete"

// DeletePhotoCommand removes one photo record.
type DeletePhotoCommand struct {
	PhotoID    uuid.UUID `json:"photo_id"`
	EntityType string    `json:"entity_type"`
	EntityID   string    `json:"entity_id"`
}

// Type implements command.Message.
func (DeletePhotoCommand) Type() string { return deletePhotoMessageType }

func (m DeletePhotoCommand) Validate() error {
	errs := validation.Errors{}
	if m.PhotoID == uuid.Nil {
		errs["photo_id"] = validation.NewError("minisite.photos.delete.photo_id_required", "photo_id is required")
	}
	commands.ValidateOwner(errs, "minisite.photos.delete", m.EntityType, m.EntityID)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// DeletePhotoHandler deletes photos via the photo service.
type DeletePhotoHandler struct {
	inner *commands.Handler[DeletePhotoCommand]
}

// NewDeletePhotoHandler constructs a handler wired to the provided photo service.
func NewDeletePhotoHandler(service photos.Service, logger interfaces.Logger, opts ...commands.HandlerOption[DeletePhotoCommand]) *DeletePhotoHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg DeletePhotoCommand) error {
		owner, err := commands.OwnerRef(msg.EntityType, msg.EntityID)
		if err != nil {
			return classify(err, codePhotoDeleteFailed)
		}
		return classify(service.Delete(ctx, owner, msg.PhotoID), codePhotoDeleteFailed)
	}

	handlerOpts := []commands.HandlerOption[DeletePhotoCommand]{
		commands.WithLogger[DeletePhotoCommand](baseLogger),
		commands.WithOperation[DeletePhotoCommand]("photos.delete"),
		commands.WithMessageFields(func(msg DeletePhotoCommand) map[string]any {
			return map[string]any{
				"photo_id":    msg.PhotoID,
				"entity_type": msg.EntityType,
				"entity_id":   msg.EntityID,
			}
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[DeletePhotoCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &DeletePhotoHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[DeletePhotoCommand].Execute.
func (h *DeletePhotoHandler) Execute(ctx context.Context, msg DeletePhotoCommand) error {
	return h.inner.Execute(ctx, msg)
}
