package photoscmd

import (
	"context"
	"strings"

	"github.com/countyhub/go-minisite/internal/commands"
	"github.com/countyhub/go-minisite/internal/logging"
	"github.com/countyhub/go-minisite/internal/photos"
	"github.com/countyhub/go-minisite/pkg/interfaces"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

const addPhotoMessageType = "minisite.photos.add"

// AddPhotoCommand appends a photo record to a listing's gallery.
type AddPhotoCommand struct {
	PhotoID    uuid.UUID `json:"photo_id"`
	EntityType string    `json:"entity_type"`
	EntityID   string    `json:"entity_id"`
	URL        string    `json:"url"`
	Caption    string    `json:"caption,omitempty"`
	Order      *int      `json:"order,omitempty"`
}

// Type implements command.Message.
func (AddPhotoCommand) Type() string { return addPhotoMessageType }

// Validate ensures the photo has an owner and a url.
func (m AddPhotoCommand) Validate() error {
	errs := validation.Errors{}
	if m.PhotoID == uuid.Nil {
		errs["photo_id"] = validation.NewError("minisite.photos.add.photo_id_required", "photo_id is required")
	}
	commands.ValidateOwner(errs, "minisite.photos.add", m.EntityType, m.EntityID)
	if strings.TrimSpace(m.URL) == "" {
		errs["url"] = validation.NewError("minisite.photos.add.url_required", "url is required")
	}
	if m.Order != nil && *m.Order < 0 {
		errs["order"] = validation.NewError("minisite.photos.add.order_invalid", "order must be zero or positive")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// AddPhotoHandler stores photos via the photo service.
type AddPhotoHandler struct {
	inner *commands.Handler[AddPhotoCommand]
}

// NewAddPhotoHandler constructs a handler wired to the provided photo service.
func NewAddPhotoHandler(service photos.Service, logger interfaces.Logger, opts ...commands.HandlerOption[AddPhotoCommand]) *AddPhotoHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg AddPhotoCommand) error {
		owner, err := commands.OwnerRef(msg.EntityType, msg.EntityID)
		if err != nil {
			return classify(err, codePhotoSaveFailed)
		}
		_, err = service.Add(ctx, photos.AddPhotoRequest{
			ID:      msg.PhotoID,
			Owner:   owner,
			URL:     msg.URL,
			Caption: msg.Caption,
			Order:   msg.Order,
		})
		return classify(err, codePhotoSaveFailed)
	}

	handlerOpts := []commands.HandlerOption[AddPhotoCommand]{
		commands.WithLogger[AddPhotoCommand](baseLogger),
		commands.WithOperation[AddPhotoCommand]("photos.add"),
		commands.WithMessageFields(func(msg AddPhotoCommand) map[string]any {
			return map[string]any{
				"photo_id":    msg.PhotoID,
				"entity_type": msg.EntityType,
				"entity_id":   msg.EntityID,
			}
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[AddPhotoCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &AddPhotoHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[AddPhotoCommand].Execute.
func (h *AddPhotoHandler) Execute(ctx context.Context, msg AddPhotoCommand) error {
	return h.inner.Execute(ctx, msg)
}
