package pagescmd

import (
	"context"

	"github.com/countyhub/go-minisite/internal/commands"
	"github.com/countyhub/go-minisite/internal/logging"
	"github.com/countyhub/go-minisite/internal/pages"
	"github.com/countyhub/go-minisite/pkg/interfaces"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

const deletePageMessageType = "minisite.pages.delete"

// DeletePageCommand removes a page. The service's delete hooks drop the
// page's auto-managed navigation item.
type DeletePageCommand struct {
	PageID     uuid.UUID `json:"page_id"`
	EntityType string    `json:"entity_type"`
	EntityID   string    `json:"entity_id"`
}

// Type implements command.Message.
func (DeletePageCommand) Type() string { return deletePageMessageType }

// Validate ensures the page and its owner are identified.
func (m DeletePageCommand) Validate() error {
	errs := validation.Errors{}
	if m.PageID == uuid.Nil {
		errs["page_id"] = validation.NewError("minisite.pages.delete.page_id_required", "page_id is required")
	}
	commands.ValidateOwner(errs, "minisite.pages.delete", m.EntityType, m.EntityID)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// DeletePageHandler deletes pages via the page service.
type DeletePageHandler struct {
	inner *commands.Handler[DeletePageCommand]
}

// NewDeletePageHandler constructs a handler wired to the provided page service.
func NewDeletePageHandler(service pages.Service, logger interfaces.Logger, opts ...commands.HandlerOption[DeletePageCommand]) *DeletePageHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg DeletePageCommand) error {
		owner, err := commands.OwnerRef(msg.EntityType, msg.EntityID)
		if err != nil {
			return classify(err, codePageDeleteFailed)
		}
		return classify(service.Delete(ctx, owner, msg.PageID), codePageDeleteFailed)
	}

	handlerOpts := []commands.HandlerOption[DeletePageCommand]{
		commands.WithLogger[DeletePageCommand](baseLogger),
		commands.WithOperation[DeletePageCommand]("pages.delete"),
		commands.WithMessageFields(func(msg DeletePageCommand) map[string]any {
			return map[string]any{
				"page_id":     msg.PageID,
				"entity_type": msg.EntityType,
				"entity_id":   msg.EntityID,
			}
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[DeletePageCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &DeletePageHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[DeletePageCommand].Execute.
func (h *DeletePageHandler) Execute(ctx context.Context, msg DeletePageCommand) error {
	return h.inner.Execute(ctx, msg)
}
