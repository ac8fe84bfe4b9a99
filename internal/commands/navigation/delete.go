package navcmd

import (
	"context"

	"github.com/countyhub/go-minisite/internal/commands"
	"github.com/countyhub/go-minisite/internal/logging"
	"github.com/countyhub/go-minisite/internal/navigation"
	"github.com/countyhub/go-minisite/pkg/interfaces"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

const deleteItemMessageType = "minisite.navigation.delete"

// DeleteItemCommand removes a navigation item and its children.
type DeleteItemCommand struct {
	ItemID     uuid.UUID `json:"item_id"`
	EntityType string    `json:"entity_type"`
	EntityID   string    `json:"entity_id"`
}

// Type implements command.Message.
func (DeleteItemCommand) Type() string { return deleteItemMessageType }

// Validate ensures the item and its owner are identified.
func (m DeleteItemCommand) Validate() error {
	errs := validation.Errors{}
	if m.ItemID == uuid.Nil {
		errs["item_id"] = validation.NewError("minisite.navigation.delete.item_id_required", "item_id is required")
	}
	commands.ValidateOwner(errs, "minisite.navigation.delete", m.EntityType, m.EntityID)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// DeleteItemHandler deletes navigation items via the navigation service.
type DeleteItemHandler struct {
	inner *commands.Handler[DeleteItemCommand]
}

// NewDeleteItemHandler constructs a handler wired to the provided navigation service.
func NewDeleteItemHandler(service navigation.Service, logger interfaces.Logger, opts ...commands.HandlerOption[DeleteItemCommand]) *DeleteItemHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg DeleteItemCommand) error {
		owner, err := commands.OwnerRef(msg.EntityType, msg.EntityID)
		if err != nil {
			return classify(err, codeNavigationDeleteFailed)
		}
		return classify(service.Delete(ctx, owner, msg.ItemID), codeNavigationDeleteFailed)
	}

	handlerOpts := []commands.HandlerOption[DeleteItemCommand]{
		commands.WithLogger[DeleteItemCommand](baseLogger),
		commands.WithOperation[DeleteItemCommand]("navigation.delete"),
		commands.WithMessageFields(func(msg DeleteItemCommand) map[string]any {
			return map[string]any{
				"item_id":     msg.ItemID,
				"entity_type": msg.EntityType,
				"entity_id":   msg.EntityID,
			}
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[DeleteItemCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &DeleteItemHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[DeleteItemCommand].Execute.
func (h *DeleteItemHandler) Execute(ctx context.Context, msg DeleteItemCommand) error {
	return h.inner.Execute(ctx, msg)
}
