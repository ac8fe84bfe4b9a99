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

const reorderPagesMessageType = "minisite.pages.reorder"

// ReorderPagesCommand rewrites the order of every page of a listing. PageIDs
// lists each page exactly once, first to last.
type ReorderPagesCommand struct {
	EntityType string      `json:"entity_type"`
	EntityID   string      `json:"entity_id"`
	PageIDs    []uuid.UUID `json:"page_ids"`
}

// Type implements command.Message.
func (ReorderPagesCommand) Type() string { return reorderPagesMessageType }

// Validate rejects empty or duplicated id lists.
func (m ReorderPagesCommand) Validate() error {
	errs := validation.Errors{}
	commands.ValidateOwner(errs, "minisite.pages.reorder", m.EntityType, m.EntityID)
	if len(m.PageIDs) == 0 {
		errs["page_ids"] = validation.NewError("minisite.pages.reorder.page_ids_required", "page_ids is required")
	} else {
		seen := make(map[uuid.UUID]struct{}, len(m.PageIDs))
		for _, id := range m.PageIDs {
			if _, ok := seen[id]; ok || id == uuid.Nil {
				errs["page_ids"] = validation.NewError("minisite.pages.reorder.page_ids_invalid", "page_ids must be unique and non-empty")
				break
			}
			seen[id] = struct{}{}
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ReorderPagesHandler reorders pages via the page service.
type ReorderPagesHandler struct {
	inner *commands.Handler[ReorderPagesCommand]
}

// NewReorderPagesHandler constructs a handler wired to the provided page service.
func NewReorderPagesHandler(service pages.Service, logger interfaces.Logger, opts ...commands.HandlerOption[ReorderPagesCommand]) *ReorderPagesHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg ReorderPagesCommand) error {
		owner, err := commands.OwnerRef(msg.EntityType, msg.EntityID)
		if err != nil {
			return classify(err, codePageReorderFail)
		}
		_, err = service.Reorder(ctx, owner, msg.PageIDs)
		return classify(err, codePageReorderFail)
	}

	handlerOpts := []commands.HandlerOption[ReorderPagesCommand]{
		commands.WithLogger[ReorderPagesCommand](baseLogger),
		commands.WithOperation[ReorderPagesCommand]("pages.reorder"),
		commands.WithMessageFields(func(msg ReorderPagesCommand) map[string]any {
			return map[string]any{
				"entity_type": msg.EntityType,
				"entity_id":   msg.EntityID,
				"page_count":  len(msg.PageIDs),
			}
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[ReorderPagesCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ReorderPagesHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[ReorderPagesCommand].Execute.
func (h *ReorderPagesHandler) Execute(ctx context.Context, msg ReorderPagesCommand) error {
	return h.inner.Execute(ctx, msg)
}
