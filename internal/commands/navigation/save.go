package navcmd

import (
	"context"
	"strings"

	"github.com/countyhub/go-minisite/internal/commands"
	"github.com/countyhub/go-minisite/internal/logging"
	"github.com/countyhub/go-minisite/internal/navigation"
	"github.com/countyhub/go-minisite/pkg/interfaces"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

const saveItemMessageType = "minisite.navigation.save"

// SaveItemCommand upserts a navigation item keyed by ItemID.
type SaveItemCommand struct {
	ItemID               uuid.UUID  `json:"item_id"`
	EntityType           string     `json:"entity_type"`
	EntityID             string     `json:"entity_id"`
	Label                string     `json:"label"`
	LinkType             string     `json:"link_type"`
	PageID               *uuid.UUID `json:"page_id,omitempty"`
	ExternalURL          string     `json:"external_url,omitempty"`
	ParentID             *uuid.UUID `json:"parent_id,omitempty"`
	Order                int        `json:"order"`
	IsVisible            bool       `json:"is_visible"`
	AutoManagedForPageID *uuid.UUID `json:"auto_managed_for_page_id,omitempty"`
}

// Type implements command.Message.
func (SaveItemCommand) Type() string { return saveItemMessageType }

// Validate applies the link rules that do not need storage access. Parent
// and page existence are checked by the service.
func (m SaveItemCommand) Validate() error {
	errs := validation.Errors{}
	if m.ItemID == uuid.Nil {
		errs["item_id"] = validation.NewError("minisite.navigation.save.item_id_required", "item_id is required")
	}
	commands.ValidateOwner(errs, "minisite.navigation.save", m.EntityType, m.EntityID)
	if strings.TrimSpace(m.Label) == "" {
		errs["label"] = validation.NewError("minisite.navigation.save.label_required", "label is required")
	}
	switch navigation.LinkType(m.LinkType) {
	case navigation.LinkTypePage:
		if m.PageID == nil || *m.PageID == uuid.Nil {
			errs["page_id"] = validation.NewError("minisite.navigation.save.page_id_required", "page_id is required for page links")
		}
	case navigation.LinkTypeExternal:
		if strings.TrimSpace(m.ExternalURL) == "" {
			errs["external_url"] = validation.NewError("minisite.navigation.save.external_url_required", "external_url is required for external links")
		}
	default:
		errs["link_type"] = validation.NewError("minisite.navigation.save.link_type_invalid", "link_type must be page or external")
	}
	if m.ParentID != nil && *m.ParentID == m.ItemID {
		errs["parent_id"] = validation.NewError("minisite.navigation.save.parent_self", "an item cannot be its own parent")
	}
	if m.Order < 0 {
		errs["order"] = validation.NewError("minisite.navigation.save.order_invalid", "order must be zero or positive")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SaveItemHandler persists navigation items through the navigation service.
type SaveItemHandler struct {
	inner *commands.Handler[SaveItemCommand]
}

// NewSaveItemHandler constructs a handler wired to the provided navigation service.
func NewSaveItemHandler(service navigation.Service, logger interfaces.Logger, opts ...commands.HandlerOption[SaveItemCommand]) *SaveItemHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg SaveItemCommand) error {
		owner, err := commands.OwnerRef(msg.EntityType, msg.EntityID)
		if err != nil {
			return classify(err, codeNavigationSaveFailed)
		}
		_, err = service.Save(ctx, navigation.SaveItemRequest{
			ID:                   msg.ItemID,
			Owner:                owner,
			Label:                msg.Label,
			LinkType:             navigation.LinkType(msg.LinkType),
			PageID:               msg.PageID,
			ExternalURL:          msg.ExternalURL,
			ParentID:             msg.ParentID,
			Order:                msg.Order,
			IsVisible:            msg.IsVisible,
			AutoManagedForPageID: msg.AutoManagedForPageID,
		})
		return classify(err, codeNavigationSaveFailed)
	}

	handlerOpts := []commands.HandlerOption[SaveItemCommand]{
		commands.WithLogger[SaveItemCommand](baseLogger),
		commands.WithOperation[SaveItemCommand]("navigation.save"),
		commands.WithMessageFields(func(msg SaveItemCommand) map[string]any {
			fields := map[string]any{
				"item_id":     msg.ItemID,
				"entity_type": msg.EntityType,
				"entity_id":   msg.EntityID,
				"link_type":   msg.LinkType,
			}
			if msg.AutoManagedForPageID != nil {
				fields["auto_managed_for_page_id"] = *msg.AutoManagedForPageID
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[SaveItemCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &SaveItemHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[SaveItemCommand].Execute.
func (h *SaveItemHandler) Execute(ctx context.Context, msg SaveItemCommand) error {
	return h.inner.Execute(ctx, msg)
}
