package pagescmd

import (
	"context"
	"strings"

	"github.com/countyhub/go-minisite/internal/commands"
	"github.com/countyhub/go-minisite/internal/logging"
	"github.com/countyhub/go-minisite/internal/pages"
	"github.com/countyhub/go-minisite/pkg/interfaces"
	"github.com/countyhub/go-minisite/sections"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

const savePageMessageType = "minisite.pages.save"

// SavePageCommand creates or updates a page. The caller picks PageID up
// front so a retried command targets the same record.
type SavePageCommand struct {
	PageID          uuid.UUID          `json:"page_id"`
	EntityType      string             `json:"entity_type"`
	EntityID        string             `json:"entity_id"`
	Title           string             `json:"title"`
	Slug            string             `json:"slug"`
	IsPublished     bool               `json:"is_published"`
	IsHomepage      bool               `json:"is_homepage"`
	Order           int                `json:"order"`
	MetaTitle       string             `json:"meta_title,omitempty"`
	MetaDescription string             `json:"meta_description,omitempty"`
	Sections        []sections.Section `json:"sections"`
}

// Type implements command.Message.
func (SavePageCommand) Type() string { return savePageMessageType }

// Validate checks the fields the service cannot default.
func (m SavePageCommand) Validate() error {
	errs := validation.Errors{}
	if m.PageID == uuid.Nil {
		errs["page_id"] = validation.NewError("minisite.pages.save.page_id_required", "page_id is required")
	}
	commands.ValidateOwner(errs, "minisite.pages.save", m.EntityType, m.EntityID)
	if strings.TrimSpace(m.Title) == "" {
		errs["title"] = validation.NewError("minisite.pages.save.title_required", "title is required")
	}
	if m.Order < 0 {
		errs["order"] = validation.NewError("minisite.pages.save.order_invalid", "order must be zero or positive")
	}
	if err := sections.Validate(m.Sections); err != nil {
		errs["sections"] = validation.NewError("minisite.pages.save.sections_invalid", err.Error())
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SavePageHandler persists pages through the page service.
type SavePageHandler struct {
	inner *commands.Handler[SavePageCommand]
}

// NewSavePageHandler constructs a handler wired to the provided page service.
func NewSavePageHandler(service pages.Service, logger interfaces.Logger, opts ...commands.HandlerOption[SavePageCommand]) *SavePageHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg SavePageCommand) error {
		owner, err := commands.OwnerRef(msg.EntityType, msg.EntityID)
		if err != nil {
			return classify(err, codePageSaveFailed)
		}
		_, err = service.Save(ctx, pages.SavePageRequest{
			ID:              msg.PageID,
			Owner:           owner,
			Title:           msg.Title,
			Slug:            msg.Slug,
			IsPublished:     msg.IsPublished,
			IsHomepage:      msg.IsHomepage,
			Order:           msg.Order,
			MetaTitle:       msg.MetaTitle,
			MetaDescription: msg.MetaDescription,
			Sections:        msg.Sections,
		})
		return classify(err, codePageSaveFailed)
	}

	handlerOpts := []commands.HandlerOption[SavePageCommand]{
		commands.WithLogger[SavePageCommand](baseLogger),
		commands.WithOperation[SavePageCommand]("pages.save"),
		commands.WithMessageFields(func(msg SavePageCommand) map[string]any {
			fields := map[string]any{
				"entity_type": msg.EntityType,
				"entity_id":   msg.EntityID,
			}
			if msg.PageID != uuid.Nil {
				fields["page_id"] = msg.PageID
			}
			if slug := strings.TrimSpace(msg.Slug); slug != "" {
				fields["slug"] = slug
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[SavePageCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &SavePageHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[SavePageCommand].Execute.
func (h *SavePageHandler) Execute(ctx context.Context, msg SavePageCommand) error {
	return h.inner.Execute(ctx, msg)
}
