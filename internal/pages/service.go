package pages

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/countyhub/go-minisite/entity"
	"github.com/countyhub/go-minisite/internal/logging"
	"github.com/countyhub/go-minisite/internal/validation"
	minisitepages "github.com/countyhub/go-minisite/pages"
	"github.com/countyhub/go-minisite/pkg/interfaces"
	"github.com/countyhub/go-minisite/sections"
	"github.com/goliatone/go-slug"
	"github.com/google/uuid"
)

// DeleteHook runs after a page record is removed. Hook errors are logged and
// joined into the Delete result; the page stays deleted.
type DeleteHook func(ctx context.Context, page *Page) error

// SectionValidator checks a section list before it is persisted.
type SectionValidator func(list []sections.Section) error

// ServiceOption configures the page service.
type ServiceOption func(*service)

// WithClock overrides the internal time source.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		if clock != nil {
			s.now = clock
		}
	}
}

// WithIDGenerator overrides the generator used for new page ids.
func WithIDGenerator(generator func() uuid.UUID) ServiceOption {
	return func(s *service) {
		if generator != nil {
			s.newID = generator
		}
	}
}

// WithLogger sets the service logger.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithSectionValidator replaces the JSON schema check run on save.
func WithSectionValidator(validator SectionValidator) ServiceOption {
	return func(s *service) {
		if validator != nil {
			s.validateSections = validator
		}
	}
}

// WithDeleteHook registers a hook invoked after every page deletion.
func WithDeleteHook(hook DeleteHook) ServiceOption {
	return func(s *service) {
		if hook != nil {
			s.deleteHooks = append(s.deleteHooks, hook)
		}
	}
}

type service struct {
	pages            PageRepository
	now              func() time.Time
	newID            func() uuid.UUID
	logger           interfaces.Logger
	validateSections SectionValidator
	deleteHooks      []DeleteHook
}

type cacheInvalidator interface {
	InvalidateCache(ctx context.Context) error
}

// NewService constructs the page service.
func NewService(repo PageRepository, opts ...ServiceOption) Service {
	s := &service{
		pages:            repo,
		now:              time.Now,
		newID:            uuid.New,
		logger:           logging.NoOp(),
		validateSections: validation.ValidateSections,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Get(ctx context.Context, owner entity.Ref, id uuid.UUID) (*Page, error) {
	if err := owner.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOwnerRequired, err)
	}
	page, err := s.pages.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if page.Owner() != owner {
		return nil, &NotFoundError{Resource: "page", Key: id.String()}
	}
	return page, nil
}

func (s *service) List(ctx context.Context, owner entity.Ref) ([]*Page, error) {
	if err := owner.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOwnerRequired, err)
	}
	records, err := s.pages.ListByOwner(ctx, owner)
	if err != nil {
		return nil, err
	}
	minisitepages.SortByOrder(records)
	return records, nil
}

func (s *service) Save(ctx context.Context, req SavePageRequest) (*Page, error) {
	if err := req.Owner.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOwnerRequired, err)
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	if req.Order < 0 {
		return nil, ErrOrderInvalid
	}
	pageSlug, err := resolveSlug(req.Slug, title)
	if err != nil {
		return nil, err
	}

	list := sections.Clone(req.Sections)
	if list == nil {
		list = []sections.Section{}
	}
	if err := sections.Validate(list); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSectionsInvalid, err)
	}
	if err := s.validateSections(list); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSectionsInvalid, err)
	}

	var existing *Page
	if req.ID != uuid.Nil {
		found, err := s.pages.GetByID(ctx, req.ID)
		switch {
		case err == nil:
			if found.Owner() != req.Owner {
				return nil, &NotFoundError{Resource: "page", Key: req.ID.String()}
			}
			existing = found
		case errors.Is(err, ErrPageNotFound):
		default:
			return nil, err
		}
	}

	siblings, err := s.pages.ListByOwner(ctx, req.Owner)
	if err != nil {
		return nil, err
	}
	for _, sibling := range siblings {
		if sibling.Slug == pageSlug && sibling.ID != req.ID {
			return nil, fmt.Errorf("%w: %q", ErrSlugExists, pageSlug)
		}
	}

	now := s.now().UTC()
	record := &Page{
		ID:              req.ID,
		Title:           title,
		Slug:            pageSlug,
		IsPublished:     req.IsPublished,
		IsHomepage:      req.IsHomepage,
		Order:           req.Order,
		MetaTitle:       strings.TrimSpace(req.MetaTitle),
		MetaDescription: strings.TrimSpace(req.MetaDescription),
		Content:         Content{Sections: list},
		UpdatedAt:       now,
	}
	record.SetOwner(req.Owner)

	logger := logging.WithOwner(s.logger.WithContext(ctx), req.Owner)

	if existing == nil {
		if record.ID == uuid.Nil {
			record.ID = s.newID()
		}
		record.CreatedAt = now
		created, err := s.pages.Create(ctx, record)
		if err != nil {
			logger.Error("page.create_failed", "page_id", record.ID, "error", err)
			return nil, err
		}
		logger.Info("page.created", "page_id", created.ID, "slug", created.Slug)
		return created, nil
	}

	record.CreatedAt = existing.CreatedAt
	updated, err := s.pages.Update(ctx, record)
	if err != nil {
		logger.Error("page.update_failed", "page_id", record.ID, "error", err)
		return nil, err
	}
	logger.Info("page.updated", "page_id", updated.ID, "slug", updated.Slug)
	return updated, nil
}

func (s *service) Reorder(ctx context.Context, owner entity.Ref, ids []uuid.UUID) ([]*Page, error) {
	current, err := s.List(ctx, owner)
	if err != nil {
		return nil, err
	}
	if len(ids) != len(current) {
		return nil, ErrReorderMismatch
	}
	byID := make(map[uuid.UUID]*Page, len(current))
	for _, page := range current {
		byID[page.ID] = page
	}

	now := s.now().UTC()
	out := make([]*Page, 0, len(ids))
	for position, id := range ids {
		page, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrReorderMismatch, id)
		}
		delete(byID, id)
		if page.Order == position {
			out = append(out, page)
			continue
		}
		page.Order = position
		page.UpdatedAt = now
		updated, err := s.pages.Update(ctx, page)
		if err != nil {
			return nil, err
		}
		out = append(out, updated)
	}
	s.logger.WithContext(ctx).Debug("pages.reordered", "entity", owner.String(), "count", len(out))
	return out, nil
}

func (s *service) Delete(ctx context.Context, owner entity.Ref, id uuid.UUID) error {
	page, err := s.Get(ctx, owner, id)
	if err != nil {
		return err
	}
	if err := s.pages.Delete(ctx, id); err != nil {
		return err
	}
	logger := logging.WithOwner(s.logger.WithContext(ctx), owner)
	logger.Info("page.deleted", "page_id", id)

	var errs []error
	for _, hook := range s.deleteHooks {
		if err := hook(ctx, page); err != nil {
			logger.Warn("page.delete_hook_failed", "page_id", id, "error", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *service) InvalidateCache(ctx context.Context) error {
	if invalidator, ok := s.pages.(cacheInvalidator); ok {
		return invalidator.InvalidateCache(ctx)
	}
	return nil
}

// resolveSlug derives the slug from the title when none is given, otherwise
// normalises the supplied one.
func resolveSlug(raw, title string) (string, error) {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		derived := minisitepages.DeriveSlug(title)
		if derived == "" {
			return "", ErrSlugRequired
		}
		return derived, nil
	}
	normalized, err := slug.Normalize(candidate)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSlugInvalid, err)
	}
	normalized = minisitepages.DeriveSlug(normalized)
	if normalized == "" {
		return "", ErrSlugInvalid
	}
	return normalized, nil
}
