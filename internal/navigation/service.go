package navigation

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/countyhub/go-minisite/entity"
	"github.com/countyhub/go-minisite/internal/logging"
	minisitenav "github.com/countyhub/go-minisite/navigation"
	minisitepages "github.com/countyhub/go-minisite/pages"
	"github.com/countyhub/go-minisite/pkg/interfaces"
	"github.com/google/uuid"
)

// PageLookup resolves page targets. Only pages of the item's own listing are
// valid targets.
type PageLookup interface {
	Get(ctx context.Context, owner entity.Ref, id uuid.UUID) (*minisitepages.Page, error)
}

// ServiceOption configures the navigation service.
type ServiceOption func(*service)

// WithClock overrides the internal time source.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		if clock != nil {
			s.now = clock
		}
	}
}

// WithIDGenerator overrides the generator used for new item ids.
func WithIDGenerator(generator func() uuid.UUID) ServiceOption {
	return func(s *service) {
		if generator != nil {
			s.newID = generator
		}
	}
}

// WithPageLookup enables target validation for page links.
func WithPageLookup(pages PageLookup) ServiceOption {
	return func(s *service) {
		if pages != nil {
			s.pages = pages
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

type service struct {
	items  ItemRepository
	pages  PageLookup
	now    func() time.Time
	newID  func() uuid.UUID
	logger interfaces.Logger
}

type cacheInvalidator interface {
	InvalidateCache(ctx context.Context) error
}

// NewService constructs the navigation service.
func NewService(items ItemRepository, opts ...ServiceOption) Service {
	s := &service{
		items:  items,
		now:    time.Now,
		newID:  uuid.New,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) List(ctx context.Context, owner entity.Ref) ([]*Item, error) {
	if err := owner.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOwnerRequired, err)
	}
	items, err := s.items.ListByOwner(ctx, owner)
	if err != nil {
		return nil, err
	}
	minisitenav.SortByOrder(items)
	return items, nil
}

func (s *service) Get(ctx context.Context, owner entity.Ref, id uuid.UUID) (*Item, error) {
	if err := owner.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOwnerRequired, err)
	}
	item, err := s.items.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item.Owner() != owner {
		return nil, &NotFoundError{Resource: "navigation_item", Key: id.String()}
	}
	return item, nil
}

func (s *service) FindAutoManaged(ctx context.Context, owner entity.Ref, pageID uuid.UUID) (*Item, error) {
	if err := owner.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOwnerRequired, err)
	}
	return s.items.GetByAutoManagedPage(ctx, owner, pageID)
}

func (s *service) Save(ctx context.Context, req SaveItemRequest) (*Item, error) {
	if err := req.Owner.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOwnerRequired, err)
	}
	record, err := normalizeItem(req)
	if err != nil {
		return nil, err
	}

	var existing *Item
	if req.ID != uuid.Nil {
		found, err := s.items.GetByID(ctx, req.ID)
		switch {
		case err == nil:
			if found.Owner() != req.Owner {
				return nil, &NotFoundError{Resource: "navigation_item", Key: req.ID.String()}
			}
			existing = found
		case errors.Is(err, ErrItemNotFound):
		default:
			return nil, err
		}
	}

	if record.LinkType == LinkTypePage && s.pages != nil {
		if _, err := s.pages.Get(ctx, req.Owner, *record.PageID); err != nil {
			if errors.Is(err, minisitepages.ErrPageNotFound) {
				return nil, fmt.Errorf("%w: %s", ErrPageNotFound, record.PageID)
			}
			return nil, err
		}
	}
	if err := s.checkParent(ctx, req.Owner, record, existing != nil); err != nil {
		return nil, err
	}

	logger := logging.WithOwner(s.logger.WithContext(ctx), req.Owner)
	now := s.now().UTC()
	record.UpdatedAt = now

	if existing == nil {
		if record.ID == uuid.Nil {
			record.ID = s.newID()
		}
		record.CreatedAt = now
		created, err := s.items.Create(ctx, record)
		if err != nil {
			logger.Error("navigation.create_failed", "item_id", record.ID, "error", err)
			return nil, err
		}
		logger.Info("navigation.created", "item_id", created.ID, "link_type", string(created.LinkType))
		return created, nil
	}

	record.CreatedAt = existing.CreatedAt
	updated, err := s.items.Update(ctx, record)
	if err != nil {
		logger.Error("navigation.update_failed", "item_id", record.ID, "error", err)
		return nil, err
	}
	logger.Info("navigation.updated", "item_id", updated.ID, "link_type", string(updated.LinkType))
	return updated, nil
}

// Delete removes the item and its children.
func (s *service) Delete(ctx context.Context, owner entity.Ref, id uuid.UUID) error {
	item, err := s.Get(ctx, owner, id)
	if err != nil {
		return err
	}
	children, err := s.items.ListChildren(ctx, item.ID)
	if err != nil {
		return err
	}
	for _, child := range children {
		if err := s.items.Delete(ctx, child.ID); err != nil && !errors.Is(err, ErrItemNotFound) {
			return err
		}
	}
	if err := s.items.Delete(ctx, item.ID); err != nil {
		return err
	}
	logging.WithOwner(s.logger.WithContext(ctx), owner).Info("navigation.deleted",
		"item_id", item.ID,
		"children", len(children),
	)
	return nil
}

func (s *service) InvalidateCache(ctx context.Context) error {
	if invalidator, ok := s.items.(cacheInvalidator); ok {
		return invalidator.InvalidateCache(ctx)
	}
	return nil
}

func (s *service) checkParent(ctx context.Context, owner entity.Ref, record *Item, updating bool) error {
	if record.IsTopLevel() {
		record.ParentID = nil
		return nil
	}
	parentID := *record.ParentID
	if record.ID != uuid.Nil && parentID == record.ID {
		return ErrParentSelf
	}
	parent, err := s.items.GetByID(ctx, parentID)
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return fmt.Errorf("%w: %s", ErrParentNotFound, parentID)
		}
		return err
	}
	if parent.Owner() != owner {
		return fmt.Errorf("%w: %s", ErrParentNotFound, parentID)
	}
	if !parent.IsTopLevel() {
		return ErrParentNested
	}
	if updating {
		children, err := s.items.ListChildren(ctx, record.ID)
		if err != nil {
			return err
		}
		if len(children) > 0 {
			return ErrItemHasChildren
		}
	}
	return nil
}

func normalizeItem(req SaveItemRequest) (*Item, error) {
	label := strings.TrimSpace(req.Label)
	if label == "" {
		return nil, ErrLabelRequired
	}
	if !req.LinkType.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrLinkTypeInvalid, string(req.LinkType))
	}
	if req.Order < 0 {
		return nil, ErrOrderInvalid
	}

	record := &Item{
		ID:                   req.ID,
		Label:                label,
		LinkType:             req.LinkType,
		ParentID:             nonNil(req.ParentID),
		Order:                req.Order,
		IsVisible:            req.IsVisible,
		AutoManagedForPageID: nonNil(req.AutoManagedForPageID),
	}
	record.SetOwner(req.Owner)

	switch req.LinkType {
	case LinkTypePage:
		if req.PageID == nil || *req.PageID == uuid.Nil {
			return nil, ErrPageRequired
		}
		record.PageID = nonNil(req.PageID)
	case LinkTypeExternal:
		raw := strings.TrimSpace(req.ExternalURL)
		if raw == "" {
			return nil, ErrExternalURLRequired
		}
		if !isAbsoluteHTTPURL(raw) {
			return nil, fmt.Errorf("%w: %q", ErrExternalURLInvalid, raw)
		}
		record.ExternalURL = raw
	}
	return record, nil
}

func isAbsoluteHTTPURL(raw string) bool {
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	scheme := strings.ToLower(parsed.Scheme)
	return (scheme == "http" || scheme == "https") && parsed.Host != ""
}

func nonNil(id *uuid.UUID) *uuid.UUID {
	if id == nil || *id == uuid.Nil {
		return nil
	}
	copied := *id
	return &copied
}
