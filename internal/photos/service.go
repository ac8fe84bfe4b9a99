package photos

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/countyhub/go-minisite/entity"
	"github.com/countyhub/go-minisite/internal/logging"
	minisitephotos "github.com/countyhub/go-minisite/photos"
	"github.com/countyhub/go-minisite/pkg/interfaces"
	"github.com/google/uuid"
)

type ServiceOption func(*service)

func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		if clock != nil {
			s.now = clock
		}
	}
}

func WithIDGenerator(generator func() uuid.UUID) ServiceOption {
	return func(s *service) {
		if generator != nil {
			s.newID = generator
		}
	}
}

func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

type service struct {
	photos PhotoRepository
	now    func() time.Time
	newID  func() uuid.UUID
	logger interfaces.Logger
}

type cacheInvalidator interface {
	InvalidateCache(ctx context.Context) error
}

// NewService constructs the photo service.
func NewService(repo PhotoRepository, opts ...ServiceOption) Service {
	s := &service{
		photos: repo,
		now:    time.Now,
		newID:  uuid.New,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) List(ctx context.Context, owner entity.Ref) ([]*Photo, error) {
	if err := owner.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOwnerRequired, err)
	}
	records, err := s.photos.ListByOwner(ctx, owner)
	if err != nil {
		return nil, err
	}
	minisitephotos.SortByOrder(records)
	return records, nil
}

func (s *service) Get(ctx context.Context, owner entity.Ref, id uuid.UUID) (*Photo, error) {
	if err := owner.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOwnerRequired, err)
	}
	photo, err := s.photos.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if photo.Owner() != owner {
		return nil, &NotFoundError{Resource: "photo", Key: id.String()}
	}
	return photo, nil
}

func (s *service) Add(ctx context.Context, req AddPhotoRequest) (*Photo, error) {
	if err := req.Owner.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOwnerRequired, err)
	}
	link, err := normalizeURL(req.URL)
	if err != nil {
		return nil, err
	}

	// A caller-chosen id that already exists is a retry: hand back the
	// stored photo for the same listing, never move it to another one.
	if req.ID != uuid.Nil {
		found, err := s.photos.GetByID(ctx, req.ID)
		switch {
		case err == nil:
			if found.Owner() != req.Owner {
				return nil, &NotFoundError{Resource: "photo", Key: req.ID.String()}
			}
			return found, nil
		case errors.Is(err, ErrPhotoNotFound):
		default:
			return nil, err
		}
	}

	order := 0
	if req.Order != nil {
		if *req.Order < 0 {
			return nil, ErrOrderInvalid
		}
		order = *req.Order
	} else {
		existing, err := s.photos.ListByOwner(ctx, req.Owner)
		if err != nil {
			return nil, err
		}
		for _, photo := range existing {
			if photo.Order >= order {
				order = photo.Order + 1
			}
		}
	}

	record := &Photo{
		ID:        req.ID,
		URL:       link,
		Caption:   strings.TrimSpace(req.Caption),
		Order:     order,
		CreatedAt: s.now().UTC(),
	}
	if record.ID == uuid.Nil {
		record.ID = s.newID()
	}
	record.SetOwner(req.Owner)

	logger := logging.WithOwner(s.logger.WithContext(ctx), req.Owner)
	created, err := s.photos.Create(ctx, record)
	if err != nil {
		logger.Error("photo.create_failed", "photo_id", record.ID, "error", err)
		return nil, err
	}
	logger.Info("photo.added", "photo_id", created.ID, "order", created.Order)
	return created, nil
}

func (s *service) Update(ctx context.Context, req UpdatePhotoRequest) (*Photo, error) {
	existing, err := s.Get(ctx, req.Owner, req.ID)
	if err != nil {
		return nil, err
	}
	link, err := normalizeURL(req.URL)
	if err != nil {
		return nil, err
	}
	if req.Order < 0 {
		return nil, ErrOrderInvalid
	}
	existing.URL = link
	existing.Caption = strings.TrimSpace(req.Caption)
	existing.Order = req.Order

	updated, err := s.photos.Update(ctx, existing)
	if err != nil {
		return nil, err
	}
	logging.WithOwner(s.logger.WithContext(ctx), req.Owner).Info("photo.updated", "photo_id", updated.ID)
	return updated, nil
}

func (s *service) Delete(ctx context.Context, owner entity.Ref, id uuid.UUID) error {
	if _, err := s.Get(ctx, owner, id); err != nil {
		return err
	}
	if err := s.photos.Delete(ctx, id); err != nil {
		return err
	}
	logging.WithOwner(s.logger.WithContext(ctx), owner).Info("photo.deleted", "photo_id", id)
	return nil
}

// Reorder assigns positions 0..n-1 following ids, which must name every
// photo of the listing exactly once.
func (s *service) Reorder(ctx context.Context, owner entity.Ref, ids []uuid.UUID) ([]*Photo, error) {
	current, err := s.List(ctx, owner)
	if err != nil {
		return nil, err
	}
	if len(ids) != len(current) {
		return nil, ErrReorderMismatch
	}
	byID := make(map[uuid.UUID]*Photo, len(current))
	for _, photo := range current {
		byID[photo.ID] = photo
	}

	out := make([]*Photo, 0, len(ids))
	for position, id := range ids {
		photo, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrReorderMismatch, id)
		}
		delete(byID, id)
		if photo.Order == position {
			out = append(out, photo)
			continue
		}
		photo.Order = position
		updated, err := s.photos.Update(ctx, photo)
		if err != nil {
			return nil, err
		}
		out = append(out, updated)
	}
	s.logger.WithContext(ctx).Debug("photos.reordered", "entity", owner.String(), "count", len(out))
	return out, nil
}

func (s *service) InvalidateCache(ctx context.Context) error {
	if invalidator, ok := s.photos.(cacheInvalidator); ok {
		return invalidator.InvalidateCache(ctx)
	}
	return nil
}

// normalizeURL accepts absolute http(s) URLs and rooted paths such as
// /uploads/a.jpg.
func normalizeURL(raw string) (string, error) {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return "", ErrURLRequired
	}
	parsed, err := url.Parse(candidate)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrURLInvalid, err)
	}
	switch strings.ToLower(parsed.Scheme) {
	case "http", "https":
		if parsed.Host == "" {
			return "", fmt.Errorf("%w: %q", ErrURLInvalid, candidate)
		}
	case "":
		if !strings.HasPrefix(candidate, "/") || strings.HasPrefix(candidate, "//") {
			return "", fmt.Errorf("%w: %q", ErrURLInvalid, candidate)
		}
	default:
		return "", fmt.Errorf("%w: %q", ErrURLInvalid, candidate)
	}
	return candidate, nil
}
