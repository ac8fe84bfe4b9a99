package photos

import (
	"context"

	"github.com/countyhub/go-minisite/entity"
	"github.com/google/uuid"
)

// Service manages the uploaded photo records of a listing.
type Service interface {
	List(ctx context.Context, owner entity.Ref) ([]*Photo, error)
	Get(ctx context.Context, owner entity.Ref, id uuid.UUID) (*Photo, error)
	Add(ctx context.Context, req AddPhotoRequest) (*Photo, error)
	Update(ctx context.Context, req UpdatePhotoRequest) (*Photo, error)
	Delete(ctx context.Context, owner entity.Ref, id uuid.UUID) error
	Reorder(ctx context.Context, owner entity.Ref, ids []uuid.UUID) ([]*Photo, error)
	InvalidateCache(ctx context.Context) error
}

// AddPhotoRequest appends a photo. A nil Order places it after the existing
// photos of the listing.
type AddPhotoRequest struct {
	ID      uuid.UUID
	Owner   entity.Ref
	URL     string
	Caption string
	Order   *int
}

type UpdatePhotoRequest struct {
	ID      uuid.UUID
	Owner   entity.Ref
	URL     string
	Caption string
	Order   int
}
