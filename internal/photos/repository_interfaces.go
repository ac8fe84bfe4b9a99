package photos

import (
	"context"
	"fmt"

	"github.com/countyhub/go-minisite/entity"
	"github.com/google/uuid"
)

type PhotoRepository interface {
	Create(ctx context.Context, photo *Photo) (*Photo, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Photo, error)
	ListByOwner(ctx context.Context, owner entity.Ref) ([]*Photo, error)
	Update(ctx context.Context, photo *Photo) (*Photo, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// NotFoundError is returned when a photo record cannot be located.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

func (e *NotFoundError) Unwrap() error {
	return ErrPhotoNotFound
}
