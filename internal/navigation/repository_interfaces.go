package navigation

import (
	"context"
	"fmt"

	"github.com/countyhub/go-minisite/entity"
	"github.com/google/uuid"
)

// ItemRepository is the navigation item record store.
type ItemRepository interface {
	Create(ctx context.Context, item *Item) (*Item, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Item, error)
	ListByOwner(ctx context.Context, owner entity.Ref) ([]*Item, error)
	ListChildren(ctx context.Context, parentID uuid.UUID) ([]*Item, error)
	GetByAutoManagedPage(ctx context.Context, owner entity.Ref, pageID uuid.UUID) (*Item, error)
	Update(ctx context.Context, item *Item) (*Item, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// NotFoundError is returned when a navigation item cannot be located.
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
	return ErrItemNotFound
}
