package pages

import (
	"context"
	"fmt"

	"github.com/countyhub/go-minisite/entity"
	"github.com/google/uuid"
)

// PageRepository is the page record store. ListByOwner is the only filtered
// read the mini-site relies on.
type PageRepository interface {
	Create(ctx context.Context, page *Page) (*Page, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Page, error)
	ListByOwner(ctx context.Context, owner entity.Ref) ([]*Page, error)
	Update(ctx context.Context, page *Page) (*Page, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// NotFoundError is returned when a page record cannot be located.
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

// Unwrap lets callers match page misses with errors.Is(err, ErrPageNotFound).
func (e *NotFoundError) Unwrap() error {
	return ErrPageNotFound
}
