package listings

import (
	"context"
	"errors"

	"github.com/countyhub/go-minisite/entity"
	"github.com/google/uuid"
)

var (
	ErrListingNotFound = errors.New("listings: listing not found")
	ErrNameRequired    = errors.New("listings: name is required")
	ErrSlugRequired    = errors.New("listings: slug and town slug are required")
)

// Reader is the read-only listing lookup the mini-site depends on.
type Reader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Listing, error)
	// FindBySlug returns the first listing whose slug and town slug both match.
	FindBySlug(ctx context.Context, townSlug, slug string) (*Listing, error)
	// ListByType returns every listing of kind; an empty kind lists all.
	ListByType(ctx context.Context, kind entity.Type) ([]*Listing, error)
}
