package listings

import (
	"context"
	"fmt"
)

// ListingRepository extends the read surface with the writes used by seeding
// and the import tooling.
type ListingRepository interface {
	Reader
	Create(ctx context.Context, listing *Listing) (*Listing, error)
	Update(ctx context.Context, listing *Listing) (*Listing, error)
}

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
	return ErrListingNotFound
}
