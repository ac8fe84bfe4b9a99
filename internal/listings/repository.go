package listings

import (
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// NewListingRepository creates a go-repository-bun repository for listings.
func NewListingRepository(db *bun.DB) repository.Repository[*Listing] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Listing]{
		NewRecord: func() *Listing { return &Listing{} },
		GetID: func(l *Listing) uuid.UUID {
			return l.ID
		},
		SetID: func(l *Listing, id uuid.UUID) {
			l.ID = id
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(l *Listing) string {
			return l.ID.String()
		},
	})
}
