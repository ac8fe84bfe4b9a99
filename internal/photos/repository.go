package photos

import (
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// NewPhotoRepository creates a go-repository-bun repository for photos.
func NewPhotoRepository(db *bun.DB) repository.Repository[*Photo] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Photo]{
		NewRecord: func() *Photo { return &Photo{} },
		GetID: func(p *Photo) uuid.UUID {
			return p.ID
		},
		SetID: func(p *Photo, id uuid.UUID) {
			p.ID = id
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(p *Photo) string {
			return p.ID.String()
		},
	})
}
