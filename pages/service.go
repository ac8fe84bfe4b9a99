package pages

import (
	"context"

	"github.com/countyhub/go-minisite/entity"
	"github.com/countyhub/go-minisite/sections"
	"github.com/google/uuid"
)

// Service describes page storage for mini-sites. Every call is scoped to the
// owning listing; a page of another listing is reported as not found.
type Service interface {
	Get(ctx context.Context, owner entity.Ref, id uuid.UUID) (*Page, error)
	List(ctx context.Context, owner entity.Ref) ([]*Page, error)
	Save(ctx context.Context, req SavePageRequest) (*Page, error)
	Reorder(ctx context.Context, owner entity.Ref, ids []uuid.UUID) ([]*Page, error)
	Delete(ctx context.Context, owner entity.Ref, id uuid.UUID) error
	InvalidateCache(ctx context.Context) error
}

// SavePageRequest is an upsert. A nil ID creates a page with a generated id;
// an ID that does not exist yet creates a page with that id.
type SavePageRequest struct {
	ID              uuid.UUID
	Owner           entity.Ref
	Title           string
	Slug            string
	IsPublished     bool
	IsHomepage      bool
	Order           int
	MetaTitle       string
	MetaDescription string
	Sections        []sections.Section
}
