package navigation

import (
	"context"

	"github.com/countyhub/go-minisite/entity"
	"github.com/google/uuid"
)

// Service manages navigation items of mini-sites.
type Service interface {
	List(ctx context.Context, owner entity.Ref) ([]*Item, error)
	Get(ctx context.Context, owner entity.Ref, id uuid.UUID) (*Item, error)
	Save(ctx context.Context, req SaveItemRequest) (*Item, error)
	Delete(ctx context.Context, owner entity.Ref, id uuid.UUID) error
	FindAutoManaged(ctx context.Context, owner entity.Ref, pageID uuid.UUID) (*Item, error)
	InvalidateCache(ctx context.Context) error
}

// SaveItemRequest is an upsert keyed by ID, like pages.SavePageRequest.
type SaveItemRequest struct {
	ID                   uuid.UUID
	Owner                entity.Ref
	Label                string
	LinkType             LinkType
	PageID               *uuid.UUID
	ExternalURL          string
	ParentID             *uuid.UUID
	Order                int
	IsVisible            bool
	AutoManagedForPageID *uuid.UUID
}
