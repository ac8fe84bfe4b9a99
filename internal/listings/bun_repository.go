package listings

import (
	"context"
	"fmt"

	"github.com/countyhub/go-minisite/entity"
	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	cache "github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// BunListingRepository reads listings from the shared directory table.
type BunListingRepository struct {
	repo         repository.Repository[*Listing]
	lists        repository.Repository[*Listing]
	cacheService cache.CacheService
	cachePrefix  string
}

const listingNamespace = "minisite_listing"

func NewBunListingRepository(db *bun.DB) *BunListingRepository {
	return NewBunListingRepositoryWithCache(db, nil, nil)
}

func NewBunListingRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, serializer cache.KeySerializer) *BunListingRepository {
	base := NewListingRepository(db)
	lists := base
	var svc cache.CacheService
	if cacheService != nil && serializer != nil {
		base = repositorycache.New(base, cacheService, serializer)
		svc = cacheService
	}
	prefix := ""
	if svc != nil {
		prefix = listingNamespace + cache.KeySeparator
	}
	return &BunListingRepository{repo: base, lists: lists, cacheService: svc, cachePrefix: prefix}
}

func (r *BunListingRepository) Create(ctx context.Context, listing *Listing) (*Listing, error) {
	return r.repo.Create(ctx, listing)
}

func (r *BunListingRepository) Update(ctx context.Context, listing *Listing) (*Listing, error) {
	record, err := r.repo.Update(ctx, listing)
	if err != nil {
		return nil, mapRepositoryError(err, "listing", listing.ID.String())
	}
	return record, nil
}

func (r *BunListingRepository) GetByID(ctx context.Context, id uuid.UUID) (*Listing, error) {
	record, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "listing", id.String())
	}
	return record, nil
}

func (r *BunListingRepository) FindBySlug(ctx context.Context, townSlug, slug string) (*Listing, error) {
	records, _, err := r.lists.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.slug = ?", slug).
				Where("?TableAlias.town_slug = ?", townSlug).
				OrderExpr("?TableAlias.created_at ASC")
		}),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "listing", townSlug+"/"+slug)
	}
	if len(records) == 0 {
		return nil, &NotFoundError{Resource: "listing", Key: townSlug + "/" + slug}
	}
	return records[0], nil
}

func (r *BunListingRepository) ListByType(ctx context.Context, kind entity.Type) ([]*Listing, error) {
	records, _, err := r.lists.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			if kind != "" {
				q = q.Where("?TableAlias.entity_type = ?", string(kind))
			}
			return q.OrderExpr("?TableAlias.name ASC")
		}),
	)
	return records, err
}

func (r *BunListingRepository) InvalidateCache(ctx context.Context) error {
	if r.cacheService == nil || r.cachePrefix == "" {
		return nil
	}
	return r.cacheService.DeleteByPrefix(ctx, r.cachePrefix)
}

func mapRepositoryError(err error, resource, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{Resource: resource, Key: key}
	}
	return fmt.Errorf("%s repository error: %w", resource, err)
}
