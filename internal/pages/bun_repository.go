package pages

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

// BunPageRepository implements PageRepository with optional caching. Owner
// scoped lists always read through the uncached repository.
type BunPageRepository struct {
	repo         repository.Repository[*Page]
	lists        repository.Repository[*Page]
	cacheService cache.CacheService
	cachePrefix  string
}

const pageNamespace = "minisite_page"

// NewBunPageRepository creates a page repository without caching.
func NewBunPageRepository(db *bun.DB) *BunPageRepository {
	return NewBunPageRepositoryWithCache(db, nil, nil)
}

// NewBunPageRepositoryWithCache creates a page repository with caching services.
func NewBunPageRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, serializer cache.KeySerializer) *BunPageRepository {
	base := NewPageRepository(db)
	lists := base
	var svc cache.CacheService
	if cacheService != nil && serializer != nil {
		base = repositorycache.New(base, cacheService, serializer)
		svc = cacheService
	}
	prefix := ""
	if svc != nil {
		prefix = pageNamespace + cache.KeySeparator
	}
	return &BunPageRepository{repo: base, lists: lists, cacheService: svc, cachePrefix: prefix}
}

func (r *BunPageRepository) Create(ctx context.Context, page *Page) (*Page, error) {
	return r.repo.Create(ctx, page)
}

func (r *BunPageRepository) GetByID(ctx context.Context, id uuid.UUID) (*Page, error) {
	record, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "page", id.String())
	}
	return record, nil
}

func (r *BunPageRepository) ListByOwner(ctx context.Context, owner entity.Ref) ([]*Page, error) {
	records, _, err := r.lists.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.entity_type = ?", string(owner.Type)).
				Where("?TableAlias.entity_id = ?", owner.ID).
				OrderExpr("?TableAlias.sort_order ASC").
				OrderExpr("?TableAlias.created_at ASC")
		}),
	)
	return records, err
}

func (r *BunPageRepository) Update(ctx context.Context, page *Page) (*Page, error) {
	record, err := r.repo.Update(ctx, page)
	if err != nil {
		return nil, mapRepositoryError(err, "page", page.ID.String())
	}
	return record, nil
}

func (r *BunPageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.repo.Delete(ctx, &Page{ID: id}); err != nil {
		return mapRepositoryError(err, "page", id.String())
	}
	return nil
}

func (r *BunPageRepository) InvalidateCache(ctx context.Context) error {
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
