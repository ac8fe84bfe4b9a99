package navigation

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

// BunItemRepository implements ItemRepository with optional caching of
// lookups by id. Filtered reads bypass the cache.
type BunItemRepository struct {
	repo         repository.Repository[*Item]
	lists        repository.Repository[*Item]
	cacheService cache.CacheService
	cachePrefix  string
}

const itemNamespace = "minisite_navigation_item"

// NewBunItemRepository creates a navigation item repository without caching.
func NewBunItemRepository(db *bun.DB) *BunItemRepository {
	return NewBunItemRepositoryWithCache(db, nil, nil)
}

// NewBunItemRepositoryWithCache creates a navigation item repository with caching services.
func NewBunItemRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, serializer cache.KeySerializer) *BunItemRepository {
	base := NewItemRepository(db)
	lists := base
	var svc cache.CacheService
	if cacheService != nil && serializer != nil {
		base = repositorycache.New(base, cacheService, serializer)
		svc = cacheService
	}
	prefix := ""
	if svc != nil {
		prefix = itemNamespace + cache.KeySeparator
	}
	return &BunItemRepository{repo: base, lists: lists, cacheService: svc, cachePrefix: prefix}
}

func (r *BunItemRepository) Create(ctx context.Context, item *Item) (*Item, error) {
	return r.repo.Create(ctx, item)
}

func (r *BunItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*Item, error) {
	record, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "navigation_item", id.String())
	}
	return record, nil
}

func (r *BunItemRepository) ListByOwner(ctx context.Context, owner entity.Ref) ([]*Item, error) {
	records, _, err := r.lists.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.entity_type = ?", string(owner.Type)).
				Where("?TableAlias.entity_id = ?", owner.ID).
				OrderExpr("?TableAlias.sort_order ASC")
		}),
	)
	return records, err
}

func (r *BunItemRepository) ListChildren(ctx context.Context, parentID uuid.UUID) ([]*Item, error) {
	records, _, err := r.lists.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.parent_id = ?", parentID).
				OrderExpr("?TableAlias.sort_order ASC")
		}),
	)
	return records, err
}

func (r *BunItemRepository) GetByAutoManagedPage(ctx context.Context, owner entity.Ref, pageID uuid.UUID) (*Item, error) {
	records, _, err := r.lists.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.entity_type = ?", string(owner.Type)).
				Where("?TableAlias.entity_id = ?", owner.ID).
				Where("?TableAlias.auto_managed_for_page_id = ?", pageID)
		}),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, &NotFoundError{Resource: "navigation_item", Key: "auto:" + pageID.String()}
	}
	return records[0], nil
}

func (r *BunItemRepository) Update(ctx context.Context, item *Item) (*Item, error) {
	record, err := r.repo.Update(ctx, item)
	if err != nil {
		return nil, mapRepositoryError(err, "navigation_item", item.ID.String())
	}
	return record, nil
}

func (r *BunItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.repo.Delete(ctx, &Item{ID: id}); err != nil {
		return mapRepositoryError(err, "navigation_item", id.String())
	}
	return nil
}

func (r *BunItemRepository) InvalidateCache(ctx context.Context) error {
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
