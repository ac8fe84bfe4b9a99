package photos

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

// BunPhotoRepository implements PhotoRepository with optional caching of
// lookups by id.
type BunPhotoRepository struct {
	repo         repository.Repository[*Photo]
	lists        repository.Repository[*Photo]
	cacheService cache.CacheService
	cachePrefix  string
}

const photoNamespace = "minisite_photo"

func NewBunPhotoRepository(db *bun.DB) *BunPhotoRepository {
	return NewBunPhotoRepositoryWithCache(db, nil, nil)
}

func NewBunPhotoRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, serializer cache.KeySerializer) *BunPhotoRepository {
	base := NewPhotoRepository(db)
	lists := base
	var svc cache.CacheService
	if cacheService != nil && serializer != nil {
		base = repositorycache.New(base, cacheService, serializer)
		svc = cacheService
	}
	prefix := ""
	if svc != nil {
		prefix = photoNamespace + cache.KeySeparator
	}
	return &BunPhotoRepository{repo: base, lists: lists, cacheService: svc, cachePrefix: prefix}
}

func (r *BunPhotoRepository) Create(ctx context.Context, photo *Photo) (*Photo, error) {
	return r.repo.Create(ctx, photo)
}

func (r *BunPhotoRepository) GetByID(ctx context.Context, id uuid.UUID) (*Photo, error) {
	record, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "photo", id.String())
	}
	return record, nil
}

func (r *BunPhotoRepository) ListByOwner(ctx context.Context, owner entity.Ref) ([]*Photo, error) {
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

func (r *BunPhotoRepository) Update(ctx context.Context, photo *Photo) (*Photo, error) {
	record, err := r.repo.Update(ctx, photo)
	if err != nil {
		return nil, mapRepositoryError(err, "photo", photo.ID.String())
	}
	return record, nil
}

func (r *BunPhotoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.repo.Delete(ctx, &Photo{ID: id}); err != nil {
		return mapRepositoryError(err, "photo", id.String())
	}
	return nil
}

func (r *BunPhotoRepository) InvalidateCache(ctx context.Context) error {
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
