package photos_test

import (
	"context"
	"testing"
	"time"

	"github.com/countyhub/go-minisite/internal/photos"
	"github.com/countyhub/go-minisite/pkg/testsupport"
	repocache "github.com/goliatone/go-repository-cache/cache"
)

func TestPhotoService_WithBunStorageAndCache(t *testing.T) {
	ctx := context.Background()

	bunDB := testsupport.NewBunDB(t, (*photos.Photo)(nil))

	cacheCfg := repocache.DefaultConfig()
	cacheCfg.TTL = time.Minute
	cacheService, err := repocache.NewCacheService(cacheCfg)
	if err != nil {
		t.Fatalf("new cache service: %v", err)
	}
	svc := photos.NewService(photos.NewBunPhotoRepositoryWithCache(bunDB, cacheService, repocache.NewDefaultKeySerializer()))

	added, err := svc.Add(ctx, photos.AddPhotoRequest{Owner: realty, URL: "https://cdn.example.com/front.jpg", Caption: "Front"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := svc.Add(ctx, photos.AddPhotoRequest{Owner: realty, URL: "https://cdn.example.com/back.jpg"}); err != nil {
		t.Fatalf("add second: %v", err)
	}

	fetched, err := svc.Get(ctx, realty, added.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if fetched.Caption != "Front" {
		t.Fatalf("unexpected caption %q", fetched.Caption)
	}

	list, err := svc.List(ctx, realty)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].ID != added.ID || list[1].Order != 1 {
		t.Fatalf("unexpected list %+v", list)
	}
	if err := svc.InvalidateCache(ctx); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
}
