package listings_test

import (
	"context"
	"errors"
	"testing"

	"github.com/countyhub/go-minisite/entity"
	"github.com/countyhub/go-minisite/internal/listings"
	"github.com/countyhub/go-minisite/pkg/testsupport"
)

func seededRepository(t *testing.T) listings.ListingRepository {
	t.Helper()
	list, err := listings.DecodeFixtures(testsupport.ReadFixture(t, "testdata/listings.json"))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	repo := listings.NewMemoryListingRepository()
	if err := listings.Seed(context.Background(), repo, list); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return repo
}

func TestFindBySlugIsTownScoped(t *testing.T) {
	repo := seededRepository(t)
	ctx := context.Background()

	listing, err := repo.FindBySlug(ctx, "rivertown", "joes-diner")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if listing.Name != "Joe's Diner" || len(listing.Photos) != 2 {
		t.Fatalf("unexpected listing %+v", listing)
	}
	if _, err := repo.FindBySlug(ctx, "othertown", "joes-diner"); !errors.Is(err, listings.ErrListingNotFound) {
		t.Fatalf("expected ErrListingNotFound, got %v", err)
	}
}

func TestListByType(t *testing.T) {
	repo := seededRepository(t)
	churches, err := repo.ListByType(context.Background(), entity.TypeChurch)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(churches) != 1 || churches[0].Slug != "st-marks" {
		t.Fatalf("unexpected churches %+v", churches)
	}
	all, _ := repo.ListByType(context.Background(), "")
	if len(all) != 3 {
		t.Fatalf("expected 3 listings, got %d", len(all))
	}
}

func TestSeedIsIdempotentAndValidates(t *testing.T) {
	repo := seededRepository(t)
	ctx := context.Background()
	all, _ := repo.ListByType(ctx, "")

	all[0].Name = "Joe's Diner & Grill"
	if err := listings.Seed(ctx, repo, all[:1]); err != nil {
		t.Fatalf("reseed: %v", err)
	}
	again, _ := repo.ListByType(ctx, "")
	if len(again) != 3 || again[0].Name != "Joe's Diner & Grill" {
		t.Fatalf("expected update in place, got %+v", again)
	}

	bad := &listings.Listing{EntityType: entity.TypeSchool, Name: "  ", Slug: "x", TownSlug: "y"}
	if err := listings.Seed(ctx, repo, []*listings.Listing{bad}); !errors.Is(err, listings.ErrNameRequired) {
		t.Fatalf("expected ErrNameRequired, got %v", err)
	}
}
