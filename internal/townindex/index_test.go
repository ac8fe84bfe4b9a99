package townindex_test

import (
	"reflect"
	"testing"

	"github.com/countyhub/go-minisite/entity"
	"github.com/countyhub/go-minisite/internal/townindex"
	"github.com/countyhub/go-minisite/listings"
	"github.com/google/uuid"
)

func TestBuildGroupsByTown(t *testing.T) {
	diner := &listings.Listing{ID: uuid.New(), EntityType: entity.TypeRestaurant, Name: "Joe's Diner", Slug: "joes-diner", TownSlug: "rivertown"}
	church := &listings.Listing{ID: uuid.New(), EntityType: entity.TypeChurch, Name: "all saints", Slug: "all-saints", TownSlug: "rivertown"}
	truck := &listings.Listing{ID: uuid.New(), EntityType: entity.TypeFoodTruck, Name: "Taco Loco", Slug: "taco-loco", TownSlug: "hillview"}
	nowhere := &listings.Listing{ID: uuid.New(), Name: "Roaming", Slug: "roaming"}

	idx := townindex.Build([]*listings.Listing{diner, church, truck, nil, nowhere})

	if got := idx.Towns(); !reflect.DeepEqual(got, []string{"hillview", "rivertown"}) {
		t.Fatalf("unexpected towns %v", got)
	}
	entries := idx.Listings("rivertown")
	if len(entries) != 2 || entries[0].Slug != "all-saints" {
		t.Fatalf("expected case-insensitive name order, got %+v", entries)
	}
	if idx.Town(diner.ID) != "rivertown" {
		t.Fatalf("expected diner in rivertown")
	}
	if _, ok := idx.Lookup(nowhere.ID); !ok || idx.Town(nowhere.ID) != "" {
		t.Fatalf("expected townless listing to be indexed without a town")
	}
	if idx.Len() != 4 {
		t.Fatalf("expected 4 entries, got %d", idx.Len())
	}
}

func TestNilIndexIsEmpty(t *testing.T) {
	var idx *townindex.Index
	if idx.Town(uuid.New()) != "" || idx.Len() != 0 || idx.Towns() != nil {
		t.Fatalf("expected nil index to behave as empty")
	}
}
