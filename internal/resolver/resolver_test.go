package resolver_test

import (
	"context"
	"errors"
	"testing"

	"github.com/countyhub/go-minisite/entity"
	"github.com/countyhub/go-minisite/internal/listings"
	"github.com/countyhub/go-minisite/internal/metrics"
	"github.com/countyhub/go-minisite/internal/resolver"
	"github.com/google/uuid"
)

func newResolver(t *testing.T) (*resolver.Resolver, *listings.Listing) {
	t.Helper()
	repo := listings.NewMemoryListingRepository()
	diner, err := repo.Create(context.Background(), &listings.Listing{
		ID:         uuid.New(),
		EntityType: entity.TypeRestaurant,
		Name:       "Joe's Diner",
		Slug:       "joes-diner",
		TownSlug:   "rivertown",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	return resolver.New(repo), diner
}

func TestResolveBySlugPair(t *testing.T) {
	r, diner := newResolver(t)

	result := r.Resolve(context.Background(), resolver.Request{TownSlug: "rivertown", EntitySlug: "joes-diner"})
	if !result.Found || result.Via != resolver.ViaSlug {
		t.Fatalf("expected slug hit, got %+v", result)
	}
	if result.Ref != entity.Restaurant(diner.ID.String()) {
		t.Fatalf("unexpected ref %+v", result.Ref)
	}
}

func TestResolveIsTownScoped(t *testing.T) {
	r, _ := newResolver(t)

	result := r.Resolve(context.Background(), resolver.Request{TownSlug: "othertown", EntitySlug: "joes-diner"})
	if result.Found {
		t.Fatalf("expected miss for another town, got %+v", result)
	}
}

func TestResolveFallsBackToID(t *testing.T) {
	r, diner := newResolver(t)

	result := r.Resolve(context.Background(), resolver.Request{TownSlug: "othertown", EntitySlug: "joes-diner", ID: diner.ID.String()})
	if !result.Found || result.Via != resolver.ViaID || result.Listing.ID != diner.ID {
		t.Fatalf("expected id fallback, got %+v", result)
	}

	if got := r.Resolve(context.Background(), resolver.Request{ID: "not-a-uuid"}); got.Found {
		t.Fatalf("expected invalid id to miss")
	}
	if got := r.Resolve(context.Background(), resolver.Request{}); got.Found {
		t.Fatalf("expected empty request to miss")
	}
}

type failingReader struct{ listings.Reader }

func (failingReader) FindBySlug(context.Context, string, string) (*listings.Listing, error) {
	return nil, errors.New("connection reset")
}

func (failingReader) GetByID(context.Context, uuid.UUID) (*listings.Listing, error) {
	return nil, errors.New("connection reset")
}

func TestResolveDegradesStoreFailures(t *testing.T) {
	r := resolver.New(failingReader{})
	result := r.Resolve(context.Background(), resolver.Request{TownSlug: "a", EntitySlug: "b", ID: uuid.NewString()})
	if result.Found {
		t.Fatalf("expected store failure to resolve as not found")
	}
}

type slugOutage struct{ listings.Reader }

func (slugOutage) FindBySlug(context.Context, string, string) (*listings.Listing, error) {
	return nil, errors.New("connection reset")
}

type outcomeCounter struct {
	metrics.Recorder
	outcomes []string
}

func (c *outcomeCounter) ResolveOutcome(outcome string) {
	c.outcomes = append(c.outcomes, outcome)
}

func TestResolveRecordsOneOutcomePerCall(t *testing.T) {
	repo := listings.NewMemoryListingRepository()
	diner, err := repo.Create(context.Background(), &listings.Listing{
		ID:         uuid.New(),
		EntityType: entity.TypeRestaurant,
		Name:       "Joe's Diner",
		Slug:       "joes-diner",
		TownSlug:   "rivertown",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	cases := []struct {
		name string
		req  resolver.Request
		want string
	}{
		{"slug failure then id hit", resolver.Request{TownSlug: "rivertown", EntitySlug: "joes-diner", ID: diner.ID.String()}, metrics.ResolvedByID},
		{"slug failure then miss", resolver.Request{TownSlug: "rivertown", EntitySlug: "joes-diner"}, metrics.ResolveError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			counter := &outcomeCounter{Recorder: metrics.NoOp()}
			r := resolver.New(slugOutage{Reader: repo}, resolver.WithMetrics(counter))
			r.Resolve(context.Background(), tc.req)
			if len(counter.outcomes) != 1 || counter.outcomes[0] != tc.want {
				t.Fatalf("expected exactly [%s], got %v", tc.want, counter.outcomes)
			}
		})
	}
}
