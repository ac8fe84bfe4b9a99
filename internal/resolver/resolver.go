package resolver

import (
	"context"
	"errors"
	"strings"

	"github.com/countyhub/go-minisite/entity"
	"github.com/countyhub/go-minisite/internal/logging"
	"github.com/countyhub/go-minisite/internal/metrics"
	"github.com/countyhub/go-minisite/listings"
	"github.com/countyhub/go-minisite/pkg/interfaces"
	"github.com/google/uuid"
)

// Request names a listing either by its SEO slug pair or by id. Both may be
// present; the slug pair is tried first.
type Request struct {
	TownSlug   string
	EntitySlug string
	ID         string
}

func (r Request) hasSlugs() bool {
	return strings.TrimSpace(r.TownSlug) != "" && strings.TrimSpace(r.EntitySlug) != ""
}

// Via records which lookup produced a listing.
type Via string

const (
	ViaSlug Via = "slug"
	ViaID   Via = "id"
)

// Result is the outcome of a resolution. Found is false when neither path
// matched; Listing and Ref are then zero.
type Result struct {
	Found   bool
	Listing *listings.Listing
	Ref     entity.Ref
	Via     Via
}

// Option configures the resolver.
type Option func(*Resolver)

func WithLogger(logger interfaces.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

func WithMetrics(recorder metrics.Recorder) Option {
	return func(r *Resolver) {
		if recorder != nil {
			r.metrics = recorder
		}
	}
}

// Resolver maps routing input to a concrete listing. It is read-only.
type Resolver struct {
	listings listings.Reader
	logger   interfaces.Logger
	metrics  metrics.Recorder
}

func New(reader listings.Reader, opts ...Option) *Resolver {
	r := &Resolver{
		listings: reader,
		logger:   logging.NoOp(),
		metrics:  metrics.NoOp(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve never returns an error. Store failures are logged and reported as
// not found so the hosting page can always render. Exactly one outcome is
// recorded per call: a hit wins over an earlier store failure, and a miss
// after a store failure counts as an error.
func (r *Resolver) Resolve(ctx context.Context, req Request) Result {
	logger := r.logger.WithContext(ctx)
	outcome := metrics.ResolveMiss
	defer func() { r.metrics.ResolveOutcome(outcome) }()

	if req.hasSlugs() {
		town := strings.TrimSpace(req.TownSlug)
		slug := strings.TrimSpace(req.EntitySlug)
		listing, err := r.listings.FindBySlug(ctx, town, slug)
		switch {
		case err == nil && listing != nil:
			outcome = metrics.ResolvedBySlug
			return found(listing, ViaSlug)
		case err != nil && !errors.Is(err, listings.ErrListingNotFound):
			outcome = metrics.ResolveError
			logger.Warn("resolver.slug_lookup_failed", "town_slug", town, "slug", slug, "error", err)
		}
	}

	if raw := strings.TrimSpace(req.ID); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			logger.Debug("resolver.invalid_id", "id", raw)
		} else {
			listing, err := r.listings.GetByID(ctx, id)
			switch {
			case err == nil && listing != nil:
				outcome = metrics.ResolvedByID
				return found(listing, ViaID)
			case err != nil && !errors.Is(err, listings.ErrListingNotFound):
				outcome = metrics.ResolveError
				logger.Warn("resolver.id_lookup_failed", "id", raw, "error", err)
			}
		}
	}

	logger.Debug("resolver.miss", "town_slug", req.TownSlug, "slug", req.EntitySlug, "id", req.ID)
	return Result{}
}

func found(listing *listings.Listing, via Via) Result {
	return Result{Found: true, Listing: listing, Ref: listing.Ref(), Via: via}
}
