package navigation

import (
	"context"
	"fmt"
	"strings"
	"sync"

	minisitepages "github.com/countyhub/go-minisite/pages"
	urlkit "github.com/goliatone/go-urlkit"
)

// URLKitResolverOptions configures the go-urlkit backed resolver. Route names
// default to "listing", "listing_page" and "listing_by_id"; the first two
// take :town, :listing and :page params, the last takes id and page as query
// values.
type URLKitResolverOptions struct {
	Manager      *urlkit.RouteManager
	Group        string
	ListingRoute string
	PageRoute    string
	ByIDRoute    string
}

// URLKitResolver builds mini-site links from a go-urlkit RouteManager.
type URLKitResolver struct {
	manager      *urlkit.RouteManager
	groupPath    string
	listingRoute string
	pageRoute    string
	byIDRoute    string

	mu    sync.RWMutex
	group *urlkit.Group
}

// NewURLKitResolver constructs a resolver backed by go-urlkit.
func NewURLKitResolver(opts URLKitResolverOptions) *URLKitResolver {
	r := &URLKitResolver{
		manager:      opts.Manager,
		groupPath:    strings.TrimSpace(opts.Group),
		listingRoute: strings.TrimSpace(opts.ListingRoute),
		pageRoute:    strings.TrimSpace(opts.PageRoute),
		byIDRoute:    strings.TrimSpace(opts.ByIDRoute),
	}
	if r.listingRoute == "" {
		r.listingRoute = "listing"
	}
	if r.pageRoute == "" {
		r.pageRoute = "listing_page"
	}
	if r.byIDRoute == "" {
		r.byIDRoute = "listing_by_id"
	}
	return r
}

func (r *URLKitResolver) PageURL(_ context.Context, link LinkContext, page *minisitepages.Page, homepage bool) (string, error) {
	group, err := r.resolveGroup()
	if err != nil {
		return "", err
	}

	if link.HasSlugs() {
		route := r.pageRoute
		if homepage || page == nil {
			route = r.listingRoute
		}
		builder, err := safeBuilder(group, route)
		if err != nil {
			return "", err
		}
		builder.WithParam("town", strings.TrimSpace(link.TownSlug))
		builder.WithParam("listing", strings.TrimSpace(link.ListingSlug))
		if route == r.pageRoute {
			builder.WithParam("page", page.Slug)
		}
		return builder.Build()
	}

	builder, err := safeBuilder(group, r.byIDRoute)
	if err != nil {
		return "", err
	}
	builder.WithQuery("id", link.ListingID)
	if !homepage && page != nil {
		builder.WithQuery("page", page.Slug)
	}
	return builder.Build()
}

func (r *URLKitResolver) resolveGroup() (*urlkit.Group, error) {
	r.mu.RLock()
	cached := r.group
	r.mu.RUnlock()
	if cached != nil {
		return cached, nil
	}
	if r.manager == nil {
		return nil, fmt.Errorf("navigation: route manager not configured")
	}
	if r.groupPath == "" {
		return nil, fmt.Errorf("navigation: route group not configured")
	}

	parts := strings.Split(r.groupPath, ".")
	current, err := lookupGroup(r.manager, parts[0])
	if err != nil {
		return nil, err
	}
	for _, part := range parts[1:] {
		if current, err = lookupChildGroup(current, part); err != nil {
			return nil, err
		}
	}

	r.mu.Lock()
	r.group = current
	r.mu.Unlock()
	return current, nil
}

// go-urlkit panics on unknown groups and routes; the helpers below turn those
// panics into errors.

func safeBuilder(group *urlkit.Group, route string) (builder *urlkit.Builder, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			builder, err = nil, fmt.Errorf("navigation: urlkit route %q: %v", route, rec)
		}
	}()
	return group.Builder(route), nil
}

func lookupGroup(manager *urlkit.RouteManager, name string) (group *urlkit.Group, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			group, err = nil, fmt.Errorf("navigation: route group %q not found", name)
		}
	}()
	return manager.Group(name), nil
}

func lookupChildGroup(parent *urlkit.Group, name string) (group *urlkit.Group, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			group, err = nil, fmt.Errorf("navigation: child group %q not found", name)
		}
	}()
	return parent.Group(name), nil
}
