package navigation

import (
	"context"
	"net/url"
	"strings"

	minisitepages "github.com/countyhub/go-minisite/pages"
)

// LinkContext identifies the listing whose mini-site links are being built.
// The slug pair is preferred; ListingID drives the ?id= fallback form.
type LinkContext struct {
	TownSlug    string
	ListingSlug string
	ListingID   string
}

// HasSlugs reports whether the SEO-facing /town/listing form can be used.
func (l LinkContext) HasSlugs() bool {
	return strings.TrimSpace(l.TownSlug) != "" && strings.TrimSpace(l.ListingSlug) != ""
}

// URLResolver builds the URL of a mini-site page. Homepage links point at
// the listing itself.
type URLResolver interface {
	PageURL(ctx context.Context, link LinkContext, page *minisitepages.Page, homepage bool) (string, error)
}

// PathResolver builds relative URLs: /{town}/{listing}[/{page}] when the
// slugs are known, otherwise /listing?id={id}[&page={page}].
type PathResolver struct {
	// ByIDPath defaults to "/listing".
	ByIDPath string
}

func (r PathResolver) PageURL(_ context.Context, link LinkContext, page *minisitepages.Page, homepage bool) (string, error) {
	if link.HasSlugs() {
		base := "/" + url.PathEscape(strings.TrimSpace(link.TownSlug)) + "/" + url.PathEscape(strings.TrimSpace(link.ListingSlug))
		if homepage || page == nil {
			return base, nil
		}
		return base + "/" + url.PathEscape(page.Slug), nil
	}

	path := r.ByIDPath
	if path == "" {
		path = "/listing"
	}
	query := url.Values{}
	query.Set("id", link.ListingID)
	if !homepage && page != nil {
		query.Set("page", page.Slug)
	}
	return path + "?" + query.Encode(), nil
}
