package gallery

import (
	"slices"
	"strings"

	"github.com/countyhub/go-minisite/listings"
	minisitephotos "github.com/countyhub/go-minisite/photos"
)

// MainPhotoCaption tags the listing's primary image.
const MainPhotoCaption = "Main Photo"

// Source records where a gallery entry came from.
type Source string

const (
	SourcePrimary Source = "primary"
	SourceInline  Source = "inline"
	SourceRecord  Source = "record"
)

// Item is one entry of a listing's photo panel.
type Item struct {
	URL     string `json:"url"`
	Caption string `json:"caption,omitempty"`
	Source  Source `json:"source"`
}

// Compose orders the primary image, then the inline photos, then the photo
// records (by order). Entries without a URL are skipped. The same URL may
// appear more than once; callers decide whether to avoid that.
func Compose(primary string, inline []listings.InlinePhoto, records []*minisitephotos.Photo) []Item {
	out := make([]Item, 0, 1+len(inline)+len(records))

	if url := strings.TrimSpace(primary); url != "" {
		out = append(out, Item{URL: url, Caption: MainPhotoCaption, Source: SourcePrimary})
	}
	for _, photo := range inline {
		url := strings.TrimSpace(photo.URL)
		if url == "" {
			continue
		}
		out = append(out, Item{URL: url, Caption: strings.TrimSpace(photo.Caption), Source: SourceInline})
	}

	sorted := slices.Clone(records)
	sorted = slices.DeleteFunc(sorted, func(p *minisitephotos.Photo) bool { return p == nil })
	minisitephotos.SortByOrder(sorted)
	for _, photo := range sorted {
		url := strings.TrimSpace(photo.URL)
		if url == "" {
			continue
		}
		out = append(out, Item{URL: url, Caption: photo.Caption, Source: SourceRecord})
	}
	return out
}

// ForListing composes the gallery of listing.
func ForListing(listing *listings.Listing, records []*minisitephotos.Photo) []Item {
	if listing == nil {
		return Compose("", nil, records)
	}
	return Compose(listing.ImageURL, listing.Photos, records)
}
