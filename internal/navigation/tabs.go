package navigation

import (
	"context"

	minisitepages "github.com/countyhub/go-minisite/pages"
	"github.com/google/uuid"
)

// Tab is a navigation item resolved for display.
type Tab struct {
	ID       uuid.UUID  `json:"id"`
	Label    string     `json:"label"`
	URL      string     `json:"url"`
	External bool       `json:"external"`
	PageID   *uuid.UUID `json:"page_id,omitempty"`
	PageSlug string     `json:"page_slug,omitempty"`
	Children []Tab      `json:"children,omitempty"`
}

// TabInput carries what ResolveTabs needs. Items should already be filtered
// to visible entries and sorted; Pages should contain published pages only.
type TabInput struct {
	Items    []*Item
	Pages    []*minisitepages.Page
	Homepage *minisitepages.Page
	Link     LinkContext
	Resolver URLResolver
}

// ResolveTabs turns navigation items into a one-level tab tree. Page links
// whose target is not among the supplied pages are dropped without error, as
// are children whose parent was dropped. A resolver failure falls back to
// PathResolver for that link.
func ResolveTabs(ctx context.Context, in TabInput) []Tab {
	resolver := in.Resolver
	if resolver == nil {
		resolver = PathResolver{}
	}
	pagesByID := make(map[uuid.UUID]*minisitepages.Page, len(in.Pages))
	for _, page := range in.Pages {
		pagesByID[page.ID] = page
	}

	build := func(item *Item) (Tab, bool) {
		tab := Tab{ID: item.ID, Label: item.Label}
		switch item.LinkType {
		case LinkTypeExternal:
			if item.ExternalURL == "" {
				return Tab{}, false
			}
			tab.URL = item.ExternalURL
			tab.External = true
			return tab, true
		case LinkTypePage:
			if item.PageID == nil {
				return Tab{}, false
			}
			page, ok := pagesByID[*item.PageID]
			if !ok {
				return Tab{}, false
			}
			homepage := in.Homepage != nil && in.Homepage.ID == page.ID
			url, err := resolver.PageURL(ctx, in.Link, page, homepage)
			if err != nil {
				url, _ = PathResolver{}.PageURL(ctx, in.Link, page, homepage)
			}
			pageID := page.ID
			tab.URL = url
			tab.PageID = &pageID
			tab.PageSlug = page.Slug
			return tab, true
		default:
			return Tab{}, false
		}
	}

	childrenOf := make(map[uuid.UUID][]*Item)
	for _, item := range in.Items {
		if !item.IsTopLevel() {
			childrenOf[*item.ParentID] = append(childrenOf[*item.ParentID], item)
		}
	}

	tabs := make([]Tab, 0, len(in.Items))
	for _, item := range in.Items {
		if !item.IsTopLevel() {
			continue
		}
		tab, ok := build(item)
		if !ok {
			continue
		}
		for _, child := range childrenOf[item.ID] {
			if childTab, ok := build(child); ok {
				tab.Children = append(tab.Children, childTab)
			}
		}
		tabs = append(tabs, tab)
	}
	return tabs
}
