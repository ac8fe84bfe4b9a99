package editor

import (
	"context"
	"fmt"

	"github.com/countyhub/go-minisite/entity"
	navcmd "github.com/countyhub/go-minisite/internal/commands/navigation"
	"github.com/countyhub/go-minisite/internal/logging"
	"github.com/countyhub/go-minisite/internal/navigation"
	"github.com/countyhub/go-minisite/internal/pages"
	"github.com/google/uuid"
)

// IntentKind names what the dashboard asks the host to open next.
type IntentKind string

const (
	IntentEditPage       IntentKind = "edit_page"
	IntentNewPage        IntentKind = "new_page"
	IntentEditNavigation IntentKind = "edit_navigation"
	IntentNewNavigation  IntentKind = "new_navigation"
)

// Intent is a request to open an editor. The dashboard only describes it;
// the host decides how to act on it.
type Intent struct {
	Kind     IntentKind
	Owner    entity.Ref
	PageID   uuid.UUID
	ItemID   uuid.UUID
	ParentID *uuid.UUID
}

// NavigationNode is a top-level item with its children.
type NavigationNode struct {
	Item     *navigation.Item
	Children []*navigation.Item
}

// DashboardView lists every page and navigation item of a listing,
// published or not and visible or not.
type DashboardView struct {
	Owner      entity.Ref
	Pages      []*pages.Page
	Navigation []NavigationNode
}

// Dashboard is the management overview of one listing's mini-site.
type Dashboard struct {
	svc *Service
}

// Open loads the overview. Unlike the public loader it fails instead of
// degrading, since an editor must not show a partial list as complete.
func (d *Dashboard) Open(ctx context.Context, owner entity.Ref) (DashboardView, error) {
	if err := owner.Validate(); err != nil {
		return DashboardView{}, err
	}
	pageList, err := d.svc.pages.List(ctx, owner)
	if err != nil {
		return DashboardView{}, fmt.Errorf("editor: list pages: %w", err)
	}
	items, err := d.svc.nav.List(ctx, owner)
	if err != nil {
		return DashboardView{}, fmt.Errorf("editor: list navigation: %w", err)
	}
	return DashboardView{
		Owner:      owner,
		Pages:      pageList,
		Navigation: Nest(items),
	}, nil
}

// Nest groups items under their parents. Items are expected sorted; a child
// whose parent is missing is listed at the top level so it stays reachable.
func Nest(items []*navigation.Item) []NavigationNode {
	known := make(map[uuid.UUID]bool, len(items))
	for _, item := range items {
		if item.IsTopLevel() {
			known[item.ID] = true
		}
	}
	children := make(map[uuid.UUID][]*navigation.Item)
	nodes := make([]NavigationNode, 0, len(items))
	for _, item := range items {
		if !item.IsTopLevel() && known[*item.ParentID] {
			children[*item.ParentID] = append(children[*item.ParentID], item)
			continue
		}
		nodes = append(nodes, NavigationNode{Item: item})
	}
	for i := range nodes {
		nodes[i].Children = children[nodes[i].Item.ID]
	}
	return nodes
}

// DeleteNavigation removes an item and its children. This is the only delete
// path for navigation items.
func (d *Dashboard) DeleteNavigation(ctx context.Context, owner entity.Ref, itemID uuid.UUID) error {
	err := d.svc.commands.DeleteNavigation.Execute(ctx, navcmd.DeleteItemCommand{
		ItemID:     itemID,
		EntityType: string(owner.Type),
		EntityID:   owner.ID,
	})
	if err != nil {
		logging.WithOwner(d.svc.logger.WithContext(ctx), owner).Warn("dashboard.navigation_delete_failed",
			"item_id", itemID,
			"error", err,
		)
	}
	return err
}

func (d *Dashboard) EditPage(owner entity.Ref, pageID uuid.UUID) Intent {
	return Intent{Kind: IntentEditPage, Owner: owner, PageID: pageID}
}

func (d *Dashboard) NewPage(owner entity.Ref) Intent {
	return Intent{Kind: IntentNewPage, Owner: owner}
}

func (d *Dashboard) EditNavigation(owner entity.Ref, itemID uuid.UUID, parentID *uuid.UUID) Intent {
	return Intent{Kind: IntentEditNavigation, Owner: owner, ItemID: itemID, ParentID: cloneID(parentID)}
}

func (d *Dashboard) NewNavigation(owner entity.Ref, parentID *uuid.UUID) Intent {
	return Intent{Kind: IntentNewNavigation, Owner: owner, ParentID: cloneID(parentID)}
}

func cloneID(id *uuid.UUID) *uuid.UUID {
	if id == nil || *id == uuid.Nil {
		return nil
	}
	copied := *id
	return &copied
}
