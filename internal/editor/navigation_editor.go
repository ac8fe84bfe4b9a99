package editor

import (
	"context"
	"strings"

	"github.com/countyhub/go-minisite/entity"
	navcmd "github.com/countyhub/go-minisite/internal/commands/navigation"
	"github.com/countyhub/go-minisite/internal/logging"
	"github.com/countyhub/go-minisite/internal/navigation"
	"github.com/countyhub/go-minisite/internal/pages"
	"github.com/google/uuid"
)

// PageOption is a page the navigation editor may link to.
type PageOption struct {
	ID          uuid.UUID
	Title       string
	Slug        string
	IsPublished bool
}

// ParentOption is a top-level item the edited item may nest under.
type ParentOption struct {
	ID    uuid.UUID
	Label string
}

// NavigationState is a snapshot of the navigation editor's working copy.
type NavigationState struct {
	ID                   uuid.UUID
	Owner                entity.Ref
	IsNew                bool
	Label                string
	LinkType             navigation.LinkType
	PageID               *uuid.UUID
	ExternalURL          string
	ParentID             *uuid.UUID
	Order                int
	IsVisible            bool
	AutoManagedForPageID *uuid.UUID
}

// NavigationEditor edits one navigation item. Deleting is done from the
// dashboard.
type NavigationEditor struct {
	svc     *Service
	state   NavigationState
	options []PageOption
	parents []ParentOption
}

// NewNavigation starts a blank page link, optionally nested under
// parentID.
func (s *Service) NewNavigation(ctx context.Context, owner entity.Ref, parentID *uuid.UUID) (*NavigationEditor, error) {
	if err := owner.Validate(); err != nil {
		return nil, err
	}
	editor := &NavigationEditor{
		svc: s,
		state: NavigationState{
			ID:        s.newID(),
			Owner:     owner,
			IsNew:     true,
			LinkType:  navigation.LinkTypePage,
			IsVisible: true,
		},
	}
	if err := editor.loadOptions(ctx); err != nil {
		return nil, err
	}
	if parentID != nil {
		if err := editor.SetParent(parentID); err != nil {
			return nil, err
		}
	}
	return editor, nil
}

// LoadNavigation opens an existing item.
func (s *Service) LoadNavigation(ctx context.Context, owner entity.Ref, id uuid.UUID) (*NavigationEditor, error) {
	if err := owner.Validate(); err != nil {
		return nil, err
	}
	item, err := s.nav.Get(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	editor := &NavigationEditor{svc: s}
	editor.reset(item)
	if err := editor.loadOptions(ctx); err != nil {
		return nil, err
	}
	return editor, nil
}

func (e *NavigationEditor) reset(item *navigation.Item) {
	cloned := item.Clone()
	e.state = NavigationState{
		ID:                   cloned.ID,
		Owner:                cloned.Owner(),
		Label:                cloned.Label,
		LinkType:             cloned.LinkType,
		PageID:               cloned.PageID,
		ExternalURL:          cloned.ExternalURL,
		ParentID:             cloned.ParentID,
		Order:                cloned.Order,
		IsVisible:            cloned.IsVisible,
		AutoManagedForPageID: cloned.AutoManagedForPageID,
	}
}

func (e *NavigationEditor) loadOptions(ctx context.Context) error {
	pageList, err := e.svc.pages.List(ctx, e.state.Owner)
	if err != nil {
		return err
	}
	e.options = pageOptions(pageList)

	items, err := e.svc.nav.List(ctx, e.state.Owner)
	if err != nil {
		return err
	}
	e.parents = e.parents[:0]
	for _, item := range items {
		if item.ID == e.state.ID || !item.IsTopLevel() {
			continue
		}
		e.parents = append(e.parents, ParentOption{ID: item.ID, Label: item.Label})
	}
	return nil
}

func pageOptions(list []*pages.Page) []PageOption {
	out := make([]PageOption, 0, len(list))
	for _, page := range list {
		out = append(out, PageOption{
			ID:          page.ID,
			Title:       page.Title,
			Slug:        page.Slug,
			IsPublished: page.IsPublished,
		})
	}
	return out
}

// State returns a copy of the working copy.
func (e *NavigationEditor) State() NavigationState {
	out := e.state
	out.PageID = cloneID(e.state.PageID)
	out.ParentID = cloneID(e.state.ParentID)
	out.AutoManagedForPageID = cloneID(e.state.AutoManagedForPageID)
	return out
}

// PageOptions lists the owner's pages, published or not, in order.
func (e *NavigationEditor) PageOptions() []PageOption {
	return append([]PageOption(nil), e.options...)
}

// ParentOptions lists the top-level items the edited item may nest under.
func (e *NavigationEditor) ParentOptions() []ParentOption {
	return append([]ParentOption(nil), e.parents...)
}

func (e *NavigationEditor) SetLabel(label string) { e.state.Label = label }

func (e *NavigationEditor) SetLinkType(kind navigation.LinkType) error {
	if !kind.Valid() {
		return navigation.ErrLinkTypeInvalid
	}
	e.state.LinkType = kind
	return nil
}

func (e *NavigationEditor) SetExternalURL(raw string) {
	e.state.ExternalURL = strings.TrimSpace(raw)
}

// SetPage selects the target page. Only the owner's own pages are accepted.
func (e *NavigationEditor) SetPage(pageID uuid.UUID) error {
	for _, option := range e.options {
		if option.ID == pageID {
			id := pageID
			e.state.PageID = &id
			return nil
		}
	}
	return ErrPageNotOption
}

// SetParent nests the item under parentID; nil moves it to the top level.
func (e *NavigationEditor) SetParent(parentID *uuid.UUID) error {
	parent := cloneID(parentID)
	if parent == nil {
		e.state.ParentID = nil
		return nil
	}
	for _, option := range e.parents {
		if option.ID == *parent {
			e.state.ParentID = parent
			return nil
		}
	}
	return ErrParentNotOption
}

func (e *NavigationEditor) SetOrder(order int) { e.state.Order = order }

func (e *NavigationEditor) SetVisible(visible bool) { e.state.IsVisible = visible }

// Save upserts the item. The link field that does not match the link type
// is cleared so stale targets are not persisted.
func (e *NavigationEditor) Save(ctx context.Context) error {
	owner := e.state.Owner
	msg := navcmd.SaveItemCommand{
		ItemID:               e.state.ID,
		EntityType:           string(owner.Type),
		EntityID:             owner.ID,
		Label:                e.state.Label,
		LinkType:             string(e.state.LinkType),
		ParentID:             e.state.ParentID,
		Order:                e.state.Order,
		IsVisible:            e.state.IsVisible,
		AutoManagedForPageID: e.state.AutoManagedForPageID,
	}
	switch e.state.LinkType {
	case navigation.LinkTypePage:
		msg.PageID = e.state.PageID
	case navigation.LinkTypeExternal:
		msg.ExternalURL = e.state.ExternalURL
	}

	if err := e.svc.commands.SaveNavigation.Execute(ctx, msg); err != nil {
		logging.WithOwner(e.svc.logger.WithContext(ctx), owner).Warn("editor.navigation_save_failed",
			"item_id", e.state.ID,
			"error", err,
		)
		return err
	}
	saved, err := e.svc.nav.Get(ctx, owner, e.state.ID)
	if err != nil {
		return err
	}
	e.reset(saved)
	return e.loadOptions(ctx)
}
