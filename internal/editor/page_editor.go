package editor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/countyhub/go-minisite/entity"
	navcmd "github.com/countyhub/go-minisite/internal/commands/navigation"
	pagescmd "github.com/countyhub/go-minisite/internal/commands/pages"
	"github.com/countyhub/go-minisite/internal/identity"
	"github.com/countyhub/go-minisite/internal/logging"
	"github.com/countyhub/go-minisite/internal/navigation"
	"github.com/countyhub/go-minisite/internal/pages"
	minisitepages "github.com/countyhub/go-minisite/pages"
	"github.com/countyhub/go-minisite/sections"
	"github.com/google/uuid"
)

// PageState is a snapshot of the editor's working copy.
type PageState struct {
	ID              uuid.UUID
	Owner           entity.Ref
	IsNew           bool
	Title           string
	Slug            string
	SlugLocked      bool
	IsPublished     bool
	IsHomepage      bool
	Order           int
	MetaTitle       string
	MetaDescription string
	Sections        []sections.Section

	AddToNavigation bool
	NavigationLabel string
	NavigationOrder int
	NavigationItem  *uuid.UUID
}

// PageEditor holds the in-memory working copy of one page. Nothing is
// persisted until Save; a failed Save leaves the working copy untouched so
// it can be retried.
type PageEditor struct {
	svc   *Service
	state PageState

	navLabelSet bool
	autoItem    *navigation.Item
}

// NewPage starts a blank page for owner. The id is assigned now so repeated
// saves target the same record.
func (s *Service) NewPage(owner entity.Ref) (*PageEditor, error) {
	return s.newPageWithID(owner, s.newID())
}

func (s *Service) newPageWithID(owner entity.Ref, id uuid.UUID) (*PageEditor, error) {
	if err := owner.Validate(); err != nil {
		return nil, err
	}
	return &PageEditor{
		svc: s,
		state: PageState{
			ID:       id,
			Owner:    owner,
			IsNew:    true,
			Sections: []sections.Section{},
		},
	}, nil
}

// LoadPage opens an existing page together with its auto-managed navigation
// item, if any.
func (s *Service) LoadPage(ctx context.Context, owner entity.Ref, id uuid.UUID) (*PageEditor, error) {
	if err := owner.Validate(); err != nil {
		return nil, err
	}
	page, err := s.pages.Get(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	editor := &PageEditor{svc: s}
	editor.reset(page)
	if err := editor.loadAutoItem(ctx); err != nil {
		return nil, err
	}
	return editor, nil
}

// OpenPage loads the page with id when it exists and otherwise starts a new
// page that will be created with that id.
func (s *Service) OpenPage(ctx context.Context, owner entity.Ref, id uuid.UUID) (*PageEditor, error) {
	editor, err := s.LoadPage(ctx, owner, id)
	if errors.Is(err, pages.ErrPageNotFound) {
		return s.newPageWithID(owner, id)
	}
	return editor, err
}

func (e *PageEditor) reset(page *pages.Page) {
	e.state.ID = page.ID
	e.state.Owner = page.Owner()
	e.state.IsNew = false
	e.state.Title = page.Title
	e.state.Slug = page.Slug
	e.state.SlugLocked = true
	e.state.IsPublished = page.IsPublished
	e.state.IsHomepage = page.IsHomepage
	e.state.Order = page.Order
	e.state.MetaTitle = page.MetaTitle
	e.state.MetaDescription = page.MetaDescription
	e.state.Sections = sections.Clone(page.Content.Sections)
	if e.state.Sections == nil {
		e.state.Sections = []sections.Section{}
	}
}

func (e *PageEditor) loadAutoItem(ctx context.Context) error {
	item, err := e.svc.nav.FindAutoManaged(ctx, e.state.Owner, e.state.ID)
	switch {
	case errors.Is(err, navigation.ErrItemNotFound):
		e.setAutoItem(nil)
		return nil
	case err != nil:
		return fmt.Errorf("editor: load navigation item: %w", err)
	}
	e.setAutoItem(item)
	return nil
}

func (e *PageEditor) setAutoItem(item *navigation.Item) {
	e.autoItem = item
	if item == nil {
		e.state.AddToNavigation = false
		e.state.NavigationItem = nil
		e.state.NavigationLabel = ""
		e.state.NavigationOrder = 0
		e.navLabelSet = false
		return
	}
	id := item.ID
	e.state.AddToNavigation = true
	e.state.NavigationItem = &id
	e.state.NavigationLabel = item.Label
	e.state.NavigationOrder = item.Order
	e.navLabelSet = true
}

// State returns a copy of the working copy.
func (e *PageEditor) State() PageState {
	out := e.state
	out.Sections = sections.Clone(e.state.Sections)
	if e.state.NavigationItem != nil {
		id := *e.state.NavigationItem
		out.NavigationItem = &id
	}
	return out
}

// Sections returns a copy of the section list.
func (e *PageEditor) Sections() []sections.Section {
	return sections.Clone(e.state.Sections)
}

// AddSection appends a section of kind with its default payload.
func (e *PageEditor) AddSection(kind sections.Type) (sections.Section, error) {
	payload, err := sections.Default(kind)
	if err != nil {
		return sections.Section{}, err
	}
	section := sections.New(payload)
	e.state.Sections = append(e.state.Sections, section)
	return section, nil
}

// UpdateSection replaces the payload of section id wholesale.
func (e *PageEditor) UpdateSection(id string, content sections.Payload) error {
	if content == nil {
		return fmt.Errorf("%w: nil payload", sections.ErrUnknownType)
	}
	updated, err := sections.Replace(e.state.Sections, id, content)
	if err != nil {
		return err
	}
	e.state.Sections = updated
	return nil
}

// DeleteSection removes section id.
func (e *PageEditor) DeleteSection(id string) error {
	updated, err := sections.Remove(e.state.Sections, id)
	if err != nil {
		return err
	}
	e.state.Sections = updated
	return nil
}

// MoveSectionUp swaps the section at index with the one above it.
func (e *PageEditor) MoveSectionUp(index int) {
	e.state.Sections = sections.MoveUp(e.state.Sections, index)
}

// MoveSectionDown swaps the section at index with the one below it.
func (e *PageEditor) MoveSectionDown(index int) {
	e.state.Sections = sections.MoveDown(e.state.Sections, index)
}

// SetSections replaces the whole section list.
func (e *PageEditor) SetSections(list []sections.Section) error {
	if err := sections.Validate(list); err != nil {
		return err
	}
	e.state.Sections = sections.Clone(list)
	if e.state.Sections == nil {
		e.state.Sections = []sections.Section{}
	}
	return nil
}

// SetTitle updates the title. While the page is new and the slug has not
// been edited by hand, the slug follows the title.
func (e *PageEditor) SetTitle(title string) {
	e.state.Title = title
	if e.state.IsNew && !e.state.SlugLocked {
		e.state.Slug = minisitepages.DeriveSlug(title)
	}
}

// SetSlug sets the slug by hand and stops it following the title.
func (e *PageEditor) SetSlug(slug string) {
	e.state.Slug = slug
	e.state.SlugLocked = true
}

func (e *PageEditor) SetPublished(published bool) { e.state.IsPublished = published }

func (e *PageEditor) SetHomepage(homepage bool) { e.state.IsHomepage = homepage }

func (e *PageEditor) SetOrder(order int) { e.state.Order = order }

func (e *PageEditor) SetMeta(title, description string) {
	e.state.MetaTitle = title
	e.state.MetaDescription = description
}

// SetAddToNavigation toggles the auto-managed navigation item.
func (e *PageEditor) SetAddToNavigation(on bool) { e.state.AddToNavigation = on }

// SetNavigationLabel overrides the label; an empty label falls back to the
// page title on save.
func (e *PageEditor) SetNavigationLabel(label string) {
	e.state.NavigationLabel = label
	e.navLabelSet = strings.TrimSpace(label) != ""
}

func (e *PageEditor) SetNavigationOrder(order int) { e.state.NavigationOrder = order }

// Save upserts the page, then creates, updates or deletes the auto-managed
// navigation item according to the toggle. The page is saved first so the
// item never points at a page that does not exist yet.
func (e *PageEditor) Save(ctx context.Context) error {
	owner := e.state.Owner
	logger := logging.WithOwner(e.svc.logger.WithContext(ctx), owner)

	err := e.svc.commands.SavePage.Execute(ctx, pagescmd.SavePageCommand{
		PageID:          e.state.ID,
		EntityType:      string(owner.Type),
		EntityID:        owner.ID,
		Title:           e.state.Title,
		Slug:            e.state.Slug,
		IsPublished:     e.state.IsPublished,
		IsHomepage:      e.state.IsHomepage,
		Order:           e.state.Order,
		MetaTitle:       e.state.MetaTitle,
		MetaDescription: e.state.MetaDescription,
		Sections:        e.state.Sections,
	})
	if err != nil {
		logger.Warn("editor.page_save_failed", "page_id", e.state.ID, "error", err)
		return err
	}
	// The page exists now; its slug stays put even if the navigation step fails.
	e.state.IsNew = false
	e.state.SlugLocked = true

	switch {
	case e.state.AddToNavigation:
		if err := e.saveNavigation(ctx); err != nil {
			logger.Warn("editor.navigation_save_failed", "page_id", e.state.ID, "error", err)
			return err
		}
	case e.autoItem != nil:
		err := e.svc.commands.DeleteNavigation.Execute(ctx, navcmd.DeleteItemCommand{
			ItemID:     e.autoItem.ID,
			EntityType: string(owner.Type),
			EntityID:   owner.ID,
		})
		if err != nil && !errors.Is(err, navigation.ErrItemNotFound) {
			logger.Warn("editor.navigation_delete_failed", "page_id", e.state.ID, "error", err)
			return err
		}
	}

	saved, err := e.svc.pages.Get(ctx, owner, e.state.ID)
	if err != nil {
		return err
	}
	e.reset(saved)
	if err := e.loadAutoItem(ctx); err != nil {
		return err
	}
	logger.Info("editor.page_saved", "page_id", e.state.ID, "navigation", e.state.AddToNavigation)
	return nil
}

func (e *PageEditor) saveNavigation(ctx context.Context) error {
	owner := e.state.Owner
	pageID := e.state.ID
	label := strings.TrimSpace(e.state.NavigationLabel)
	if !e.navLabelSet || label == "" {
		label = strings.TrimSpace(e.state.Title)
	}

	msg := navcmd.SaveItemCommand{
		ItemID:               identity.AutoNavigationItemUUID(owner, pageID),
		EntityType:           string(owner.Type),
		EntityID:             owner.ID,
		Label:                label,
		LinkType:             string(navigation.LinkTypePage),
		PageID:               &pageID,
		Order:                e.state.NavigationOrder,
		IsVisible:            true,
		AutoManagedForPageID: &pageID,
	}
	if e.autoItem != nil {
		msg.ItemID = e.autoItem.ID
		msg.ParentID = e.autoItem.ParentID
		msg.IsVisible = e.autoItem.IsVisible
	}
	return e.svc.commands.SaveNavigation.Execute(ctx, msg)
}
