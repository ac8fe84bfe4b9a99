package navigation

import (
	"time"

	"github.com/countyhub/go-minisite/entity"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// LinkType selects how a navigation item resolves its target.
type LinkType string

const (
	LinkTypePage     LinkType = "page"
	LinkTypeExternal LinkType = "external"
)

// Valid reports whether t is a supported link type.
func (t LinkType) Valid() bool {
	return t == LinkTypePage || t == LinkTypeExternal
}

// Item is one entry in a mini-site menu. Items nest one level deep through
// ParentID.
type Item struct {
	bun.BaseModel `bun:"table:minisite_navigation_items,alias:mn"`

	ID                   uuid.UUID   `bun:",pk,type:uuid" json:"id"`
	EntityType           entity.Type `bun:"entity_type,notnull" json:"entity_type"`
	EntityID             string      `bun:"entity_id,notnull" json:"entity_id"`
	Label                string      `bun:"label,notnull" json:"label"`
	LinkType             LinkType    `bun:"link_type,notnull" json:"link_type"`
	PageID               *uuid.UUID  `bun:"page_id,type:uuid" json:"page_id,omitempty"`
	ExternalURL          string      `bun:"external_url" json:"external_url,omitempty"`
	ParentID             *uuid.UUID  `bun:"parent_id,type:uuid" json:"parent_id,omitempty"`
	Order                int         `bun:"sort_order,notnull" json:"order"`
	IsVisible            bool        `bun:"is_visible,notnull" json:"is_visible"`
	AutoManagedForPageID *uuid.UUID  `bun:"auto_managed_for_page_id,type:uuid" json:"auto_managed_for_page_id,omitempty"`
	CreatedAt            time.Time   `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt            time.Time   `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// Owner returns the listing the item belongs to.
func (i *Item) Owner() entity.Ref {
	if i == nil {
		return entity.Ref{}
	}
	return entity.Ref{Type: i.EntityType, ID: i.EntityID}
}

// SetOwner stamps both ownership columns from ref.
func (i *Item) SetOwner(ref entity.Ref) {
	i.EntityType = ref.Type
	i.EntityID = ref.ID
}

// IsTopLevel reports whether the item has no parent.
func (i *Item) IsTopLevel() bool {
	return i.ParentID == nil || *i.ParentID == uuid.Nil
}

// TargetsPage reports whether the item links to pageID.
func (i *Item) TargetsPage(pageID uuid.UUID) bool {
	return i.LinkType == LinkTypePage && i.PageID != nil && *i.PageID == pageID
}

// Clone returns a deep copy of the item.
func (i *Item) Clone() *Item {
	if i == nil {
		return nil
	}
	cloned := *i
	cloned.PageID = cloneUUID(i.PageID)
	cloned.ParentID = cloneUUID(i.ParentID)
	cloned.AutoManagedForPageID = cloneUUID(i.AutoManagedForPageID)
	return &cloned
}

func cloneUUID(id *uuid.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	copied := *id
	return &copied
}
