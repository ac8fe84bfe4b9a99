package pages

import (
	"strings"
	"time"

	"github.com/countyhub/go-minisite/entity"
	"github.com/countyhub/go-minisite/sections"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Content is the persisted body of a page.
type Content struct {
	Sections []sections.Section `json:"sections"`
}

// Page is one sub-page of a listing's mini-site.
type Page struct {
	bun.BaseModel `bun:"table:minisite_pages,alias:mp"`

	ID              uuid.UUID   `bun:",pk,type:uuid" json:"id"`
	EntityType      entity.Type `bun:"entity_type,notnull" json:"entity_type"`
	EntityID        string      `bun:"entity_id,notnull" json:"entity_id"`
	Title           string      `bun:"title,notnull" json:"title"`
	Slug            string      `bun:"slug,notnull" json:"slug"`
	IsPublished     bool        `bun:"is_published,notnull" json:"is_published"`
	IsHomepage      bool        `bun:"is_homepage,notnull" json:"is_homepage"`
	Order           int         `bun:"sort_order,notnull" json:"order"`
	MetaTitle       string      `bun:"meta_title" json:"meta_title,omitempty"`
	MetaDescription string      `bun:"meta_description" json:"meta_description,omitempty"`
	Content         Content     `bun:"content,type:jsonb,notnull" json:"content"`
	CreatedAt       time.Time   `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt       time.Time   `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// Owner returns the listing the page belongs to.
func (p *Page) Owner() entity.Ref {
	if p == nil {
		return entity.Ref{}
	}
	return entity.Ref{Type: p.EntityType, ID: p.EntityID}
}

// SetOwner stamps both ownership columns from ref.
func (p *Page) SetOwner(ref entity.Ref) {
	p.EntityType = ref.Type
	p.EntityID = ref.ID
}

// Clone returns a deep copy of the page.
func (p *Page) Clone() *Page {
	if p == nil {
		return nil
	}
	cloned := *p
	cloned.Content = Content{Sections: sections.Clone(p.Content.Sections)}
	return &cloned
}

// DeriveSlug builds a slug from a page title: lower-cased, every run of
// non-alphanumeric characters collapsed to one hyphen, hyphens trimmed.
func DeriveSlug(title string) string {
	var b strings.Builder
	b.Grow(len(title))
	pendingHyphen := false
	for _, r := range strings.ToLower(title) {
		if isSlugRune(r) {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}
	return b.String()
}

func isSlugRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
}
