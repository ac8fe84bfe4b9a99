package photos

import (
	"slices"
	"strings"
	"time"

	"github.com/countyhub/go-minisite/entity"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Photo is a gallery image attached to a listing.
type Photo struct {
	bun.BaseModel `bun:"table:minisite_photos,alias:mph"`

	ID         uuid.UUID   `bun:",pk,type:uuid" json:"id"`
	EntityType entity.Type `bun:"entity_type,notnull" json:"entity_type"`
	EntityID   string      `bun:"entity_id,notnull" json:"entity_id"`
	URL        string      `bun:"url,notnull" json:"url"`
	Caption    string      `bun:"caption" json:"caption,omitempty"`
	Order      int         `bun:"sort_order,notnull" json:"order"`
	CreatedAt  time.Time   `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
}

func (p *Photo) Owner() entity.Ref {
	if p == nil {
		return entity.Ref{}
	}
	return entity.Ref{Type: p.EntityType, ID: p.EntityID}
}

func (p *Photo) SetOwner(ref entity.Ref) {
	p.EntityType = ref.Type
	p.EntityID = ref.ID
}

func (p *Photo) Clone() *Photo {
	if p == nil {
		return nil
	}
	cloned := *p
	return &cloned
}

// SortByOrder sorts photos by order, then creation time, then id.
func SortByOrder(list []*Photo) {
	slices.SortStableFunc(list, func(a, b *Photo) int {
		if a.Order != b.Order {
			if a.Order < b.Order {
				return -1
			}
			return 1
		}
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID.String(), b.ID.String())
	})
}
