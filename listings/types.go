package listings

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/countyhub/go-minisite/entity"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Listing is the directory record that hosts a mini-site. Listing CRUD lives
// outside this module; the mini-site only reads these fields.
type Listing struct {
	bun.BaseModel `bun:"table:minisite_listings,alias:ml"`

	ID          uuid.UUID     `bun:",pk,type:uuid" json:"id"`
	EntityType  entity.Type   `bun:"entity_type,notnull" json:"entity_type"`
	Name        string        `bun:"name,notnull" json:"name"`
	Slug        string        `bun:"slug,notnull" json:"slug"`
	TownSlug    string        `bun:"town_slug,notnull" json:"town_slug"`
	ImageURL    string        `bun:"image_url" json:"image_url,omitempty"`
	Photos      []InlinePhoto `bun:"photos,type:jsonb" json:"photos,omitempty"`
	AccentColor string        `bun:"accent_color" json:"accent_color,omitempty"`
	CreatedAt   time.Time     `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt   time.Time     `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// Ref returns the owner reference under which the listing's mini-site records
// are stored.
func (l *Listing) Ref() entity.Ref {
	if l == nil {
		return entity.Ref{}
	}
	return entity.Ref{Type: l.EntityType, ID: l.ID.String()}
}

func (l *Listing) Clone() *Listing {
	if l == nil {
		return nil
	}
	cloned := *l
	if l.Photos != nil {
		cloned.Photos = append([]InlinePhoto(nil), l.Photos...)
	}
	return &cloned
}

// InlinePhoto is one entry of a listing's own photo array. Stored entries are
// either bare URL strings or {url, caption} objects; both decode here.
type InlinePhoto struct {
	URL     string `json:"url"`
	Caption string `json:"caption,omitempty"`
}

func (p *InlinePhoto) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var raw string
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return err
		}
		*p = InlinePhoto{URL: raw}
		return nil
	}
	if bytes.Equal(trimmed, []byte("null")) {
		*p = InlinePhoto{}
		return nil
	}
	type plain InlinePhoto
	var decoded plain
	if err := json.Unmarshal(trimmed, &decoded); err != nil {
		return fmt.Errorf("listings: inline photo: %w", err)
	}
	*p = InlinePhoto(decoded)
	return nil
}
