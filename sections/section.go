package sections

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Type names a section variant as persisted in page content.
type Type string

const (
	TypeHero     Type = "hero"
	TypeText     Type = "text"
	TypeImage    Type = "image"
	TypeGallery  Type = "gallery"
	TypeFeatures Type = "features"
	TypeHTML     Type = "html"
)

var (
	ErrUnknownType = errors.New("sections: unknown section type")
	ErrIDRequired  = errors.New("sections: section id is required")
	ErrDuplicateID = errors.New("sections: duplicate section id")
	ErrNotFound    = errors.New("sections: section not found")
)

var knownTypes = []Type{TypeHero, TypeText, TypeImage, TypeGallery, TypeFeatures, TypeHTML}

// Types lists the section variants the renderer understands.
func Types() []Type {
	out := make([]Type, len(knownTypes))
	copy(out, knownTypes)
	return out
}

// Known reports whether t is one of the supported variants.
func (t Type) Known() bool {
	for _, known := range knownTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Payload is the variant content of a section. The set of implementations is
// closed; content that cannot be decoded into one of them is kept as Unknown.
type Payload interface {
	SectionType() Type
	isPayload()
}

// Section is one typed content block inside a page.
type Section struct {
	ID      string
	Content Payload
}

// New creates a section with a fresh id.
func New(content Payload) Section {
	return Section{ID: NewID(), Content: content}
}

// NewID returns a stable random identifier for a section.
func NewID() string {
	return uuid.NewString()
}

// Type returns the variant tag of the section payload.
func (s Section) Type() Type {
	if s.Content == nil {
		return ""
	}
	return s.Content.SectionType()
}

type envelope struct {
	ID      string          `json:"id"`
	Type    Type            `json:"type"`
	Content json.RawMessage `json:"content"`
}

// MarshalJSON encodes the section as {id, type, content}.
func (s Section) MarshalJSON() ([]byte, error) {
	env := envelope{ID: s.ID, Type: s.Type()}
	switch payload := s.Content.(type) {
	case nil:
		env.Content = json.RawMessage("{}")
	case Unknown:
		env.Content = payload.rawOrEmpty()
	case *Unknown:
		env.Content = payload.rawOrEmpty()
	default:
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("sections: encode %s content: %w", env.Type, err)
		}
		env.Content = raw
	}
	return json.Marshal(env)
}

// UnmarshalJSON decodes a section. Unknown types and payloads that do not fit
// their declared type decode to Unknown so stored content is never dropped.
func (s *Section) UnmarshalJSON(data []byte) error {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}
	s.ID = env.ID
	s.Content = decodePayload(env.Type, env.Content)
	return nil
}

func decodePayload(kind Type, raw json.RawMessage) Payload {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		trimmed = []byte("{}")
	}

	var (
		payload Payload
		err     error
	)
	switch kind {
	case TypeHero:
		var p Hero
		err = json.Unmarshal(trimmed, &p)
		payload = p
	case TypeText:
		var p Text
		err = json.Unmarshal(trimmed, &p)
		payload = p
	case TypeImage:
		var p Image
		err = json.Unmarshal(trimmed, &p)
		payload = p
	case TypeGallery:
		var p Gallery
		err = json.Unmarshal(trimmed, &p)
		payload = p
	case TypeFeatures:
		var p Features
		err = json.Unmarshal(trimmed, &p)
		payload = p
	case TypeHTML:
		var p HTML
		err = json.Unmarshal(trimmed, &p)
		payload = p
	default:
		return Unknown{Kind: kind, Raw: cloneRaw(raw)}
	}
	if err != nil {
		return Unknown{Kind: kind, Raw: cloneRaw(raw), Err: err.Error()}
	}
	return payload
}

// Default returns the payload a freshly added section of type t starts with.
func Default(t Type) (Payload, error) {
	switch t {
	case TypeHero:
		return Hero{Title: "Welcome", CTAText: "Learn more"}, nil
	case TypeText:
		return Text{Heading: "New section"}, nil
	case TypeImage:
		return Image{}, nil
	case TypeGallery:
		return Gallery{Images: []string{}}, nil
	case TypeFeatures:
		return Features{Heading: "Features", Items: []string{}}, nil
	case TypeHTML:
		return HTML{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, string(t))
	}
}

// ParseType normalises a raw type name and rejects unknown variants.
func ParseType(raw string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(raw)))
	if !t.Known() {
		return "", fmt.Errorf("%w: %q", ErrUnknownType, raw)
	}
	return t, nil
}

func cloneRaw(raw json.RawMessage) json.RawMessage {
	if raw == nil {
		return nil
	}
	out := make(json.RawMessage, len(raw))
	copy(out, raw)
	return out
}
