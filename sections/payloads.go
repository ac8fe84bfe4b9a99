package sections

import (
	"encoding/json"
	"slices"
)

// Hero is a banner with an optional call to action.
type Hero struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Image    string `json:"image"`
	CTAText  string `json:"cta_text"`
	CTALink  string `json:"cta_link"`
}

// Text is a heading followed by body copy.
type Text struct {
	Heading string `json:"heading"`
	Body    string `json:"body"`
}

// Image is a single captioned picture.
type Image struct {
	Image   string `json:"image"`
	Caption string `json:"caption"`
	Alt     string `json:"alt"`
}

// Gallery is an ordered list of image URLs.
type Gallery struct {
	Images []string `json:"images"`
}

// Features is a heading with a bullet list.
type Features struct {
	Heading string   `json:"heading"`
	Items   []string `json:"items"`
}

// HTML carries author supplied markup.
type HTML struct {
	HTML string `json:"html"`
}

// Unknown preserves content whose type is not understood, or whose payload
// does not match its declared type. It re-encodes to the original bytes.
type Unknown struct {
	Kind Type
	Raw  json.RawMessage
	Err  string
}

func (Hero) SectionType() Type     { return TypeHero }
func (Text) SectionType() Type     { return TypeText }
func (Image) SectionType() Type    { return TypeImage }
func (Gallery) SectionType() Type  { return TypeGallery }
func (Features) SectionType() Type { return TypeFeatures }
func (HTML) SectionType() Type     { return TypeHTML }
func (u Unknown) SectionType() Type {
	return u.Kind
}

func (Hero) isPayload()     {}
func (Text) isPayload()     {}
func (Image) isPayload()    {}
func (Gallery) isPayload()  {}
func (Features) isPayload() {}
func (HTML) isPayload()     {}
func (Unknown) isPayload()  {}

func (u Unknown) rawOrEmpty() json.RawMessage {
	if len(u.Raw) == 0 {
		return json.RawMessage("{}")
	}
	return u.Raw
}

// DecodeContent turns a raw content object into the payload for t using the
// same tolerant rules as section decoding.
func DecodeContent(t Type, raw json.RawMessage) Payload {
	return decodePayload(t, raw)
}

// ClonePayload returns a copy that shares no slices with p.
func ClonePayload(p Payload) Payload {
	switch v := p.(type) {
	case Gallery:
		v.Images = slices.Clone(v.Images)
		return v
	case Features:
		v.Items = slices.Clone(v.Items)
		return v
	case Unknown:
		v.Raw = cloneRaw(v.Raw)
		return v
	case *Unknown:
		if v == nil {
			return nil
		}
		copied := *v
		copied.Raw = cloneRaw(v.Raw)
		return copied
	default:
		return p
	}
}
