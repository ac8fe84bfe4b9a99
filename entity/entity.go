package entity

import (
	"errors"
	"fmt"
	"strings"
)

// Type discriminates the listing kind that owns mini-site records.
type Type string

const (
	TypeChurch     Type = "church"
	TypeSchool     Type = "school"
	TypeFoodTruck  Type = "food_truck"
	TypeRestaurant Type = "restaurant"
	TypeRealty     Type = "realty"
	TypeService    Type = "service"
	TypeProduct    Type = "product"
)

var (
	ErrUnknownType = errors.New("entity: unknown entity type")
	ErrIDRequired  = errors.New("entity: entity id is required")
)

var knownTypes = []Type{
	TypeChurch,
	TypeSchool,
	TypeFoodTruck,
	TypeRestaurant,
	TypeRealty,
	TypeService,
	TypeProduct,
}

// Types returns every listing kind that can host a mini-site.
func Types() []Type {
	out := make([]Type, len(knownTypes))
	copy(out, knownTypes)
	return out
}

// ParseType normalises a raw discriminator. Hyphenated forms such as
// "food-truck" are accepted.
func ParseType(raw string) (Type, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	normalized = strings.ReplaceAll(normalized, "-", "_")
	candidate := Type(normalized)
	if !candidate.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownType, raw)
	}
	return candidate, nil
}

// Valid reports whether t is one of the known listing kinds.
func (t Type) Valid() bool {
	for _, known := range knownTypes {
		if t == known {
			return true
		}
	}
	return false
}

func (t Type) String() string { return string(t) }

// Ref identifies the listing that owns a page, navigation item or photo.
// It is the typed form of the (entity_type, entity_id) column pair.
type Ref struct {
	Type Type   `json:"entity_type"`
	ID   string `json:"entity_id"`
}

// NewRef parses and validates a reference from its raw parts.
func NewRef(rawType, id string) (Ref, error) {
	kind, err := ParseType(rawType)
	if err != nil {
		return Ref{}, err
	}
	ref := Ref{Type: kind, ID: strings.TrimSpace(id)}
	if err := ref.Validate(); err != nil {
		return Ref{}, err
	}
	return ref, nil
}

func Church(id string) Ref     { return Ref{Type: TypeChurch, ID: id} }
func School(id string) Ref     { return Ref{Type: TypeSchool, ID: id} }
func FoodTruck(id string) Ref  { return Ref{Type: TypeFoodTruck, ID: id} }
func Restaurant(id string) Ref { return Ref{Type: TypeRestaurant, ID: id} }
func Realty(id string) Ref     { return Ref{Type: TypeRealty, ID: id} }
func Service(id string) Ref    { return Ref{Type: TypeService, ID: id} }
func Product(id string) Ref    { return Ref{Type: TypeProduct, ID: id} }

// Validate ensures both halves of the reference are usable as a filter.
func (r Ref) Validate() error {
	if !r.Type.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownType, string(r.Type))
	}
	if strings.TrimSpace(r.ID) == "" {
		return ErrIDRequired
	}
	return nil
}

// IsZero reports whether the reference is unset.
func (r Ref) IsZero() bool {
	return r.Type == "" && r.ID == ""
}

// Matches reports whether the stored column pair belongs to r.
func (r Ref) Matches(kind Type, id string) bool {
	return r.Type == kind && r.ID == id
}

// Owns reports whether the record belongs to r.
func (r Ref) Owns(record Owned) bool {
	if record == nil {
		return false
	}
	return record.Owner() == r
}

// String renders the reference as "type:id".
func (r Ref) String() string {
	return string(r.Type) + ":" + r.ID
}

// Owned is implemented by every record scoped to a listing.
type Owned interface {
	Owner() Ref
}
