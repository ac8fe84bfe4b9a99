package sections

import (
	"fmt"
	"strings"
)

// Clone deep-copies a section list.
func Clone(list []Section) []Section {
	if list == nil {
		return nil
	}
	out := make([]Section, len(list))
	for i, section := range list {
		out[i] = Section{ID: section.ID, Content: ClonePayload(section.Content)}
	}
	return out
}

// Validate checks that every section carries a unique, non-empty id.
func Validate(list []Section) error {
	seen := make(map[string]struct{}, len(list))
	for i, section := range list {
		id := strings.TrimSpace(section.ID)
		if id == "" {
			return fmt.Errorf("%w: index %d", ErrIDRequired, i)
		}
		if _, ok := seen[id]; ok {
			return fmt.Errorf("%w: %q", ErrDuplicateID, id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

// IndexOf returns the position of the section with id, or -1.
func IndexOf(list []Section, id string) int {
	for i, section := range list {
		if section.ID == id {
			return i
		}
	}
	return -1
}

// Replace swaps the payload of the section with id wholesale. The id and
// position are kept.
func Replace(list []Section, id string, content Payload) ([]Section, error) {
	idx := IndexOf(list, id)
	if idx < 0 {
		return list, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	out := Clone(list)
	out[idx].Content = ClonePayload(content)
	return out, nil
}

// Remove drops the section with id.
func Remove(list []Section, id string) ([]Section, error) {
	idx := IndexOf(list, id)
	if idx < 0 {
		return list, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	out := make([]Section, 0, len(list)-1)
	out = append(out, list[:idx]...)
	out = append(out, list[idx+1:]...)
	return out, nil
}

// MoveUp swaps the section at index with its predecessor. Moving the first
// section, or an index outside the list, returns the list unchanged.
func MoveUp(list []Section, index int) []Section {
	if index <= 0 || index >= len(list) {
		return list
	}
	out := Clone(list)
	out[index-1], out[index] = out[index], out[index-1]
	return out
}

// MoveDown swaps the section at index with its successor. Moving the last
// section, or an index outside the list, returns the list unchanged.
func MoveDown(list []Section, index int) []Section {
	if index < 0 || index >= len(list)-1 {
		return list
	}
	out := Clone(list)
	out[index], out[index+1] = out[index+1], out[index]
	return out
}
