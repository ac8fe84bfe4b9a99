package pages

import (
	"slices"
	"strings"
)

// SortByOrder sorts pages by ascending order, then creation time, then id,
// so equal orders still produce a stable result.
func SortByOrder(list []*Page) {
	slices.SortStableFunc(list, ComparePages)
}

// ComparePages orders two pages by (order, created_at, id).
func ComparePages(a, b *Page) int {
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
}
