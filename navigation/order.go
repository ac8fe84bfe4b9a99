package navigation

import (
	"slices"
	"strings"
)

// SortByOrder sorts items by ascending order, then creation time, then id.
func SortByOrder(items []*Item) {
	slices.SortStableFunc(items, func(a, b *Item) int {
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
