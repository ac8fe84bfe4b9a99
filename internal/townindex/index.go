package townindex

import (
	"slices"
	"strings"

	"github.com/countyhub/go-minisite/listings"
	"github.com/google/uuid"
)

// Entry is the routing data of one listing.
type Entry struct {
	ID       uuid.UUID
	Name     string
	Kind     string
	Slug     string
	TownSlug string
}

// Index maps listing ids to their town. Build one per request from the
// listings at hand and pass it to whoever needs to build canonical links;
// there is no package level cache.
type Index struct {
	byID   map[uuid.UUID]Entry
	byTown map[string][]Entry
	towns  []string
}

func Build(list []*listings.Listing) *Index {
	idx := &Index{
		byID:   make(map[uuid.UUID]Entry, len(list)),
		byTown: make(map[string][]Entry),
	}
	for _, listing := range list {
		if listing == nil {
			continue
		}
		town := strings.TrimSpace(listing.TownSlug)
		entry := Entry{
			ID:       listing.ID,
			Name:     listing.Name,
			Kind:     string(listing.EntityType),
			Slug:     strings.TrimSpace(listing.Slug),
			TownSlug: town,
		}
		if _, seen := idx.byID[entry.ID]; seen {
			continue
		}
		idx.byID[entry.ID] = entry
		if town == "" {
			continue
		}
		if _, ok := idx.byTown[town]; !ok {
			idx.towns = append(idx.towns, town)
		}
		idx.byTown[town] = append(idx.byTown[town], entry)
	}
	slices.Sort(idx.towns)
	for _, entries := range idx.byTown {
		slices.SortStableFunc(entries, func(a, b Entry) int {
			return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
		})
	}
	return idx
}

// Lookup returns the entry for id.
func (idx *Index) Lookup(id uuid.UUID) (Entry, bool) {
	if idx == nil {
		return Entry{}, false
	}
	entry, ok := idx.byID[id]
	return entry, ok
}

// Town returns the town slug of id, or "" when unknown.
func (idx *Index) Town(id uuid.UUID) string {
	entry, _ := idx.Lookup(id)
	return entry.TownSlug
}

// Towns returns the town slugs in alphabetical order.
func (idx *Index) Towns() []string {
	if idx == nil {
		return nil
	}
	return slices.Clone(idx.towns)
}

// Listings returns the entries of town sorted by name.
func (idx *Index) Listings(town string) []Entry {
	if idx == nil {
		return nil
	}
	return slices.Clone(idx.byTown[town])
}

func (idx *Index) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.byID)
}
