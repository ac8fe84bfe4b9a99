package listings

import (
	"context"
	"sync"

	"github.com/countyhub/go-minisite/entity"
	"github.com/google/uuid"
)

type memoryListingRepository struct {
	mu    sync.RWMutex
	byID  map[uuid.UUID]*Listing
	order []uuid.UUID
}

// NewMemoryListingRepository returns an in-memory listing store that keeps
// insertion order, so FindBySlug's "first match" is the earliest created.
func NewMemoryListingRepository() ListingRepository {
	return &memoryListingRepository{byID: make(map[uuid.UUID]*Listing)}
}

func (m *memoryListingRepository) Create(_ context.Context, listing *Listing) (*Listing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cloned := listing.Clone()
	if cloned.ID == uuid.Nil {
		cloned.ID = uuid.New()
	}
	if _, exists := m.byID[cloned.ID]; !exists {
		m.order = append(m.order, cloned.ID)
	}
	m.byID[cloned.ID] = cloned
	return cloned.Clone(), nil
}

func (m *memoryListingRepository) Update(_ context.Context, listing *Listing) (*Listing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byID[listing.ID]; !ok {
		return nil, &NotFoundError{Resource: "listing", Key: listing.ID.String()}
	}
	cloned := listing.Clone()
	m.byID[cloned.ID] = cloned
	return cloned.Clone(), nil
}

func (m *memoryListingRepository) GetByID(_ context.Context, id uuid.UUID) (*Listing, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.byID[id]
	if !ok {
		return nil, &NotFoundError{Resource: "listing", Key: id.String()}
	}
	return record.Clone(), nil
}

func (m *memoryListingRepository) FindBySlug(_ context.Context, townSlug, slug string) (*Listing, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, id := range m.order {
		record := m.byID[id]
		if record.Slug == slug && record.TownSlug == townSlug {
			return record.Clone(), nil
		}
	}
	return nil, &NotFoundError{Resource: "listing", Key: townSlug + "/" + slug}
}

func (m *memoryListingRepository) ListByType(_ context.Context, kind entity.Type) ([]*Listing, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Listing, 0, len(m.order))
	for _, id := range m.order {
		record := m.byID[id]
		if kind == "" || record.EntityType == kind {
			out = append(out, record.Clone())
		}
	}
	return out, nil
}
