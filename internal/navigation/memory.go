package navigation

import (
	"context"
	"sync"

	"github.com/countyhub/go-minisite/entity"
	"github.com/google/uuid"
)

type memoryItemRepository struct {
	mu   sync.RWMutex
	byID map[uuid.UUID]*Item
	// insertion order keeps list results deterministic before sorting
	order []uuid.UUID
}

// NewMemoryItemRepository returns an in-memory navigation item store.
func NewMemoryItemRepository() ItemRepository {
	return &memoryItemRepository{byID: make(map[uuid.UUID]*Item)}
}

func (m *memoryItemRepository) Create(_ context.Context, item *Item) (*Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cloned := item.Clone()
	if _, exists := m.byID[cloned.ID]; !exists {
		m.order = append(m.order, cloned.ID)
	}
	m.byID[cloned.ID] = cloned
	return cloned.Clone(), nil
}

func (m *memoryItemRepository) GetByID(_ context.Context, id uuid.UUID) (*Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.byID[id]
	if !ok {
		return nil, &NotFoundError{Resource: "navigation_item", Key: id.String()}
	}
	return record.Clone(), nil
}

func (m *memoryItemRepository) ListByOwner(_ context.Context, owner entity.Ref) ([]*Item, error) {
	return m.filter(func(item *Item) bool { return item.Owner() == owner }), nil
}

func (m *memoryItemRepository) ListChildren(_ context.Context, parentID uuid.UUID) ([]*Item, error) {
	return m.filter(func(item *Item) bool {
		return item.ParentID != nil && *item.ParentID == parentID
	}), nil
}

func (m *memoryItemRepository) GetByAutoManagedPage(_ context.Context, owner entity.Ref, pageID uuid.UUID) (*Item, error) {
	matches := m.filter(func(item *Item) bool {
		return item.Owner() == owner && item.AutoManagedForPageID != nil && *item.AutoManagedForPageID == pageID
	})
	if len(matches) == 0 {
		return nil, &NotFoundError{Resource: "navigation_item", Key: "auto:" + pageID.String()}
	}
	return matches[0], nil
}

func (m *memoryItemRepository) Update(_ context.Context, item *Item) (*Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byID[item.ID]; !ok {
		return nil, &NotFoundError{Resource: "navigation_item", Key: item.ID.String()}
	}
	cloned := item.Clone()
	m.byID[cloned.ID] = cloned
	return cloned.Clone(), nil
}

func (m *memoryItemRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byID[id]; !ok {
		return &NotFoundError{Resource: "navigation_item", Key: id.String()}
	}
	delete(m.byID, id)
	for i, candidate := range m.order {
		if candidate == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

func (m *memoryItemRepository) filter(keep func(*Item) bool) []*Item {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Item, 0)
	for _, id := range m.order {
		if item := m.byID[id]; keep(item) {
			out = append(out, item.Clone())
		}
	}
	return out
}
