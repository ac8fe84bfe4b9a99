package pages

import (
	"context"
	"sync"

	"github.com/countyhub/go-minisite/entity"
	"github.com/google/uuid"
)

type memoryPageRepository struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]*Page
	byOwner map[entity.Ref][]uuid.UUID
}

// NewMemoryPageRepository returns an in-memory page store. Records are cloned
// on the way in and out.
func NewMemoryPageRepository() PageRepository {
	return &memoryPageRepository{
		byID:    make(map[uuid.UUID]*Page),
		byOwner: make(map[entity.Ref][]uuid.UUID),
	}
}

func (m *memoryPageRepository) Create(_ context.Context, page *Page) (*Page, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cloned := page.Clone()
	m.byID[cloned.ID] = cloned
	owner := cloned.Owner()
	m.byOwner[owner] = append(m.byOwner[owner], cloned.ID)
	return cloned.Clone(), nil
}

func (m *memoryPageRepository) GetByID(_ context.Context, id uuid.UUID) (*Page, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.byID[id]
	if !ok {
		return nil, &NotFoundError{Resource: "page", Key: id.String()}
	}
	return record.Clone(), nil
}

func (m *memoryPageRepository) ListByOwner(_ context.Context, owner entity.Ref) ([]*Page, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := m.byOwner[owner]
	out := make([]*Page, 0, len(ids))
	for _, id := range ids {
		out = append(out, m.byID[id].Clone())
	}
	return out, nil
}

func (m *memoryPageRepository) Update(_ context.Context, page *Page) (*Page, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.byID[page.ID]
	if !ok {
		return nil, &NotFoundError{Resource: "page", Key: page.ID.String()}
	}
	cloned := page.Clone()
	if oldOwner := existing.Owner(); oldOwner != cloned.Owner() {
		m.byOwner[oldOwner] = removeID(m.byOwner[oldOwner], cloned.ID)
		m.byOwner[cloned.Owner()] = append(m.byOwner[cloned.Owner()], cloned.ID)
	}
	m.byID[cloned.ID] = cloned
	return cloned.Clone(), nil
}

func (m *memoryPageRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.byID[id]
	if !ok {
		return &NotFoundError{Resource: "page", Key: id.String()}
	}
	delete(m.byID, id)
	owner := existing.Owner()
	m.byOwner[owner] = removeID(m.byOwner[owner], id)
	return nil
}

func removeID(ids []uuid.UUID, target uuid.UUID) []uuid.UUID {
	out := ids[:0]
	for _, id := range ids {
		if id != target {
			out = append(out, id)
		}
	}
	return out
}
