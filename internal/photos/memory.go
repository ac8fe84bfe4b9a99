package photos

import (
	"context"
	"sync"

	"github.com/countyhub/go-minisite/entity"
	"github.com/google/uuid"
)

type memoryPhotoRepository struct {
	mu    sync.RWMutex
	byID  map[uuid.UUID]*Photo
	order []uuid.UUID
}

// NewMemoryPhotoRepository returns an in-memory photo store.
func NewMemoryPhotoRepository() PhotoRepository {
	return &memoryPhotoRepository{byID: make(map[uuid.UUID]*Photo)}
}

func (m *memoryPhotoRepository) Create(_ context.Context, photo *Photo) (*Photo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cloned := photo.Clone()
	if _, exists := m.byID[cloned.ID]; !exists {
		m.order = append(m.order, cloned.ID)
	}
	m.byID[cloned.ID] = cloned
	return cloned.Clone(), nil
}

func (m *memoryPhotoRepository) GetByID(_ context.Context, id uuid.UUID) (*Photo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.byID[id]
	if !ok {
		return nil, &NotFoundError{Resource: "photo", Key: id.String()}
	}
	return record.Clone(), nil
}

func (m *memoryPhotoRepository) ListByOwner(_ context.Context, owner entity.Ref) ([]*Photo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Photo, 0)
	for _, id := range m.order {
		if record := m.byID[id]; record.Owner() == owner {
			out = append(out, record.Clone())
		}
	}
	return out, nil
}

func (m *memoryPhotoRepository) Update(_ context.Context, photo *Photo) (*Photo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byID[photo.ID]; !ok {
		return nil, &NotFoundError{Resource: "photo", Key: photo.ID.String()}
	}
	cloned := photo.Clone()
	m.byID[cloned.ID] = cloned
	return cloned.Clone(), nil
}

func (m *memoryPhotoRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byID[id]; !ok {
		return &NotFoundError{Resource: "photo", Key: id.String()}
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
