package category

import (
	"context"
	"sort"
	"sync"
	"time"

	dErrors "exptrack/pkg/domain-errors"

	"github.com/google/uuid"
)

// MemoryStore keeps categories in memory for tests.
type MemoryStore struct {
	mu         sync.RWMutex
	categories map[uuid.UUID]Category
}

func NewMemory() *MemoryStore {
	return &MemoryStore{categories: make(map[uuid.UUID]Category)}
}

func (s *MemoryStore) Create(_ context.Context, c *Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	s.categories[c.ID] = *c
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id, ownerID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.categories[id]
	if !ok || c.OwnerID == nil || *c.OwnerID != ownerID {
		return dErrors.New(dErrors.CodeNotFound, "category not found")
	}
	delete(s.categories, id)
	return nil
}

func (s *MemoryStore) ListForOwner(_ context.Context, ownerID uuid.UUID) ([]Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	categories := make([]Category, 0)
	for _, c := range s.categories {
		if c.OwnerID == nil || *c.OwnerID == ownerID {
			categories = append(categories, c)
		}
	}
	sort.Slice(categories, func(i, j int) bool {
		return categories[i].Name < categories[j].Name
	})
	return categories, nil
}
