package budget

import (
	"context"
	"sort"
	"sync"
	"time"

	dErrors "exptrack/pkg/domain-errors"

	"github.com/google/uuid"
)

// MemoryStore keeps budgets in memory for tests.
type MemoryStore struct {
	mu      sync.RWMutex
	budgets map[uuid.UUID]Budget
}

func NewMemory() *MemoryStore {
	return &MemoryStore{budgets: make(map[uuid.UUID]Budget)}
}

func (s *MemoryStore) Create(_ context.Context, b *Budget) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now()
	}
	s.budgets[b.ID] = *b
	return nil
}

func (s *MemoryStore) FindByID(_ context.Context, id, ownerID uuid.UUID) (*Budget, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if b, ok := s.budgets[id]; ok && b.OwnerID == ownerID {
		return &b, nil
	}
	return nil, dErrors.New(dErrors.CodeNotFound, "budget not found")
}

func (s *MemoryStore) Update(_ context.Context, b *Budget) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.budgets[b.ID]
	if !ok || existing.OwnerID != b.OwnerID {
		return dErrors.New(dErrors.CodeNotFound, "budget not found")
	}
	s.budgets[b.ID] = *b
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id, ownerID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b, ok := s.budgets[id]; !ok || b.OwnerID != ownerID {
		return dErrors.New(dErrors.CodeNotFound, "budget not found")
	}
	delete(s.budgets, id)
	return nil
}

func (s *MemoryStore) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]Budget, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	budgets := make([]Budget, 0)
	for _, b := range s.budgets {
		if b.OwnerID == ownerID {
			budgets = append(budgets, b)
		}
	}
	sort.Slice(budgets, func(i, j int) bool {
		return budgets[i].StartDate.After(budgets[j].StartDate)
	})
	return budgets, nil
}
