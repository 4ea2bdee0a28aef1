package expense

import (
	"context"
	"sort"
	"sync"
	"time"

	dErrors "exptrack/pkg/domain-errors"

	"github.com/google/uuid"
)

// MemoryStore keeps expenses in memory for tests.
type MemoryStore struct {
	mu       sync.RWMutex
	expenses map[uuid.UUID]Expense
}

func NewMemory() *MemoryStore {
	return &MemoryStore{expenses: make(map[uuid.UUID]Expense)}
}

func (s *MemoryStore) Create(_ context.Context, e *Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	s.expenses[e.ID] = *e
	return nil
}

func (s *MemoryStore) FindByID(_ context.Context, id, ownerID uuid.UUID) (*Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if e, ok := s.expenses[id]; ok && e.OwnerID == ownerID {
		return &e, nil
	}
	return nil, dErrors.New(dErrors.CodeNotFound, "expense not found")
}

func (s *MemoryStore) Update(_ context.Context, e *Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.expenses[e.ID]
	if !ok || existing.OwnerID != e.OwnerID {
		return dErrors.New(dErrors.CodeNotFound, "expense not found")
	}
	s.expenses[e.ID] = *e
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id, ownerID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.expenses[id]; !ok || e.OwnerID != ownerID {
		return dErrors.New(dErrors.CodeNotFound, "expense not found")
	}
	delete(s.expenses, id)
	return nil
}

func (s *MemoryStore) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]Expense, error) {
	return s.filter(func(e Expense) bool { return e.OwnerID == ownerID }), nil
}

func (s *MemoryStore) ListByBudget(_ context.Context, budgetID, ownerID uuid.UUID) ([]Expense, error) {
	return s.filter(func(e Expense) bool {
		return e.OwnerID == ownerID && e.BudgetID != nil && *e.BudgetID == budgetID
	}), nil
}

func (s *MemoryStore) AggregateSpendForBudget(_ context.Context, budgetID uuid.UUID) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var total int64
	for _, e := range s.expenses {
		if e.BudgetID != nil && *e.BudgetID == budgetID {
			total += e.Amount
		}
	}
	return total, nil
}

func (s *MemoryStore) filter(keep func(Expense) bool) []Expense {
	s.mu.RLock()
	defer s.mu.RUnlock()
	expenses := make([]Expense, 0)
	for _, e := range s.expenses {
		if keep(e) {
			expenses = append(expenses, e)
		}
	}
	sort.Slice(expenses, func(i, j int) bool {
		return expenses[i].Date.After(expenses[j].Date)
	})
	return expenses
}
