package notification

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore keeps notifications in memory for tests. Insert order is
// preserved so tests can assert on the sequence of alerts.
type MemoryStore struct {
	mu            sync.RWMutex
	notifications []Notification
}

func NewMemory() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Insert(_ context.Context, ownerID uuid.UUID, category, message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications = append(s.notifications, Notification{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Category:  category,
		Message:   message,
		CreatedAt: time.Now(),
	})
	return nil
}

func (s *MemoryStore) ListUnsent(_ context.Context, ownerID uuid.UUID) ([]Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	unsent := make([]Notification, 0)
	for _, n := range s.notifications {
		if n.OwnerID == ownerID && !n.Sent {
			unsent = append(unsent, n)
		}
	}
	return unsent, nil
}

func (s *MemoryStore) MarkSent(_ context.Context, ids []uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	marked := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		marked[id] = true
	}
	for i := range s.notifications {
		if marked[s.notifications[i].ID] {
			s.notifications[i].Sent = true
		}
	}
	return nil
}

// All returns every stored notification, for test assertions.
func (s *MemoryStore) All() []Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Notification, len(s.notifications))
	copy(out, s.notifications)
	return out
}
