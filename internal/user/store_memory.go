package user

import (
	"context"
	"sync"
	"time"

	dErrors "exptrack/pkg/domain-errors"

	"github.com/google/uuid"
)

// MemoryStore keeps users in memory for tests. It intentionally favors
// clarity over performance.
type MemoryStore struct {
	mu    sync.RWMutex
	users map[uuid.UUID]User
}

func NewMemory() *MemoryStore {
	return &MemoryStore{users: make(map[uuid.UUID]User)}
}

func (s *MemoryStore) Create(_ context.Context, u *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	s.users[u.ID] = *u
	return nil
}

func (s *MemoryStore) FindByID(_ context.Context, id uuid.UUID) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if u, ok := s.users[id]; ok {
		return &u, nil
	}
	return nil, dErrors.New(dErrors.CodeNotFound, "user not found")
}

func (s *MemoryStore) FindByEmail(_ context.Context, email string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, dErrors.New(dErrors.CodeNotFound, "user not found")
}

// Delete removes a user, letting tests simulate accounts deleted while a
// token for them is still outstanding.
func (s *MemoryStore) Delete(_ context.Context, id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, id)
}
