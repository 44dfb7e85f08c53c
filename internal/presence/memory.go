package presence

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

type MemoryStore struct {
	mu    sync.RWMutex
	conns map[uuid.UUID]map[uuid.UUID]bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{conns: make(map[uuid.UUID]map[uuid.UUID]bool)}
}

func (s *MemoryStore) Add(_ context.Context, userID, connID uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	set, ok := s.conns[userID]
	if !ok {
		set = make(map[uuid.UUID]bool)
		s.conns[userID] = set
	}
	set[connID] = true

	return !ok, nil
}

func (s *MemoryStore) Remove(_ context.Context, userID, connID uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	set, ok := s.conns[userID]
	if !ok {
		return false, nil
	}

	delete(set, connID)
	if len(set) == 0 {
		delete(s.conns, userID)
		return true, nil
	}

	return false, nil
}

func (s *MemoryStore) IsOnline(_ context.Context, userID uuid.UUID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.conns[userID]
	return ok, nil
}

func (s *MemoryStore) Online(_ context.Context) ([]uuid.UUID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]uuid.UUID, 0, len(s.conns))
	for userID := range s.conns {
		users = append(users, userID)
	}
	return users, nil
}
