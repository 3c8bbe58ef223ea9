package task

import (
	"context"
	"slices"
	"sync"

	"taskledger/internal/model"
)

// MemoryStore keeps the collection in memory. Load and Save copy, so callers
// never share a slice with the store.
type MemoryStore struct {
	mu    sync.RWMutex
	tasks []model.Task
	saves int
}

func NewMemoryStore(seed ...model.Task) *MemoryStore {
	return &MemoryStore{tasks: slices.Clone(seed)}
}

func (s *MemoryStore) Load(_ context.Context) ([]model.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Task, len(s.tasks))
	copy(out, s.tasks)
	return out, nil
}

func (s *MemoryStore) Save(_ context.Context, tasks []model.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tasks = slices.Clone(tasks)
	s.saves++
	return nil
}

// Saves returns how many times Save has been called.
func (s *MemoryStore) Saves() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saves
}
