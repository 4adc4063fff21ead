package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"babymenu/internal/planner"
)

// MemoryStore keeps the encoded state in memory. Every Load decodes a
// fresh copy, so callers never share maps with the store.
type MemoryStore struct {
	mu   sync.Mutex
	data []byte
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load(ctx context.Context) (*planner.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return decodeState(s.data)
}

func (s *MemoryStore) Save(ctx context.Context, st *planner.State) error {
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}
	s.mu.Lock()
	s.data = data
	s.mu.Unlock()
	return nil
}
