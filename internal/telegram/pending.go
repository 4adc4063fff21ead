package telegram

import (
	"sync"
	"time"

	"babymenu/internal/catalog"
)

// Pending action kinds.
const (
	ActionAddFood    = "add_food"
	ActionRemoveFood = "remove_food"
)

// PendingAction is a catalog change waiting for the user to answer the
// recalculation prompt.
type PendingAction struct {
	Kind      string
	ChildID   string
	Food      string
	Category  catalog.Category
	ChatID    int64
	ExpiresAt time.Time
}

// PendingStore keeps at most one pending action per Telegram user. Actions
// expire after the store's TTL.
type PendingStore struct {
	mu    sync.Mutex
	ttl   time.Duration
	now   func() time.Time
	items map[int64]PendingAction
}

// NewPendingStore creates a store whose actions live for ttl.
func NewPendingStore(ttl time.Duration) *PendingStore {
	return &PendingStore{
		ttl:   ttl,
		now:   time.Now,
		items: make(map[int64]PendingAction),
	}
}

// Put replaces the user's pending action.
func (s *PendingStore) Put(userID int64, a PendingAction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a.ExpiresAt = s.now().Add(s.ttl)
	s.items[userID] = a
}

// Take removes and returns the user's pending action. Expired actions are
// dropped and reported as absent.
func (s *PendingStore) Take(userID int64) (PendingAction, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.items[userID]
	if !ok {
		return PendingAction{}, false
	}
	delete(s.items, userID)
	if !s.now().Before(a.ExpiresAt) {
		return PendingAction{}, false
	}
	return a, true
}

// CleanupExpired drops every expired action and returns how many were
// removed.
func (s *PendingStore) CleanupExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	removed := 0
	for id, a := range s.items {
		if !now.Before(a.ExpiresAt) {
			delete(s.items, id)
			removed++
		}
	}
	return removed
}
