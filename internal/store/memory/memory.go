// Package memory is the in-memory saved-items store. It mirrors the Redis
// slots so reads keep working while Redis is down, and it records which slots
// were written in degraded mode so a scheduler can flush them back later.
package memory

import (
	"context"
	"sync"

	"github.com/herathmmr/stash/internal/domain"
)

// Slot identifies one user/kind collection.
type Slot struct {
	User string
	Kind domain.Kind
}

// Store holds per-user collections guarded by a single RW mutex.
type Store struct {
	mu    sync.RWMutex
	news  map[string][]domain.SavedNews
	jobs  map[string][]domain.SavedJob
	dirty map[Slot]bool
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		news:  make(map[string][]domain.SavedNews),
		jobs:  make(map[string][]domain.SavedJob),
		dirty: make(map[Slot]bool),
	}
}

// LoadNews returns a copy of the user's saved-news collection.
// An unknown user has an empty collection. Never errors.
func (s *Store) LoadNews(_ context.Context, user string) ([]domain.SavedNews, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := s.news[user]
	out := make([]domain.SavedNews, len(items))
	copy(out, items)
	return out, nil
}

// SaveNews replaces the user's saved-news collection.
func (s *Store) SaveNews(_ context.Context, user string, items []domain.SavedNews) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]domain.SavedNews, len(items))
	copy(stored, items)
	s.news[user] = stored
	return nil
}

// LoadJobs returns a copy of the user's saved-jobs collection.
func (s *Store) LoadJobs(_ context.Context, user string) ([]domain.SavedJob, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := s.jobs[user]
	out := make([]domain.SavedJob, len(items))
	copy(out, items)
	return out, nil
}

// SaveJobs replaces the user's saved-jobs collection.
func (s *Store) SaveJobs(_ context.Context, user string, items []domain.SavedJob) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]domain.SavedJob, len(items))
	copy(stored, items)
	s.jobs[user] = stored
	return nil
}

// MarkDirty records that a slot was written while the durable store was
// unreachable and still needs to be flushed.
func (s *Store) MarkDirty(user string, kind domain.Kind) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.dirty[Slot{User: user, Kind: kind}] = true
}

// DirtySlots returns the slots awaiting a flush to the durable store.
func (s *Store) DirtySlots() []Slot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	slots := make([]Slot, 0, len(s.dirty))
	for slot := range s.dirty {
		slots = append(slots, slot)
	}
	return slots
}

// ClearDirty marks a slot as flushed.
func (s *Store) ClearDirty(slot Slot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.dirty, slot)
}

// DirtyCount returns the number of slots awaiting a flush.
func (s *Store) DirtyCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.dirty)
}
