package cache

import (
	"context"
	"sync"

	"github.com/mhorvat/vjezbajmo-api/internal/domain"
)

// MemoryStore is an in-process Store backed by a map of append-only
// slices. It is the default backend when no database is configured and
// the backend used throughout the tests.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string][]domain.CachedExercise
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string][]domain.CachedExercise),
	}
}

// GetCachedExercises implements Store. The returned slice is a copy;
// callers may filter it freely without affecting the store.
func (s *MemoryStore) GetCachedExercises(ctx context.Context, key string) ([]domain.CachedExercise, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := s.entries[key]
	out := make([]domain.CachedExercise, len(stored))
	copy(out, stored)
	return out, nil
}

// SetCachedExercise implements Store.
func (s *MemoryStore) SetCachedExercise(ctx context.Context, key string, entry domain.CachedExercise) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = append(s.entries[key], entry)
	return nil
}

// GetExerciseByID implements Store.
func (s *MemoryStore) GetExerciseByID(ctx context.Context, id string) (*domain.CachedExercise, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, list := range s.entries {
		for i := range list {
			if list[i].ID == id || list[i].Data.SetID() == id {
				entry := list[i]
				return &entry, nil
			}
		}
	}
	return nil, domain.ErrExerciseNotFound
}
