// Package progress tracks which exercise sets a user has completed.
// Completion records reference the inner set identity, not the cache
// wrapper id, so the acquisition path can filter served sets correctly.
package progress

import (
	"context"
	"sync"
	"time"

	"github.com/mhorvat/vjezbajmo-api/internal/domain"
)

// Store persists per-user completion records.
type Store interface {
	// GetCompletedExercises returns the set ids the user has completed,
	// most recent first.
	GetCompletedExercises(ctx context.Context, userID string) ([]domain.CompletionRecord, error)

	// MarkExerciseCompleted records a completion. Marking the same set
	// twice is a no-op.
	MarkExerciseCompleted(ctx context.Context, userID string, record domain.CompletionRecord) error
}

// MemoryStore is an in-process Store. It is the default backend when no
// database is configured.
type MemoryStore struct {
	mu      sync.Mutex
	records map[string][]domain.CompletionRecord
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[string][]domain.CompletionRecord),
	}
}

// GetCompletedExercises implements Store.
func (s *MemoryStore) GetCompletedExercises(ctx context.Context, userID string) ([]domain.CompletionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := s.records[userID]
	out := make([]domain.CompletionRecord, len(stored))
	copy(out, stored)
	return out, nil
}

// MarkExerciseCompleted implements Store.
func (s *MemoryStore) MarkExerciseCompleted(ctx context.Context, userID string, record domain.CompletionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.records[userID] {
		if existing.ExerciseID == record.ExerciseID {
			return nil
		}
	}

	if record.CompletedAt.IsZero() {
		record.CompletedAt = time.Now().UTC()
	}
	s.records[userID] = append([]domain.CompletionRecord{record}, s.records[userID]...)
	return nil
}

// SetIDs extracts the completed set ids from a list of records, in order.
func SetIDs(records []domain.CompletionRecord) []string {
	ids := make([]string, len(records))
	for i, r := range records {
		ids[i] = r.ExerciseID
	}
	return ids
}
