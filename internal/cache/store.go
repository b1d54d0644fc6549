package cache

import (
	"context"

	"github.com/mhorvat/vjezbajmo-api/internal/domain"
)

// Store is the interface for the shared exercise cache. Implementations
// must preserve insertion order per key and never drop, reorder or
// deduplicate entries. Writers only ever append, which keeps concurrent
// use safe at the cost of unbounded growth; pruning by CreatedAt is left
// to an external sweep.
type Store interface {
	// GetCachedExercises returns every entry stored under key, oldest
	// first. A missing key yields an empty slice, not an error.
	GetCachedExercises(ctx context.Context, key string) ([]domain.CachedExercise, error)

	// SetCachedExercise appends entry to the sequence for key, creating
	// the sequence if absent. Existing entries are never overwritten.
	SetCachedExercise(ctx context.Context, key string, entry domain.CachedExercise) error

	// GetExerciseByID scans all keys for an entry whose wrapper id or
	// inner set id matches id. Both identities are used as external
	// references in different call sites, so both must be checked.
	// Returns domain.ErrExerciseNotFound when no entry matches.
	GetExerciseByID(ctx context.Context, id string) (*domain.CachedExercise, error)
}
