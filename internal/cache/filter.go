package cache

import "github.com/mhorvat/vjezbajmo-api/internal/domain"

// FilterCompleted returns the subsequence of entries whose inner set id is
// not in the completed set, preserving the original order. The comparison
// is against Data.SetID(): completion records reference the set's own
// identity, never the cache wrapper id.
func FilterCompleted(entries []domain.CachedExercise, completed map[string]struct{}) []domain.CachedExercise {
	if len(completed) == 0 {
		return entries
	}

	available := make([]domain.CachedExercise, 0, len(entries))
	for _, entry := range entries {
		if _, done := completed[entry.Data.SetID()]; done {
			continue
		}
		available = append(available, entry)
	}
	return available
}

// CompletedSet converts a list of completed exercise ids into a lookup set.
func CompletedSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
