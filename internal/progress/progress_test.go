package progress

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mhorvat/vjezbajmo-api/internal/domain"
)

func TestMemoryStore_MarkAndGet(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	records, err := store.GetCompletedExercises(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, records)

	first := domain.CompletionRecord{
		ExerciseID:   "set-1",
		ExerciseType: domain.ExerciseTypeVerbTenses,
		CefrLevel:    domain.CefrLevelA22,
		CompletedAt:  time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC),
	}
	require.NoError(t, store.MarkExerciseCompleted(ctx, "user-1", first))

	second := domain.CompletionRecord{
		ExerciseID:   "set-2",
		ExerciseType: domain.ExerciseTypeNounDeclension,
		CefrLevel:    domain.CefrLevelA22,
	}
	require.NoError(t, store.MarkExerciseCompleted(ctx, "user-1", second))

	records, err = store.GetCompletedExercises(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "set-2", records[0].ExerciseID, "most recent completion first")
	assert.Equal(t, "set-1", records[1].ExerciseID)
	assert.False(t, records[0].CompletedAt.IsZero(), "a missing timestamp is filled in")

	assert.Equal(t, []string{"set-2", "set-1"}, SetIDs(records))
}

func TestMemoryStore_DuplicateMarkIsNoOp(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	record := domain.CompletionRecord{ExerciseID: "set-1", ExerciseType: domain.ExerciseTypeVerbAspect, CefrLevel: domain.CefrLevelB11}
	require.NoError(t, store.MarkExerciseCompleted(ctx, "user-1", record))
	require.NoError(t, store.MarkExerciseCompleted(ctx, "user-1", record))

	records, err := store.GetCompletedExercises(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestMemoryStore_UsersAreIsolated(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	record := domain.CompletionRecord{ExerciseID: "set-1", ExerciseType: domain.ExerciseTypeVerbTenses, CefrLevel: domain.CefrLevelA1}
	require.NoError(t, store.MarkExerciseCompleted(ctx, "user-1", record))

	records, err := store.GetCompletedExercises(ctx, "user-2")
	require.NoError(t, err)
	assert.Empty(t, records)
}
