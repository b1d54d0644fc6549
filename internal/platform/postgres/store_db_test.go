package postgres

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"os"
	"testing"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mhorvat/vjezbajmo-api/internal/cache"
	"github.com/mhorvat/vjezbajmo-api/internal/domain"
)

// openTestDB connects to the database named by DATABASE_URL and runs the
// migrations. Tests are skipped when no database is configured.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("DATABASE_URL not set; skipping database tests")
	}

	db, err := sql.Open("pgx", dbURL)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, db.Ping())
	require.NoError(t, goose.SetDialect("postgres"))
	require.NoError(t, goose.Up(db, "../../../migrations"))

	_, err = db.Exec("TRUNCATE cached_exercises, completed_exercises")
	require.NoError(t, err)

	return db
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestExerciseStore_RoundTrip(t *testing.T) {
	db := openTestDB(t)
	store := NewExerciseStore(db, testLogger())
	ctx := context.Background()

	set := &domain.ParagraphExerciseSet{
		Paragraph: "Svaki dan ___1___ (piti) kavu.",
		Questions: []domain.ParagraphQuestion{
			{BlankNumber: 1, BaseForm: "piti", CorrectAnswer: domain.AnswerSet{"pijem"}, Explanation: "Present tense, first person."},
		},
	}
	set.AssignIdentities()

	key := cache.Key(domain.ExerciseTypeVerbTenses, domain.CefrLevelA22, nil)
	entry := domain.NewCachedExercise(domain.ExerciseTypeVerbTenses, domain.CefrLevelA22, nil, set)
	require.NoError(t, store.SetCachedExercise(ctx, key, entry))

	entries, err := store.GetCachedExercises(ctx, key)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	got, ok := entries[0].Data.(*domain.ParagraphExerciseSet)
	require.True(t, ok)
	assert.Equal(t, set.SetID(), got.SetID())
	assert.Equal(t, set.Paragraph, got.Paragraph)
	require.Len(t, got.Questions, 1)
	assert.Equal(t, domain.AnswerSet{"pijem"}, got.Questions[0].CorrectAnswer)

	byWrapper, err := store.GetExerciseByID(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, entry.ID, byWrapper.ID)

	bySet, err := store.GetExerciseByID(ctx, set.SetID())
	require.NoError(t, err)
	assert.Equal(t, entry.ID, bySet.ID)

	_, err = store.GetExerciseByID(ctx, "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, domain.ErrExerciseNotFound)
}

func TestExerciseStore_KeysAreIsolated(t *testing.T) {
	db := openTestDB(t)
	store := NewExerciseStore(db, testLogger())
	ctx := context.Background()

	set := &domain.SentenceExerciseSet{
		Exercises: []domain.SentenceExercise{
			{Text: "Ovo je knjiga ___ sam kupio.", CorrectAnswer: domain.AnswerSet{"koju"}, Explanation: "Feminine accusative."},
		},
	}
	set.AssignIdentities()

	key := cache.Key(domain.ExerciseTypeRelativePronouns, domain.CefrLevelB11, nil)
	entry := domain.NewCachedExercise(domain.ExerciseTypeRelativePronouns, domain.CefrLevelB11, nil, set)
	require.NoError(t, store.SetCachedExercise(ctx, key, entry))

	theme := "posao"
	other, err := store.GetCachedExercises(ctx, cache.Key(domain.ExerciseTypeRelativePronouns, domain.CefrLevelB11, &theme))
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestProgressStore_RoundTrip(t *testing.T) {
	db := openTestDB(t)
	store := NewProgressStore(db, testLogger())
	ctx := context.Background()

	record := domain.CompletionRecord{
		ExerciseID:    "7f4c1d66-98cf-4b9f-bb65-2d0a3a30c9d1",
		ExerciseType:  domain.ExerciseTypeVerbTenses,
		CefrLevel:     domain.CefrLevelA22,
		AttemptNumber: 1,
		Title:         "Verb tenses practice",
	}
	require.NoError(t, store.MarkExerciseCompleted(ctx, "user-1", record))
	require.NoError(t, store.MarkExerciseCompleted(ctx, "user-1", record))

	records, err := store.GetCompletedExercises(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, records, 1, "re-marking the same set must be a no-op")

	assert.Equal(t, record.ExerciseID, records[0].ExerciseID)
	assert.Equal(t, record.Title, records[0].Title)
	assert.False(t, records[0].CompletedAt.IsZero())

	other, err := store.GetCompletedExercises(ctx, "user-2")
	require.NoError(t, err)
	assert.Empty(t, other)
}
