package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/mhorvat/vjezbajmo-api/internal/domain"
	"github.com/mhorvat/vjezbajmo-api/internal/progress"
)

// ProgressStore implements progress.Store on a completed_exercises table
// keyed by (user_id, exercise_id).
type ProgressStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewProgressStore creates a PostgreSQL implementation of progress.Store.
// The database connection is initialized and managed by the caller.
func NewProgressStore(db *sql.DB, logger *slog.Logger) *ProgressStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ProgressStore{
		db:     db,
		logger: logger.With(slog.String("component", "progress_store")),
	}
}

var _ progress.Store = (*ProgressStore)(nil)

// GetCompletedExercises implements progress.Store.
func (s *ProgressStore) GetCompletedExercises(ctx context.Context, userID string) ([]domain.CompletionRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT exercise_id, exercise_type, cefr_level, theme, completed_at, score, attempt_number, title
		FROM completed_exercises
		WHERE user_id = $1
		ORDER BY completed_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying completed exercises: %w", mapError(err))
	}
	defer func() { _ = rows.Close() }()

	var records []domain.CompletionRecord
	for rows.Next() {
		var (
			record       domain.CompletionRecord
			exerciseType string
			cefrLevel    string
			title        sql.NullString
		)
		err := rows.Scan(&record.ExerciseID, &exerciseType, &cefrLevel, &record.Theme,
			&record.CompletedAt, &record.Score, &record.AttemptNumber, &title)
		if err != nil {
			return nil, fmt.Errorf("scanning completion record: %w", err)
		}
		record.ExerciseType = domain.ExerciseType(exerciseType)
		record.CefrLevel = domain.CefrLevel(cefrLevel)
		record.Title = title.String
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating completion records: %w", err)
	}
	return records, nil
}

// MarkExerciseCompleted implements progress.Store. Re-marking an already
// completed set is a no-op, enforced by the primary key.
func (s *ProgressStore) MarkExerciseCompleted(ctx context.Context, userID string, record domain.CompletionRecord) error {
	if record.CompletedAt.IsZero() {
		record.CompletedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO completed_exercises (user_id, exercise_id, exercise_type, cefr_level, theme, completed_at, score, attempt_number, title)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (user_id, exercise_id) DO NOTHING`,
		userID, record.ExerciseID, string(record.ExerciseType), string(record.CefrLevel),
		record.Theme, record.CompletedAt, record.Score, record.AttemptNumber, record.Title,
	)
	if err != nil {
		return fmt.Errorf("inserting completion record: %w", mapError(err))
	}

	s.logger.DebugContext(ctx, "completion recorded",
		slog.String("user_id", userID),
		slog.String("exercise_id", record.ExerciseID))
	return nil
}
