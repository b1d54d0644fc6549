package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/mhorvat/vjezbajmo-api/internal/cache"
	"github.com/mhorvat/vjezbajmo-api/internal/domain"
)

// ExerciseStore implements cache.Store on a cached_exercises table. Rows
// are append-only; entries are never updated or evicted here.
type ExerciseStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewExerciseStore creates a PostgreSQL implementation of cache.Store.
// The database connection is initialized and managed by the caller.
func NewExerciseStore(db *sql.DB, logger *slog.Logger) *ExerciseStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ExerciseStore{
		db:     db,
		logger: logger.With(slog.String("component", "exercise_store")),
	}
}

var _ cache.Store = (*ExerciseStore)(nil)

// GetCachedExercises implements cache.Store. Entries come back in insertion
// order.
func (s *ExerciseStore) GetCachedExercises(ctx context.Context, key string) ([]domain.CachedExercise, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, exercise_type, cefr_level, theme, kind, data, created_at
		FROM cached_exercises
		WHERE cache_key = $1
		ORDER BY created_at, id`, key)
	if err != nil {
		return nil, fmt.Errorf("querying cached exercises: %w", mapError(err))
	}
	defer func() { _ = rows.Close() }()

	var entries []domain.CachedExercise
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating cached exercises: %w", err)
	}
	return entries, nil
}

// SetCachedExercise implements cache.Store. The inner set id is persisted
// in its own column so GetExerciseByID can match either identity without
// probing JSON.
func (s *ExerciseStore) SetCachedExercise(ctx context.Context, key string, entry domain.CachedExercise) error {
	raw, err := json.Marshal(entry.Data)
	if err != nil {
		return fmt.Errorf("encoding exercise set: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO cached_exercises (id, cache_key, set_id, exercise_type, cefr_level, theme, kind, data, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		entry.ID, key, entry.Data.SetID(), string(entry.ExerciseType), string(entry.CefrLevel),
		entry.Theme, string(entry.Data.Kind()), raw, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting cached exercise: %w", mapError(err))
	}

	s.logger.DebugContext(ctx, "cached exercise stored",
		slog.String("cache_key", key),
		slog.String("id", entry.ID))
	return nil
}

// GetExerciseByID implements cache.Store, matching the wrapper id or the
// inner set id.
func (s *ExerciseStore) GetExerciseByID(ctx context.Context, id string) (*domain.CachedExercise, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, exercise_type, cefr_level, theme, kind, data, created_at
		FROM cached_exercises
		WHERE id = $1 OR set_id = $1
		LIMIT 1`, id)

	entry, err := scanEntry(row)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (domain.CachedExercise, error) {
	var (
		entry        domain.CachedExercise
		exerciseType string
		cefrLevel    string
		kind         string
		raw          []byte
	)
	err := row.Scan(&entry.ID, &exerciseType, &cefrLevel, &entry.Theme, &kind, &raw, &entry.CreatedAt)
	if err != nil {
		return domain.CachedExercise{}, fmt.Errorf("scanning cached exercise: %w", mapError(err))
	}

	entry.ExerciseType = domain.ExerciseType(exerciseType)
	entry.CefrLevel = domain.CefrLevel(cefrLevel)

	set, err := domain.DecodeExerciseSet(domain.SetKind(kind), raw)
	if err != nil {
		return domain.CachedExercise{}, fmt.Errorf("decoding cached exercise %s: %w", entry.ID, err)
	}
	entry.Data = set
	return entry, nil
}
