package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// CachedExercise wraps a generated exercise set for storage in the shared
// cache. The wrapper carries its own identity, assigned at cache-write time;
// it is always distinct from the wrapped set's id. Completion filtering must
// compare against Data.SetID(), never the wrapper id, because a learner's
// completion record references the inner set identity, not the cache slot.
type CachedExercise struct {
	ID           string       `json:"id"`
	ExerciseType ExerciseType `json:"exerciseType"`
	CefrLevel    CefrLevel    `json:"cefrLevel"`
	Theme        *string      `json:"theme"`
	Data         ExerciseSet  `json:"data"`
	CreatedAt    time.Time    `json:"createdAt"`
}

// NewCachedExercise wraps a freshly validated exercise set with a new
// wrapper identity. Cache entries are immutable once written.
func NewCachedExercise(
	exerciseType ExerciseType,
	cefrLevel CefrLevel,
	theme *string,
	data ExerciseSet,
) CachedExercise {
	return CachedExercise{
		ID:           uuid.New().String(),
		ExerciseType: exerciseType,
		CefrLevel:    cefrLevel,
		Theme:        theme,
		Data:         data,
		CreatedAt:    time.Now().UTC(),
	}
}

// DecodeExerciseSet decodes raw JSON into the concrete set shape for the
// given kind. Storage backends persist sets as JSON and need the kind
// discriminant to pick the right type back out.
func DecodeExerciseSet(kind SetKind, raw []byte) (ExerciseSet, error) {
	switch kind {
	case SetKindParagraph:
		var set ParagraphExerciseSet
		if err := json.Unmarshal(raw, &set); err != nil {
			return nil, fmt.Errorf("decoding paragraph exercise set: %w", err)
		}
		set.Type = SetKindParagraph
		return &set, nil
	case SetKindSentence:
		var set SentenceExerciseSet
		if err := json.Unmarshal(raw, &set); err != nil {
			return nil, fmt.Errorf("decoding sentence exercise set: %w", err)
		}
		set.Type = SetKindSentence
		return &set, nil
	default:
		return nil, fmt.Errorf("unknown exercise set kind %q", kind)
	}
}
