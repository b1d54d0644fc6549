package domain

import "errors"

// Validation errors shared across the exercise model.
var (
	// ErrUnknownExerciseType is returned when an exercise type string is not
	// one of the supported types.
	ErrUnknownExerciseType = errors.New("unknown exercise type")

	// ErrUnknownCefrLevel is returned when a CEFR level string is not one of
	// the supported levels.
	ErrUnknownCefrLevel = errors.New("unknown CEFR level")

	// ErrExerciseNotFound is returned when no cached exercise matches a
	// requested identifier.
	ErrExerciseNotFound = errors.New("exercise not found")
)
