package domain

import "time"

// CompletionRecord is a learner's record of having finished a specific
// exercise set. The record is owned by the external progress collaborator
// and consumed read-only here. ExerciseID always refers to the set's own
// identity (Data.SetID() of a cached entry), not the cache wrapper id.
type CompletionRecord struct {
	ExerciseID    string       `json:"exerciseId"`
	ExerciseType  ExerciseType `json:"exerciseType"`
	CefrLevel     CefrLevel    `json:"cefrLevel"`
	Theme         *string      `json:"theme,omitempty"`
	CompletedAt   time.Time    `json:"completedAt"`
	Score         *float64     `json:"score,omitempty"`
	AttemptNumber int          `json:"attemptNumber"`
	Title         string       `json:"title,omitempty"`
}
