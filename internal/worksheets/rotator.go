package worksheets

import (
	"embed"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/mhorvat/vjezbajmo-api/internal/domain"
)

//go:embed data/*.json
var bankData embed.FS

// Worksheet is one pre-authored exercise set. Worksheets are long-lived,
// immutable and shared across all learners; their ids are stable across
// process restarts so completion records can reference them.
type Worksheet struct {
	ID           string                     `json:"id"`
	Title        string                     `json:"title"`
	ExerciseType domain.ExerciseType        `json:"exerciseType"`
	CefrLevel    domain.CefrLevel           `json:"cefrLevel"`
	Theme        *string                    `json:"theme,omitempty"`
	Paragraph    string                     `json:"paragraph,omitempty"`
	Questions    []domain.ParagraphQuestion `json:"questions,omitempty"`
	Exercises    []domain.SentenceExercise  `json:"exercises,omitempty"`
}

// Set converts the worksheet into its canonical exercise-set shape.
func (w *Worksheet) Set() domain.ExerciseSet {
	if domain.KindFor(w.ExerciseType) == domain.SetKindParagraph {
		return &domain.ParagraphExerciseSet{
			ID:        w.ID,
			Type:      domain.SetKindParagraph,
			Paragraph: w.Paragraph,
			Questions: w.Questions,
		}
	}
	return &domain.SentenceExerciseSet{
		ID:        w.ID,
		Type:      domain.SetKindSentence,
		Exercises: w.Exercises,
	}
}

// Rotator serves worksheets from the embedded bank in a fixed order,
// skipping the ones a learner has already been served.
type Rotator struct {
	byPool map[string][]Worksheet
}

// NewRotator loads and indexes the embedded worksheet bank.
func NewRotator() (*Rotator, error) {
	files, err := bankData.ReadDir("data")
	if err != nil {
		return nil, fmt.Errorf("reading worksheet bank: %w", err)
	}

	r := &Rotator{byPool: make(map[string][]Worksheet)}
	for _, f := range files {
		raw, err := bankData.ReadFile("data/" + f.Name())
		if err != nil {
			return nil, fmt.Errorf("reading worksheet file %s: %w", f.Name(), err)
		}

		var sheets []Worksheet
		if err := json.Unmarshal(raw, &sheets); err != nil {
			return nil, fmt.Errorf("parsing worksheet file %s: %w", f.Name(), err)
		}

		for _, ws := range sheets {
			if !ws.ExerciseType.Valid() {
				return nil, fmt.Errorf("worksheet %s: %w: %q", ws.ID, domain.ErrUnknownExerciseType, ws.ExerciseType)
			}
			if !ws.CefrLevel.Valid() {
				return nil, fmt.Errorf("worksheet %s: %w: %q", ws.ID, domain.ErrUnknownCefrLevel, ws.CefrLevel)
			}
			pool := poolKey(ws.ExerciseType, ws.CefrLevel, ws.Theme)
			r.byPool[pool] = append(r.byPool[pool], ws)
		}
	}

	// Deterministic serve order within each pool.
	for _, pool := range r.byPool {
		sort.Slice(pool, func(i, j int) bool { return pool[i].ID < pool[j].ID })
	}

	return r, nil
}

func poolKey(t domain.ExerciseType, l domain.CefrLevel, theme *string) string {
	k := string(t) + ":" + string(l)
	if theme != nil && *theme != "" {
		k += ":" + *theme
	}
	return k
}

// Next returns the first worksheet in the pool the learner has not been
// served yet, or nil when the pool is exhausted.
func (r *Rotator) Next(t domain.ExerciseType, l domain.CefrLevel, theme *string, served []string) *Worksheet {
	seen := make(map[string]struct{}, len(served))
	for _, id := range served {
		seen[id] = struct{}{}
	}

	for _, ws := range r.byPool[poolKey(t, l, theme)] {
		if _, done := seen[ws.ID]; !done {
			copied := ws
			return &copied
		}
	}
	return nil
}

// HasRemaining reports whether the pool still holds an unserved worksheet.
// A false result is the signal that generation should be attempted.
func (r *Rotator) HasRemaining(t domain.ExerciseType, l domain.CefrLevel, theme *string, served []string) bool {
	return r.Next(t, l, theme, served) != nil
}

// Example returns a representative worksheet for the exercise type at any
// level, used to calibrate generation prompts with a worked example.
func (r *Rotator) Example(t domain.ExerciseType) *Worksheet {
	var keys []string
	for k := range r.byPool {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		for _, ws := range r.byPool[k] {
			if ws.ExerciseType == t {
				copied := ws
				return &copied
			}
		}
	}
	return nil
}
