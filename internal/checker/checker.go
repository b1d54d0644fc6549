// Package checker grades a learner's submitted answer against the set of
// acceptable surface forms. Matching is case-insensitive and tolerant of
// missing Croatian diacritics: "zelim" matches "želim", but the result
// carries a warning so the client can nudge the learner toward proper
// spelling.
package checker

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/mhorvat/vjezbajmo-api/internal/domain"
)

// Result is the outcome of grading one blank.
type Result struct {
	Correct          bool             `json:"correct"`
	CorrectAnswer    domain.AnswerSet `json:"correctAnswer"`
	Explanation      string           `json:"explanation"`
	MatchedAnswer    string           `json:"matchedAnswer,omitempty"`
	DiacriticWarning bool             `json:"diacriticWarning,omitempty"`
}

// foldDiacritics strips combining marks after NFD decomposition, which
// covers č, ć, š and ž. Croatian đ is a stroked letter with no combining
// decomposition, so it is mapped separately.
var foldDiacritics = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	runes.Map(func(r rune) rune {
		switch r {
		case 'đ':
			return 'd'
		case 'Đ':
			return 'D'
		}
		return r
	}),
	norm.NFC,
)

func normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

func fold(s string) string {
	out, _, err := transform.String(foldDiacritics, s)
	if err != nil {
		return s
	}
	return out
}

// Check grades a submitted form against the acceptable answers. An exact
// normalized match wins outright; a match that only succeeds after folding
// diacritics is still correct but flagged.
func Check(submitted string, accepted domain.AnswerSet, explanation string) Result {
	result := Result{
		CorrectAnswer: accepted,
		Explanation:   explanation,
	}

	got := normalize(submitted)
	if got == "" {
		return result
	}

	for _, want := range accepted {
		if normalize(want) == got {
			result.Correct = true
			result.MatchedAnswer = want
			return result
		}
	}

	folded := fold(got)
	for _, want := range accepted {
		if fold(normalize(want)) == folded {
			result.Correct = true
			result.MatchedAnswer = want
			result.DiacriticWarning = true
			return result
		}
	}

	return result
}

// QuestionAnswer locates a question inside an exercise set by its id and
// returns its acceptable answers and explanation.
func QuestionAnswer(set domain.ExerciseSet, questionID string) (domain.AnswerSet, string, error) {
	switch s := set.(type) {
	case *domain.ParagraphExerciseSet:
		for _, q := range s.Questions {
			if q.ID == questionID {
				return q.CorrectAnswer, q.Explanation, nil
			}
		}
	case *domain.SentenceExerciseSet:
		for _, e := range s.Exercises {
			if e.ID == questionID {
				return e.CorrectAnswer, e.Explanation, nil
			}
		}
	}
	return nil, "", fmt.Errorf("%w: question %q", domain.ErrExerciseNotFound, questionID)
}
