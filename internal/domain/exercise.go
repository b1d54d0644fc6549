package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// ExerciseType identifies the grammatical skill an exercise set drills.
type ExerciseType string

const (
	ExerciseTypeVerbTenses       ExerciseType = "verbTenses"
	ExerciseTypeNounDeclension   ExerciseType = "nounDeclension"
	ExerciseTypeVerbAspect       ExerciseType = "verbAspect"
	ExerciseTypeRelativePronouns ExerciseType = "relativePronouns"
)

// Valid reports whether t is one of the known exercise types.
func (t ExerciseType) Valid() bool {
	switch t {
	case ExerciseTypeVerbTenses, ExerciseTypeNounDeclension,
		ExerciseTypeVerbAspect, ExerciseTypeRelativePronouns:
		return true
	}
	return false
}

// CefrLevel is a learner proficiency tier gating exercise difficulty
// and vocabulary.
type CefrLevel string

const (
	CefrLevelA1  CefrLevel = "A1"
	CefrLevelA21 CefrLevel = "A2.1"
	CefrLevelA22 CefrLevel = "A2.2"
	CefrLevelB11 CefrLevel = "B1.1"
)

// Valid reports whether l is one of the supported CEFR levels.
func (l CefrLevel) Valid() bool {
	switch l {
	case CefrLevelA1, CefrLevelA21, CefrLevelA22, CefrLevelB11:
		return true
	}
	return false
}

// SetKind discriminates the two exercise-set shapes. Every ExerciseSet
// carries its kind explicitly so callers never have to probe for the
// presence of a "paragraph" field to tell the shapes apart.
type SetKind string

const (
	SetKindParagraph SetKind = "paragraph"
	SetKindSentence  SetKind = "sentence"
)

// KindFor returns the set kind produced for the given exercise type.
func KindFor(t ExerciseType) SetKind {
	switch t {
	case ExerciseTypeVerbAspect, ExerciseTypeRelativePronouns:
		return SetKindSentence
	default:
		return SetKindParagraph
	}
}

// ExerciseSet is the tagged union over the two set shapes. Concrete
// implementations are ParagraphExerciseSet and SentenceExerciseSet.
type ExerciseSet interface {
	// Kind returns the shape discriminant.
	Kind() SetKind

	// SetID returns the set's own identity. Completion records reference
	// this id, never any cache wrapper id.
	SetID() string
}

// ParagraphExerciseSet is a fill-in-the-blanks exercise over a single
// running paragraph with numbered blank markers.
type ParagraphExerciseSet struct {
	ID        string              `json:"id"`
	Type      SetKind             `json:"kind"`
	Paragraph string              `json:"paragraph"`
	Questions []ParagraphQuestion `json:"questions"`
}

// ParagraphQuestion is one blank within a paragraph exercise.
type ParagraphQuestion struct {
	ID            string    `json:"id"`
	BlankNumber   int       `json:"blankNumber"`
	BaseForm      string    `json:"baseForm"`
	CorrectAnswer AnswerSet `json:"correctAnswer"`
	Explanation   string    `json:"explanation"`
	IsPlural      bool      `json:"isPlural,omitempty"`
}

// Kind implements ExerciseSet.
func (s *ParagraphExerciseSet) Kind() SetKind { return SetKindParagraph }

// SetID implements ExerciseSet.
func (s *ParagraphExerciseSet) SetID() string { return s.ID }

// AssignIdentities discards any existing identifiers and replaces them with
// freshly generated ones for the set and every question. Model-supplied ids
// are never trusted: they are not guaranteed unique across calls, or even
// within a single response.
func (s *ParagraphExerciseSet) AssignIdentities() {
	s.ID = uuid.New().String()
	for i := range s.Questions {
		s.Questions[i].ID = uuid.New().String()
	}
}

// ExerciseSubtype discriminates sentence exercises that carry the
// verb-aspect extension from plain ones.
type ExerciseSubtype string

const (
	SubtypePlain      ExerciseSubtype = "plain"
	SubtypeVerbAspect ExerciseSubtype = "verb-aspect"
)

// Aspect is a Croatian verb aspect.
type Aspect string

const (
	AspectImperfective Aspect = "imperfective"
	AspectPerfective   Aspect = "perfective"
)

// AspectOptions holds the two candidate verb forms a learner chooses
// between in a verb-aspect exercise.
type AspectOptions struct {
	Imperfective string `json:"imperfective"`
	Perfective   string `json:"perfective"`
}

// SentenceExerciseSet is a sequence of standalone single-blank sentences.
type SentenceExerciseSet struct {
	ID        string             `json:"id"`
	Type      SetKind            `json:"kind"`
	Exercises []SentenceExercise `json:"exercises"`
}

// SentenceExercise is one sentence with a single blank. Verb-aspect
// exercises additionally carry the candidate aspect pair and the
// correct choice.
type SentenceExercise struct {
	ID            string          `json:"id"`
	Subtype       ExerciseSubtype `json:"exerciseSubType,omitempty"`
	Text          string          `json:"text"`
	CorrectAnswer AnswerSet       `json:"correctAnswer"`
	Explanation   string          `json:"explanation"`
	IsPlural      bool            `json:"isPlural,omitempty"`
	Options       *AspectOptions  `json:"options,omitempty"`
	CorrectAspect Aspect          `json:"correctAspect,omitempty"`
}

// Kind implements ExerciseSet.
func (s *SentenceExerciseSet) Kind() SetKind { return SetKindSentence }

// SetID implements ExerciseSet.
func (s *SentenceExerciseSet) SetID() string { return s.ID }

// AssignIdentities replaces the set id and every exercise id with freshly
// generated identifiers. See ParagraphExerciseSet.AssignIdentities.
func (s *SentenceExerciseSet) AssignIdentities() {
	s.ID = uuid.New().String()
	for i := range s.Exercises {
		s.Exercises[i].ID = uuid.New().String()
	}
}

// ParseExerciseType parses and validates an exercise type string.
func ParseExerciseType(s string) (ExerciseType, error) {
	t := ExerciseType(s)
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownExerciseType, s)
	}
	return t, nil
}

// ParseCefrLevel parses and validates a CEFR level string.
func ParseCefrLevel(s string) (CefrLevel, error) {
	l := CefrLevel(s)
	if !l.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownCefrLevel, s)
	}
	return l, nil
}
