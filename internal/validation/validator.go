package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mhorvat/vjezbajmo-api/internal/domain"
)

// Schema bounds, shared by both set shapes.
const (
	minParagraphLen   = 50
	maxParagraphLen   = 2000
	minItems          = 3
	maxItems          = 15
	maxBlankNumber    = 50
	maxBaseFormLen    = 100
	minAnswerLen      = 1
	maxAnswerLen      = 100
	maxAnswerVariants = 10
	minExplanationLen = 10
	maxExplanationLen = 500
	minSentenceLen    = 10
	maxSentenceLen    = 300
)

// Validate parses rawText and checks it against the schema for the given
// exercise type. On success it returns the canonical exercise set with all
// identities freshly assigned; model-supplied ids are discarded. Returns
// ErrInvalidJSON for unparsable text and a *SchemaError (matching
// ErrSchemaViolation) for well-formed JSON of the wrong shape.
func Validate(rawText string, exerciseType domain.ExerciseType) (domain.ExerciseSet, error) {
	payload := stripCodeFence(rawText)
	if !json.Valid([]byte(payload)) {
		return nil, fmt.Errorf("%w: %.80s", ErrInvalidJSON, strings.TrimSpace(rawText))
	}

	if domain.KindFor(exerciseType) == domain.SetKindParagraph {
		return validateParagraph(payload)
	}
	return validateSentence(payload, exerciseType)
}

// stripCodeFence removes a surrounding markdown code fence when a model
// wraps its JSON despite the JSON-only instruction.
func stripCodeFence(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}

type rawParagraphSet struct {
	Paragraph *string       `json:"paragraph"`
	Questions []rawQuestion `json:"questions"`
}

type rawQuestion struct {
	BlankNumber   *int            `json:"blankNumber"`
	BaseForm      *string         `json:"baseForm"`
	CorrectAnswer json.RawMessage `json:"correctAnswer"`
	Explanation   *string         `json:"explanation"`
	IsPlural      *bool           `json:"isPlural"`
}

func validateParagraph(payload string) (domain.ExerciseSet, error) {
	var raw rawParagraphSet
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		return nil, schemaErrorFromDecode(err)
	}

	var violations []Violation

	switch {
	case raw.Paragraph == nil:
		violations = append(violations, Violation{Path: "paragraph", Message: "required"})
	case runeLen(*raw.Paragraph) < minParagraphLen || runeLen(*raw.Paragraph) > maxParagraphLen:
		violations = append(violations, Violation{
			Path:    "paragraph",
			Message: fmt.Sprintf("length must be between %d and %d characters", minParagraphLen, maxParagraphLen),
		})
	}

	if len(raw.Questions) < minItems || len(raw.Questions) > maxItems {
		violations = append(violations, Violation{
			Path:    "questions",
			Message: fmt.Sprintf("must contain between %d and %d items", minItems, maxItems),
		})
	}

	questions := make([]domain.ParagraphQuestion, 0, len(raw.Questions))
	for i, q := range raw.Questions {
		path := fmt.Sprintf("questions[%d]", i)
		question := domain.ParagraphQuestion{}

		switch {
		case q.BlankNumber == nil:
			violations = append(violations, Violation{Path: path + ".blankNumber", Message: "required"})
		case *q.BlankNumber < 1 || *q.BlankNumber > maxBlankNumber:
			violations = append(violations, Violation{
				Path:    path + ".blankNumber",
				Message: fmt.Sprintf("must be between 1 and %d", maxBlankNumber),
			})
		default:
			question.BlankNumber = *q.BlankNumber
		}

		switch {
		case q.BaseForm == nil:
			violations = append(violations, Violation{Path: path + ".baseForm", Message: "required"})
		case runeLen(*q.BaseForm) < 1 || runeLen(*q.BaseForm) > maxBaseFormLen:
			violations = append(violations, Violation{
				Path:    path + ".baseForm",
				Message: fmt.Sprintf("length must be between 1 and %d characters", maxBaseFormLen),
			})
		default:
			question.BaseForm = *q.BaseForm
		}

		question.CorrectAnswer = validateAnswer(q.CorrectAnswer, path+".correctAnswer", &violations)
		question.Explanation = validateExplanation(q.Explanation, path+".explanation", &violations)
		if q.IsPlural != nil {
			question.IsPlural = *q.IsPlural
		}

		questions = append(questions, question)
	}

	if len(violations) > 0 {
		return nil, &SchemaError{Violations: violations}
	}

	set := &domain.ParagraphExerciseSet{
		Type:      domain.SetKindParagraph,
		Paragraph: *raw.Paragraph,
		Questions: questions,
	}
	set.AssignIdentities()
	return set, nil
}

type rawSentenceSet struct {
	Exercises []rawSentenceExercise `json:"exercises"`
}

type rawSentenceExercise struct {
	Subtype       *string         `json:"exerciseSubType"`
	Text          *string         `json:"text"`
	CorrectAnswer json.RawMessage `json:"correctAnswer"`
	Explanation   *string         `json:"explanation"`
	IsPlural      *bool           `json:"isPlural"`
	Options       *rawOptions     `json:"options"`
	CorrectAspect *string         `json:"correctAspect"`
}

type rawOptions struct {
	Imperfective *string `json:"imperfective"`
	Perfective   *string `json:"perfective"`
}

func validateSentence(payload string, exerciseType domain.ExerciseType) (domain.ExerciseSet, error) {
	var raw rawSentenceSet
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		return nil, schemaErrorFromDecode(err)
	}

	var violations []Violation

	if len(raw.Exercises) < minItems || len(raw.Exercises) > maxItems {
		violations = append(violations, Violation{
			Path:    "exercises",
			Message: fmt.Sprintf("must contain between %d and %d items", minItems, maxItems),
		})
	}

	requireAspect := exerciseType == domain.ExerciseTypeVerbAspect

	exercises := make([]domain.SentenceExercise, 0, len(raw.Exercises))
	for i, e := range raw.Exercises {
		path := fmt.Sprintf("exercises[%d]", i)
		exercise := domain.SentenceExercise{Subtype: domain.SubtypePlain}

		switch {
		case e.Text == nil:
			violations = append(violations, Violation{Path: path + ".text", Message: "required"})
		case runeLen(*e.Text) < minSentenceLen || runeLen(*e.Text) > maxSentenceLen:
			violations = append(violations, Violation{
				Path:    path + ".text",
				Message: fmt.Sprintf("length must be between %d and %d characters", minSentenceLen, maxSentenceLen),
			})
		default:
			exercise.Text = *e.Text
		}

		exercise.CorrectAnswer = validateAnswer(e.CorrectAnswer, path+".correctAnswer", &violations)
		exercise.Explanation = validateExplanation(e.Explanation, path+".explanation", &violations)
		if e.IsPlural != nil {
			exercise.IsPlural = *e.IsPlural
		}

		// The verb-aspect refinement of the sentence schema: the base
		// envelope is shared, only these fields are additionally required.
		if requireAspect {
			if e.Subtype == nil || *e.Subtype != string(domain.SubtypeVerbAspect) {
				violations = append(violations, Violation{
					Path:    path + ".exerciseSubType",
					Message: `must be the literal "verb-aspect"`,
				})
			} else {
				exercise.Subtype = domain.SubtypeVerbAspect
			}

			switch {
			case e.Options == nil:
				violations = append(violations, Violation{Path: path + ".options", Message: "required"})
			default:
				opts := domain.AspectOptions{}
				if e.Options.Imperfective == nil || *e.Options.Imperfective == "" {
					violations = append(violations, Violation{Path: path + ".options.imperfective", Message: "required"})
				} else {
					opts.Imperfective = *e.Options.Imperfective
				}
				if e.Options.Perfective == nil || *e.Options.Perfective == "" {
					violations = append(violations, Violation{Path: path + ".options.perfective", Message: "required"})
				} else {
					opts.Perfective = *e.Options.Perfective
				}
				exercise.Options = &opts
			}

			switch {
			case e.CorrectAspect == nil:
				violations = append(violations, Violation{Path: path + ".correctAspect", Message: "required"})
			case *e.CorrectAspect != string(domain.AspectImperfective) && *e.CorrectAspect != string(domain.AspectPerfective):
				violations = append(violations, Violation{
					Path:    path + ".correctAspect",
					Message: `must be "imperfective" or "perfective"`,
				})
			default:
				exercise.CorrectAspect = domain.Aspect(*e.CorrectAspect)
			}
		}

		exercises = append(exercises, exercise)
	}

	if len(violations) > 0 {
		return nil, &SchemaError{Violations: violations}
	}

	set := &domain.SentenceExerciseSet{
		Type:      domain.SetKindSentence,
		Exercises: exercises,
	}
	set.AssignIdentities()
	return set, nil
}

// validateAnswer checks the string-or-array union for a correctAnswer value
// and returns the normalized answer set.
func validateAnswer(raw json.RawMessage, path string, violations *[]Violation) domain.AnswerSet {
	if len(raw) == 0 {
		*violations = append(*violations, Violation{Path: path, Message: "required"})
		return nil
	}

	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		if runeLen(single) < minAnswerLen || runeLen(single) > maxAnswerLen {
			*violations = append(*violations, Violation{
				Path:    path,
				Message: fmt.Sprintf("answer length must be between %d and %d characters", minAnswerLen, maxAnswerLen),
			})
			return nil
		}
		return domain.AnswerSet{single}
	}

	var many []string
	if err := json.Unmarshal(raw, &many); err != nil {
		*violations = append(*violations, Violation{Path: path, Message: "must be a string or an array of strings"})
		return nil
	}
	if len(many) < 1 || len(many) > maxAnswerVariants {
		*violations = append(*violations, Violation{
			Path:    path,
			Message: fmt.Sprintf("must contain between 1 and %d answers", maxAnswerVariants),
		})
		return nil
	}
	for i, v := range many {
		if runeLen(v) < minAnswerLen || runeLen(v) > maxAnswerLen {
			*violations = append(*violations, Violation{
				Path:    fmt.Sprintf("%s[%d]", path, i),
				Message: fmt.Sprintf("answer length must be between %d and %d characters", minAnswerLen, maxAnswerLen),
			})
		}
	}
	return domain.AnswerSet(many)
}

func validateExplanation(s *string, path string, violations *[]Violation) string {
	switch {
	case s == nil:
		*violations = append(*violations, Violation{Path: path, Message: "required"})
		return ""
	case runeLen(*s) < minExplanationLen || runeLen(*s) > maxExplanationLen:
		*violations = append(*violations, Violation{
			Path:    path,
			Message: fmt.Sprintf("length must be between %d and %d characters", minExplanationLen, maxExplanationLen),
		})
		return ""
	}
	return *s
}

// schemaErrorFromDecode converts a decode failure on well-formed JSON
// (wrong top-level shape, wrong field types) into a schema violation.
func schemaErrorFromDecode(err error) error {
	path := "$"
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		path = typeErr.Field
	}
	return &SchemaError{Violations: []Violation{{Path: path, Message: err.Error()}}}
}

func runeLen(s string) int { return utf8.RuneCountInString(s) }
