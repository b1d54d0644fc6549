package openai

import (
	"encoding/json"

	"github.com/mhorvat/vjezbajmo-api/internal/domain"
)

// Response schemas for the structured-output mode, keyed by exercise type.
// Strict mode guarantees the shape structurally; free-text fields can still
// be empty or wrong, so the response validator remains the trust boundary.

const answerSchema = `{
	"type": "array",
	"items": {"type": "string"},
	"description": "All grammatically acceptable surface forms for the blank"
}`

var paragraphSchema = json.RawMessage(`{
	"type": "object",
	"properties": {
		"paragraph": {"type": "string"},
		"questions": {
			"type": "array",
			"items": {
				"type": "object",
				"properties": {
					"blankNumber": {"type": "integer"},
					"baseForm": {"type": "string"},
					"correctAnswer": ` + answerSchema + `,
					"explanation": {"type": "string"},
					"isPlural": {"type": "boolean"}
				},
				"required": ["blankNumber", "baseForm", "correctAnswer", "explanation", "isPlural"],
				"additionalProperties": false
			}
		}
	},
	"required": ["paragraph", "questions"],
	"additionalProperties": false
}`)

var sentenceSchema = json.RawMessage(`{
	"type": "object",
	"properties": {
		"exercises": {
			"type": "array",
			"items": {
				"type": "object",
				"properties": {
					"text": {"type": "string"},
					"correctAnswer": ` + answerSchema + `,
					"explanation": {"type": "string"},
					"isPlural": {"type": "boolean"}
				},
				"required": ["text", "correctAnswer", "explanation", "isPlural"],
				"additionalProperties": false
			}
		}
	},
	"required": ["exercises"],
	"additionalProperties": false
}`)

// verbAspectSchema is the sentence schema with the three aspect fields
// added as required on every exercise.
var verbAspectSchema = json.RawMessage(`{
	"type": "object",
	"properties": {
		"exercises": {
			"type": "array",
			"items": {
				"type": "object",
				"properties": {
					"exerciseSubType": {"type": "string", "enum": ["verb-aspect"]},
					"text": {"type": "string"},
					"correctAnswer": ` + answerSchema + `,
					"explanation": {"type": "string"},
					"isPlural": {"type": "boolean"},
					"options": {
						"type": "object",
						"properties": {
							"imperfective": {"type": "string"},
							"perfective": {"type": "string"}
						},
						"required": ["imperfective", "perfective"],
						"additionalProperties": false
					},
					"correctAspect": {"type": "string", "enum": ["imperfective", "perfective"]}
				},
				"required": ["exerciseSubType", "text", "correctAnswer", "explanation", "isPlural", "options", "correctAspect"],
				"additionalProperties": false
			}
		}
	},
	"required": ["exercises"],
	"additionalProperties": false
}`)

// schemaFor returns the schema name and definition for an exercise type.
func schemaFor(t domain.ExerciseType) (string, json.RawMessage) {
	switch t {
	case domain.ExerciseTypeVerbAspect:
		return "verb_aspect_exercise_set", verbAspectSchema
	case domain.ExerciseTypeRelativePronouns:
		return "sentence_exercise_set", sentenceSchema
	default:
		return "paragraph_exercise_set", paragraphSchema
	}
}
