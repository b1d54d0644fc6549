package checker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mhorvat/vjezbajmo-api/internal/domain"
)

func TestCheck(t *testing.T) {
	accepted := domain.AnswerSet{"želim", "hoću"}

	tests := []struct {
		name        string
		submitted   string
		wantCorrect bool
		wantWarning bool
		wantMatched string
	}{
		{name: "exact match", submitted: "želim", wantCorrect: true, wantMatched: "želim"},
		{name: "second variant", submitted: "hoću", wantCorrect: true, wantMatched: "hoću"},
		{name: "case insensitive", submitted: "Želim", wantCorrect: true, wantMatched: "želim"},
		{name: "surrounding whitespace", submitted: "  želim ", wantCorrect: true, wantMatched: "želim"},
		{name: "missing diacritics", submitted: "zelim", wantCorrect: true, wantWarning: true, wantMatched: "želim"},
		{name: "missing diacritics variant", submitted: "hocu", wantCorrect: true, wantWarning: true, wantMatched: "hoću"},
		{name: "wrong answer", submitted: "moram"},
		{name: "empty submission", submitted: ""},
		{name: "whitespace only", submitted: "   "},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Check(tc.submitted, accepted, "Volitive verbs take the present tense.")

			assert.Equal(t, tc.wantCorrect, got.Correct)
			assert.Equal(t, tc.wantWarning, got.DiacriticWarning)
			assert.Equal(t, tc.wantMatched, got.MatchedAnswer)
			assert.Equal(t, accepted, got.CorrectAnswer)
			assert.NotEmpty(t, got.Explanation)
		})
	}
}

func TestCheck_StrokedD(t *testing.T) {
	got := Check("dak", domain.AnswerSet{"đak"}, "Vocabulary.")

	assert.True(t, got.Correct)
	assert.True(t, got.DiacriticWarning)
	assert.Equal(t, "đak", got.MatchedAnswer)
}

func TestCheck_MultiWordAnswer(t *testing.T) {
	accepted := domain.AnswerSet{"sam išao", "išao sam"}

	got := Check("isao  sam", accepted, "Both clitic orders are acceptable.")

	assert.True(t, got.Correct)
	assert.True(t, got.DiacriticWarning)
	assert.Equal(t, "išao sam", got.MatchedAnswer)
}

func TestQuestionAnswer(t *testing.T) {
	paragraph := &domain.ParagraphExerciseSet{
		Questions: []domain.ParagraphQuestion{
			{ID: "q-1", CorrectAnswer: domain.AnswerSet{"pijem"}, Explanation: "Present tense, first person."},
		},
	}

	answers, explanation, err := QuestionAnswer(paragraph, "q-1")
	require.NoError(t, err)
	assert.Equal(t, domain.AnswerSet{"pijem"}, answers)
	assert.Equal(t, "Present tense, first person.", explanation)

	_, _, err = QuestionAnswer(paragraph, "q-2")
	assert.ErrorIs(t, err, domain.ErrExerciseNotFound)

	sentences := &domain.SentenceExerciseSet{
		Exercises: []domain.SentenceExercise{
			{ID: "e-1", CorrectAnswer: domain.AnswerSet{"koji"}, Explanation: "Masculine nominative."},
		},
	}

	answers, _, err = QuestionAnswer(sentences, "e-1")
	require.NoError(t, err)
	assert.Equal(t, domain.AnswerSet{"koji"}, answers)
}
