// Package prompt builds the canonical system/user prompt pair for exercise
// generation. Prompt text is provider-agnostic: every provider adapter is
// handed the same pair.
package prompt

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mhorvat/vjezbajmo-api/internal/domain"
	"github.com/mhorvat/vjezbajmo-api/internal/worksheets"
)

// Prompts is the canonical prompt pair sent to a provider.
type Prompts struct {
	System string
	User   string
}

// ExampleSource supplies a worked example for an exercise type, used to
// calibrate the model's output format. The static worksheet bank implements
// this.
type ExampleSource interface {
	Example(t domain.ExerciseType) *worksheets.Worksheet
}

// builder is the shared capability each per-type strategy implements.
type builder interface {
	buildSystemPrompt(level domain.CefrLevel) string
	buildUserPrompt(level domain.CefrLevel, theme *string, example string) string
}

// Builder produces prompts for every supported exercise type.
type Builder struct {
	examples   ExampleSource
	strategies map[domain.ExerciseType]builder
}

// NewBuilder creates a Builder drawing worked examples from the given source.
func NewBuilder(examples ExampleSource) *Builder {
	return &Builder{
		examples: examples,
		strategies: map[domain.ExerciseType]builder{
			domain.ExerciseTypeVerbTenses:       paragraphBuilder{taskDescription: verbTensesTask},
			domain.ExerciseTypeNounDeclension:   paragraphBuilder{taskDescription: nounDeclensionTask},
			domain.ExerciseTypeVerbAspect:       verbAspectBuilder{},
			domain.ExerciseTypeRelativePronouns: sentenceBuilder{taskDescription: relativePronounsTask},
		},
	}
}

// Build returns the prompt pair for the given exercise type, level and
// optional theme. An absent theme yields an unconstrained topic.
func (b *Builder) Build(t domain.ExerciseType, level domain.CefrLevel, theme *string) (Prompts, error) {
	strategy, ok := b.strategies[t]
	if !ok {
		return Prompts{}, fmt.Errorf("%w: %q", domain.ErrUnknownExerciseType, t)
	}

	example := ""
	if ws := b.examples.Example(t); ws != nil {
		raw, err := json.MarshalIndent(ws.Set(), "", "  ")
		if err != nil {
			return Prompts{}, fmt.Errorf("marshalling worked example: %w", err)
		}
		example = string(raw)
	}

	return Prompts{
		System: strategy.buildSystemPrompt(level),
		User:   strategy.buildUserPrompt(level, theme, example),
	}, nil
}

func systemPrompt(level domain.CefrLevel) string {
	return fmt.Sprintf(
		"You are an experienced Croatian language teacher creating exercises for %s students. "+
			"You write natural, everyday Croatian appropriate for that level, and you respond "+
			"with a single JSON object only, no prose and no markdown fences.",
		level,
	)
}

// answerArrayInstruction tells the model to enumerate every acceptable
// surface form. Croatian morphology legitimately admits several correct
// answers for one blank (gender agreement, clitic order, case variants),
// so a single string would mark valid learner answers wrong.
const answerArrayInstruction = `For every blank, "correctAnswer" must be a JSON array listing ALL grammatically acceptable surface forms (for example both participle genders and both clitic orders of the perfekt), not just one.`

const verbTensesTask = `Create a Croatian verb-tense fill-in-the-blanks exercise: one connected paragraph of natural everyday Croatian containing numbered blank markers like ___1___, each followed by the verb's infinitive in parentheses. Produce between 5 and 8 blanks mixing present, perfekt and futur I as appropriate for the level.`

const nounDeclensionTask = `Create a Croatian noun and adjective declension fill-in-the-blanks exercise: one connected paragraph of natural everyday Croatian containing numbered blank markers like ___1___, each followed by the noun phrase's nominative base form in parentheses. Produce between 5 and 8 blanks covering a range of cases. Set "isPlural" to true on blanks whose answer is a plural form.`

const relativePronounsTask = `Create a Croatian relative and interrogative pronoun exercise: standalone sentences, each containing exactly one blank marker ___ to be filled with the correct form of koji/koja/koje, čiji, tko, što or kakav. Produce between 5 and 8 sentences.`

type paragraphBuilder struct {
	taskDescription string
}

func (p paragraphBuilder) buildSystemPrompt(level domain.CefrLevel) string {
	return systemPrompt(level)
}

func (p paragraphBuilder) buildUserPrompt(level domain.CefrLevel, theme *string, example string) string {
	var b strings.Builder
	b.WriteString(p.taskDescription)
	b.WriteString("\n\nReturn a JSON object with exactly these fields:\n")
	b.WriteString(`{"paragraph": "...", "questions": [{"blankNumber": 1, "baseForm": "...", "correctAnswer": ["..."], "explanation": "...", "isPlural": false}]}`)
	b.WriteString("\n\n")
	b.WriteString(answerArrayInstruction)
	b.WriteString("\nEach explanation is a short English sentence naming the grammatical reason for the answer.")
	writeExample(&b, example)
	writeTheme(&b, theme)
	return b.String()
}

type sentenceBuilder struct {
	taskDescription string
}

func (s sentenceBuilder) buildSystemPrompt(level domain.CefrLevel) string {
	return systemPrompt(level)
}

func (s sentenceBuilder) buildUserPrompt(level domain.CefrLevel, theme *string, example string) string {
	var b strings.Builder
	b.WriteString(s.taskDescription)
	b.WriteString("\n\nReturn a JSON object with exactly these fields:\n")
	b.WriteString(`{"exercises": [{"text": "... ___ ...", "correctAnswer": ["..."], "explanation": "..."}]}`)
	b.WriteString("\n\n")
	b.WriteString(answerArrayInstruction)
	b.WriteString("\nEach explanation is a short English sentence naming the grammatical reason for the answer.")
	writeExample(&b, example)
	writeTheme(&b, theme)
	return b.String()
}

type verbAspectBuilder struct{}

func (v verbAspectBuilder) buildSystemPrompt(level domain.CefrLevel) string {
	return systemPrompt(level)
}

func (v verbAspectBuilder) buildUserPrompt(level domain.CefrLevel, theme *string, example string) string {
	var b strings.Builder
	b.WriteString(`Create a Croatian verb-aspect exercise: standalone sentences, each containing exactly one blank marker ___ where the learner chooses between the imperfective and the perfective form of the same verb. Produce between 5 and 8 sentences with clear aspectual context (habitual or ongoing vs. completed).`)
	b.WriteString("\n\nReturn a JSON object with exactly these fields:\n")
	b.WriteString(`{"exercises": [{"exerciseSubType": "verb-aspect", "text": "... ___ ...", "correctAnswer": ["..."], "explanation": "...", "options": {"imperfective": "...", "perfective": "..."}, "correctAspect": "imperfective"}]}`)
	b.WriteString("\n\n")
	b.WriteString(`Every exercise must set "exerciseSubType" to "verb-aspect", fill both "options" forms conjugated to fit the sentence, and set "correctAspect" to "imperfective" or "perfective".`)
	b.WriteString("\n")
	b.WriteString(answerArrayInstruction)
	writeExample(&b, example)
	writeTheme(&b, theme)
	return b.String()
}

func writeExample(b *strings.Builder, example string) {
	if example == "" {
		return
	}
	b.WriteString("\n\nHere is a worked example of the expected style and difficulty (do not copy its content):\n")
	b.WriteString(example)
}

func writeTheme(b *strings.Builder, theme *string) {
	if theme == nil || *theme == "" {
		return
	}
	b.WriteString("\n\nThe exercise content must revolve around the theme: ")
	b.WriteString(*theme)
	b.WriteString(".")
}
