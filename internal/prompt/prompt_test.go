package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mhorvat/vjezbajmo-api/internal/domain"
	"github.com/mhorvat/vjezbajmo-api/internal/worksheets"
)

func newBuilder(t *testing.T) *Builder {
	t.Helper()
	rotator, err := worksheets.NewRotator()
	require.NoError(t, err)
	return NewBuilder(rotator)
}

func TestBuildSystemPromptIsLevelParameterized(t *testing.T) {
	b := newBuilder(t)

	for _, level := range []domain.CefrLevel{domain.CefrLevelA1, domain.CefrLevelB11} {
		p, err := b.Build(domain.ExerciseTypeVerbTenses, level, nil)
		require.NoError(t, err)
		assert.Contains(t, p.System, string(level))
		assert.Contains(t, p.System, "Croatian language teacher")
	}
}

func TestBuildUserPromptDemandsAnswerArrays(t *testing.T) {
	b := newBuilder(t)

	for _, et := range []domain.ExerciseType{
		domain.ExerciseTypeVerbTenses,
		domain.ExerciseTypeNounDeclension,
		domain.ExerciseTypeVerbAspect,
		domain.ExerciseTypeRelativePronouns,
	} {
		p, err := b.Build(et, domain.CefrLevelA22, nil)
		require.NoError(t, err)
		assert.Contains(t, p.User, "ALL grammatically acceptable surface forms", "type %s", et)
	}
}

func TestBuildEmbedsWorkedExample(t *testing.T) {
	b := newBuilder(t)

	p, err := b.Build(domain.ExerciseTypeNounDeclension, domain.CefrLevelA21, nil)
	require.NoError(t, err)
	assert.Contains(t, p.User, "worked example")
	// The A2.1 declension worksheet paragraph should appear verbatim.
	assert.Contains(t, p.User, "Živim u velikom")
}

func TestBuildVerbAspectExtras(t *testing.T) {
	b := newBuilder(t)

	p, err := b.Build(domain.ExerciseTypeVerbAspect, domain.CefrLevelA22, nil)
	require.NoError(t, err)
	assert.Contains(t, p.User, `"exerciseSubType"`)
	assert.Contains(t, p.User, `"correctAspect"`)
	assert.Contains(t, p.User, `"imperfective"`)
	assert.Contains(t, p.User, `"perfective"`)
}

func TestBuildThemeClause(t *testing.T) {
	b := newBuilder(t)

	theme := "putovanja"
	withTheme, err := b.Build(domain.ExerciseTypeVerbTenses, domain.CefrLevelA22, &theme)
	require.NoError(t, err)
	assert.Contains(t, withTheme.User, "putovanja")
	assert.Contains(t, withTheme.User, "theme")

	without, err := b.Build(domain.ExerciseTypeVerbTenses, domain.CefrLevelA22, nil)
	require.NoError(t, err)
	assert.False(t, strings.Contains(without.User, "must revolve around the theme"))
}

func TestBuildUnknownType(t *testing.T) {
	b := newBuilder(t)

	_, err := b.Build(domain.ExerciseType("conjugation"), domain.CefrLevelA1, nil)
	assert.ErrorIs(t, err, domain.ErrUnknownExerciseType)
}
