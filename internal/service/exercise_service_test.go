package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mhorvat/vjezbajmo-api/internal/cache"
	"github.com/mhorvat/vjezbajmo-api/internal/domain"
	"github.com/mhorvat/vjezbajmo-api/internal/generation"
	"github.com/mhorvat/vjezbajmo-api/internal/prompt"
	"github.com/mhorvat/vjezbajmo-api/internal/validation"
	"github.com/mhorvat/vjezbajmo-api/internal/worksheets"
)

const validParagraphResponse = `{
	"paragraph": "Svaki dan ___1___ (ustajati) u sedam sati. Zatim ___2___ (piti) kavu i ___3___ (čitati) novine prije posla.",
	"questions": [
		{"blankNumber": 1, "baseForm": "ustajati", "correctAnswer": ["ustajem"], "explanation": "First person singular present tense.", "isPlural": false},
		{"blankNumber": 2, "baseForm": "piti", "correctAnswer": "pijem", "explanation": "First person singular present tense.", "isPlural": false},
		{"blankNumber": 3, "baseForm": "čitati", "correctAnswer": ["čitam"], "explanation": "First person singular present tense.", "isPlural": false}
	]
}`

const validAspectResponse = `{
	"exercises": [
		{"exerciseSubType": "verb-aspect", "text": "Svaki dan ___ kavu u istom kafiću.", "correctAnswer": ["pijem"], "explanation": "Habitual action takes the imperfective.", "options": {"imperfective": "pijem", "perfective": "popijem"}, "correctAspect": "imperfective"},
		{"exerciseSubType": "verb-aspect", "text": "Jučer sam konačno ___ cijelu knjigu.", "correctAnswer": ["pročitao", "pročitala"], "explanation": "Completed action takes the perfective.", "options": {"imperfective": "čitao", "perfective": "pročitao"}, "correctAspect": "perfective"},
		{"exerciseSubType": "verb-aspect", "text": "Dok je ___, zazvonio je telefon.", "correctAnswer": ["kuhala"], "explanation": "Ongoing background action takes the imperfective.", "options": {"imperfective": "kuhala", "perfective": "skuhala"}, "correctAspect": "imperfective"}
	]
}`

// stubProvider records calls and returns a canned response.
type stubProvider struct {
	name     string
	response string
	err      error

	calls      int
	lastAPIKey string
	lastUser   string
}

func (p *stubProvider) Name() string { return p.name }

func (p *stubProvider) GenerateRaw(
	_ context.Context,
	prompts prompt.Prompts,
	_ domain.ExerciseType,
	apiKey string,
) (string, error) {
	p.calls++
	p.lastAPIKey = apiKey
	p.lastUser = prompts.User
	if p.err != nil {
		return "", p.err
	}
	return p.response, nil
}

type serviceFixture struct {
	store    *cache.MemoryStore
	provider *stubProvider
	svc      ExerciseService
}

func newFixture(t *testing.T, provider *stubProvider, creds generation.Credentials) *serviceFixture {
	t.Helper()

	store := cache.NewMemoryStore()
	registry := generation.NewRegistry()
	registry.Register(provider)

	bank, err := worksheets.NewRotator()
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc, err := NewExerciseService(ExerciseServiceConfig{
		Store:           store,
		Registry:        registry,
		Prompts:         prompt.NewBuilder(bank),
		Credentials:     creds,
		DefaultProvider: provider.name,
	}, logger)
	require.NoError(t, err)

	return &serviceFixture{store: store, provider: provider, svc: svc}
}

func testCreds() generation.Credentials {
	return generation.Credentials{
		PerProvider: map[string]string{
			generation.ProviderOpenAI:    "sk-test-openai",
			generation.ProviderAnthropic: "sk-test-anthropic",
		},
	}
}

func TestAcquireExercise_ServesCachedEntry(t *testing.T) {
	provider := &stubProvider{name: generation.ProviderOpenAI, response: validParagraphResponse}
	f := newFixture(t, provider, testCreds())
	ctx := context.Background()

	cached, err := validation.Validate(validParagraphResponse, domain.ExerciseTypeVerbTenses)
	require.NoError(t, err)

	key := cache.Key(domain.ExerciseTypeVerbTenses, domain.CefrLevelA22, nil)
	entry := domain.NewCachedExercise(domain.ExerciseTypeVerbTenses, domain.CefrLevelA22, nil, cached)
	require.NoError(t, f.store.SetCachedExercise(ctx, key, entry))

	got, err := f.svc.AcquireExercise(ctx, AcquireRequest{
		ExerciseType: domain.ExerciseTypeVerbTenses,
		CefrLevel:    domain.CefrLevelA22,
	})
	require.NoError(t, err)

	assert.Equal(t, cached.SetID(), got.SetID())
	assert.Zero(t, provider.calls, "provider must not be invoked when a cached entry is available")
}

func TestAcquireExercise_GeneratesWhenAllCompleted(t *testing.T) {
	provider := &stubProvider{name: generation.ProviderOpenAI, response: validParagraphResponse}
	f := newFixture(t, provider, testCreds())
	ctx := context.Background()

	cached, err := validation.Validate(validParagraphResponse, domain.ExerciseTypeVerbTenses)
	require.NoError(t, err)

	key := cache.Key(domain.ExerciseTypeVerbTenses, domain.CefrLevelA22, nil)
	entry := domain.NewCachedExercise(domain.ExerciseTypeVerbTenses, domain.CefrLevelA22, nil, cached)
	require.NoError(t, f.store.SetCachedExercise(ctx, key, entry))

	got, err := f.svc.AcquireExercise(ctx, AcquireRequest{
		ExerciseType: domain.ExerciseTypeVerbTenses,
		CefrLevel:    domain.CefrLevelA22,
		CompletedIDs: []string{cached.SetID()},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, provider.calls)
	assert.NotEqual(t, cached.SetID(), got.SetID(), "generated set must carry a fresh identity")

	entries, err := f.store.GetCachedExercises(ctx, key)
	require.NoError(t, err)
	assert.Len(t, entries, 2, "generated set must be appended to the cache")
}

func TestAcquireExercise_ForceRegenerateBypassesCache(t *testing.T) {
	provider := &stubProvider{name: generation.ProviderOpenAI, response: validParagraphResponse}
	f := newFixture(t, provider, testCreds())
	ctx := context.Background()

	cached, err := validation.Validate(validParagraphResponse, domain.ExerciseTypeVerbTenses)
	require.NoError(t, err)

	key := cache.Key(domain.ExerciseTypeVerbTenses, domain.CefrLevelA22, nil)
	entry := domain.NewCachedExercise(domain.ExerciseTypeVerbTenses, domain.CefrLevelA22, nil, cached)
	require.NoError(t, f.store.SetCachedExercise(ctx, key, entry))

	_, err = f.svc.AcquireExercise(ctx, AcquireRequest{
		ExerciseType:    domain.ExerciseTypeVerbTenses,
		CefrLevel:       domain.CefrLevelA22,
		ForceRegenerate: true,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, provider.calls, "force regenerate must skip the cache lookup")
}

func TestAcquireExercise_MissingCredential(t *testing.T) {
	provider := &stubProvider{name: generation.ProviderOpenAI, response: validParagraphResponse}
	f := newFixture(t, provider, generation.Credentials{})

	_, err := f.svc.AcquireExercise(context.Background(), AcquireRequest{
		ExerciseType: domain.ExerciseTypeVerbTenses,
		CefrLevel:    domain.CefrLevelA22,
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, generation.ErrMissingCredential)
	assert.NotErrorIs(t, err, generation.ErrGenerationFailed,
		"a missing credential is a client error, not a generation failure")
	assert.Zero(t, provider.calls)
}

func TestAcquireExercise_RequestKeyTakesPrecedence(t *testing.T) {
	provider := &stubProvider{name: generation.ProviderOpenAI, response: validParagraphResponse}
	f := newFixture(t, provider, testCreds())

	_, err := f.svc.AcquireExercise(context.Background(), AcquireRequest{
		ExerciseType: domain.ExerciseTypeVerbTenses,
		CefrLevel:    domain.CefrLevelA22,
		APIKey:       "sk-from-request",
	})
	require.NoError(t, err)

	assert.Equal(t, "sk-from-request", provider.lastAPIKey)
}

func TestAcquireExercise_ProviderFailure(t *testing.T) {
	provider := &stubProvider{name: generation.ProviderOpenAI, err: errors.New("rate limited")}
	f := newFixture(t, provider, testCreds())
	ctx := context.Background()

	_, err := f.svc.AcquireExercise(ctx, AcquireRequest{
		ExerciseType: domain.ExerciseTypeVerbTenses,
		CefrLevel:    domain.CefrLevelA22,
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, generation.ErrGenerationFailed)

	key := cache.Key(domain.ExerciseTypeVerbTenses, domain.CefrLevelA22, nil)
	entries, storeErr := f.store.GetCachedExercises(ctx, key)
	require.NoError(t, storeErr)
	assert.Empty(t, entries, "nothing may be cached on a failed generation")
}

func TestAcquireExercise_InvalidProviderOutput(t *testing.T) {
	provider := &stubProvider{name: generation.ProviderOpenAI, response: "Sorry, I cannot help with that."}
	f := newFixture(t, provider, testCreds())
	ctx := context.Background()

	_, err := f.svc.AcquireExercise(ctx, AcquireRequest{
		ExerciseType: domain.ExerciseTypeVerbTenses,
		CefrLevel:    domain.CefrLevelA22,
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, generation.ErrGenerationFailed)
	assert.ErrorIs(t, err, validation.ErrInvalidJSON)

	key := cache.Key(domain.ExerciseTypeVerbTenses, domain.CefrLevelA22, nil)
	entries, storeErr := f.store.GetCachedExercises(ctx, key)
	require.NoError(t, storeErr)
	assert.Empty(t, entries, "nothing may be cached on a failed validation")
}

func TestAcquireExercise_UnknownProvider(t *testing.T) {
	provider := &stubProvider{name: generation.ProviderOpenAI, response: validParagraphResponse}
	f := newFixture(t, provider, testCreds())

	_, err := f.svc.AcquireExercise(context.Background(), AcquireRequest{
		ExerciseType: domain.ExerciseTypeVerbTenses,
		CefrLevel:    domain.CefrLevelA22,
		Provider:     "mistral",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, generation.ErrUnknownProvider)
}

func TestAcquireExercise_VerbAspectRoundTrip(t *testing.T) {
	provider := &stubProvider{name: generation.ProviderAnthropic, response: validAspectResponse}
	f := newFixture(t, provider, testCreds())
	ctx := context.Background()

	got, err := f.svc.AcquireExercise(ctx, AcquireRequest{
		ExerciseType: domain.ExerciseTypeVerbAspect,
		CefrLevel:    domain.CefrLevelA22,
		Provider:     generation.ProviderAnthropic,
	})
	require.NoError(t, err)

	set, ok := got.(*domain.SentenceExerciseSet)
	require.True(t, ok)
	require.Len(t, set.Exercises, 3)
	for _, ex := range set.Exercises {
		assert.Equal(t, domain.SubtypeVerbAspect, ex.Subtype)
		assert.NotEmpty(t, ex.ID)
		require.NotNil(t, ex.Options)
		assert.NotEmpty(t, ex.CorrectAspect)
	}
	assert.Equal(t, "sk-test-anthropic", provider.lastAPIKey)
}

func TestAcquireExercise_ThemePartitionsCache(t *testing.T) {
	provider := &stubProvider{name: generation.ProviderOpenAI, response: validParagraphResponse}
	f := newFixture(t, provider, testCreds())
	ctx := context.Background()

	cached, err := validation.Validate(validParagraphResponse, domain.ExerciseTypeVerbTenses)
	require.NoError(t, err)

	key := cache.Key(domain.ExerciseTypeVerbTenses, domain.CefrLevelA22, nil)
	entry := domain.NewCachedExercise(domain.ExerciseTypeVerbTenses, domain.CefrLevelA22, nil, cached)
	require.NoError(t, f.store.SetCachedExercise(ctx, key, entry))

	theme := "putovanja"
	_, err = f.svc.AcquireExercise(ctx, AcquireRequest{
		ExerciseType: domain.ExerciseTypeVerbTenses,
		CefrLevel:    domain.CefrLevelA22,
		Theme:        &theme,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, provider.calls, "a themed request must not hit the default-theme cache slot")
	assert.Contains(t, provider.lastUser, "putovanja")
}

func TestGetExerciseByID(t *testing.T) {
	provider := &stubProvider{name: generation.ProviderOpenAI, response: validParagraphResponse}
	f := newFixture(t, provider, testCreds())
	ctx := context.Background()

	got, err := f.svc.AcquireExercise(ctx, AcquireRequest{
		ExerciseType: domain.ExerciseTypeVerbTenses,
		CefrLevel:    domain.CefrLevelA22,
	})
	require.NoError(t, err)

	entry, err := f.svc.GetExerciseByID(ctx, got.SetID())
	require.NoError(t, err)
	assert.Equal(t, got.SetID(), entry.Data.SetID())
	assert.Equal(t, domain.ExerciseTypeVerbTenses, entry.ExerciseType)

	_, err = f.svc.GetExerciseByID(ctx, "no-such-id")
	assert.ErrorIs(t, err, domain.ErrExerciseNotFound)
}
