package service

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/mhorvat/vjezbajmo-api/internal/cache"
	"github.com/mhorvat/vjezbajmo-api/internal/domain"
	"github.com/mhorvat/vjezbajmo-api/internal/generation"
	"github.com/mhorvat/vjezbajmo-api/internal/prompt"
	"github.com/mhorvat/vjezbajmo-api/internal/validation"
)

// AcquireRequest carries everything the engine needs to serve one exercise
// set. ExerciseType and CefrLevel are always present; the rest is optional.
type AcquireRequest struct {
	ExerciseType    domain.ExerciseType
	CefrLevel       domain.CefrLevel
	Provider        string
	APIKey          string
	Theme           *string
	CompletedIDs    []string
	ForceRegenerate bool
}

// ExerciseService is the top-level acquisition contract consumed by the
// HTTP layer.
type ExerciseService interface {
	// AcquireExercise returns a cached set the caller has not completed,
	// or generates, validates, caches and returns a fresh one.
	AcquireExercise(ctx context.Context, req AcquireRequest) (domain.ExerciseSet, error)

	// GetExerciseByID retrieves a previously cached entry by wrapper or
	// set id.
	GetExerciseByID(ctx context.Context, id string) (*domain.CachedExercise, error)
}

// ExerciseServiceConfig holds the engine's dependencies and defaults.
type ExerciseServiceConfig struct {
	Store           cache.Store
	Registry        *generation.Registry
	Prompts         *prompt.Builder
	Credentials     generation.Credentials
	DefaultProvider string
}

type exerciseService struct {
	store           cache.Store
	registry        *generation.Registry
	prompts         *prompt.Builder
	credentials     generation.Credentials
	defaultProvider string
	logger          *slog.Logger

	// pick selects an index from n candidates. Uniform and unseeded in
	// production; injectable so tests can pin the draw.
	pick func(n int) int
}

// NewExerciseService creates the orchestration engine.
func NewExerciseService(cfg ExerciseServiceConfig, logger *slog.Logger) (ExerciseService, error) {
	if cfg.Store == nil {
		return nil, fmt.Errorf("cache store is required")
	}
	if cfg.Registry == nil {
		return nil, fmt.Errorf("provider registry is required")
	}
	if cfg.Prompts == nil {
		return nil, fmt.Errorf("prompt builder is required")
	}

	return &exerciseService{
		store:           cfg.Store,
		registry:        cfg.Registry,
		prompts:         cfg.Prompts,
		credentials:     cfg.Credentials,
		defaultProvider: cfg.DefaultProvider,
		logger:          logger.With(slog.String("component", "exercise_service")),
		pick:            rand.Intn,
	}, nil
}

// AcquireExercise implements ExerciseService.
//
// forceRegenerate bypasses the cache lookup entirely, even when a valid
// cached entry exists for the key: "give me a different exercise" relies on
// the request never short-circuiting through the cache path.
func (s *exerciseService) AcquireExercise(ctx context.Context, req AcquireRequest) (domain.ExerciseSet, error) {
	key := cache.Key(req.ExerciseType, req.CefrLevel, req.Theme)

	if !req.ForceRegenerate {
		entries, err := s.store.GetCachedExercises(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("reading cache for %s: %w", key, err)
		}

		available := cache.FilterCompleted(entries, cache.CompletedSet(req.CompletedIDs))
		if len(available) > 0 {
			// Uniform random pick so multiple cached variants all get
			// served instead of always the first one.
			chosen := available[s.pick(len(available))]
			s.logger.DebugContext(ctx, "serving cached exercise",
				slog.String("key", key),
				slog.String("set_id", chosen.Data.SetID()),
				slog.Int("candidates", len(available)))
			return chosen.Data, nil
		}
	}

	return s.generate(ctx, req, key)
}

// generate runs the full provider round trip: resolve provider and
// credential, build prompts, call the backend, validate the untrusted
// output, wrap and append to the cache. Nothing is written on any failure
// path, and nothing is retried.
func (s *exerciseService) generate(ctx context.Context, req AcquireRequest, key string) (domain.ExerciseSet, error) {
	providerName := req.Provider
	if providerName == "" {
		providerName = s.defaultProvider
	}
	if providerName == "" {
		providerName = generation.ProviderOpenAI
	}

	provider, err := s.registry.Get(providerName)
	if err != nil {
		return nil, err
	}

	apiKey, err := s.credentials.Resolve(providerName, req.APIKey)
	if err != nil {
		return nil, err
	}

	prompts, err := s.prompts.Build(req.ExerciseType, req.CefrLevel, req.Theme)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", generation.ErrGenerationFailed, err)
	}

	s.logger.InfoContext(ctx, "generating exercise set",
		slog.String("key", key),
		slog.String("provider", providerName))

	rawText, err := provider.GenerateRaw(ctx, prompts, req.ExerciseType, apiKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", generation.ErrGenerationFailed, err)
	}

	set, err := validation.Validate(rawText, req.ExerciseType)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", generation.ErrGenerationFailed, err)
	}

	entry := domain.NewCachedExercise(req.ExerciseType, req.CefrLevel, normalizeTheme(req.Theme), set)
	if err := s.store.SetCachedExercise(ctx, key, entry); err != nil {
		return nil, fmt.Errorf("caching generated exercise for %s: %w", key, err)
	}

	s.logger.InfoContext(ctx, "exercise set generated and cached",
		slog.String("key", key),
		slog.String("provider", providerName),
		slog.String("set_id", set.SetID()),
		slog.String("cache_id", entry.ID))

	return set, nil
}

// GetExerciseByID implements ExerciseService.
func (s *exerciseService) GetExerciseByID(ctx context.Context, id string) (*domain.CachedExercise, error) {
	return s.store.GetExerciseByID(ctx, id)
}

func normalizeTheme(theme *string) *string {
	if theme == nil || *theme == "" {
		return nil
	}
	return theme
}
