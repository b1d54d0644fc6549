package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/mhorvat/vjezbajmo-api/internal/cache"
	"github.com/mhorvat/vjezbajmo-api/internal/config"
	"github.com/mhorvat/vjezbajmo-api/internal/generation"
	"github.com/mhorvat/vjezbajmo-api/internal/platform/anthropic"
	"github.com/mhorvat/vjezbajmo-api/internal/platform/gemini"
	"github.com/mhorvat/vjezbajmo-api/internal/platform/logger"
	"github.com/mhorvat/vjezbajmo-api/internal/platform/openai"
	"github.com/mhorvat/vjezbajmo-api/internal/platform/postgres"
	"github.com/mhorvat/vjezbajmo-api/internal/progress"
	"github.com/mhorvat/vjezbajmo-api/internal/prompt"
	"github.com/mhorvat/vjezbajmo-api/internal/service"
	"github.com/mhorvat/vjezbajmo-api/internal/service/auth"
	"github.com/mhorvat/vjezbajmo-api/internal/worksheets"
)

// application holds the wired dependency graph for the server.
type application struct {
	config *config.Config
	logger *slog.Logger

	db            *sql.DB
	cacheStore    cache.Store
	progressStore progress.Store
	rotator       *worksheets.Rotator
	exercises     service.ExerciseService
	tokens        auth.TokenService
}

// initializeApp loads configuration and wires up application components.
func initializeApp() (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger := logger.Setup(cfg.Server.LogLevel)
	appLogger.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"default_provider", cfg.LLM.DefaultProvider)

	app := &application{
		config: cfg,
		logger: appLogger,
	}

	// Storage backends: postgres when a database is configured, in-memory
	// otherwise.
	if cfg.Database.URL != "" {
		db, err := openDatabase(cfg.Database.URL, appLogger)
		if err != nil {
			return nil, err
		}
		if err := runMigrations(db, appLogger); err != nil {
			_ = db.Close()
			return nil, err
		}
		app.db = db
		app.cacheStore = postgres.NewExerciseStore(db, appLogger)
		app.progressStore = postgres.NewProgressStore(db, appLogger)
		appLogger.Info("Using postgres storage backend")
	} else {
		app.cacheStore = cache.NewMemoryStore()
		app.progressStore = progress.NewMemoryStore()
		appLogger.Info("Using in-memory storage backend")
	}

	app.rotator, err = worksheets.NewRotator()
	if err != nil {
		return nil, fmt.Errorf("failed to load worksheet bank: %w", err)
	}

	registry := generation.NewRegistry()
	registry.Register(openai.New(appLogger, cfg.LLM.OpenAIModel))
	registry.Register(anthropic.New(appLogger, cfg.LLM.AnthropicModel))
	registry.Register(gemini.New(appLogger, cfg.LLM.GeminiModel))

	app.exercises, err = service.NewExerciseService(service.ExerciseServiceConfig{
		Store:    app.cacheStore,
		Registry: registry,
		Prompts:  prompt.NewBuilder(app.rotator),
		Credentials: generation.Credentials{
			PerProvider: map[string]string{
				generation.ProviderOpenAI:    cfg.LLM.OpenAIAPIKey,
				generation.ProviderAnthropic: cfg.LLM.AnthropicAPIKey,
				generation.ProviderGemini:    cfg.LLM.GeminiAPIKey,
			},
			Fallback: cfg.LLM.FallbackAPIKey,
		},
		DefaultProvider: cfg.LLM.DefaultProvider,
	}, appLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to create exercise service: %w", err)
	}

	if cfg.Auth.JWTSecret != "" {
		app.tokens, err = auth.NewTokenService(cfg.Auth.JWTSecret, auth.DefaultTokenLifetime)
		if err != nil {
			return nil, fmt.Errorf("failed to create token service: %w", err)
		}
		appLogger.Info("Session authentication enabled")
	}

	return app, nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}
}
