// Package gemini implements the generation.Provider interface against
// Google's Gemini API. It is registered as a third provider alongside
// openai and anthropic; requests opt into it explicitly.
package gemini

import (
	"context"
	"fmt"
	"log/slog"

	"google.golang.org/genai"

	"github.com/mhorvat/vjezbajmo-api/internal/domain"
	"github.com/mhorvat/vjezbajmo-api/internal/generation"
	"github.com/mhorvat/vjezbajmo-api/internal/prompt"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.0-flash"

// Generator calls the Gemini generate-content endpoint.
type Generator struct {
	logger *slog.Logger
	model  string
}

// New creates a Gemini generator. The API key is supplied per call, so the
// genai client is constructed per request rather than held.
func New(logger *slog.Logger, model string) *Generator {
	if model == "" {
		model = DefaultModel
	}
	return &Generator{
		logger: logger.With(slog.String("component", "gemini_provider")),
		model:  model,
	}
}

// Name implements generation.Provider.
func (g *Generator) Name() string { return generation.ProviderGemini }

// GenerateRaw implements generation.Provider. Gemini enforces a JSON MIME
// type on the response but not the exercise schema itself, so the exercise
// type is ignored here.
func (g *Generator) GenerateRaw(
	ctx context.Context,
	prompts prompt.Prompts,
	_ domain.ExerciseType,
	apiKey string,
) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", fmt.Errorf("%w: gemini: creating client: %v", generation.ErrProviderFailure, err)
	}

	g.logger.DebugContext(ctx, "sending generate content request",
		slog.String("model", g.model))

	resp, err := client.Models.GenerateContent(ctx, g.model,
		genai.Text(prompts.User),
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(prompts.System, genai.RoleUser),
			ResponseMIMEType:  "application/json",
		},
	)
	if err != nil {
		return "", fmt.Errorf("%w: gemini: %v", generation.ErrProviderFailure, err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("%w: gemini", generation.ErrEmptyResponse)
	}

	g.logger.DebugContext(ctx, "generate content response received",
		slog.Int("content_length", len(text)))

	return text, nil
}
