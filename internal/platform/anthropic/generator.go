// Package anthropic implements the generation.Provider interface against
// the Anthropic Messages API. Anthropic has no structural output
// enforcement here: the adapter relies on the prompt's JSON-only
// instruction and leaves rejection of malformed output entirely to the
// response validator.
package anthropic

import (
	"context"
	"fmt"
	"log/slog"

	goanthropic "github.com/liushuangls/go-anthropic/v2"

	"github.com/mhorvat/vjezbajmo-api/internal/domain"
	"github.com/mhorvat/vjezbajmo-api/internal/generation"
	"github.com/mhorvat/vjezbajmo-api/internal/prompt"
)

// DefaultModel is used when no model is configured.
const DefaultModel = string(goanthropic.ModelClaude3Dot5SonnetLatest)

const maxTokens = 4096

// Generator calls the Anthropic Messages endpoint.
type Generator struct {
	logger *slog.Logger
	model  string
}

// New creates an Anthropic generator. The API key is supplied per call.
func New(logger *slog.Logger, model string) *Generator {
	if model == "" {
		model = DefaultModel
	}
	return &Generator{
		logger: logger.With(slog.String("component", "anthropic_provider")),
		model:  model,
	}
}

// Name implements generation.Provider.
func (g *Generator) Name() string { return generation.ProviderAnthropic }

// GenerateRaw implements generation.Provider. The exercise type is ignored:
// this adapter has no schema-constrained mode.
func (g *Generator) GenerateRaw(
	ctx context.Context,
	prompts prompt.Prompts,
	_ domain.ExerciseType,
	apiKey string,
) (string, error) {
	g.logger.DebugContext(ctx, "sending messages request",
		slog.String("model", g.model))

	client := goanthropic.NewClient(apiKey)
	resp, err := client.CreateMessages(ctx, goanthropic.MessagesRequest{
		Model:     goanthropic.Model(g.model),
		System:    prompts.System,
		MaxTokens: maxTokens,
		Messages: []goanthropic.Message{
			goanthropic.NewUserTextMessage(prompts.User),
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: anthropic: %v", generation.ErrProviderFailure, err)
	}

	// Only a plain text block is acceptable; anything else (tool use,
	// thinking blocks) means the response cannot be trusted as exercise
	// JSON.
	for _, block := range resp.Content {
		if block.Type == goanthropic.MessagesContentTypeText {
			text := block.GetText()
			if text == "" {
				break
			}
			g.logger.DebugContext(ctx, "messages response received",
				slog.String("stop_reason", string(resp.StopReason)),
				slog.Int("content_length", len(text)))
			return text, nil
		}
	}

	return "", fmt.Errorf("%w: anthropic: no plain text content block", generation.ErrEmptyResponse)
}
