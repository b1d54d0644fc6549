// Package openai implements the generation.Provider interface against the
// OpenAI chat completions API. It uses the strict JSON-schema response
// format keyed to the exercise type, so the response shape is structurally
// constrained before the validator ever sees it.
package openai

import (
	"context"
	"fmt"
	"log/slog"

	goopenai "github.com/sashabaranov/go-openai"

	"github.com/mhorvat/vjezbajmo-api/internal/domain"
	"github.com/mhorvat/vjezbajmo-api/internal/generation"
	"github.com/mhorvat/vjezbajmo-api/internal/prompt"
)

// DefaultModel is used when no model is configured.
const DefaultModel = goopenai.GPT4o

// Generator calls the OpenAI chat completions endpoint.
type Generator struct {
	logger *slog.Logger
	model  string
}

// New creates an OpenAI generator. The API key is supplied per call, not at
// construction, because requests may carry their own credentials.
func New(logger *slog.Logger, model string) *Generator {
	if model == "" {
		model = DefaultModel
	}
	return &Generator{
		logger: logger.With(slog.String("component", "openai_provider")),
		model:  model,
	}
}

// Name implements generation.Provider.
func (g *Generator) Name() string { return generation.ProviderOpenAI }

// GenerateRaw implements generation.Provider. A single blocking round trip:
// no timeout, no retry, no backoff. A slow or failed call delays or fails
// just this one request.
func (g *Generator) GenerateRaw(
	ctx context.Context,
	prompts prompt.Prompts,
	exerciseType domain.ExerciseType,
	apiKey string,
) (string, error) {
	schemaName, schema := schemaFor(exerciseType)

	req := goopenai.ChatCompletionRequest{
		Model: g.model,
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleSystem, Content: prompts.System},
			{Role: goopenai.ChatMessageRoleUser, Content: prompts.User},
		},
		ResponseFormat: &goopenai.ChatCompletionResponseFormat{
			Type: goopenai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &goopenai.ChatCompletionResponseFormatJSONSchema{
				Name:   schemaName,
				Schema: schema,
				Strict: true,
			},
		},
	}

	g.logger.DebugContext(ctx, "sending chat completion request",
		slog.String("model", g.model),
		slog.String("schema", schemaName))

	client := goopenai.NewClient(apiKey)
	resp, err := client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("%w: openai: %v", generation.ErrProviderFailure, err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("%w: openai", generation.ErrEmptyResponse)
	}

	g.logger.DebugContext(ctx, "chat completion received",
		slog.String("finish_reason", string(resp.Choices[0].FinishReason)),
		slog.Int("content_length", len(resp.Choices[0].Message.Content)))

	return resp.Choices[0].Message.Content, nil
}
