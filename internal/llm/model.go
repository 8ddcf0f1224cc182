package llm

import (
	"context"
	"fmt"

	"github.com/sevigo/goframe/llms"

	"github.com/sevigo/code-critic/internal/core"
)

// modelCritic adapts a single-prompt goframe model (Gemini, Ollama) to core.Critic.
type modelCritic struct {
	name  string
	model llms.Model
}

func NewModelCritic(name string, model llms.Model) core.Critic {
	return &modelCritic{name: name, model: model}
}

func (c *modelCritic) Name() string { return c.name }

func (c *modelCritic) Critique(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	response, err := llms.GenerateFromSinglePrompt(ctx, c.model, joinPrompts(systemPrompt, userPrompt))
	if err != nil {
		return "", fmt.Errorf("%s generation failed: %w", c.name, err)
	}
	return response, nil
}

func joinPrompts(systemPrompt, userPrompt string) string {
	return systemPrompt + "\n\n" + userPrompt
}
