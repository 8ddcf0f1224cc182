package llm

import (
	"fmt"

	"github.com/sevigo/code-critic/internal/core"
)

const (
	// DefaultMaxCodeChars bounds the code embedded in the user prompt.
	DefaultMaxCodeChars = 15000

	minIssues = 3
	maxIssues = 7
)

var roastStyles = map[core.RoastLevel]string{
	core.RoastGentle: "Be constructive and encouraging with light humor.",
	core.RoastMedium: "Be witty and sarcastic but helpful. Use clever analogies.",
	core.RoastSavage: "Full Gordon Ramsay mode. Be brutally honest but educational.",
}

// Prompts is the pair of messages sent to the model.
type Prompts struct {
	System string
	User   string
}

type systemPromptData struct {
	RoastStyle string
	RoastLevel core.RoastLevel
	MinIssues  int
	MaxIssues  int
}

type userPromptData struct {
	Language string
	Filename string
	Code     string
}

// PromptBuilder renders the review prompts. Output depends only on its inputs.
type PromptBuilder struct {
	manager      *PromptManager
	provider     ModelProvider
	maxCodeChars int
}

// NewPromptBuilder renders both templates once so a broken template fails at startup
// rather than on a request.
func NewPromptBuilder(manager *PromptManager, provider string, maxCodeChars int) (*PromptBuilder, error) {
	if maxCodeChars <= 0 {
		maxCodeChars = DefaultMaxCodeChars
	}
	b := &PromptBuilder{
		manager:      manager,
		provider:     ModelProvider(provider),
		maxCodeChars: maxCodeChars,
	}
	if _, err := b.Build(core.CodeUnit{Code: "x", Language: core.DefaultLanguage, Filename: core.DefaultFilename}, core.RoastMedium); err != nil {
		return nil, fmt.Errorf("prompt templates are unusable: %w", err)
	}
	return b, nil
}

// Build renders the system and user prompts for a code unit. Unknown roast levels
// are critiqued in the medium style.
func (b *PromptBuilder) Build(unit core.CodeUnit, level core.RoastLevel) (Prompts, error) {
	level = ResolveRoastLevel(level)

	system, err := b.manager.Render(RoastSystemPrompt, b.provider, systemPromptData{
		RoastStyle: roastStyles[level],
		RoastLevel: level,
		MinIssues:  minIssues,
		MaxIssues:  maxIssues,
	})
	if err != nil {
		return Prompts{}, fmt.Errorf("failed to render system prompt: %w", err)
	}

	user, err := b.manager.Render(RoastUserPrompt, b.provider, userPromptData{
		Language: unit.Language,
		Filename: unit.Filename,
		Code:     truncateRunes(unit.Code, b.maxCodeChars),
	})
	if err != nil {
		return Prompts{}, fmt.Errorf("failed to render user prompt: %w", err)
	}

	return Prompts{System: system, User: user}, nil
}

// ResolveRoastLevel maps anything but the three known levels to medium.
func ResolveRoastLevel(level core.RoastLevel) core.RoastLevel {
	if _, ok := roastStyles[level]; ok {
		return level
	}
	return core.RoastMedium
}

// truncateRunes cuts s to at most n characters without splitting a UTF-8 sequence.
// The cut is silent; no marker is appended.
func truncateRunes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
