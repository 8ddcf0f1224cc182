package llm

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/sevigo/goframe/llms/gemini"
	"github.com/sevigo/goframe/llms/ollama"

	"github.com/sevigo/code-critic/internal/config"
	"github.com/sevigo/code-critic/internal/core"
)

// NewCritic builds the critique client for the configured provider. A missing
// credential does not fail construction; the returned critic reports the
// configuration error when invoked so the service can still start.
func NewCritic(ctx context.Context, cfg config.AIConfig, httpClient *http.Client, logger *slog.Logger) (core.Critic, error) {
	if err := cfg.Validate(); err != nil {
		if core.IsConfigError(err) {
			logger.Warn("model critic is not configured, reviews will be rejected", "provider", cfg.Provider, "reason", err)
			return &unavailableCritic{provider: cfg.Provider, err: err}, nil
		}
		return nil, err
	}

	switch cfg.Provider {
	case config.ProviderPerplexity:
		logger.Info("using Perplexity critic", "model", cfg.Model, "base_url", cfg.PerplexityBaseURL)
		return NewPerplexityCritic(cfg, httpClient), nil

	case config.ProviderGemini:
		logger.Info("using Gemini critic", "model", cfg.Model)
		model, err := gemini.New(ctx,
			gemini.WithModel(cfg.Model),
			gemini.WithAPIKey(cfg.GeminiAPIKey),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create gemini model: %w", err)
		}
		return NewModelCritic(config.ProviderGemini, model), nil

	case config.ProviderOllama:
		logger.Info("using Ollama critic", "model", cfg.Model, "host", cfg.OllamaHost)
		model, err := ollama.New(
			ollama.WithServerURL(cfg.OllamaHost),
			ollama.WithModel(cfg.Model),
			ollama.WithHTTPClient(httpClient),
			ollama.WithLogger(logger),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create ollama model: %w", err)
		}
		return NewModelCritic(config.ProviderOllama, model), nil

	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}

type unavailableCritic struct {
	provider string
	err      error
}

func (c *unavailableCritic) Name() string { return c.provider }

func (c *unavailableCritic) Critique(context.Context, string, string) (string, error) {
	return "", c.err
}
