package llm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/sevigo/code-critic/internal/config"
	"github.com/sevigo/code-critic/internal/core"
)

// perplexityCritic talks to Perplexity's OpenAI-compatible chat completions API.
type perplexityCritic struct {
	client      openai.Client
	model       string
	temperature float64
	maxTokens   int64
}

// NewPerplexityCritic returns a critic for the chat completions endpoint under
// cfg.PerplexityBaseURL. Retries are disabled; the pipeline deadline bounds the call.
func NewPerplexityCritic(cfg config.AIConfig, httpClient *http.Client) core.Critic {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.PerplexityAPIKey),
		option.WithBaseURL(cfg.PerplexityBaseURL),
		option.WithMaxRetries(0),
	}
	if httpClient != nil {
		opts = append(opts, option.WithHTTPClient(httpClient))
	}

	return &perplexityCritic{
		client:      openai.NewClient(opts...),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   int64(cfg.MaxTokens),
	}
}

func (c *perplexityCritic) Name() string { return config.ProviderPerplexity }

func (c *perplexityCritic) Critique(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	completion, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPrompt),
		},
		Temperature: openai.Float(c.temperature),
		MaxTokens:   openai.Int(c.maxTokens),
	})
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return "", &core.UpstreamServiceError{
				Provider:   "Perplexity",
				StatusCode: apiErr.StatusCode,
				Body:       errorBody(apiErr),
			}
		}
		return "", fmt.Errorf("perplexity request failed: %w", err)
	}

	if len(completion.Choices) == 0 {
		return "", nil
	}
	return completion.Choices[0].Message.Content, nil
}

// errorBody returns the full response body of a failed call. The client buffers the
// body before decoding it, so it can be read again here; RawJSON only holds the
// decoded "error" member and is empty for non-JSON bodies.
func errorBody(apiErr *openai.Error) string {
	if apiErr.Response != nil && apiErr.Response.Body != nil {
		body, err := io.ReadAll(apiErr.Response.Body)
		if err == nil && len(body) > 0 {
			return string(body)
		}
	}
	return apiErr.RawJSON()
}
