package core

import (
	"context"
)

// Job runs one review from request to stored result. Implementations hold no
// state between calls, so a single Job may serve concurrent requests.
type Job interface {
	// Run executes the review pipeline and returns the summary handed back to callers.
	Run(ctx context.Context, req *ReviewRequest) (*ReviewSummary, error)
}

// CodeFetcher retrieves source from GitHub on behalf of the input resolver.
//
//go:generate mockgen -destination=../../mocks/mock_code_fetcher.go -package=mocks . CodeFetcher
type CodeFetcher interface {
	FetchFile(ctx context.Context, url string) (*FetchedFile, error)
	FetchPullRequest(ctx context.Context, url string) (*PullRequestFiles, error)
}

// Critic sends the prompts to a language model and returns its raw text answer.
//
//go:generate mockgen -destination=../../mocks/mock_critic.go -package=mocks . Critic
type Critic interface {
	Critique(ctx context.Context, systemPrompt, userPrompt string) (string, error)
	Name() string
}
