// Code generated manually. DO NOT EDIT.

//go:generate go run -mod=mod github.com/google/wire/cmd/wire
//go:build !wireinject
// +build !wireinject

package wire

import (
	"context"
	"fmt"

	"github.com/sevigo/code-critic/internal/app"
	"github.com/sevigo/code-critic/internal/config"
	"github.com/sevigo/code-critic/internal/input"
	"github.com/sevigo/code-critic/internal/jobs"
	"github.com/sevigo/code-critic/internal/llm"
	"github.com/sevigo/code-critic/internal/logger"
	"github.com/sevigo/code-critic/internal/server"
)

// InitializeApp creates and wires all application dependencies.
func InitializeApp(ctx context.Context, configFile string) (*app.App, func(), error) {
	// Load configuration
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	loggerConfig := provideLoggerConfig(cfg)
	writer := provideLogWriter(cfg)
	slogLogger := logger.NewLogger(loggerConfig, writer)

	tracer, tracerCleanup, err := provideTracer(ctx, cfg, slogLogger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up tracing: %w", err)
	}
	httpClient := provideHTTPClient(cfg, tracer)

	// GitHub
	ghClient, err := provideGitHubClient(cfg, httpClient, slogLogger)
	if err != nil {
		tracerCleanup()
		return nil, nil, fmt.Errorf("failed to create GitHub client: %w", err)
	}
	fetcher := provideFetcher(ghClient, cfg, slogLogger)
	resolver := input.NewResolver(fetcher)

	// Model
	promptManager, err := llm.NewPromptManager()
	if err != nil {
		tracerCleanup()
		return nil, nil, fmt.Errorf("failed to create prompt manager: %w", err)
	}
	promptBuilder, err := providePromptBuilder(promptManager, cfg)
	if err != nil {
		tracerCleanup()
		return nil, nil, fmt.Errorf("failed to create prompt builder: %w", err)
	}
	critic, err := provideCritic(ctx, cfg, httpClient, slogLogger)
	if err != nil {
		tracerCleanup()
		return nil, nil, fmt.Errorf("failed to create critic: %w", err)
	}
	parser := llm.NewParser(slogLogger)

	// Storage
	store, storeCleanup, err := provideStore(cfg, slogLogger)
	if err != nil {
		tracerCleanup()
		return nil, nil, fmt.Errorf("failed to open review store: %w", err)
	}

	job := jobs.NewReviewJob(cfg, resolver, promptBuilder, critic, parser, store, slogLogger)
	sweeper := provideSweeper(store, cfg, slogLogger)
	srv := server.NewServer(cfg, job, store, slogLogger)

	application := app.NewApp(cfg, srv, job, store, sweeper, slogLogger)

	cleanup := func() {
		storeCleanup()
		tracerCleanup()
	}

	return application, cleanup, nil
}
