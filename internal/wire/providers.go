package wire

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/wire"

	"github.com/sevigo/code-critic/internal/app"
	"github.com/sevigo/code-critic/internal/config"
	"github.com/sevigo/code-critic/internal/core"
	"github.com/sevigo/code-critic/internal/db"
	"github.com/sevigo/code-critic/internal/github"
	"github.com/sevigo/code-critic/internal/input"
	"github.com/sevigo/code-critic/internal/jobs"
	"github.com/sevigo/code-critic/internal/llm"
	"github.com/sevigo/code-critic/internal/logger"
	"github.com/sevigo/code-critic/internal/server"
	"github.com/sevigo/code-critic/internal/storage"
	"github.com/sevigo/code-critic/internal/telemetry"
)

var AppSet = wire.NewSet(
	app.NewApp,
	server.NewServer,
	config.Load,
	logger.NewLogger,
	input.NewResolver,
	jobs.NewReviewJob,
	llm.NewPromptManager,
	llm.NewParser,
	provideLoggerConfig,
	provideLogWriter,
	provideHTTPClient,
	provideTracer,
	provideGitHubClient,
	provideFetcher,
	providePromptBuilder,
	provideCritic,
	provideStore,
	provideSweeper,
)

func provideLoggerConfig(cfg *config.Config) logger.Config {
	return cfg.Logging
}

func provideLogWriter(cfg *config.Config) io.Writer {
	return logger.Writer(cfg.Logging)
}

// provideHTTPClient is shared by the GitHub and model clients. The review deadline
// bounds each call; the client timeout is only a backstop.
func provideHTTPClient(cfg *config.Config, tracer *telemetry.TracerProvider) *http.Client {
	return tracer.HTTPClient(cfg.Server.RequestTimeout)
}

// provideTracer installs the global tracer provider. Its cleanup flushes pending spans.
func provideTracer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*telemetry.TracerProvider, func(), error) {
	tp, err := telemetry.NewTracerProvider(ctx, cfg.Telemetry, app.Version)
	if err != nil {
		return nil, nil, err
	}
	return tp, func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			logger.Error("failed to flush traces", "error", err)
		}
	}, nil
}

func provideGitHubClient(cfg *config.Config, httpClient *http.Client, logger *slog.Logger) (github.Client, error) {
	return github.NewClient(cfg.GitHub, httpClient, logger)
}

func provideFetcher(client github.Client, cfg *config.Config, logger *slog.Logger) core.CodeFetcher {
	return github.NewFetcher(client, cfg.GitHub.MaxPRFiles, logger)
}

func providePromptBuilder(manager *llm.PromptManager, cfg *config.Config) (*llm.PromptBuilder, error) {
	return llm.NewPromptBuilder(manager, cfg.AI.Provider, cfg.Review.MaxCodeChars)
}

func provideCritic(ctx context.Context, cfg *config.Config, httpClient *http.Client, logger *slog.Logger) (core.Critic, error) {
	return llm.NewCritic(ctx, cfg.AI, httpClient, logger)
}

// provideStore opens the database selected by database.driver.
func provideStore(cfg *config.Config, logger *slog.Logger) (storage.Store, func(), error) {
	switch cfg.Database.Driver {
	case config.DriverSQLite:
		conn, cleanup, err := db.NewSQLite(&cfg.Database, logger)
		if err != nil {
			return nil, nil, err
		}
		store, err := storage.NewSQLiteStore(conn)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		return store, cleanup, nil
	case config.DriverPostgres:
		conn, cleanup, err := db.NewDatabase(&cfg.Database, logger)
		if err != nil {
			return nil, nil, err
		}
		return storage.NewStore(conn.DB), cleanup, nil
	default:
		return nil, nil, fmt.Errorf("unsupported database driver: %s", cfg.Database.Driver)
	}
}

func provideSweeper(store storage.Store, cfg *config.Config, logger *slog.Logger) *jobs.Sweeper {
	return jobs.NewSweeper(store, cfg.Review, logger)
}
