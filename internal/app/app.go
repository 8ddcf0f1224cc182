// Package app initializes and orchestrates the main components of the Code Critic application.
// It wires together the configuration, server, and other services.
package app

import (
	"context"
	"log/slog"

	"github.com/sevigo/code-critic/internal/config"
	"github.com/sevigo/code-critic/internal/core"
	"github.com/sevigo/code-critic/internal/jobs"
	"github.com/sevigo/code-critic/internal/server"
	"github.com/sevigo/code-critic/internal/storage"
)

// Version is reported in trace resources and by the CLI.
var Version = "dev"

// App holds the main application components. Job, Store and Sweeper are exported
// for the CLI, which drives them directly without starting the HTTP server.
type App struct {
	Cfg     *config.Config
	Job     core.Job
	Store   storage.Store
	Sweeper *jobs.Sweeper
	Logger  *slog.Logger

	server *server.Server
}

// NewApp sets up the application with all its dependencies.
func NewApp(
	cfg *config.Config,
	srv *server.Server,
	job core.Job,
	store storage.Store,
	sweeper *jobs.Sweeper,
	logger *slog.Logger,
) *App {
	return &App{
		Cfg:     cfg,
		Job:     job,
		Store:   store,
		Sweeper: sweeper,
		Logger:  logger,
		server:  srv,
	}
}

// Start runs the stale review sweeper and then the HTTP server. It blocks until
// the server stops.
func (a *App) Start() error {
	a.Logger.Info("starting Code Critic",
		"server_port", a.Cfg.Server.Port,
		"ai_provider", a.Cfg.AI.Provider,
		"database_driver", a.Cfg.Database.Driver)

	if err := a.Cfg.AI.Validate(); err != nil {
		a.Logger.Warn("model credentials missing, reviews will fail until configured", "error", err)
	}

	a.Sweeper.Start()

	if err := a.server.Start(); err != nil {
		a.Logger.Error("failed to start HTTP server", "error", err)
		return err
	}
	return nil
}

// Stop shuts down the application cleanly.
func (a *App) Stop() error {
	a.Logger.Info("shutting down Code Critic services")

	// Stop the HTTP server first to prevent new incoming requests.
	serverErr := a.server.Stop()
	if serverErr != nil {
		a.Logger.Error("error during HTTP server shutdown", "error", serverErr)
	}

	a.Sweeper.Stop()

	if serverErr != nil {
		a.Logger.Error("Code Critic stopped with errors", "error", serverErr)
		return serverErr
	}

	a.Logger.Info("Code Critic stopped successfully")
	return nil
}

// Report loads a stored review together with its issues.
func (a *App) Report(ctx context.Context, sessionID string) (*core.Review, []core.Issue, error) {
	review, err := a.Store.GetReviewBySession(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	issues, err := a.Store.ListIssues(ctx, review.ID)
	if err != nil {
		return nil, nil, err
	}
	return review, issues, nil
}
