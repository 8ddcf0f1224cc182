package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sevigo/code-critic/internal/app"
	"github.com/sevigo/code-critic/internal/wire"
)

var (
	configFile  string
	githubToken string
	verbose     bool
)

var rootCmd = &cobra.Command{
	Use:     "code-critic",
	Short:   "code-critic is the command-line interface for Code Critic.",
	Long:    `A CLI for running roast-style code reviews in-process and inspecting stored reviews.`,
	Version: app.Version,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		return applyEnvOverrides()
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() { //nolint:gochecknoinits // Cobra's init function for command registration
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (default: ./config.yaml or ./configs/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&githubToken, "github-token", "t", "", "GitHub token, overrides GITHUB_TOKEN")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log pipeline progress to stderr")
}

// applyEnvOverrides feeds CLI flags into the environment the config loader reads.
// Logs go to stderr so stdout carries only command output.
func applyEnvOverrides() error {
	if githubToken != "" {
		if err := os.Setenv("GITHUB_TOKEN", githubToken); err != nil {
			return err
		}
	}
	if _, ok := os.LookupEnv("LOGGING_OUTPUT"); !ok {
		if err := os.Setenv("LOGGING_OUTPUT", "stderr"); err != nil {
			return err
		}
	}
	if _, ok := os.LookupEnv("LOGGING_LEVEL"); !ok && !verbose {
		if err := os.Setenv("LOGGING_LEVEL", "warn"); err != nil {
			return err
		}
	}
	return nil
}

// initApp builds the application without starting the HTTP server.
func initApp(ctx context.Context) (*app.App, func(), error) {
	a, cleanup, err := wire.InitializeApp(ctx, configFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize app: %w\n\nTip: Check that your config.yaml exists and is valid", err)
	}
	return a, cleanup, nil
}
