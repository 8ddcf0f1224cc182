package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/sevigo/code-critic/internal/core"
	"github.com/sevigo/code-critic/internal/github"
)

var (
	reviewGitHubURL  string
	reviewInputType  string
	reviewLanguage   string
	reviewRoastLevel string
	reviewOutput     string
)

var reviewCmd = &cobra.Command{
	Use:   "review [file|-]",
	Short: "Roast a file, stdin, or a GitHub file or pull request",
	Long: `Run the review pipeline in-process and print the result.

The review is stored exactly as one submitted over HTTP, so it can be shown
again later with "code-critic show <session-id>".

Examples:
  code-critic review main.go
  cat query.sql | code-critic review - --language sql --roast-level savage
  code-critic review --github-url https://github.com/owner/repo/blob/main/app.py
  code-critic review --github-url https://github.com/owner/repo/pull/123`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReview,
}

func init() { //nolint:gochecknoinits // Cobra command registration
	reviewCmd.Flags().StringVar(&reviewGitHubURL, "github-url", "", "GitHub file or pull request URL")
	reviewCmd.Flags().StringVar(&reviewInputType, "type", "", "input type: code, github_file or github_pr (inferred when empty)")
	reviewCmd.Flags().StringVarP(&reviewLanguage, "language", "l", "", "language of the code (inferred from the file name when empty)")
	reviewCmd.Flags().StringVarP(&reviewRoastLevel, "roast-level", "r", string(core.RoastMedium), "gentle, medium or savage")
	reviewCmd.Flags().StringVarP(&reviewOutput, "output", "o", outputText, "output format: text, json or yaml")
	rootCmd.AddCommand(reviewCmd)
}

func runReview(cmd *cobra.Command, args []string) error {
	req, err := buildReviewRequest(args, cmd.InOrStdin())
	if err != nil {
		return err
	}

	ctx := context.Background()
	a, cleanup, err := initApp(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	out := cmd.OutOrStdout()
	if reviewOutput == outputText {
		titleColor.Fprintln(out, "🔥 Code Critic")
		dimColor.Fprintf(out, "   Input: %s (%s roast)\n\n", describeInput(req, args), req.RoastLevel)
	}

	start := time.Now()
	summary, err := a.Job.Run(ctx, req)
	if err != nil {
		return reviewError(err)
	}
	if verbose {
		dimColor.Fprintf(cmd.ErrOrStderr(), "review %s finished in %s\n", summary.SessionID, time.Since(start).Round(time.Millisecond))
	}

	review, issues, err := a.Report(ctx, summary.SessionID)
	if err != nil {
		return fmt.Errorf("review %s completed but could not be loaded: %w", summary.SessionID, err)
	}
	return writeReport(out, reviewOutput, review, issues)
}

// buildReviewRequest turns the command line into a review request. The input type
// is inferred from the arguments when --type is not given.
func buildReviewRequest(args []string, stdin io.Reader) (*core.ReviewRequest, error) {
	req := &core.ReviewRequest{
		InputType:  core.InputType(reviewInputType),
		Language:   reviewLanguage,
		GitHubURL:  reviewGitHubURL,
		RoastLevel: core.RoastLevel(reviewRoastLevel),
	}

	if req.InputType == "" {
		switch {
		case len(args) == 1:
			req.InputType = core.InputCode
		case strings.Contains(reviewGitHubURL, "/pull/"):
			req.InputType = core.InputGitHubPR
		case reviewGitHubURL != "":
			req.InputType = core.InputGitHubFile
		default:
			return nil, errors.New("nothing to review: pass a file, '-' for stdin, or --github-url")
		}
	}

	if req.InputType != core.InputCode {
		if reviewGitHubURL == "" {
			return nil, fmt.Errorf("--github-url is required for input type %s", req.InputType)
		}
		return req, nil
	}

	if len(args) == 0 {
		return nil, errors.New("input type code needs a file argument or '-' for stdin")
	}
	code, err := readSource(args[0], stdin)
	if err != nil {
		return nil, err
	}
	req.Code = code
	if req.Language == "" && args[0] != "-" {
		if lang := github.LanguageFromPath(args[0]); lang != "text" {
			req.Language = lang
		}
	}
	return req, nil
}

func readSource(name string, stdin io.Reader) (string, error) {
	var (
		data []byte
		err  error
	)
	if name == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(name)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", name, err)
	}
	return string(data), nil
}

func describeInput(req *core.ReviewRequest, args []string) string {
	switch {
	case req.GitHubURL != "" && req.InputType != core.InputCode:
		return req.GitHubURL
	case len(args) == 1 && args[0] == "-":
		return "stdin"
	case len(args) == 1:
		return args[0]
	}
	return string(req.InputType)
}

// reviewError adds a hint for the failures a CLI user can fix.
func reviewError(err error) error {
	var cfgErr *core.ConfigError
	switch {
	case errors.As(err, &cfgErr):
		return fmt.Errorf("%w\n\nTip: Set PERPLEXITY_API_KEY, or choose another ai.provider in config.yaml", err)
	case errors.Is(err, core.ErrEmptyInput):
		return core.ErrEmptyInput
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("review timed out: %w\n\nTip: Raise server.request_timeout", err)
	}
	return fmt.Errorf("review failed: %w", err)
}
