// Package jobs defines the review pipeline and its background maintenance tasks.
package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sevigo/code-critic/internal/config"
	"github.com/sevigo/code-critic/internal/core"
	"github.com/sevigo/code-critic/internal/input"
	"github.com/sevigo/code-critic/internal/llm"
	"github.com/sevigo/code-critic/internal/scoring"
	"github.com/sevigo/code-critic/internal/storage"
	"github.com/sevigo/code-critic/internal/telemetry"
	"github.com/sevigo/code-critic/internal/util"
)

// DefaultTimeout bounds a whole review when no request timeout is configured.
const DefaultTimeout = 60 * time.Second

// ReviewJob runs one review from request to stored result.
type ReviewJob struct {
	cfg      *config.Config
	resolver *input.Resolver
	prompts  *llm.PromptBuilder
	critic   core.Critic
	parser   *llm.Parser
	store    storage.Store
	newID    func() string
	logger   *slog.Logger
}

// NewReviewJob wires the pipeline stages into a core.Job.
func NewReviewJob(
	cfg *config.Config,
	resolver *input.Resolver,
	prompts *llm.PromptBuilder,
	critic core.Critic,
	parser *llm.Parser,
	store storage.Store,
	logger *slog.Logger,
) core.Job {
	if cfg == nil {
		panic("config cannot be nil")
	}
	if critic == nil {
		panic("critic cannot be nil")
	}
	if store == nil {
		panic("store cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &ReviewJob{
		cfg:      cfg,
		resolver: resolver,
		prompts:  prompts,
		critic:   critic,
		parser:   parser,
		store:    store,
		newID:    util.NewSessionID,
		logger:   logger,
	}
}

// Run executes the review pipeline. A missing model credential is reported before
// anything is fetched or written. Once the review record exists, any failure leaves
// it in the analyzing state for the stale sweep to collect.
func (j *ReviewJob) Run(ctx context.Context, req *core.ReviewRequest) (summary *core.ReviewSummary, err error) {
	if req == nil {
		return nil, fmt.Errorf("review request cannot be nil")
	}
	if err := j.cfg.AI.Validate(); err != nil {
		j.logger.Error("review rejected, model is not configured", "error", err)
		return nil, err
	}

	timeout := j.cfg.Server.RequestTimeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	roastLevel := req.RoastLevel
	if roastLevel == "" {
		roastLevel = core.RoastMedium
	}

	ctx, span := telemetry.StartSpan(ctx, "review",
		telemetry.AttrInputType.String(string(req.InputType)),
		telemetry.AttrRoastLevel.String(string(roastLevel)),
	)
	defer func() { telemetry.EndSpan(span, err) }()

	logger := j.logger.With("input_type", req.InputType, "roast_level", roastLevel)

	unit, err := j.resolveInput(ctx, req)
	if err != nil {
		logger.Error("failed to resolve review input", "error", err)
		return nil, j.deadline(ctx, err)
	}

	review := &core.Review{
		SessionID:   j.newID(),
		CodeSnippet: unit.Code,
		RepoURL:     unit.OriginRepo,
		GitHubURL:   req.GitHubURL,
		Language:    unit.Language,
		RoastLevel:  roastLevel,
		Status:      core.StatusAnalyzing,
	}
	span.SetAttributes(telemetry.AttrSessionID.String(review.SessionID))
	logger = logger.With("session_id", review.SessionID)

	if err := j.createReview(ctx, review); err != nil {
		logger.Error("failed to create review record", "error", err)
		return nil, j.deadline(ctx, err)
	}
	logger.Info("review started", "language", review.Language, "code_chars", len(review.CodeSnippet))

	raw, err := j.critique(ctx, unit, req.RoastLevel)
	if err != nil {
		logger.Error("critique failed", "provider", j.critic.Name(), "error", err)
		return nil, j.deadline(ctx, err)
	}

	issues := j.parse(ctx, raw)
	scores := j.score(ctx, issues)

	if err := j.persist(ctx, review.ID, issues, scores); err != nil {
		logger.Error("failed to store review result", "error", err)
		return nil, j.deadline(ctx, err)
	}

	logger.Info("review complete", "issues", len(issues), "overall_score", scores.Overall, "badge", scores.Badge)
	return &core.ReviewSummary{
		SessionID:    review.SessionID,
		Status:       core.StatusComplete,
		OverallScore: scores.Overall,
		Badge:        scores.Badge,
	}, nil
}

func (j *ReviewJob) resolveInput(ctx context.Context, req *core.ReviewRequest) (unit core.CodeUnit, err error) {
	ctx, span := telemetry.StartSpan(ctx, "resolve_input")
	defer func() { telemetry.EndSpan(span, err) }()

	return j.resolver.Resolve(ctx, req)
}

func (j *ReviewJob) createReview(ctx context.Context, review *core.Review) (err error) {
	ctx, span := telemetry.StartSpan(ctx, "create_review")
	defer func() { telemetry.EndSpan(span, err) }()

	return j.store.CreateReview(ctx, review)
}

func (j *ReviewJob) critique(ctx context.Context, unit core.CodeUnit, level core.RoastLevel) (raw string, err error) {
	ctx, span := telemetry.StartSpan(ctx, "critique", telemetry.AttrProvider.String(j.critic.Name()))
	defer func() { telemetry.EndSpan(span, err) }()

	prompts, err := j.prompts.Build(unit, level)
	if err != nil {
		return "", err
	}
	return j.critic.Critique(ctx, prompts.System, prompts.User)
}

func (j *ReviewJob) parse(ctx context.Context, raw string) []core.Issue {
	_, span := telemetry.StartSpan(ctx, "parse")
	defer span.End()

	issues := j.parser.Parse(raw)
	span.SetAttributes(telemetry.AttrIssueCount.Int(len(issues)))
	return issues
}

func (j *ReviewJob) score(ctx context.Context, issues []core.Issue) core.Scores {
	_, span := telemetry.StartSpan(ctx, "score")
	defer span.End()

	scores := scoring.Aggregate(issues)
	span.SetAttributes(telemetry.AttrOverall.Int(scores.Overall))
	return scores
}

func (j *ReviewJob) persist(ctx context.Context, reviewID int64, issues []core.Issue, scores core.Scores) (err error) {
	ctx, span := telemetry.StartSpan(ctx, "persist")
	defer func() { telemetry.EndSpan(span, err) }()

	if err := j.store.SaveIssues(ctx, reviewID, issues); err != nil {
		return err
	}
	return j.store.CompleteReview(ctx, reviewID, scores)
}

// deadline makes a failure caused by the pipeline timeout recognisable as
// context.DeadlineExceeded, whatever error the failing stage returned.
func (j *ReviewJob) deadline(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) && !errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", context.DeadlineExceeded, err)
	}
	return err
}
