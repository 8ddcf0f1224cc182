package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	// import db drivers
	_ "github.com/lib/pq"

	"github.com/sevigo/code-critic/internal/core"
)

const reviewColumns = `id, session_id, code_snippet, repo_url, github_url, language, roast_level, status,
	security_score, performance_score, maintainability_score, overall_score, badge, created_at, updated_at`

const issueColumns = `id, review_id, issue_type, severity, title, roast, explanation, line_number,
	problematic_code, suggested_fix, widget_type, widget_config, impact_score, created_at`

type postgresStore struct {
	db  *sqlx.DB
	now func() time.Time
}

// NewStore creates a Postgres-backed Store.
func NewStore(db *sqlx.DB) Store {
	return &postgresStore{db: db, now: utcNow}
}

func (s *postgresStore) CreateReview(ctx context.Context, review *core.Review) error {
	rec := newReviewRecord(review, s.now())
	query := `
		INSERT INTO code_reviews (session_id, code_snippet, repo_url, github_url, language, roast_level, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`

	err := s.db.QueryRowxContext(ctx, query,
		rec.SessionID, rec.CodeSnippet, rec.RepoURL, rec.GitHubURL, rec.Language,
		rec.RoastLevel, rec.Status, rec.CreatedAt, rec.UpdatedAt,
	).Scan(&review.ID)
	if err != nil {
		return storeErr("create review", err)
	}
	review.CreatedAt = rec.CreatedAt
	review.UpdatedAt = rec.UpdatedAt
	return nil
}

func (s *postgresStore) SaveIssues(ctx context.Context, reviewID int64, issues []core.Issue) error {
	if len(issues) == 0 {
		return nil
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return storeErr("save issues", err)
	}
	defer func() { _ = tx.Rollback() }()

	// widget_config goes in as text; $11::jsonb casts it.
	query := `
		INSERT INTO code_issues (review_id, issue_type, severity, title, roast, explanation, line_number,
			problematic_code, suggested_fix, widget_type, widget_config, impact_score, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11::jsonb, $12, $13)`

	now := s.now()
	for _, issue := range issues {
		rec := newIssueRecord(reviewID, issue, now)
		if _, err := tx.ExecContext(ctx, query,
			rec.ReviewID, rec.IssueType, rec.Severity, rec.Title, rec.Roast, rec.Explanation, rec.LineNumber,
			rec.ProblematicCode, rec.SuggestedFix, rec.WidgetType, rec.WidgetConfig, rec.ImpactScore, rec.CreatedAt,
		); err != nil {
			return storeErr("save issues", err)
		}
	}

	return storeErr("save issues", tx.Commit())
}

func (s *postgresStore) CompleteReview(ctx context.Context, reviewID int64, scores core.Scores) error {
	query := `
		UPDATE code_reviews
		SET status = $2, security_score = $3, performance_score = $4, maintainability_score = $5,
			overall_score = $6, badge = $7, updated_at = $8
		WHERE id = $1`

	res, err := s.db.ExecContext(ctx, query, reviewID, string(core.StatusComplete),
		scores.Security, scores.Performance, scores.Maintainability, scores.Overall, scores.Badge, s.now())
	if err != nil {
		return storeErr("complete review", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return storeErr("complete review", err)
	}
	if n == 0 {
		return storeErr("complete review", fmt.Errorf("%w: id %d", ErrReviewNotFound, reviewID))
	}
	return nil
}

func (s *postgresStore) GetReview(ctx context.Context, id int64) (*core.Review, error) {
	return s.getReview(ctx, "get review", `SELECT `+reviewColumns+` FROM code_reviews WHERE id = $1`, id)
}

func (s *postgresStore) GetReviewBySession(ctx context.Context, sessionID string) (*core.Review, error) {
	return s.getReview(ctx, "get review by session", `SELECT `+reviewColumns+` FROM code_reviews WHERE session_id = $1`, sessionID)
}

func (s *postgresStore) getReview(ctx context.Context, op, query string, arg any) (*core.Review, error) {
	var rec reviewRecord
	if err := s.db.GetContext(ctx, &rec, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storeErr(op, ErrReviewNotFound)
		}
		return nil, storeErr(op, err)
	}
	return rec.toReview(), nil
}

func (s *postgresStore) ListIssues(ctx context.Context, reviewID int64) ([]core.Issue, error) {
	var recs []issueRecord
	query := `SELECT ` + issueColumns + ` FROM code_issues WHERE review_id = $1 ORDER BY id`
	if err := s.db.SelectContext(ctx, &recs, query, reviewID); err != nil {
		return nil, storeErr("list issues", err)
	}

	issues := make([]core.Issue, 0, len(recs))
	for _, rec := range recs {
		issues = append(issues, rec.toIssue())
	}
	return issues, nil
}

func (s *postgresStore) MarkStaleReviews(ctx context.Context, olderThan time.Time) (int64, error) {
	query := `UPDATE code_reviews SET status = $1, updated_at = $2 WHERE status = $3 AND created_at < $4`
	res, err := s.db.ExecContext(ctx, query,
		string(core.StatusFailed), s.now(), string(core.StatusAnalyzing), olderThan.UTC())
	if err != nil {
		return 0, storeErr("mark stale reviews", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, storeErr("mark stale reviews", err)
	}
	return n, nil
}

func utcNow() time.Time {
	return time.Now().UTC()
}
