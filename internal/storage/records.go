package storage

import (
	"encoding/json"
	"time"

	"github.com/sevigo/code-critic/internal/core"
)

// reviewRecord is the code_reviews row, shared by the sqlx and gorm stores.
type reviewRecord struct {
	ID                   int64     `db:"id" gorm:"column:id;primaryKey"`
	SessionID            string    `db:"session_id" gorm:"column:session_id;uniqueIndex;not null"`
	CodeSnippet          string    `db:"code_snippet" gorm:"column:code_snippet;not null"`
	RepoURL              string    `db:"repo_url" gorm:"column:repo_url;not null;default:''"`
	GitHubURL            string    `db:"github_url" gorm:"column:github_url;not null;default:''"`
	Language             string    `db:"language" gorm:"column:language;not null"`
	RoastLevel           string    `db:"roast_level" gorm:"column:roast_level;not null"`
	Status               string    `db:"status" gorm:"column:status;not null;index:idx_code_reviews_status_created_at,priority:1"`
	SecurityScore        *int      `db:"security_score" gorm:"column:security_score"`
	PerformanceScore     *int      `db:"performance_score" gorm:"column:performance_score"`
	MaintainabilityScore *int      `db:"maintainability_score" gorm:"column:maintainability_score"`
	OverallScore         *int      `db:"overall_score" gorm:"column:overall_score"`
	Badge                *string   `db:"badge" gorm:"column:badge"`
	CreatedAt            time.Time `db:"created_at" gorm:"column:created_at;not null;index:idx_code_reviews_status_created_at,priority:2"`
	UpdatedAt            time.Time `db:"updated_at" gorm:"column:updated_at;not null"`
}

func (reviewRecord) TableName() string { return "code_reviews" }

// issueRecord is the code_issues row.
type issueRecord struct {
	ID              int64     `db:"id" gorm:"column:id;primaryKey"`
	ReviewID        int64     `db:"review_id" gorm:"column:review_id;not null;index"`
	IssueType       string    `db:"issue_type" gorm:"column:issue_type;not null"`
	Severity        string    `db:"severity" gorm:"column:severity;not null"`
	Title           string    `db:"title" gorm:"column:title"`
	Roast           string    `db:"roast" gorm:"column:roast"`
	Explanation     string    `db:"explanation" gorm:"column:explanation"`
	LineNumber      *int      `db:"line_number" gorm:"column:line_number"`
	ProblematicCode string    `db:"problematic_code" gorm:"column:problematic_code"`
	SuggestedFix    string    `db:"suggested_fix" gorm:"column:suggested_fix"`
	WidgetType      string    `db:"widget_type" gorm:"column:widget_type;not null"`
	WidgetConfig    string    `db:"widget_config" gorm:"column:widget_config;not null;default:'{}'"`
	ImpactScore     int       `db:"impact_score" gorm:"column:impact_score;not null;default:0"`
	CreatedAt       time.Time `db:"created_at" gorm:"column:created_at;not null"`
}

func (issueRecord) TableName() string { return "code_issues" }

func newReviewRecord(r *core.Review, now time.Time) reviewRecord {
	return reviewRecord{
		SessionID:   r.SessionID,
		CodeSnippet: r.CodeSnippet,
		RepoURL:     r.RepoURL,
		GitHubURL:   r.GitHubURL,
		Language:    r.Language,
		RoastLevel:  string(r.RoastLevel),
		Status:      string(r.Status),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (rec reviewRecord) toReview() *core.Review {
	r := &core.Review{
		ID:          rec.ID,
		SessionID:   rec.SessionID,
		CodeSnippet: rec.CodeSnippet,
		RepoURL:     rec.RepoURL,
		GitHubURL:   rec.GitHubURL,
		Language:    rec.Language,
		RoastLevel:  core.RoastLevel(rec.RoastLevel),
		Status:      core.ReviewStatus(rec.Status),
		CreatedAt:   rec.CreatedAt,
		UpdatedAt:   rec.UpdatedAt,
	}
	if rec.OverallScore != nil {
		r.Scores = &core.Scores{
			Security:        deref(rec.SecurityScore),
			Performance:     deref(rec.PerformanceScore),
			Maintainability: deref(rec.MaintainabilityScore),
			Overall:         *rec.OverallScore,
		}
		if rec.Badge != nil {
			r.Scores.Badge = *rec.Badge
		}
	}
	return r
}

func newIssueRecord(reviewID int64, i core.Issue, now time.Time) issueRecord {
	widgetConfig := "{}"
	if len(i.WidgetConfig) > 0 && json.Valid(i.WidgetConfig) {
		widgetConfig = string(i.WidgetConfig)
	}
	return issueRecord{
		ReviewID:        reviewID,
		IssueType:       string(i.IssueType),
		Severity:        string(i.Severity),
		Title:           i.Title,
		Roast:           i.Roast,
		Explanation:     i.Explanation,
		LineNumber:      i.LineNumber,
		ProblematicCode: i.ProblematicCode,
		SuggestedFix:    i.SuggestedFix,
		WidgetType:      string(i.WidgetType),
		WidgetConfig:    widgetConfig,
		ImpactScore:     i.StoredImpact(),
		CreatedAt:       now,
	}
}

func (rec issueRecord) toIssue() core.Issue {
	impact := rec.ImpactScore
	return core.Issue{
		ID:              rec.ID,
		ReviewID:        rec.ReviewID,
		IssueType:       core.IssueType(rec.IssueType),
		Severity:        core.Severity(rec.Severity),
		Title:           rec.Title,
		Roast:           rec.Roast,
		Explanation:     rec.Explanation,
		LineNumber:      rec.LineNumber,
		ProblematicCode: rec.ProblematicCode,
		SuggestedFix:    rec.SuggestedFix,
		WidgetType:      core.WidgetType(rec.WidgetType),
		WidgetConfig:    json.RawMessage(rec.WidgetConfig),
		ImpactScore:     &impact,
	}
}

func deref(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
