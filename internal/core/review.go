// Package core defines the essential interfaces and data structures that form the
// backbone of the application. These components are designed to be abstract,
// allowing for flexible and decoupled implementations of the application's logic.
package core

import "time"

// InputType selects how the code under review is obtained.
type InputType string

const (
	InputCode       InputType = "code"
	InputGitHubFile InputType = "github_file"
	InputGitHubPR   InputType = "github_pr"
)

// RoastLevel controls the tone of the critique.
type RoastLevel string

const (
	RoastGentle RoastLevel = "gentle"
	RoastMedium RoastLevel = "medium"
	RoastSavage RoastLevel = "savage"
)

// ReviewStatus is the lifecycle state of a stored review.
type ReviewStatus string

const (
	StatusAnalyzing ReviewStatus = "analyzing"
	StatusComplete  ReviewStatus = "complete"
	// StatusFailed is only ever set by the stale review sweep.
	StatusFailed ReviewStatus = "failed"
)

const (
	// DefaultLanguage is used for pasted code that arrives without a language tag.
	DefaultLanguage = "javascript"
	// DefaultFilename labels pasted code.
	DefaultFilename = "snippet.js"
	// MultiFileLanguage is the language sentinel for pull request input.
	MultiFileLanguage = "multi-file"
)

// ReviewRequest is the caller-supplied description of what to review.
type ReviewRequest struct {
	InputType  InputType  `json:"input_type"`
	Code       string     `json:"code"`
	Language   string     `json:"language"`
	GitHubURL  string     `json:"github_url"`
	RoastLevel RoastLevel `json:"roastLevel"`
}

// CodeUnit is the canonical form every request is resolved into.
type CodeUnit struct {
	Code       string
	Language   string
	Filename   string
	OriginRepo string
}

// FetchedFile is a single file returned by the File-Fetch collaborator.
type FetchedFile struct {
	Code     string
	Language string
	Filename string
}

// PullRequestFiles is what the PR-Fetch collaborator returns.
type PullRequestFiles struct {
	Files    []FetchedFile
	PRNumber int
	Title    string
	Repo     string
}

// Review represents a single code review stored in the database.
type Review struct {
	ID          int64        `json:"id" yaml:"id"`
	SessionID   string       `json:"session_id" yaml:"session_id"`
	CodeSnippet string       `json:"code_snippet" yaml:"code_snippet"`
	RepoURL     string       `json:"repo_url" yaml:"repo_url"`
	GitHubURL   string       `json:"github_url" yaml:"github_url"`
	Language    string       `json:"language" yaml:"language"`
	RoastLevel  RoastLevel   `json:"roast_level" yaml:"roast_level"`
	Status      ReviewStatus `json:"status" yaml:"status"`
	Scores      *Scores      `json:"scores,omitempty" yaml:"scores,omitempty"`
	CreatedAt   time.Time    `json:"created_at" yaml:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at" yaml:"updated_at"`
}

// Scores are the derived ratings computed from a review's issues.
type Scores struct {
	Security        int    `json:"security_score" yaml:"security_score"`
	Performance     int    `json:"performance_score" yaml:"performance_score"`
	Maintainability int    `json:"maintainability_score" yaml:"maintainability_score"`
	Overall         int    `json:"overall_score" yaml:"overall_score"`
	Badge           string `json:"badge" yaml:"badge"`
}

// ReviewSummary is returned to the caller once a review completes.
type ReviewSummary struct {
	SessionID    string       `json:"session_id"`
	Status       ReviewStatus `json:"status"`
	OverallScore int          `json:"overall_score"`
	Badge        string       `json:"badge"`
}
