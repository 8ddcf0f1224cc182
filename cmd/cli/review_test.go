package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/sevigo/code-critic/internal/core"
)

func setReviewFlags(t *testing.T, url, inputType, language string) {
	t.Helper()
	reviewGitHubURL, reviewInputType, reviewLanguage, reviewRoastLevel = url, inputType, language, "savage"
	t.Cleanup(func() {
		reviewGitHubURL, reviewInputType, reviewLanguage, reviewRoastLevel = "", "", "", string(core.RoastMedium)
	})
}

func TestBuildReviewRequest(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "query.py")
	require.NoError(t, os.WriteFile(file, []byte("print(1)"), 0o600))

	tests := []struct {
		name      string
		url       string
		inputType string
		language  string
		args      []string
		stdin     string
		want      *core.ReviewRequest
		wantErr   string
	}{
		{
			name: "file infers language",
			args: []string{file},
			want: &core.ReviewRequest{InputType: core.InputCode, Code: "print(1)", Language: "python", RoastLevel: core.RoastSavage},
		},
		{
			name:     "stdin keeps explicit language",
			args:     []string{"-"},
			stdin:    "SELECT 1",
			language: "sql",
			want:     &core.ReviewRequest{InputType: core.InputCode, Code: "SELECT 1", Language: "sql", RoastLevel: core.RoastSavage},
		},
		{
			name: "pull request url",
			url:  "https://github.com/o/r/pull/7",
			want: &core.ReviewRequest{InputType: core.InputGitHubPR, GitHubURL: "https://github.com/o/r/pull/7", RoastLevel: core.RoastSavage},
		},
		{
			name: "file url",
			url:  "https://github.com/o/r/blob/main/a.go",
			want: &core.ReviewRequest{InputType: core.InputGitHubFile, GitHubURL: "https://github.com/o/r/blob/main/a.go", RoastLevel: core.RoastSavage},
		},
		{
			name:    "nothing to review",
			wantErr: "nothing to review",
		},
		{
			name:      "github type without url",
			inputType: "github_pr",
			wantErr:   "--github-url is required",
		},
		{
			name:    "missing file",
			args:    []string{filepath.Join(dir, "nope.go")},
			wantErr: "failed to read",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setReviewFlags(t, tt.url, tt.inputType, tt.language)

			got, err := buildReviewRequest(tt.args, strings.NewReader(tt.stdin))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIssuesMarkdown(t *testing.T) {
	line, impact := 12, 40
	md := issuesMarkdown([]core.Issue{{
		IssueType:       core.IssueSecurity,
		Severity:        core.SeverityCritical,
		Title:           "SQL Injection",
		Roast:           "Bobby Tables says hi",
		ProblematicCode: "query + id",
		SuggestedFix:    "use placeholders",
		LineNumber:      &line,
		ImpactScore:     &impact,
	}})

	assert.Contains(t, md, "## 💡 Issues (1)")
	assert.Contains(t, md, "### 🔴 SQL Injection")
	assert.Contains(t, md, "line 12")
	assert.Contains(t, md, "impact 40")
	assert.Contains(t, md, "> Bobby Tables says hi")

	assert.Contains(t, issuesMarkdown(nil), "No issues found")
}

func TestWriteReport(t *testing.T) {
	review := &core.Review{SessionID: "abc123def456", Status: core.StatusComplete, Scores: &core.Scores{Overall: 87}}
	issues := []core.Issue{{Title: "Nested loops", Severity: core.SeverityLow}}

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeReport(&buf, outputYAML, review, issues))

		var got map[string]any
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, "abc123def456", got["review"].(map[string]any)["session_id"])
		assert.Len(t, got["issues"], 1)
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeReport(&buf, outputJSON, review, issues))
		assert.Contains(t, buf.String(), `"session_id": "abc123def456"`)
	})

	t.Run("unknown format", func(t *testing.T) {
		err := writeReport(&bytes.Buffer{}, "xml", review, issues)
		assert.ErrorContains(t, err, "unknown output format")
	})
}
