package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"gopkg.in/yaml.v3"

	"github.com/sevigo/code-critic/internal/core"
)

const (
	outputText = "text"
	outputJSON = "json"
	outputYAML = "yaml"
)

// report is the machine-readable form of a stored review.
type report struct {
	Review *core.Review `json:"review" yaml:"review"`
	Issues []core.Issue `json:"issues" yaml:"issues"`
}

func writeReport(w io.Writer, format string, review *core.Review, issues []core.Issue) error {
	switch format {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report{Review: review, Issues: issues})
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(report{Review: review, Issues: issues}); err != nil {
			return err
		}
		return enc.Close()
	case outputText:
		return writeText(w, review, issues)
	default:
		return fmt.Errorf("unknown output format %q (want text, json or yaml)", format)
	}
}

func writeText(w io.Writer, review *core.Review, issues []core.Issue) error {
	writeScores(w, review)

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	out, err := renderer.Render(issuesMarkdown(issues))
	if err != nil {
		return fmt.Errorf("failed to render review: %w", err)
	}
	_, err = io.WriteString(w, out)
	return err
}

func writeScores(w io.Writer, review *core.Review) {
	separator := strings.Repeat("═", 60)
	titleColor.Fprintln(w, separator)
	titleColor.Fprintf(w, "📋 REVIEW %s\n", review.SessionID)
	titleColor.Fprintln(w, separator)

	dimColor.Fprintf(w, "   Language: %s   Roast: %s   Status: %s\n", review.Language, review.RoastLevel, review.Status)
	if review.GitHubURL != "" {
		dimColor.Fprintf(w, "   Source:   %s\n", review.GitHubURL)
	}

	if review.Status == core.StatusFailed {
		errorColor.Fprintln(w, "\n   This review never completed.")
		return
	}
	if review.Scores == nil {
		warnColor.Fprintln(w, "\n   Still analyzing, no scores yet.")
		return
	}

	fmt.Fprintln(w)
	scoreLine(w, "Security", review.Scores.Security)
	scoreLine(w, "Performance", review.Scores.Performance)
	scoreLine(w, "Maintainability", review.Scores.Maintainability)
	boldColor.Fprintf(w, "   %-16s %3d  %s\n", "Overall", review.Scores.Overall, review.Scores.Badge)
}

func scoreLine(w io.Writer, label string, score int) {
	c := successColor
	switch {
	case score < 50:
		c = errorColor
	case score < 80:
		c = warnColor
	}
	fmt.Fprintf(w, "   %-16s ", label)
	c.Fprintf(w, "%3d\n", score)
}

// issuesMarkdown lays the issues out as a Markdown document.
func issuesMarkdown(issues []core.Issue) string {
	if len(issues) == 0 {
		return "✅ **No issues found!**\n"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "## 💡 Issues (%d)\n\n", len(issues))
	for _, issue := range issues {
		fmt.Fprintf(&b, "### %s %s\n\n", severityIcon(issue.Severity), issue.Title)

		meta := []string{"`" + string(issue.IssueType) + "`", "`" + string(issue.Severity) + "`"}
		if issue.LineNumber != nil {
			meta = append(meta, fmt.Sprintf("line %d", *issue.LineNumber))
		}
		if issue.ImpactScore != nil {
			meta = append(meta, fmt.Sprintf("impact %d", *issue.ImpactScore))
		}
		b.WriteString(strings.Join(meta, " · ") + "\n\n")

		if issue.Roast != "" {
			fmt.Fprintf(&b, "> %s\n\n", issue.Roast)
		}
		if issue.Explanation != "" {
			b.WriteString(issue.Explanation + "\n\n")
		}
		if issue.ProblematicCode != "" {
			fmt.Fprintf(&b, "**Problem**\n\n```\n%s\n```\n\n", issue.ProblematicCode)
		}
		if issue.SuggestedFix != "" {
			fmt.Fprintf(&b, "**Fix**\n\n```\n%s\n```\n\n", issue.SuggestedFix)
		}
	}
	return b.String()
}

func severityIcon(s core.Severity) string {
	switch s {
	case core.SeverityCritical:
		return "🔴"
	case core.SeverityHigh:
		return "🟠"
	case core.SeverityMedium:
		return "🟡"
	default:
		return "🟢"
	}
}
