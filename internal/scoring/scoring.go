// Package scoring derives the category scores and badge of a review from its issues.
package scoring

import (
	"math"

	"github.com/sevigo/code-critic/internal/core"
)

// defaultImpact is charged for an issue whose impact score is missing.
const defaultImpact = 10

const (
	BadgeMaster         = "🏆 Code Master"
	BadgeGettingThere   = "💪 Getting There"
	BadgeNeedsWork      = "🔥 Needs Work"
	BadgePleaseRefactor = "💀 Please Refactor"
)

// Aggregate computes the three bucket scores, their rounded mean and the badge.
// Security and performance issues count against their own bucket; complexity and
// style count against maintainability. Logic issues do not affect any score.
func Aggregate(issues []core.Issue) core.Scores {
	var security, performance, maintainability int
	for _, issue := range issues {
		impact := defaultImpact
		if issue.ImpactScore != nil {
			impact = *issue.ImpactScore
		}

		switch issue.IssueType {
		case core.IssueSecurity:
			security += impact
		case core.IssuePerformance:
			performance += impact
		case core.IssueComplexity, core.IssueStyle:
			maintainability += impact
		}
	}

	scores := core.Scores{
		Security:        bucket(security),
		Performance:     bucket(performance),
		Maintainability: bucket(maintainability),
	}
	scores.Overall = int(math.Floor(float64(scores.Security+scores.Performance+scores.Maintainability)/3 + 0.5))
	scores.Badge = Badge(scores.Overall)
	return scores
}

// Badge maps an overall score to its tier label.
func Badge(overall int) string {
	switch {
	case overall >= 90:
		return BadgeMaster
	case overall >= 70:
		return BadgeGettingThere
	case overall >= 40:
		return BadgeNeedsWork
	default:
		return BadgePleaseRefactor
	}
}

func bucket(deductions int) int {
	return max(0, 100-deductions)
}
