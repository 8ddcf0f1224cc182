package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sevigo/code-critic/internal/core"
)

func issue(t core.IssueType, impact *int) core.Issue {
	return core.Issue{IssueType: t, ImpactScore: impact}
}

func ptr(n int) *int { return &n }

func TestAggregate(t *testing.T) {
	tests := []struct {
		name  string
		input []core.Issue
		want  core.Scores
	}{
		{
			name:  "no issues",
			input: nil,
			want:  core.Scores{Security: 100, Performance: 100, Maintainability: 100, Overall: 100, Badge: BadgeMaster},
		},
		{
			name: "security and logic",
			input: []core.Issue{
				issue(core.IssueSecurity, ptr(40)),
				issue(core.IssueLogic, ptr(50)),
			},
			want: core.Scores{Security: 60, Performance: 100, Maintainability: 100, Overall: 87, Badge: BadgeGettingThere},
		},
		{
			name: "missing impact defaults to ten",
			input: []core.Issue{
				issue(core.IssuePerformance, nil),
				issue(core.IssueStyle, nil),
				issue(core.IssueComplexity, nil),
			},
			want: core.Scores{Security: 100, Performance: 90, Maintainability: 80, Overall: 90, Badge: BadgeMaster},
		},
		{
			name:  "explicit zero impact deducts nothing",
			input: []core.Issue{issue(core.IssueSecurity, ptr(0))},
			want:  core.Scores{Security: 100, Performance: 100, Maintainability: 100, Overall: 100, Badge: BadgeMaster},
		},
		{
			name: "bucket floors at zero",
			input: []core.Issue{
				issue(core.IssueSecurity, ptr(80)),
				issue(core.IssueSecurity, ptr(90)),
				issue(core.IssuePerformance, ptr(100)),
				issue(core.IssueComplexity, ptr(70)),
			},
			want: core.Scores{Security: 0, Performance: 0, Maintainability: 30, Overall: 10, Badge: BadgePleaseRefactor},
		},
		{
			name:  "mixed buckets",
			input: []core.Issue{issue(core.IssueSecurity, ptr(50)), issue(core.IssuePerformance, ptr(49))},
			want:  core.Scores{Security: 50, Performance: 51, Maintainability: 100, Overall: 67, Badge: BadgeNeedsWork},
		},
		{
			name:  "unknown type is ignored",
			input: []core.Issue{issue("vibes", ptr(100))},
			want:  core.Scores{Security: 100, Performance: 100, Maintainability: 100, Overall: 100, Badge: BadgeMaster},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Aggregate(tt.input))
		})
	}
}

func TestAggregate_Rounding(t *testing.T) {
	// 250 / 3 = 83.33
	scores := Aggregate([]core.Issue{issue(core.IssueStyle, ptr(50))})
	assert.Equal(t, 83, scores.Overall)

	// 299 / 3 = 99.67
	scores = Aggregate([]core.Issue{issue(core.IssueStyle, ptr(1))})
	assert.Equal(t, 100, scores.Overall)
}

func TestBadge(t *testing.T) {
	tests := []struct {
		overall int
		want    string
	}{
		{100, BadgeMaster},
		{90, BadgeMaster},
		{89, BadgeGettingThere},
		{70, BadgeGettingThere},
		{69, BadgeNeedsWork},
		{40, BadgeNeedsWork},
		{39, BadgePleaseRefactor},
		{0, BadgePleaseRefactor},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Badge(tt.overall), "overall=%d", tt.overall)
	}
}
