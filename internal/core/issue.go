package core

import "encoding/json"

// IssueType is the category the model assigns to an issue.
type IssueType string

const (
	IssueSecurity    IssueType = "security"
	IssuePerformance IssueType = "performance"
	IssueComplexity  IssueType = "complexity"
	IssueLogic       IssueType = "logic"
	IssueStyle       IssueType = "style"
)

// Valid reports whether t is one of the known issue types.
func (t IssueType) Valid() bool {
	switch t {
	case IssueSecurity, IssuePerformance, IssueComplexity, IssueLogic, IssueStyle:
		return true
	}
	return false
}

// Severity of an issue as rated by the model.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// Valid reports whether s is one of the known severities.
func (s Severity) Valid() bool {
	switch s {
	case SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow:
		return true
	}
	return false
}

// WidgetType selects the visual treatment of an issue in the presentation layer.
type WidgetType string

const (
	WidgetSecurityBomb      WidgetType = "SecurityBomb"
	WidgetSpaghettiMeter    WidgetType = "SpaghettiMeter"
	WidgetPerformanceTurtle WidgetType = "PerformanceTurtle"
	WidgetGenericRoast      WidgetType = "GenericRoast"
)

// Valid reports whether w is one of the known widget types.
func (w WidgetType) Valid() bool {
	switch w {
	case WidgetSecurityBomb, WidgetSpaghettiMeter, WidgetPerformanceTurtle, WidgetGenericRoast:
		return true
	}
	return false
}

// Issue is a single critique entry. Issues are written once per review and never updated.
type Issue struct {
	ID              int64           `json:"id,omitempty" yaml:"id,omitempty"`
	ReviewID        int64           `json:"review_id,omitempty" yaml:"review_id,omitempty"`
	IssueType       IssueType       `json:"issue_type" yaml:"issue_type"`
	Severity        Severity        `json:"severity" yaml:"severity"`
	Title           string          `json:"title" yaml:"title"`
	Roast           string          `json:"roast" yaml:"roast"`
	Explanation     string          `json:"explanation" yaml:"explanation"`
	LineNumber      *int            `json:"line_number" yaml:"line_number"`
	ProblematicCode string          `json:"problematic_code" yaml:"problematic_code"`
	SuggestedFix    string          `json:"suggested_fix" yaml:"suggested_fix"`
	WidgetType      WidgetType      `json:"widget_type" yaml:"widget_type"`
	WidgetConfig    json.RawMessage `json:"widget_config" yaml:"-"`
	// ImpactScore is nil when the model omitted it.
	ImpactScore *int `json:"impact_score" yaml:"impact_score"`
}

// StoredImpact is the impact value persisted for the issue; a missing score is stored as 0.
func (i Issue) StoredImpact() int {
	if i.ImpactScore == nil {
		return 0
	}
	return *i.ImpactScore
}
