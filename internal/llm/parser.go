package llm

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/sevigo/code-critic/internal/core"
)

const (
	fallbackTitle       = "AI Brain Freeze"
	fallbackRoast       = "I tried to roast you, but I roasted my own JSON parser instead."
	fallbackExplanation = "The AI returned invalid JSON. It happens to the best of us."
	fallbackImpact      = 5

	// maxLoggedPayload bounds how much of a malformed response ends up in the logs.
	maxLoggedPayload = 500
)

var fenceRegex = regexp.MustCompile("```json\\n?|```\\n?")

// Parser turns raw model output into issues. It never fails: anything it cannot
// decode becomes the single fallback issue.
type Parser struct {
	logger *slog.Logger
}

func NewParser(logger *slog.Logger) *Parser {
	return &Parser{logger: logger}
}

// Parse returns the issues in raw, or the fallback issue if raw is not a usable JSON array.
// A well-formed empty array means the model found nothing and returns an empty slice.
func (p *Parser) Parse(raw string) []core.Issue {
	issues, err := ParseIssues(raw)
	if err != nil {
		p.logger.Warn("model output could not be parsed, using fallback issue",
			"error", err,
			"payload", truncateRunes(raw, maxLoggedPayload),
		)
		return []core.Issue{FallbackIssue()}
	}
	return issues
}

// ParseIssues decodes the model's JSON array. Entries that are not objects are dropped
// and out-of-range fields are repaired. An empty array yields no issues. The returned error wraps core.ErrMalformedModelOutput.
func ParseIssues(raw string) ([]core.Issue, error) {
	cleaned := stripMarkdownFence(raw)

	entries, err := decodeArray(cleaned)
	if err != nil {
		// Models sometimes wrap the array in prose.
		start := strings.Index(cleaned, "[")
		end := strings.LastIndex(cleaned, "]")
		if start < 0 || end <= start {
			return nil, fmt.Errorf("%w: %v", core.ErrMalformedModelOutput, err)
		}
		entries, err = decodeArray(cleaned[start : end+1])
		if err != nil {
			return nil, fmt.Errorf("%w: %v", core.ErrMalformedModelOutput, err)
		}
	}

	issues := make([]core.Issue, 0, len(entries))
	for _, entry := range entries {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(entry, &fields); err != nil || fields == nil {
			continue
		}
		issues = append(issues, issueFromFields(fields))
	}

	if len(issues) == 0 && len(entries) > 0 {
		return nil, fmt.Errorf("%w: no usable issues in %d entries", core.ErrMalformedModelOutput, len(entries))
	}
	return issues, nil
}

// FallbackIssue is substituted for output that could not be decoded.
func FallbackIssue() core.Issue {
	impact := fallbackImpact
	return core.Issue{
		IssueType:    core.IssueLogic,
		Severity:     core.SeverityLow,
		Title:        fallbackTitle,
		Roast:        fallbackRoast,
		Explanation:  fallbackExplanation,
		WidgetType:   core.WidgetGenericRoast,
		WidgetConfig: json.RawMessage(`{"emoji":"🤖","color":"gray"}`),
		ImpactScore:  &impact,
	}
}

// stripMarkdownFence removes ```json and ``` markers wherever they appear, then trims.
func stripMarkdownFence(s string) string {
	return strings.TrimSpace(fenceRegex.ReplaceAllString(s, ""))
}

func decodeArray(s string) ([]json.RawMessage, error) {
	var entries []json.RawMessage
	if err := json.Unmarshal([]byte(s), &entries); err != nil {
		return nil, err
	}
	if entries == nil {
		return nil, errors.New("not a JSON array")
	}
	return entries, nil
}

func issueFromFields(f map[string]json.RawMessage) core.Issue {
	issue := core.Issue{
		IssueType:       core.IssueType(stringField(f["issue_type"])),
		Severity:        core.Severity(stringField(f["severity"])),
		Title:           stringField(f["title"]),
		Roast:           stringField(f["roast"]),
		Explanation:     stringField(f["explanation"]),
		ProblematicCode: stringField(f["problematic_code"]),
		SuggestedFix:    stringField(f["suggested_fix"]),
		WidgetType:      core.WidgetType(stringField(f["widget_type"])),
		WidgetConfig:    objectField(f["widget_config"]),
	}

	if !issue.IssueType.Valid() {
		issue.IssueType = core.IssueLogic
	}
	if !issue.Severity.Valid() {
		issue.Severity = core.SeverityLow
	}
	if !issue.WidgetType.Valid() {
		issue.WidgetType = core.WidgetGenericRoast
	}

	if n, ok := numberField(f["line_number"]); ok && n >= 1 {
		line := int(math.Round(n))
		issue.LineNumber = &line
	}
	if n, ok := numberField(f["impact_score"]); ok {
		impact := int(math.Round(math.Min(100, math.Max(0, n))))
		issue.ImpactScore = &impact
	}

	return issue
}

// stringField returns the string value of raw. Non-string scalars are kept in their
// JSON text form so that a numeric title still shows up.
func stringField(raw json.RawMessage) string {
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

// numberField accepts JSON numbers and numeric strings. null and anything else is absent.
func numberField(raw json.RawMessage) (float64, bool) {
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, false
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, !math.IsNaN(n) && !math.IsInf(n, 0)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if n, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil && !math.IsNaN(n) && !math.IsInf(n, 0) {
			return n, true
		}
	}
	return 0, false
}

func objectField(raw json.RawMessage) json.RawMessage {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return json.RawMessage(`{}`)
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		return json.RawMessage(`{}`)
	}
	return json.RawMessage(trimmed)
}
