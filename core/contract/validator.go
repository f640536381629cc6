// Package contract orchestrates the Layer A quote pipeline: resolve the
// industry, load template and calculator, validate the pairing, map answers,
// compute the load profile, and package the result with its audit envelope.
package contract

import (
	"fmt"

	"energy-quote/core/calc"
	"energy-quote/core/types"
)

// IssueLevel grades a validation issue
type IssueLevel string

const (
	LevelError   IssueLevel = "error"
	LevelWarning IssueLevel = "warning"
)

// Issue is one template/calculator compatibility finding
type Issue struct {
	Level   IssueLevel `json:"level"`
	Message string     `json:"message"`
}

// Bounds constrains a template's question count
type Bounds struct {
	MinQuestions int
	MaxQuestions int
}

// ValidationReport is the outcome of a structural check. Only error-level
// issues make OK false.
type ValidationReport struct {
	OK     bool    `json:"ok"`
	Issues []Issue `json:"issues,omitempty"`
}

// IssueStrings flattens issues for telemetry
func (r ValidationReport) IssueStrings() []string {
	out := make([]string, 0, len(r.Issues))
	for _, issue := range r.Issues {
		out = append(out, fmt.Sprintf("%s: %s", issue.Level, issue.Message))
	}
	return out
}

// Validate structurally checks that a template is compatible with the
// calculator it is paired with. Callers MUST skip this entirely for borrowed
// templates: a borrowed template was authored for a different calculator and
// will not structurally match, by design.
func Validate(t *types.Template, c calc.Calculator, bounds Bounds) ValidationReport {
	var issues []Issue

	count := len(t.Questions)
	if bounds.MinQuestions > 0 && count < bounds.MinQuestions {
		issues = append(issues, Issue{
			Level:   LevelError,
			Message: fmt.Sprintf("template %q declares %d questions, below minimum %d", t.ID, count, bounds.MinQuestions),
		})
	}
	if bounds.MaxQuestions > 0 && count > bounds.MaxQuestions {
		issues = append(issues, Issue{
			Level:   LevelError,
			Message: fmt.Sprintf("template %q declares %d questions, above maximum %d", t.ID, count, bounds.MaxQuestions),
		})
	}

	declared := t.QuestionIDs()
	for _, required := range c.RequiredQuestions() {
		if !declared[required] {
			issues = append(issues, Issue{
				Level:   LevelError,
				Message: fmt.Sprintf("calculator %q requires question %q which template %q does not declare", c.ID(), required, t.ID),
			})
		}
	}

	if t.CalculatorID != "" && t.CalculatorID != c.ID() {
		issues = append(issues, Issue{
			Level:   LevelWarning,
			Message: fmt.Sprintf("template %q pairs calculator %q but %q was supplied", t.ID, t.CalculatorID, c.ID()),
		})
	}

	for _, rule := range t.Mapping {
		if rule.From != "" && !declared[rule.From] {
			issues = append(issues, Issue{
				Level:   LevelWarning,
				Message: fmt.Sprintf("mapping rule %q reads undeclared question %q", rule.To, rule.From),
			})
		}
	}

	ok := true
	for _, issue := range issues {
		if issue.Level == LevelError {
			ok = false
			break
		}
	}

	return ValidationReport{OK: ok, Issues: issues}
}
