// Package validator provides shared types for collecting and reporting
// lint issues.
package validator

import (
	"fmt"
	"strings"
)

// Severity represents the impact of an issue.
type Severity int

const (
	// SeverityError indicates a blocking failure.
	SeverityError Severity = iota
	// SeverityWarning indicates a non-blocking issue.
	SeverityWarning
	// SeverityInfo indicates an informational note.
	SeverityInfo
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	default:
		return "unknown"
	}
}

// Issue represents a single problem found during a check.
type Issue struct {
	// Severity indicates the impact of the issue.
	Severity Severity
	// Subject identifies what the issue is about, e.g. a dependency name.
	Subject string
	// Message is a one-line description of the problem.
	Message string
}

// Error implements the error interface.
func (i Issue) Error() string {
	var sb strings.Builder
	sb.WriteString(i.Severity.String())
	sb.WriteString(": ")
	if i.Subject != "" {
		fmt.Fprintf(&sb, "'%s': ", i.Subject)
	}
	sb.WriteString(i.Message)
	return sb.String()
}

// Result aggregates issues from a check run.
type Result struct {
	Issues []Issue
}

// AddError appends an error issue.
func (r *Result) AddError(subject, message string) {
	r.Issues = append(r.Issues, Issue{
		Severity: SeverityError,
		Subject:  subject,
		Message:  message,
	})
}

// AddWarning appends a warning issue.
func (r *Result) AddWarning(subject, message string) {
	r.Issues = append(r.Issues, Issue{
		Severity: SeverityWarning,
		Subject:  subject,
		Message:  message,
	})
}

// HasErrors returns true if any issue has SeverityError.
func (r *Result) HasErrors() bool {
	if r == nil {
		return false
	}
	for _, i := range r.Issues {
		if i.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Errors returns all issues with SeverityError.
func (r *Result) Errors() []Issue {
	return r.filter(SeverityError)
}

// Warnings returns all issues with SeverityWarning.
func (r *Result) Warnings() []Issue {
	return r.filter(SeverityWarning)
}

func (r *Result) filter(s Severity) []Issue {
	if r == nil {
		return nil
	}
	var out []Issue
	for _, i := range r.Issues {
		if i.Severity == s {
			out = append(out, i)
		}
	}
	return out
}
