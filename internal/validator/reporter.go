package validator

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
	"gopkg.in/yaml.v3"
)

// Format specifies the output format for check reports.
type Format string

const (
	// FormatText produces human-readable text output.
	FormatText Format = "text"
	// FormatJSON produces machine-readable JSON output.
	FormatJSON Format = "json"
	// FormatYAML produces machine-readable YAML output.
	FormatYAML Format = "yaml"
)

// ValidFormat reports whether f names a supported output format.
func ValidFormat(f Format) bool {
	switch f {
	case FormatText, FormatJSON, FormatYAML:
		return true
	}
	return false
}

// ReporterOption configures a Reporter.
type ReporterOption func(*Reporter)

// WithSuccessMessage sets the line printed when a text report has no
// errors. Defaults to "no violations found".
func WithSuccessMessage(msg string) ReporterOption {
	return func(r *Reporter) {
		r.successMsg = msg
	}
}

// Reporter formats and writes check results.
type Reporter struct {
	out        io.Writer
	format     Format
	successMsg string
}

// NewReporter creates a Reporter writing to out in the given format.
func NewReporter(out io.Writer, format Format, opts ...ReporterOption) *Reporter {
	r := &Reporter{
		out:        out,
		format:     format,
		successMsg: "no violations found",
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// report is the machine-readable shape of a check result.
type report struct {
	Valid      bool          `json:"valid" yaml:"valid"`
	Violations []reportEntry `json:"violations,omitempty" yaml:"violations,omitempty"`
	Warnings   []string      `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Total      int           `json:"total_violations" yaml:"total_violations"`
}

type reportEntry struct {
	Name   string `json:"name" yaml:"name"`
	Reason string `json:"reason" yaml:"reason"`
}

// Report writes the result to the output.
func (r *Reporter) Report(result *Result) error {
	if result == nil {
		return nil
	}

	switch r.format {
	case FormatJSON:
		return r.reportJSON(result)
	case FormatYAML:
		return r.reportYAML(result)
	default:
		return r.reportText(result)
	}
}

func (r *Reporter) buildReport(result *Result) report {
	rep := report{Valid: !result.HasErrors()}
	for _, issue := range result.Errors() {
		rep.Violations = append(rep.Violations, reportEntry{
			Name:   issue.Subject,
			Reason: issue.Message,
		})
	}
	for _, issue := range result.Warnings() {
		rep.Warnings = append(rep.Warnings, issue.Error())
	}
	rep.Total = len(rep.Violations)
	return rep
}

func (r *Reporter) reportJSON(result *Result) error {
	encoder := json.NewEncoder(r.out)
	encoder.SetIndent("", "  ")
	return errors.Wrap(encoder.Encode(r.buildReport(result)), "encoding JSON report")
}

func (r *Reporter) reportYAML(result *Result) error {
	encoder := yaml.NewEncoder(r.out)
	defer encoder.Close()
	return errors.Wrap(encoder.Encode(r.buildReport(result)), "encoding YAML report")
}

// reportText writes the result as human-readable text: the full
// violation list, warnings printed separately, then a count summary.
func (r *Reporter) reportText(result *Result) error {
	violations := result.Errors()
	warnings := result.Warnings()

	if len(violations) > 0 {
		for _, issue := range violations {
			fmt.Fprintf(r.out, "  - %s: %s\n", color.RedString("'%s'", issue.Subject), issue.Message)
		}
		fmt.Fprintln(r.out)
	}

	for _, issue := range warnings {
		fmt.Fprintf(r.out, "%s %s\n", color.YellowString("warning:"), warningLine(issue))
	}

	if len(violations) > 0 {
		fmt.Fprintln(r.out, color.RedString("✗ %d violation(s) found", len(violations)))
		return nil
	}

	fmt.Fprintln(r.out, color.GreenString("✓ %s", r.successMsg))
	return nil
}

func warningLine(issue Issue) string {
	if issue.Subject == "" {
		return issue.Message
	}
	return fmt.Sprintf("'%s': %s", issue.Subject, issue.Message)
}
