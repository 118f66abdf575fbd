package validator

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func init() {
	// Deterministic output in tests regardless of the environment.
	color.NoColor = true
}

func violationResult() *Result {
	r := &Result{}
	r.AddError("serde", "uses simple version string, should be a table with default-features = false")
	r.AddError("clap", "has default-features = true (must be false)")
	r.AddWarning("tokio", "exception not found in [workspace.dependencies]")
	return r
}

func TestReporter_Text_Violations(t *testing.T) {
	var buf bytes.Buffer
	reporter := NewReporter(&buf, FormatText)

	require.NoError(t, reporter.Report(violationResult()))

	out := buf.String()
	assert.Contains(t, out, "- 'serde': uses simple version string")
	assert.Contains(t, out, "- 'clap': has default-features = true (must be false)")
	assert.Contains(t, out, "warning: 'tokio': exception not found in [workspace.dependencies]")
	assert.Contains(t, out, "✗ 2 violation(s) found")

	// Violations come before the trailing summary.
	if strings.Index(out, "'serde'") > strings.Index(out, "violation(s) found") {
		t.Error("violation list should precede the summary")
	}
}

func TestReporter_Text_Success(t *testing.T) {
	var buf bytes.Buffer
	reporter := NewReporter(&buf, FormatText,
		WithSuccessMessage("all workspace dependencies have default-features = false"))

	require.NoError(t, reporter.Report(&Result{}))
	assert.Contains(t, buf.String(), "✓ all workspace dependencies have default-features = false")
}

func TestReporter_Text_WarningsOnly(t *testing.T) {
	var buf bytes.Buffer
	reporter := NewReporter(&buf, FormatText)

	r := &Result{}
	r.AddWarning("tokio", "exception not found in [workspace.dependencies]")
	require.NoError(t, reporter.Report(r))

	out := buf.String()
	assert.Contains(t, out, "warning: 'tokio'")
	assert.Contains(t, out, "✓ no violations found")
	assert.NotContains(t, out, "violation(s) found")
}

func TestReporter_JSON(t *testing.T) {
	var buf bytes.Buffer
	reporter := NewReporter(&buf, FormatJSON)

	require.NoError(t, reporter.Report(violationResult()))

	var rep struct {
		Valid      bool `json:"valid"`
		Violations []struct {
			Name   string `json:"name"`
			Reason string `json:"reason"`
		} `json:"violations"`
		Warnings []string `json:"warnings"`
		Total    int      `json:"total_violations"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rep))

	assert.False(t, rep.Valid)
	assert.Equal(t, 2, rep.Total)
	require.Len(t, rep.Violations, 2)
	assert.Equal(t, "serde", rep.Violations[0].Name)
	assert.Equal(t, "clap", rep.Violations[1].Name)
	require.Len(t, rep.Warnings, 1)
}

func TestReporter_JSON_Valid(t *testing.T) {
	var buf bytes.Buffer
	reporter := NewReporter(&buf, FormatJSON)

	require.NoError(t, reporter.Report(&Result{}))

	var rep map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rep))
	assert.Equal(t, true, rep["valid"])
}

func TestReporter_YAML(t *testing.T) {
	var buf bytes.Buffer
	reporter := NewReporter(&buf, FormatYAML)

	require.NoError(t, reporter.Report(violationResult()))

	var rep struct {
		Valid      bool `yaml:"valid"`
		Violations []struct {
			Name   string `yaml:"name"`
			Reason string `yaml:"reason"`
		} `yaml:"violations"`
		Total int `yaml:"total_violations"`
	}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &rep))

	assert.False(t, rep.Valid)
	assert.Equal(t, 2, rep.Total)
	require.Len(t, rep.Violations, 2)
	assert.Equal(t, "serde", rep.Violations[0].Name)
}

func TestReporter_NilResult(t *testing.T) {
	var buf bytes.Buffer
	reporter := NewReporter(&buf, FormatText)
	require.NoError(t, reporter.Report(nil))
	assert.Empty(t, buf.String())
}

func TestValidFormat(t *testing.T) {
	for _, f := range []Format{FormatText, FormatJSON, FormatYAML} {
		if !ValidFormat(f) {
			t.Errorf("ValidFormat(%q) = false, want true", f)
		}
	}
	if ValidFormat(Format("xml")) {
		t.Error("ValidFormat(xml) = true, want false")
	}
}
