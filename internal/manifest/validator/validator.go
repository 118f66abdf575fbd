// Package validator enforces the default-features policy over the
// shared dependency table of a workspace manifest: every entry must be
// a table that sets default-features = false.
package validator

import (
	"fmt"

	"github.com/featlint/featlint/internal/manifest"
)

// defaultFeaturesKey is the attribute checked on every dependency table.
const defaultFeaturesKey = "default-features"

// Violation describes one dependency entry that fails the policy.
type Violation struct {
	// Name is the dependency entry name.
	Name string `json:"name" yaml:"name"`
	// Reason is a one-line description of the failure.
	Reason string `json:"reason" yaml:"reason"`
}

// String renders the violation as a single report line.
func (v Violation) String() string {
	return fmt.Sprintf("'%s': %s", v.Name, v.Reason)
}

// Result holds the outcome of validating one manifest.
type Result struct {
	// Violations lists failing entries in source order.
	Violations []Violation
	// Found lists every entry name in the dependency table, in source
	// order, including excepted and failing entries.
	Found []string
}

// HasViolations reports whether any entry failed the policy.
func (r *Result) HasViolations() bool {
	return r != nil && len(r.Violations) > 0
}

// UnusedExceptions returns the names from exceptions that do not appear
// in the dependency table, preserving list order. Duplicates in the
// input are reported once.
func (r *Result) UnusedExceptions(exceptions []string) []string {
	found := make(map[string]bool, len(r.Found))
	for _, name := range r.Found {
		found[name] = true
	}
	var unused []string
	reported := make(map[string]bool, len(exceptions))
	for _, name := range exceptions {
		if !found[name] && !reported[name] {
			reported[name] = true
			unused = append(unused, name)
		}
	}
	return unused
}

// Classify checks a single dependency entry against the policy.
// It returns nil if the entry is a table with default-features = false,
// and a Violation describing the failure otherwise. All other table
// attributes (version, git, path, features, optional, package) are
// ignored. Pure function of its inputs.
func Classify(name string, value any) *Violation {
	if _, ok := manifest.AsString(value); ok {
		return &Violation{
			Name:   name,
			Reason: "uses simple version string, should be a table with default-features = false",
		}
	}

	table, ok := manifest.AsTable(value)
	if !ok {
		return &Violation{
			Name:   name,
			Reason: "entry is not a table (must set default-features = false)",
		}
	}

	raw, ok := table[defaultFeaturesKey]
	if !ok {
		return &Violation{
			Name:   name,
			Reason: "missing default-features = false",
		}
	}

	flag, ok := manifest.AsBool(raw)
	switch {
	case !ok:
		return &Violation{
			Name:   name,
			Reason: "default-features has unexpected value (must be boolean false)",
		}
	case flag:
		return &Violation{
			Name:   name,
			Reason: "has default-features = true (must be false)",
		}
	}
	return nil
}

// Option configures a Validator.
type Option func(*Validator)

// Validator validates the shared dependency table of a manifest.
type Validator struct {
	exceptions map[string]struct{}
}

// New creates a Validator with the given options.
func New(opts ...Option) *Validator {
	v := &Validator{
		exceptions: map[string]struct{}{},
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// WithExceptions exempts the named entries from classification.
// Excepted entries are still counted as found. Duplicates are immaterial.
func WithExceptions(names []string) Option {
	return func(v *Validator) {
		for _, name := range names {
			v.exceptions[name] = struct{}{}
		}
	}
}

// Validate parses the manifest text and checks every entry of
// [workspace.dependencies] against the policy.
//
// Parse failures and schema failures (missing [workspace], missing
// [workspace.dependencies], or a non-table dependencies value) abort
// with an error and no Result. Policy violations never abort: all
// entries are classified and every violation is collected, in source
// order. An empty dependency table yields an empty Result.
//
// Validate performs no I/O and does not retain or mutate data; it is
// safe to call concurrently.
func (v *Validator) Validate(data []byte) (*Result, error) {
	m, err := manifest.Parse(data)
	if err != nil {
		return nil, err
	}

	deps, err := m.WorkspaceDependencies()
	if err != nil {
		return nil, err
	}

	result := &Result{}
	for _, dep := range deps {
		result.Found = append(result.Found, dep.Name)
		if _, skip := v.exceptions[dep.Name]; skip {
			continue
		}
		if violation := Classify(dep.Name, dep.Value); violation != nil {
			result.Violations = append(result.Violations, *violation)
		}
	}
	return result, nil
}
