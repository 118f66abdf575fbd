// Package manifest parses workspace manifests into a generic value tree
// and locates the shared dependency table.
package manifest

import (
	"sort"

	"github.com/cockroachdb/errors"
	"github.com/pelletier/go-toml/v2"
	"github.com/pelletier/go-toml/v2/unstable"
)

// Sentinel errors for schema failures.
var (
	// ErrNoWorkspace indicates the manifest has no [workspace] section.
	ErrNoWorkspace = errors.New("no [workspace] section found")

	// ErrNoDependencies indicates the manifest has no [workspace.dependencies] section.
	ErrNoDependencies = errors.New("no [workspace.dependencies] section found")

	// ErrDependenciesNotTable indicates [workspace.dependencies] exists but is not a table.
	ErrDependenciesNotTable = errors.New("[workspace.dependencies] is not a table")
)

// Manifest is a parsed workspace manifest. It is read-only after Parse.
type Manifest struct {
	root map[string]any
	data []byte
}

// Dependency is one named entry in the shared dependency table.
// Value is a generic tree node: string, bool, int64, float64,
// []any, or map[string]any.
type Dependency struct {
	Name  string
	Value any
}

// Parse parses manifest text. The input is not retained beyond the
// returned Manifest and is never modified.
func Parse(data []byte) (*Manifest, error) {
	var root map[string]any
	if err := toml.Unmarshal(data, &root); err != nil {
		return nil, errors.Wrap(err, "parsing manifest")
	}
	return &Manifest{root: root, data: data}, nil
}

// WorkspaceDependencies returns the entries of [workspace.dependencies]
// in order of first appearance in the source text.
//
// A missing [workspace] section, a missing [workspace.dependencies]
// section, or a dependencies value that is not a table is a schema
// error; an empty dependencies table is not.
func (m *Manifest) WorkspaceDependencies() ([]Dependency, error) {
	workspace, ok := m.root["workspace"]
	if !ok {
		return nil, ErrNoWorkspace
	}

	// A non-table workspace value cannot hold a dependencies key, which
	// reads the same as the key being absent.
	wsTable, ok := AsTable(workspace)
	if !ok {
		return nil, ErrNoDependencies
	}

	dependencies, ok := wsTable["dependencies"]
	if !ok {
		return nil, ErrNoDependencies
	}

	depsTable, ok := AsTable(dependencies)
	if !ok {
		return nil, ErrDependenciesNotTable
	}

	order, err := dependencyOrder(m.data)
	if err != nil {
		return nil, err
	}

	deps := make([]Dependency, 0, len(depsTable))
	emitted := make(map[string]bool, len(depsTable))
	for _, name := range order {
		value, ok := depsTable[name]
		if !ok || emitted[name] {
			continue
		}
		emitted[name] = true
		deps = append(deps, Dependency{Name: name, Value: value})
	}

	// The document scan should account for every key. If it ever does
	// not, fall back to sorted order for the remainder so no entry is
	// silently dropped.
	if len(deps) < len(depsTable) {
		var rest []string
		for name := range depsTable {
			if !emitted[name] {
				rest = append(rest, name)
			}
		}
		sort.Strings(rest)
		for _, name := range rest {
			deps = append(deps, Dependency{Name: name, Value: depsTable[name]})
		}
	}

	return deps, nil
}

// dependencyOrder scans the raw document and returns the names declared
// under workspace.dependencies in source order. It recognizes inline
// keys under the [workspace.dependencies] table header, explicit
// [workspace.dependencies.<name>] subtables, and dotted keys.
func dependencyOrder(data []byte) ([]string, error) {
	var (
		names []string
		seen  = map[string]bool{}
		table []string
	)
	record := func(name string) {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}

	parser := &unstable.Parser{}
	parser.Reset(data)
	for parser.NextExpression() {
		expr := parser.Expression()
		switch expr.Kind {
		case unstable.Table, unstable.ArrayTable:
			table = keyParts(expr)
			if isDependencyKey(table) {
				record(table[2])
			}
		case unstable.KeyValue:
			key := append(append([]string(nil), table...), keyParts(expr)...)
			if isDependencyKey(key) {
				record(key[2])
			}
		}
	}
	if err := parser.Error(); err != nil {
		return nil, errors.Wrap(err, "scanning manifest")
	}
	return names, nil
}

// isDependencyKey reports whether an absolute key path names an entry
// inside workspace.dependencies.
func isDependencyKey(key []string) bool {
	return len(key) >= 3 && key[0] == "workspace" && key[1] == "dependencies"
}

// keyParts flattens a (possibly dotted) key node into its string parts.
func keyParts(node *unstable.Node) []string {
	var parts []string
	it := node.Key()
	for it.Next() {
		parts = append(parts, string(it.Node().Data))
	}
	return parts
}
