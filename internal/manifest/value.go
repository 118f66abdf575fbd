package manifest

// Shape accessors for generic tree nodes. Each returns the typed value
// and whether the node has that shape, so callers can branch on shape
// without reflection or panics.

// AsTable returns v as a table if it is one.
func AsTable(v any) (map[string]any, bool) {
	t, ok := v.(map[string]any)
	return t, ok
}

// AsString returns v as a string if it is one.
func AsString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// AsBool returns v as a bool if it is one.
func AsBool(v any) (bool, bool) {
	b, ok := v.(bool)
	return b, ok
}
