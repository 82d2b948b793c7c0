package registry

// Args are the decoded arguments of one tool call, already validated
// against the tool's schema.
type Args map[string]any

// String returns a string argument, or "" when absent.
func (a Args) String(key string) string {
	v, _ := a[key].(string)
	return v
}

// Int returns an integer argument, or 0 when absent. JSON numbers decode
// as float64 and are truncated.
func (a Args) Int(key string) int {
	switch v := a[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}

// Has reports whether the argument was provided.
func (a Args) Has(key string) bool {
	_, ok := a[key]
	return ok
}
