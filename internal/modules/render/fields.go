// README: Defensive field accessors for loosely-typed planner objects.
package render

import (
	"fmt"
	"sort"
	"strconv"
)

func obj(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

// seq returns the field as a slice plus whether the key held one at all.
// An empty-but-present sequence still claims its section's precedence.
func seq(m map[string]any, key string) ([]any, bool) {
	s, ok := m[key].([]any)
	return s, ok
}

func str(v any) string {
	s, _ := v.(string)
	return s
}

func num(v any) (float64, bool) {
	f, ok := v.(float64)
	return f, ok
}

// first tries alternate key names for one concept; first non-empty string wins.
func first(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if s := str(m[k]); s != "" {
			return s
		}
	}
	return ""
}

// stringify renders strings and numbers for display; other shapes are spelled
// out with fmt so nothing silently disappears.
func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return formatNum(t)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}

func formatNum(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// sortedKeys gives breakdown sections a stable order; map iteration would make
// Render nondeterministic.
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
