package widget

import "sort"

// Accessors for loosely-typed config maps. JSON decoding yields float64 for
// every number and []any for every array, so the helpers coerce around that.

func strOr(m map[string]any, key, def string) string {
	if m == nil {
		return def
	}
	if s, ok := m[key].(string); ok && s != "" {
		return s
	}
	return def
}

func boolOr(m map[string]any, key string, def bool) bool {
	if m == nil {
		return def
	}
	if b, ok := m[key].(bool); ok {
		return b
	}
	return def
}

func isFalse(m map[string]any, key string) bool {
	if m == nil {
		return false
	}
	b, ok := m[key].(bool)
	return ok && !b
}

func isTrue(m map[string]any, key string) bool {
	if m == nil {
		return false
	}
	b, ok := m[key].(bool)
	return ok && b
}

func numOr(m map[string]any, key string, def float64) float64 {
	if m == nil {
		return def
	}
	switch v := m[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	}
	return def
}

// valueOr keeps any scalar already present (a KPI value may be a number or a
// string) and falls back to def only when the key is absent or nil.
func valueOr(m map[string]any, key string, def any) any {
	if m == nil {
		return def
	}
	if v, ok := m[key]; ok && v != nil {
		return v
	}
	return def
}

func mapValue(m map[string]any, key string) (map[string]any, bool) {
	if m == nil {
		return nil, false
	}
	v, ok := m[key].(map[string]any)
	return v, ok
}

func sliceValue(m map[string]any, key string) ([]any, bool) {
	if m == nil {
		return nil, false
	}
	v, ok := m[key].([]any)
	return v, ok
}

func hasSlice(m map[string]any, key string) bool {
	if m == nil {
		return false
	}
	switch m[key].(type) {
	case []any, []string:
		return true
	}
	return false
}

func rowsOr(m map[string]any, key string) []any {
	if v, ok := sliceValue(m, key); ok {
		return v
	}
	return []any{}
}

func strSliceOr(m map[string]any, key string) []string {
	out := []string{}
	if m == nil {
		return out
	}
	switch v := m[key].(type) {
	case []string:
		return v
	case []any:
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
	}
	return out
}

func sortStrings(s []string) {
	sort.Strings(s)
}

func withoutField(fields []string, field string) []string {
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f != field {
			out = append(out, f)
		}
	}
	return out
}
