package datasource

import (
	"regexp"
	"strconv"
	"strings"
)

var pathSegment = regexp.MustCompile(`^(\w+)(\[(\d+)\])?$`)

// GetByPath walks decoded JSON with a dotted path like "data[0].price".
// Each segment is a key with an optional index; indexing a non-array or
// stepping into a missing key yields nil. An empty path yields nil.
func GetByPath(obj any, path string) any {
	if path == "" {
		return nil
	}

	cur := obj
	for _, part := range strings.Split(path, ".") {
		if cur == nil {
			return nil
		}

		m := pathSegment.FindStringSubmatch(part)
		if m == nil {
			cur = keyOf(cur, part)
			continue
		}

		cur = keyOf(cur, m[1])
		if m[3] != "" {
			arr, ok := cur.([]any)
			if !ok {
				return nil
			}
			idx, _ := strconv.Atoi(m[3])
			if idx >= len(arr) {
				return nil
			}
			cur = arr[idx]
		}
	}
	return cur
}

func keyOf(obj any, key string) any {
	m, ok := obj.(map[string]any)
	if !ok {
		return nil
	}
	return m[key]
}
