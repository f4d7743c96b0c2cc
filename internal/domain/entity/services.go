package entity

import (
	"encoding/json"
	"strings"
)

// NormalizeServices flattens stored service tags. Historical writes stored
// either plain strings or JSON-encoded arrays of strings; both forms are
// expanded, trimmed, deduplicated and kept in first-seen order. Values of
// any other shape yield an empty list.
func NormalizeServices(raw interface{}) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)

	add := func(tag string) {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			return
		}
		if _, dup := seen[tag]; dup {
			return
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}

	var visit func(v interface{}, depth int)
	visit = func(v interface{}, depth int) {
		switch t := v.(type) {
		case string:
			if depth < 3 {
				trimmed := strings.TrimSpace(t)
				if strings.HasPrefix(trimmed, "[") || strings.HasPrefix(trimmed, "\"") {
					var decoded interface{}
					if err := json.Unmarshal([]byte(trimmed), &decoded); err == nil {
						visit(decoded, depth+1)
						return
					}
				}
			}
			add(t)
		case []string:
			for _, item := range t {
				visit(item, depth)
			}
		case []interface{}:
			for _, item := range t {
				visit(item, depth)
			}
		}
	}

	visit(raw, 0)
	return out
}

// ServicesEqual reports whether two tag lists are identical in order.
func ServicesEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
