// Package normalize tidies raw form and query values before they are
// validated or sent to the backend.
package normalize

import "strings"

// Name trims surrounding whitespace and collapses inner runs to one space.
// Case is preserved.
func Name(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Username trims a login name. The backend matches it exactly.
func Username(s string) string {
	return strings.TrimSpace(s)
}

// QueryParam trims a free-text query value.
func QueryParam(s string) string {
	return strings.TrimSpace(s)
}

// FilterID turns a select value into an id filter. "", "all" and "any"
// mean no filter.
func FilterID(s string) string {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "", "all", "any":
		return ""
	}
	return s
}

// IDs trims ids, drops blanks and keeps the first occurrence of each.
func IDs(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, id := range in {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
