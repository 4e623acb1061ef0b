package nav

import "fmt"

// NormalizeParam collapses the shapes a query parameter can arrive in (a
// single string, a list, or nothing at all) into the canonical ordered
// segment list used everywhere else. A nil or empty value yields an empty
// list, never nil access downstream.
func NormalizeParam(v any) []string {
	switch p := v.(type) {
	case nil:
		return []string{}
	case string:
		if p == "" {
			return []string{}
		}
		return []string{p}
	case []string:
		out := make([]string, len(p))
		copy(out, p)
		return out
	case []any:
		out := make([]string, 0, len(p))
		for _, e := range p {
			if s, ok := e.(string); ok {
				out = append(out, s)
			} else {
				out = append(out, fmt.Sprint(e))
			}
		}
		return out
	default:
		return []string{fmt.Sprint(p)}
	}
}
