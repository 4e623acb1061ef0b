// Package forms normalizes entry form payloads before they are sent to the
// API: filling defaults, applying per-field value rules, and renaming widget
// field names to their wire names.
package forms

// Rule transforms a single field value.
type Rule func(any) any

// FillDefaults returns a copy of entry where every key of defaults that is
// absent or nil on entry is set to its default. Present non-nil values are
// never overwritten, so filling twice equals filling once.
func FillDefaults(entry map[string]any, defaults map[string]any) map[string]any {
	out := clone(entry)
	for k, def := range defaults {
		if cur, ok := out[k]; !ok || cur == nil {
			out[k] = def
		}
	}
	return out
}

// ApplyRules returns a copy of entry where every field present in both entry
// and rules is replaced by rule(value). Fields without a rule pass through.
func ApplyRules(entry map[string]any, rules map[string]Rule) map[string]any {
	out := clone(entry)
	for k, rule := range rules {
		if cur, ok := out[k]; ok {
			out[k] = rule(cur)
		}
	}
	return out
}

// RenameFields returns a copy of entry where every key of renames is moved
// to its mapped name; all other keys pass through unchanged.
func RenameFields(entry map[string]any, renames map[string]string) map[string]any {
	out := clone(entry)
	for old, new := range renames {
		if v, ok := out[old]; ok {
			delete(out, old)
			out[new] = v
		}
	}
	return out
}

// SubmissionDefaults fills the fields a freshly collected form may omit.
var SubmissionDefaults = map[string]any{
	"tags":         []any{},
	"custom_links": []any{},
	"version":      0,
}

// SubmissionRules are the value transforms required by the submission
// workflow: edits advance the version counter by exactly one (optimistic,
// last-write-wins), and the license checkbox-group array collapses to the
// scalar wire format.
var SubmissionRules = map[string]Rule{
	"version": incrementVersion,
	"license": firstLicense,
}

// SubmissionRenames maps widget field names to wire field names.
var SubmissionRenames = map[string]string{
	"custom_links": "links",
}

// ForSubmission runs the full pipeline in its fixed order:
// FillDefaults, then ApplyRules, then RenameFields.
func ForSubmission(entry map[string]any) map[string]any {
	out := FillDefaults(entry, SubmissionDefaults)
	out = ApplyRules(out, SubmissionRules)
	return RenameFields(out, SubmissionRenames)
}

func clone(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// incrementVersion advances the version counter regardless of server state.
// JSON-decoded payloads carry numbers as float64; both shapes normalize to
// an int on the wire.
func incrementVersion(v any) any {
	switch n := v.(type) {
	case int:
		return n + 1
	case float64:
		return int(n) + 1
	}
	return v
}

// firstLicense collapses a license checkbox-group array to a scalar: the
// first selected license, or the empty string.
func firstLicense(v any) any {
	switch l := v.(type) {
	case string:
		return l
	case []string:
		if len(l) > 0 {
			return l[0]
		}
	case []any:
		if len(l) > 0 {
			if s, ok := l[0].(string); ok {
				return s
			}
		}
	}
	return ""
}
