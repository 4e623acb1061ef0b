package models

import "time"

// Rating contexts. Each rating judges an entry along exactly one of these
// dimensions; the display layer groups ratings by context.
const (
	ContextDiversity    = "diversity"
	ContextFairness     = "fairness"
	ContextHumanity     = "humanity"
	ContextRenewable    = "renewable"
	ContextSolidarity   = "solidarity"
	ContextTransparency = "transparency"
)

// RatingContexts lists all valid rating contexts.
var RatingContexts = []string{
	ContextDiversity,
	ContextFairness,
	ContextHumanity,
	ContextRenewable,
	ContextSolidarity,
	ContextTransparency,
}

// IsRatingContext reports whether s is a known rating context.
func IsRatingContext(s string) bool {
	for _, c := range RatingContexts {
		if c == s {
			return true
		}
	}
	return false
}

// RatingComment is a single comment on a rating. The first comment of a
// rating is its root comment; all later comments are replies.
type RatingComment struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created"`
}

// Rating is a user rating of an entry. Comments are ordered oldest-first;
// the ordering is load-bearing (root comment first, then replies).
type Rating struct {
	ID        string          `json:"id"`
	EntryID   string          `json:"entry"`
	Context   string          `json:"context"`
	Title     string          `json:"title"`
	Value     int             `json:"value"`
	Source    string          `json:"source,omitempty"`
	Comments  []RatingComment `json:"comments"`
	CreatedAt time.Time       `json:"created"`
}
