// Package ratings provides the read-side transforms for displaying ratings:
// grouping a flat rating list by context and splitting a rating's comment
// list into a root comment plus replies.
package ratings

import (
	"errors"
	"sort"

	"mapdex/internal/models"
)

// ErrNoComments is returned when a rating arrives without any comment.
// Every rating is created with a root comment, so a zero-comment rating is a
// data error; no placeholder root is invented.
var ErrNoComments = errors.New("rating has no comments")

// Group groups ratings by context. Within each group the relative input
// order of ratings is preserved.
func Group(rs []models.Rating) map[string][]models.Rating {
	grouped := make(map[string][]models.Rating)
	for _, r := range rs {
		grouped[r.Context] = append(grouped[r.Context], r)
	}
	return grouped
}

// SortedContexts returns the contexts of a grouped rating map in lexical
// order. The order is deterministic for the same input, so repeated renders
// of the same data agree.
func SortedContexts(grouped map[string][]models.Rating) []string {
	contexts := make([]string, 0, len(grouped))
	for c := range grouped {
		contexts = append(contexts, c)
	}
	sort.Strings(contexts)
	return contexts
}

// Thread splits a rating's comments into the root comment and its replies,
// order preserved.
func Thread(r models.Rating) (root models.RatingComment, replies []models.RatingComment, err error) {
	if len(r.Comments) == 0 {
		return models.RatingComment{}, nil, ErrNoComments
	}
	return r.Comments[0], r.Comments[1:], nil
}
