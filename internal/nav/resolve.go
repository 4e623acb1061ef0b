package nav

import (
	"net/url"
	"slices"
	"strings"

	"mapdex/internal/models"
)

// SlugKey is the query key under which the current slug travels when a
// redirect target is computed.
const SlugKey = "slug"

// categoryRoutes maps an entry category to its slug route token. A flat
// table, not a hierarchy: initiatives and companies share one detail view.
var categoryRoutes = map[string]string{
	models.CategoryInitiative: RouteEntities,
	models.CategoryCompany:    RouteEntities,
}

// RouteForCategory returns the slug route token for a category. Unknown
// categories fall back to the shared entity detail route.
func RouteForCategory(category string) string {
	if r, ok := categoryRoutes[category]; ok {
		return r
	}
	return RouteEntities
}

// Resolve builds the redirect target for jumping into an entity's detail
// view: decode the current slug, truncate the chain to depth entries (0
// starts a fresh chain and drops any sub-resource context), append the
// target entity, and re-encode. Query keys in strip (pin-coordinate seeds
// and the like) are removed so they do not leak into the destination URL.
// The caller's query is never mutated; the returned values are a fresh copy.
func Resolve(query url.Values, targetID, category string, depth int, strip []string) (string, url.Values) {
	d := Decode(NormalizeParam(query[SlugKey]))

	if depth < 0 {
		depth = 0
	}
	if depth < len(d.Chain) {
		d.Chain = d.Chain[:depth]
	}
	d.Verb = ""
	d.Chain = append(d.Chain, ChainEntry{
		Kind: KindEntity,
		Type: RouteForCategory(category),
		ID:   targetID,
	})

	path := BasePath + "/" + strings.Join(Encode(d), "/")

	out := url.Values{}
	for k, vs := range query {
		if k == SlugKey || slices.Contains(strip, k) {
			continue
		}
		out[k] = append([]string(nil), vs...)
	}

	return path, out
}
