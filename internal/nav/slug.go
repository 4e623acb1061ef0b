// Package nav implements the slug-based navigation addressing scheme: the
// codec between `/maps/<slug>` path segments and a structured navigation
// descriptor, and the resolver that builds redirect targets from it.
package nav

import "strings"

// Route tokens: plural resource names recognized in a slug.
const (
	RouteEntities = "entities"
	RouteRatings  = "ratings"
	RouteComments = "comments"
)

// Verb tokens: trailing slug segments indicating form intent.
const (
	VerbCreate = "create"
	VerbEdit   = "edit"
)

// BasePath is the path prefix under which slugs are mounted.
const BasePath = "/maps"

var routeTokens = map[string]bool{
	RouteEntities: true,
	RouteRatings:  true,
	RouteComments: true,
}

// IsRouteToken reports whether s is a recognized entity-type token.
func IsRouteToken(s string) bool {
	return routeTokens[s]
}

// IsVerb reports whether s is a recognized verb token.
func IsVerb(s string) bool {
	return s == VerbCreate || s == VerbEdit
}

// EntryKind tags a chain entry as a recognized entity type or an unknown
// token carried through opaquely. Unknown tokens never fail decoding; they
// surface as not-found states downstream instead.
type EntryKind int

const (
	KindEntity EntryKind = iota
	KindUnknown
)

// ChainEntry is one step of the entity chain: an entity type plus an
// optional id, or an unrecognized token.
type ChainEntry struct {
	Kind EntryKind
	Type string
	ID   string
}

// Descriptor is the decoded form of a slug: an entity chain plus an optional
// trailing verb.
type Descriptor struct {
	Chain []ChainEntry
	Verb  string
}

// Decode converts slug segments into a descriptor. Segments are consumed
// left to right: each entity-type token opens a chain entry, and the
// following segment is consumed as its id unless it is itself a type or verb
// token. A recognized verb in final position is stripped off the chain and
// set as the descriptor's verb. Decoding never fails: tokens that fit
// nowhere become unknown entries, and an empty segment list decodes to an
// empty chain. Hand-edited URLs must never crash the caller.
func Decode(segments []string) Descriptor {
	var d Descriptor

	if n := len(segments); n > 0 && IsVerb(segments[n-1]) {
		d.Verb = segments[n-1]
		segments = segments[:n-1]
	}

	for i := 0; i < len(segments); i++ {
		tok := segments[i]
		if !IsRouteToken(tok) {
			d.Chain = append(d.Chain, ChainEntry{Kind: KindUnknown, Type: tok})
			continue
		}
		entry := ChainEntry{Kind: KindEntity, Type: tok}
		if i+1 < len(segments) && !IsRouteToken(segments[i+1]) && !IsVerb(segments[i+1]) {
			entry.ID = segments[i+1]
			i++
		}
		d.Chain = append(d.Chain, entry)
	}

	return d
}

// Encode converts a descriptor back into slug segments: type then id per
// chain entry, verb last. For descriptors produced by Decode,
// Decode(Encode(d)) == d.
func Encode(d Descriptor) []string {
	segs := make([]string, 0, 2*len(d.Chain)+1)
	for _, e := range d.Chain {
		segs = append(segs, e.Type)
		if e.Kind == KindEntity && e.ID != "" {
			segs = append(segs, e.ID)
		}
	}
	if d.Verb != "" {
		segs = append(segs, d.Verb)
	}
	return segs
}

// SlugFromPath extracts slug segments from a request path, stripping the
// /maps prefix and empty segments.
func SlugFromPath(path string) []string {
	path = strings.TrimPrefix(path, BasePath)
	var segs []string
	for _, s := range strings.Split(path, "/") {
		if s != "" {
			segs = append(segs, s)
		}
	}
	return segs
}
