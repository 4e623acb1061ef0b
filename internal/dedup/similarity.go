// Package dedup scores near-duplicate entry candidates for the
// duplicate-check endpoint.
package dedup

import (
	"math"
	"strings"
	"unicode"

	"mapdex/internal/models"
)

const (
	// MaxDuplicateDistance is the radius in meters within which two entries
	// are considered co-located.
	MaxDuplicateDistance = 100.0

	// MinTitleSimilarity is the word-overlap threshold above which two
	// titles are considered similar.
	MinTitleSimilarity = 0.3

	earthRadiusMeters = 6_371_000.0
)

// Haversine returns the great-circle distance between two points in meters.
func Haversine(aLat, aLng, bLat, bLng float64) float64 {
	rad := math.Pi / 180
	dLat := (bLat - aLat) * rad
	dLng := (bLng - aLng) * rad

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(aLat*rad)*math.Cos(bLat*rad)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusMeters * math.Asin(math.Sqrt(h))
}

// TitleSimilarity returns the word-set overlap of two titles in [0,1]
// (Jaccard index over normalized words).
func TitleSimilarity(a, b string) float64 {
	wa := wordSet(a)
	wb := wordSet(b)
	if len(wa) == 0 || len(wb) == 0 {
		return 0
	}

	common := 0
	for w := range wa {
		if wb[w] {
			common++
		}
	}
	union := len(wa) + len(wb) - common
	return float64(common) / float64(union)
}

// IsPossibleDuplicate reports whether candidate is a near duplicate of the
// submitted payload: co-located within MaxDuplicateDistance and carrying a
// similar title.
func IsPossibleDuplicate(candidate, submitted models.DuplicatePayload) bool {
	if Haversine(candidate.Lat, candidate.Lng, submitted.Lat, submitted.Lng) > MaxDuplicateDistance {
		return false
	}
	return TitleSimilarity(candidate.Title, submitted.Title) >= MinTitleSimilarity
}

// wordSet lowercases s, strips everything but letters and digits, and
// returns the set of remaining words.
func wordSet(s string) map[string]bool {
	words := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}
