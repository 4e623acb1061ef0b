package models

import (
	"net/url"
	"strconv"
)

// Point is a geographic coordinate that may be empty (unset). Empty points
// come from absent or unparsable pin-coordinate query parameters.
type Point struct {
	Lat float64
	Lng float64
	Set bool
}

// NewPoint returns a non-empty point at the given coordinates.
func NewPoint(lat, lng float64) Point {
	return Point{Lat: lat, Lng: lng, Set: true}
}

// IsEmpty reports whether the point is unset.
func (p Point) IsEmpty() bool {
	return !p.Set
}

// PointFromParams reads a point from query parameters. Missing or malformed
// values yield an empty point, never an error.
func PointFromParams(q url.Values, latKey, lngKey string) Point {
	lat, err := strconv.ParseFloat(q.Get(latKey), 64)
	if err != nil {
		return Point{}
	}
	lng, err := strconv.ParseFloat(q.Get(lngKey), 64)
	if err != nil {
		return Point{}
	}
	return NewPoint(lat, lng)
}
