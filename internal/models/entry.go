package models

import "time"

// Entry categories. Initiatives and companies are separate categories in the
// data model but share a single detail view in the frontend.
const (
	CategoryInitiative = "initiative"
	CategoryCompany    = "company"
)

// Licenses accepted for newly created entries.
const (
	LicenseCC0  = "CC0-1.0"
	LicenseODbL = "ODbL-1.0"
)

// CustomLink is a user-supplied link attached to an entry.
type CustomLink struct {
	URL         string `json:"url"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
}

// Entry is a directory entry: a place or organization shown on the map.
type Entry struct {
	ID           string       `json:"id"`
	Version      int          `json:"version"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	Lat          float64      `json:"lat"`
	Lng          float64      `json:"lng"`
	Street       string       `json:"street,omitempty"`
	Zip          string       `json:"zip,omitempty"`
	City         string       `json:"city,omitempty"`
	Country      string       `json:"country,omitempty"`
	State        string       `json:"state,omitempty"`
	Contact      string       `json:"contact,omitempty"`
	Telephone    string       `json:"telephone,omitempty"`
	Email        string       `json:"email,omitempty"`
	Homepage     string       `json:"homepage,omitempty"`
	OpeningHours string       `json:"opening_hours,omitempty"`
	ImageURL     string       `json:"image_url,omitempty"`
	ImageLinkURL string       `json:"image_link_url,omitempty"`
	Tags         []string     `json:"tags"`
	Categories   []string     `json:"categories"`
	Links        []CustomLink `json:"links"`
	License      string       `json:"license,omitempty"`
	OrgTag       string       `json:"org_tag,omitempty"`
	Archived     bool         `json:"-"`
	CreatedAt    time.Time    `json:"created"`
	UpdatedAt    time.Time    `json:"-"`
}

// SearchResult is the reduced projection of an entry used in search responses
// and the in-memory result collection.
type SearchResult struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Lat         float64  `json:"lat"`
	Lng         float64  `json:"lng"`
	Categories  []string `json:"categories"`
	Tags        []string `json:"tags"`
}

// SearchResult converts an entry into its search-result projection.
func (e *Entry) SearchResult() SearchResult {
	return SearchResult{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Lat:         e.Lat,
		Lng:         e.Lng,
		Categories:  e.Categories,
		Tags:        e.Tags,
	}
}
