// Package geocode is a thin client for a Nominatim-compatible reverse
// geocoding service, used to seed address fields from a dropped map pin.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"mapdex/internal/models"
)

// Address is the subset of a reverse-geocode response carried into entry
// address fields.
type Address struct {
	Street  string
	Zip     string
	City    string
	Country string
	State   string
}

// Client calls a Nominatim-compatible /reverse endpoint.
type Client struct {
	base string
	http *http.Client
}

// New creates a geocode client for the service at base.
func New(base string) *Client {
	return &Client{
		base: strings.TrimRight(base, "/"),
		http: &http.Client{Timeout: 10 * time.Second},
	}
}

// nominatim jsonv2 response, address part only.
type reverseResponse struct {
	Address struct {
		Road        string `json:"road"`
		HouseNumber string `json:"house_number"`
		Postcode    string `json:"postcode"`
		City        string `json:"city"`
		Town        string `json:"town"`
		Village     string `json:"village"`
		State       string `json:"state"`
		Country     string `json:"country"`
	} `json:"address"`
}

// Reverse resolves a point to an address. An empty point is rejected before
// any network call.
func (c *Client) Reverse(ctx context.Context, p models.Point) (*Address, error) {
	if p.IsEmpty() {
		return nil, fmt.Errorf("cannot reverse-geocode an empty point")
	}

	url := fmt.Sprintf("%s/reverse?format=jsonv2&lat=%s&lon=%s",
		c.base,
		strconv.FormatFloat(p.Lat, 'f', -1, 64),
		strconv.FormatFloat(p.Lng, 'f', -1, 64),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "mapdex-geocoder/1.0")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("reverse geocode failed with status %d", resp.StatusCode)
	}

	var rr reverseResponse
	if err := json.NewDecoder(resp.Body).Decode(&rr); err != nil {
		return nil, fmt.Errorf("failed to decode reverse geocode response: %w", err)
	}

	street := rr.Address.Road
	if rr.Address.HouseNumber != "" {
		street = strings.TrimSpace(street + " " + rr.Address.HouseNumber)
	}

	city := rr.Address.City
	if city == "" {
		city = rr.Address.Town
	}
	if city == "" {
		city = rr.Address.Village
	}

	return &Address{
		Street:  street,
		Zip:     rr.Address.Postcode,
		City:    city,
		Country: rr.Address.Country,
		State:   rr.Address.State,
	}, nil
}
