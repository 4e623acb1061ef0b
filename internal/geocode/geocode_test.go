package geocode

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"mapdex/internal/models"
)

func reverseServer(t *testing.T, address map[string]string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/reverse" {
			t.Errorf("path = %s, want /reverse", r.URL.Path)
		}
		if got := r.URL.Query().Get("format"); got != "jsonv2" {
			t.Errorf("format = %q, want jsonv2", got)
		}
		json.NewEncoder(w).Encode(map[string]any{"address": address})
	}))
}

func TestReverse(t *testing.T) {
	srv := reverseServer(t, map[string]string{
		"road":         "Marienplatz",
		"house_number": "8",
		"postcode":     "80331",
		"city":         "München",
		"state":        "Bayern",
		"country":      "Deutschland",
	})
	defer srv.Close()

	c := New(srv.URL)
	addr, err := c.Reverse(context.Background(), models.NewPoint(48.1374, 11.5755))
	if err != nil {
		t.Fatalf("Reverse() error = %v", err)
	}

	if addr.Street != "Marienplatz 8" {
		t.Errorf("Street = %q, want road + house number", addr.Street)
	}
	if addr.Zip != "80331" || addr.City != "München" || addr.State != "Bayern" || addr.Country != "Deutschland" {
		t.Errorf("address = %+v", addr)
	}
}

func TestReverseCityFallback(t *testing.T) {
	tests := []struct {
		name    string
		address map[string]string
		want    string
	}{
		{"city preferred", map[string]string{"city": "München", "town": "Pasing"}, "München"},
		{"town when no city", map[string]string{"town": "Freising"}, "Freising"},
		{"village when nothing else", map[string]string{"village": "Oberdorf"}, "Oberdorf"},
		{"empty when all absent", map[string]string{"road": "Feldweg"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := reverseServer(t, tt.address)
			defer srv.Close()

			addr, err := New(srv.URL).Reverse(context.Background(), models.NewPoint(48, 11))
			if err != nil {
				t.Fatalf("Reverse() error = %v", err)
			}
			if addr.City != tt.want {
				t.Errorf("City = %q, want %q", addr.City, tt.want)
			}
		})
	}
}

func TestReverseEmptyPoint(t *testing.T) {
	c := New("http://unreachable.invalid")
	if _, err := c.Reverse(context.Background(), models.Point{}); err == nil {
		t.Error("Reverse() accepted an empty point")
	}
}

func TestReverseUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	if _, err := New(srv.URL).Reverse(context.Background(), models.NewPoint(48, 11)); err == nil {
		t.Error("Reverse() error = nil, want upstream failure")
	}
}
