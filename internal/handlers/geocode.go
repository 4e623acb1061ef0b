package handlers

import (
	"net/url"

	"github.com/gofiber/fiber/v3"

	"mapdex/internal/geocode"
	"mapdex/internal/models"
)

// GeocodeHandler seeds address fields of the create form from a dropped map
// pin.
type GeocodeHandler struct {
	geo *geocode.Client
}

// NewGeocodeHandler creates a new geocode handler.
func NewGeocodeHandler(geo *geocode.Client) *GeocodeHandler {
	return &GeocodeHandler{geo: geo}
}

// Reverse resolves the pin-coordinate query parameters to an address. This
// call may race with a concurrent submission; the submission never waits
// for it.
func (h *GeocodeHandler) Reverse(c fiber.Ctx) error {
	q := url.Values{}
	q.Set("lat", c.Query("lat", ""))
	q.Set("lng", c.Query("lng", ""))

	point := models.PointFromParams(q, "lat", "lng")
	if point.IsEmpty() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status": "error",
			"error":  "lat and lng are required",
		})
	}

	addr, err := h.geo.Reverse(c.Context(), point)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"status": "error",
			"error":  "reverse geocoding failed",
		})
	}

	return c.JSON(fiber.Map{
		"status": "ok",
		"data": fiber.Map{
			"street":  addr.Street,
			"zip":     addr.Zip,
			"city":    addr.City,
			"country": addr.Country,
			"state":   addr.State,
		},
	})
}
