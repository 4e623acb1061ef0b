package api

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3"

	"mapdex/internal/db"
	"mapdex/internal/models"
	"mapdex/internal/results"
)

// SearchHandler handles the map search endpoint.
type SearchHandler struct {
	db      *db.DB
	results *results.Collection
}

// NewSearchHandler creates a new API search handler.
func NewSearchHandler(database *db.DB, collection *results.Collection) *SearchHandler {
	return &SearchHandler{db: database, results: collection}
}

// Search returns search results inside a bounding box, freshly created
// entries overlaid first. bbox is "south,west,north,east".
func (h *SearchHandler) Search(c fiber.Ctx) error {
	bbox, err := parseBBox(c.Query("bbox", ""))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	}

	text := c.Query("text", "")
	entries, err := h.db.SearchEntries(c.Context(), bbox[0], bbox[1], bbox[2], bbox[3], text, 200)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "search failed")
	}

	rs := make([]models.SearchResult, 0, len(entries))
	for i := range entries {
		rs = append(rs, entries[i].SearchResult())
	}

	return jsonSuccess(c, h.results.Merge(rs))
}

// parseBBox parses a "south,west,north,east" bounding box.
func parseBBox(s string) ([4]float64, error) {
	var bbox [4]float64
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return bbox, fiber.NewError(fiber.StatusBadRequest, "bbox must be south,west,north,east")
	}
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return bbox, fiber.NewError(fiber.StatusBadRequest, "bbox must be numeric")
		}
		bbox[i] = v
	}
	return bbox, nil
}
