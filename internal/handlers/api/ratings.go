package api

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v3"

	"mapdex/internal/db"
	"mapdex/internal/models"
)

// RatingHandler handles rating and comment creation plus the batched
// ratings fetch.
type RatingHandler struct {
	db *db.DB
}

// NewRatingHandler creates a new API rating handler.
func NewRatingHandler(database *db.DB) *RatingHandler {
	return &RatingHandler{db: database}
}

// Create creates a rating together with its root comment. A rating never
// exists without a comment.
func (h *RatingHandler) Create(c fiber.Ctx) error {
	var body struct {
		Entry   string `json:"entry"`
		Context string `json:"context"`
		Title   string `json:"title"`
		Value   int    `json:"value"`
		Source  string `json:"source"`
		Comment string `json:"comment"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if body.Entry == "" {
		return jsonError(c, fiber.StatusBadRequest, "entry is required")
	}
	if !models.IsRatingContext(body.Context) {
		return jsonError(c, fiber.StatusBadRequest, "unknown rating context")
	}
	if strings.TrimSpace(body.Comment) == "" {
		return jsonError(c, fiber.StatusBadRequest, "a comment is required")
	}
	if body.Value < -1 || body.Value > 2 {
		return jsonError(c, fiber.StatusBadRequest, "value must be between -1 and 2")
	}

	if _, err := h.db.GetEntry(c.Context(), body.Entry, ""); err != nil {
		if errors.Is(err, db.ErrEntryNotFound) {
			return jsonError(c, fiber.StatusNotFound, "entry not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch entry")
	}

	rating := models.Rating{
		EntryID: body.Entry,
		Context: body.Context,
		Title:   body.Title,
		Value:   body.Value,
		Source:  body.Source,
	}
	if err := h.db.CreateRating(c.Context(), &rating, body.Comment); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to create rating")
	}

	return jsonCreated(c, rating.ID)
}

// CreateComment appends a reply comment to an existing rating.
func (h *RatingHandler) CreateComment(c fiber.Ctx) error {
	var body struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if strings.TrimSpace(body.Text) == "" {
		return jsonError(c, fiber.StatusBadRequest, "text is required")
	}

	comment := models.RatingComment{Text: body.Text}
	if err := h.db.CreateComment(c.Context(), c.Params("id"), &comment); err != nil {
		if errors.Is(err, db.ErrRatingNotFound) {
			return jsonError(c, fiber.StatusNotFound, "rating not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to create comment")
	}

	return jsonCreated(c, comment.ID)
}

// GetByIDs returns ratings by comma-joined id list, comments included in
// creation order. Unknown ids are skipped rather than failing the batch.
func (h *RatingHandler) GetByIDs(c fiber.Ctx) error {
	raw := c.Params("ids")
	var ids []string
	for _, id := range strings.Split(raw, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return jsonError(c, fiber.StatusBadRequest, "no rating ids given")
	}

	ratings, err := h.db.GetRatingsByIDs(c.Context(), ids)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch ratings")
	}
	if ratings == nil {
		ratings = []models.Rating{}
	}

	return jsonSuccess(c, ratings)
}
