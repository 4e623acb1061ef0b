package api

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v3"

	"mapdex/internal/config"
	"mapdex/internal/db"
	"mapdex/internal/dedup"
	"mapdex/internal/models"
	"mapdex/internal/validation"
)

// EntryHandler handles entry CRUD and the duplicate check via JSON API.
type EntryHandler struct {
	db  *db.DB
	cfg *config.Config
}

// NewEntryHandler creates a new API entry handler.
func NewEntryHandler(database *db.DB, cfg *config.Config) *EntryHandler {
	return &EntryHandler{db: database, cfg: cfg}
}

// Create creates a new entry from a transformed form payload and returns the
// assigned id.
func (h *EntryHandler) Create(c fiber.Ctx) error {
	var entry models.Entry
	if err := json.Unmarshal(c.Body(), &entry); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	entry.ID = "" // ids are assigned server-side

	if ok, msg := validateEntry(&entry, false); !ok {
		return jsonError(c, fiber.StatusBadRequest, msg)
	}

	if err := h.db.CreateEntry(c.Context(), &entry); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to create entry")
	}

	return jsonCreated(c, entry.ID)
}

// Update overwrites an existing entry with a transformed form payload. The
// submitted version wins; no response body is required.
func (h *EntryHandler) Update(c fiber.Ctx) error {
	var entry models.Entry
	if err := json.Unmarshal(c.Body(), &entry); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	entry.ID = c.Params("id")

	if ok, msg := validateEntry(&entry, true); !ok {
		return jsonError(c, fiber.StatusBadRequest, msg)
	}

	if err := h.db.UpdateEntry(c.Context(), &entry); err != nil {
		if errors.Is(err, db.ErrEntryNotFound) {
			return jsonError(c, fiber.StatusNotFound, "entry not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to update entry")
	}

	return jsonSuccess(c, nil)
}

// Get returns a single entry by id, optionally scoped to an org tag.
func (h *EntryHandler) Get(c fiber.Ctx) error {
	entry, err := h.db.GetEntry(c.Context(), c.Params("id"), c.Query("org_tag", ""))
	if err != nil {
		if errors.Is(err, db.ErrEntryNotFound) {
			return jsonError(c, fiber.StatusNotFound, "entry not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch entry")
	}

	return jsonSuccess(c, entry)
}

// Duplicates checks a reduced entry projection against nearby entries and
// returns the near-duplicate candidates, possibly none. An empty list is a
// success, not an error.
func (h *EntryHandler) Duplicates(c fiber.Ctx) error {
	var payload models.DuplicatePayload
	if err := json.Unmarshal(c.Body(), &payload); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	nearby, err := h.db.FindNearbyEntries(c.Context(), payload.Lat, payload.Lng, 2*dedup.MaxDuplicateDistance, 100)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "duplicate check failed")
	}

	candidates := []models.DuplicatePayload{}
	for i := range nearby {
		candidate := nearby[i].DuplicateCandidate()
		if payload.ID != nil && candidate.ID != nil && *candidate.ID == *payload.ID {
			continue // an entry is not its own duplicate
		}
		if dedup.IsPossibleDuplicate(candidate, payload) {
			candidates = append(candidates, candidate)
		}
	}

	return jsonSuccess(c, candidates)
}

// Archive soft-deletes an entry (moderators only).
func (h *EntryHandler) Archive(c fiber.Ctx) error {
	if err := h.db.ArchiveEntry(c.Context(), c.Params("id")); err != nil {
		if errors.Is(err, db.ErrEntryNotFound) {
			return jsonError(c, fiber.StatusNotFound, "entry not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to archive entry")
	}

	return jsonSuccess(c, nil)
}

// validateEntry runs the wire-level field checks shared by create and update.
func validateEntry(e *models.Entry, isEdit bool) (bool, string) {
	if ok, msg := validation.ValidateTitle(e.Title); !ok {
		return false, msg
	}
	if ok, msg := validation.ValidateDescription(e.Description); !ok {
		return false, msg
	}
	if !validation.ValidateEmail(e.Email) {
		return false, "email address is not valid"
	}
	if !validation.ValidateTelephone(e.Telephone) {
		return false, "telephone number is not valid"
	}
	if !validation.ValidateHomepage(e.Homepage) {
		return false, "homepage must be an http or https URL"
	}
	if len(e.Categories) != 1 || !validation.ValidateCategory(e.Categories[0]) {
		return false, "exactly one known category is required"
	}
	if !isEdit && !validation.ValidateLicense(e.License) {
		return false, "a license selection is required"
	}
	return true, ""
}
