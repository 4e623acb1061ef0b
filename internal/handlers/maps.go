package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"mapdex/internal/config"
	"mapdex/internal/db"
	"mapdex/internal/models"
	"mapdex/internal/nav"
)

// ViewState is the render state of a /maps request, computed once per
// request instead of scattered early returns. It keeps the state machine
// testable apart from rendering.
type ViewState int

const (
	StateLoading ViewState = iota
	StateError
	StateNotFound
	StateReady
)

// String returns the state name passed to the view.
func (s ViewState) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateError:
		return "error"
	case StateNotFound:
		return "notfound"
	case StateReady:
		return "ready"
	}
	return "unknown"
}

// MapsHandler serves the map application shell under /maps.
type MapsHandler struct {
	db  *db.DB
	cfg *config.Config
}

// NewMapsHandler creates a new maps handler.
func NewMapsHandler(database *db.DB, cfg *config.Config) *MapsHandler {
	return &MapsHandler{db: database, cfg: cfg}
}

// Shell decodes the slug from the request path, resolves the addressed
// entry if any, and renders the application shell with the computed view
// state. Malformed slugs never fail here; they surface as not-found.
func (h *MapsHandler) Shell(c fiber.Ctx) error {
	d := nav.Decode(nav.SlugFromPath(c.Path()))

	var entry *models.Entry
	var fetchErr error
	if id := addressedEntryID(d); id != "" {
		entry, fetchErr = h.db.GetEntry(c.Context(), id, c.Query("org_tag", ""))
	}

	state := ComputeViewState(d, entry, fetchErr)

	return c.Render("app", MergeBranding(fiber.Map{
		"Title": h.cfg.SiteTitle,
		"State": state.String(),
		"Slug":  nav.Encode(d),
		"Verb":  d.Verb,
		"Entry": entry,
	}, h.cfg))
}

// ComputeViewState maps a decoded slug plus the entry fetch outcome onto
// the render state.
func ComputeViewState(d nav.Descriptor, entry *models.Entry, fetchErr error) ViewState {
	for _, e := range d.Chain {
		if e.Kind == nav.KindUnknown {
			return StateNotFound
		}
	}

	if id := addressedEntryID(d); id != "" {
		switch {
		case fetchErr == nil && entry == nil:
			return StateLoading // fetch outcome not yet available
		case fetchErr == nil:
			return StateReady
		case errors.Is(fetchErr, db.ErrEntryNotFound):
			return StateNotFound
		default:
			// degrade to empty rather than crash on a failed fetch
			return StateError
		}
	}

	// No entry addressed: plain map view or a fresh create form.
	return StateReady
}

// addressedEntryID returns the id of the entity detail view the slug
// addresses, or the empty string when the slug opens a bare map or a
// create form.
func addressedEntryID(d nav.Descriptor) string {
	for _, e := range d.Chain {
		if e.Kind == nav.KindEntity && e.Type == nav.RouteEntities {
			return e.ID
		}
	}
	return ""
}
