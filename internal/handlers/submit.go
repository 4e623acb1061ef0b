package handlers

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/session"

	"mapdex/internal/client"
	"mapdex/internal/config"
	"mapdex/internal/email"
	"mapdex/internal/metrics"
	"mapdex/internal/models"
	"mapdex/internal/nav"
	"mapdex/internal/results"
	"mapdex/internal/validation"
	"mapdex/internal/workflow"
)

// draftSessionKey parks an awaiting-decision workflow snapshot between the
// duplicate round trip and the user's confirm/decline request.
const draftSessionKey = "submission_draft"

// SubmitHandler runs the entry submission workflow on behalf of the map
// frontend. The duplicate decision spans two HTTP requests, so the cached
// draft lives in the session in between.
type SubmitHandler struct {
	api      *client.Client
	results  *results.Collection
	cfg      *config.Config
	notifier *email.Notifier
}

// NewSubmitHandler creates a new submission handler.
func NewSubmitHandler(api *client.Client, collection *results.Collection, cfg *config.Config, notifier *email.Notifier) *SubmitHandler {
	return &SubmitHandler{api: api, results: collection, cfg: cfg, notifier: notifier}
}

// Submit validates the raw form payload and starts the workflow. The
// current slug and any pin-coordinate seeds travel as query parameters of
// this request and feed the terminal redirect.
func (h *SubmitHandler) Submit(c fiber.Ctx) error {
	var form map[string]any
	if err := json.Unmarshal(c.Body(), &form); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status": "error",
			"error":  "invalid request body",
		})
	}

	query := queryValues(c)
	d := nav.Decode(nav.NormalizeParam(query[nav.SlugKey]))
	isEdit := d.Verb == nav.VerbEdit

	// Validation failures are resolved here; they never reach the API.
	if ok, msg := validation.ValidateEntryPayload(form, isEdit); !ok {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"status": "invalid",
			"error":  msg,
			"entry":  form,
		})
	}

	var w *workflow.Workflow
	if isEdit {
		id := editedEntryID(d)
		if id == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"status": "error",
				"error":  "edit submitted without an entry id",
			})
		}
		w = workflow.NewEdit(h.api, query, id)
	} else {
		w = workflow.NewCreate(h.api, h.results, query)
	}

	candidates, redirect, err := w.Submit(c.Context(), form)
	if err != nil {
		return h.submissionFailed(c, form, err)
	}

	if len(candidates) > 0 {
		if err := parkSnapshot(c, w.Snapshot()); err != nil {
			return h.submissionFailed(c, form, err)
		}
		metrics.RecordSubmission(models.OutcomeDuplicatesFound)
		return c.JSON(fiber.Map{
			"status":     "duplicates",
			"candidates": candidates,
		})
	}

	return h.committed(c, w, redirect, true)
}

// Confirm commits the parked submission after the user accepted the
// duplicate candidate list.
func (h *SubmitHandler) Confirm(c fiber.Ctx) error {
	snap, ok := takeSnapshot(c)
	if !ok {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"status": "error",
			"error":  "no submission awaiting a decision",
		})
	}

	w := workflow.Restore(h.api, h.results, snap)
	candidates := w.Candidates()

	redirect, err := w.Confirm(c.Context())
	if err != nil {
		// put the draft back; declining a failed commit must not lose it
		if perr := parkSnapshot(c, snap); perr != nil {
			slog.Error("failed to re-park submission draft", "error", perr)
		}
		return h.submissionFailed(c, snap.Draft, err)
	}

	if !w.IsEdit() && h.notifier != nil {
		title, _ := snap.Draft["title"].(string)
		go h.notifier.NotifyDuplicateOverride(context.Background(), redirectID(redirect), title, candidates)
	}

	return h.committed(c, w, redirect, false)
}

// Decline abandons the parked submission and hands the cached draft back so
// the form can be restored without data loss.
func (h *SubmitHandler) Decline(c fiber.Ctx) error {
	snap, ok := takeSnapshot(c)
	if !ok {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"status": "error",
			"error":  "no submission awaiting a decision",
		})
	}

	w := workflow.Restore(h.api, h.results, snap)
	draft, err := w.Decline()
	if err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"status": "error",
			"error":  err.Error(),
		})
	}

	metrics.RecordSubmission(models.OutcomeDeclined)
	return c.JSON(fiber.Map{
		"status": "editing",
		"entry":  draft,
	})
}

// committed finishes a successful submission: records the outcome, fires
// the creation notification, and returns the redirect target.
func (h *SubmitHandler) committed(c fiber.Ctx, w *workflow.Workflow, redirect *workflow.Redirect, notifyCreated bool) error {
	if w.IsEdit() {
		metrics.RecordSubmission(models.OutcomeUpdated)
	} else {
		metrics.RecordSubmission(models.OutcomeCreated)
		if notifyCreated && h.notifier != nil {
			title, _ := w.Draft()["title"].(string)
			go h.notifier.NotifyEntryCreated(context.Background(), redirectID(redirect), title)
		}
	}

	return c.JSON(fiber.Map{
		"status":   "ok",
		"redirect": redirect,
	})
}

// submissionFailed reverts to the editing state. The user's typed input is
// returned untouched; surfacing the failure is the frontend's job.
func (h *SubmitHandler) submissionFailed(c fiber.Ctx, form map[string]any, err error) error {
	slog.Error("entry submission failed", "error", err)
	metrics.RecordSubmission(models.OutcomeFailed)
	return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
		"status": "failed",
		"error":  "submission failed, please try again",
		"entry":  form,
	})
}

// parkSnapshot stores an awaiting-decision snapshot in the session.
func parkSnapshot(c fiber.Ctx, snap workflow.Snapshot) error {
	sess := session.FromContext(c)
	if sess == nil {
		return fiber.NewError(fiber.StatusInternalServerError, "session not available")
	}
	buf, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	sess.Set(draftSessionKey, string(buf))
	return nil
}

// takeSnapshot removes and returns the parked snapshot, if any.
func takeSnapshot(c fiber.Ctx) (workflow.Snapshot, bool) {
	var snap workflow.Snapshot

	sess := session.FromContext(c)
	if sess == nil {
		return snap, false
	}
	raw, _ := sess.Get(draftSessionKey).(string)
	if raw == "" {
		return snap, false
	}
	sess.Delete(draftSessionKey)

	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		slog.Error("failed to decode parked submission draft", "error", err)
		return snap, false
	}
	return snap, true
}

// editedEntryID returns the entity id an edit slug addresses.
func editedEntryID(d nav.Descriptor) string {
	for _, e := range d.Chain {
		if e.Kind == nav.KindEntity && e.Type == nav.RouteEntities && e.ID != "" {
			return e.ID
		}
	}
	return ""
}

// redirectID extracts the entry id from a redirect path, the last slug
// segment.
func redirectID(r *workflow.Redirect) string {
	segs := nav.SlugFromPath(r.Path)
	if len(segs) == 0 {
		return ""
	}
	return segs[len(segs)-1]
}
