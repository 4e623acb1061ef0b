// Package workflow drives entry submission: duplicate check, user decision,
// create-or-update, result-collection update, and the redirect into the
// resulting entry's detail view.
package workflow

import (
	"context"
	"errors"
	"net/url"

	"mapdex/internal/forms"
	"mapdex/internal/models"
	"mapdex/internal/nav"
)

// State is the submission workflow state.
type State int

const (
	StateEditing State = iota
	StateCheckingDuplicates
	StateAwaitingDecision
	StateCommitting
	StateRedirected
)

// String returns the state name for logs and session storage.
func (s State) String() string {
	switch s {
	case StateEditing:
		return "editing"
	case StateCheckingDuplicates:
		return "checking_duplicates"
	case StateAwaitingDecision:
		return "awaiting_decision"
	case StateCommitting:
		return "committing"
	case StateRedirected:
		return "redirected"
	}
	return "unknown"
}

// ErrNotAwaitingDecision is returned when Confirm or Decline is called
// outside the duplicate-decision branch.
var ErrNotAwaitingDecision = errors.New("workflow is not awaiting a duplicate decision")

// PinKeys are the pin-coordinate query keys that seed a create form. They
// are stripped from the redirect target so they do not leak into the
// destination URL.
var PinKeys = []string{"create_lat", "create_lng"}

// API is the slice of the directory API the workflow consumes. The
// duplicate check strictly precedes the create/update call; the two are
// never in flight together.
type API interface {
	CheckDuplicates(ctx context.Context, p models.DuplicatePayload) ([]models.DuplicatePayload, error)
	CreateEntry(ctx context.Context, payload map[string]any) (string, error)
	UpdateEntry(ctx context.Context, id string, payload map[string]any) error
}

// Results receives the freshly created entry's search-result projection.
type Results interface {
	Prepend(models.SearchResult)
}

// Redirect is the navigation target the workflow terminates in.
type Redirect struct {
	Path  string     `json:"path"`
	Query url.Values `json:"query"`
}

// Workflow runs one entry submission. Whether it creates or edits is fixed
// at construction; the draft payload is cached across the duplicate round
// trip so declining or failing never loses typed input.
type Workflow struct {
	api     API
	results Results
	query   url.Values

	isEdit  bool
	entryID string

	state      State
	draft      map[string]any
	candidates []models.DuplicatePayload
}

// NewCreate builds a workflow that creates a new entry. query is the current
// navigation query, used to compute the terminal redirect.
func NewCreate(api API, results Results, query url.Values) *Workflow {
	return &Workflow{api: api, results: results, query: query, state: StateEditing}
}

// NewEdit builds a workflow that edits the entry with the given id.
func NewEdit(api API, query url.Values, entryID string) *Workflow {
	return &Workflow{api: api, query: query, isEdit: true, entryID: entryID, state: StateEditing}
}

// State returns the current workflow state.
func (w *Workflow) State() State {
	return w.state
}

// Draft returns the cached raw form payload.
func (w *Workflow) Draft() map[string]any {
	return w.draft
}

// Candidates returns the duplicate candidates of the pending decision.
func (w *Workflow) Candidates() []models.DuplicatePayload {
	return w.candidates
}

// IsEdit reports whether the workflow updates an existing entry.
func (w *Workflow) IsEdit() bool {
	return w.isEdit
}

// EntryID returns the id being edited, or the empty string for a create.
func (w *Workflow) EntryID() string {
	return w.entryID
}

// Submit caches the raw form payload and runs the duplicate check. When
// candidates come back the workflow parks in the awaiting-decision state and
// returns them; the caller must present the list and call Confirm or
// Decline. With no candidates the submission commits immediately and the
// redirect is returned. Any failure reverts to editing with the draft
// intact; nothing is retried.
func (w *Workflow) Submit(ctx context.Context, form map[string]any) ([]models.DuplicatePayload, *Redirect, error) {
	w.draft = form
	w.state = StateCheckingDuplicates

	candidates, err := w.api.CheckDuplicates(ctx, models.DuplicateProjection(form))
	if err != nil {
		w.state = StateEditing
		return nil, nil, err
	}

	if len(candidates) > 0 {
		w.candidates = candidates
		w.state = StateAwaitingDecision
		return candidates, nil, nil
	}

	redirect, err := w.commit(ctx)
	if err != nil {
		return nil, nil, err
	}
	return nil, redirect, nil
}

// Confirm commits the submission after the user accepted the duplicate list.
func (w *Workflow) Confirm(ctx context.Context) (*Redirect, error) {
	if w.state != StateAwaitingDecision {
		return nil, ErrNotAwaitingDecision
	}
	return w.commit(ctx)
}

// Decline abandons the pending decision and returns the cached draft so the
// caller can restore the form without data loss.
func (w *Workflow) Decline() (map[string]any, error) {
	if w.state != StateAwaitingDecision {
		return nil, ErrNotAwaitingDecision
	}
	w.candidates = nil
	w.state = StateEditing
	return w.draft, nil
}

// commit runs the transform pipeline and the create or update call, then
// computes the redirect into the resulting entry's detail view. Created
// entries are prepended to the result collection; edited entries are not
// (the map refreshes them on the next fetch).
func (w *Workflow) commit(ctx context.Context) (*Redirect, error) {
	w.state = StateCommitting
	payload := forms.ForSubmission(w.draft)

	id := w.entryID
	if w.isEdit {
		if err := w.api.UpdateEntry(ctx, id, payload); err != nil {
			w.state = StateEditing
			return nil, err
		}
	} else {
		newID, err := w.api.CreateEntry(ctx, payload)
		if err != nil {
			w.state = StateEditing
			return nil, err
		}
		id = newID
		if w.results != nil {
			w.results.Prepend(resultFromPayload(id, payload))
		}
	}

	category := payloadCategory(w.draft)
	path, query := nav.Resolve(w.query, id, category, 0, PinKeys)

	w.state = StateRedirected
	return &Redirect{Path: path, Query: query}, nil
}

// resultFromPayload projects a transformed entry payload onto the
// search-result shape used by the result collection.
func resultFromPayload(id string, payload map[string]any) models.SearchResult {
	r := models.SearchResult{ID: id}
	r.Title, _ = payload["title"].(string)
	r.Description, _ = payload["description"].(string)
	r.Lat = payloadFloat(payload, "lat")
	r.Lng = payloadFloat(payload, "lng")
	r.Categories = payloadStrings(payload, "categories")
	r.Tags = payloadStrings(payload, "tags")
	return r
}

func payloadCategory(payload map[string]any) string {
	cats := payloadStrings(payload, "categories")
	if len(cats) > 0 {
		return cats[0]
	}
	return models.CategoryInitiative
}

func payloadFloat(payload map[string]any, key string) float64 {
	switch v := payload[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return 0
}

func payloadStrings(payload map[string]any, key string) []string {
	switch v := payload[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// Snapshot captures the workflow for session storage between the duplicate
// round trip and the user's decision.
type Snapshot struct {
	IsEdit     bool                      `json:"is_edit"`
	EntryID    string                    `json:"entry_id,omitempty"`
	Query      url.Values                `json:"query"`
	Draft      map[string]any            `json:"draft"`
	Candidates []models.DuplicatePayload `json:"candidates"`
}

// Snapshot returns the state needed to resume an awaiting-decision workflow
// in a later request.
func (w *Workflow) Snapshot() Snapshot {
	return Snapshot{
		IsEdit:     w.isEdit,
		EntryID:    w.entryID,
		Query:      w.query,
		Draft:      w.draft,
		Candidates: w.candidates,
	}
}

// Restore rebuilds an awaiting-decision workflow from a snapshot.
func Restore(api API, results Results, s Snapshot) *Workflow {
	return &Workflow{
		api:        api,
		results:    results,
		query:      s.Query,
		isEdit:     s.IsEdit,
		entryID:    s.EntryID,
		state:      StateAwaitingDecision,
		draft:      s.Draft,
		candidates: s.Candidates,
	}
}
