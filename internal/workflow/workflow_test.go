package workflow

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"mapdex/internal/models"
)

// fakeAPI records calls and returns scripted responses.
type fakeAPI struct {
	candidates []models.DuplicatePayload
	checkErr   error
	createID   string
	createErr  error
	updateErr  error

	checkCalls  int
	createCalls int
	updateCalls int

	lastCreate map[string]any
	lastUpdate map[string]any
	lastUpdID  string
}

func (f *fakeAPI) CheckDuplicates(_ context.Context, p models.DuplicatePayload) ([]models.DuplicatePayload, error) {
	f.checkCalls++
	if f.checkErr != nil {
		return nil, f.checkErr
	}
	return f.candidates, nil
}

func (f *fakeAPI) CreateEntry(_ context.Context, payload map[string]any) (string, error) {
	f.createCalls++
	f.lastCreate = payload
	if f.createErr != nil {
		return "", f.createErr
	}
	return f.createID, nil
}

func (f *fakeAPI) UpdateEntry(_ context.Context, id string, payload map[string]any) error {
	f.updateCalls++
	f.lastUpdID = id
	f.lastUpdate = payload
	return f.updateErr
}

// fakeResults records prepended results.
type fakeResults struct {
	prepended []models.SearchResult
}

func (f *fakeResults) Prepend(r models.SearchResult) {
	f.prepended = append(f.prepended, r)
}

func candidate(id string) models.DuplicatePayload {
	return models.DuplicatePayload{ID: &id, Title: "candidate " + id}
}

func createForm() map[string]any {
	return map[string]any{
		"title":      "Repair Cafe",
		"lat":        48.1374,
		"lng":        11.5755,
		"categories": []any{models.CategoryInitiative},
	}
}

func TestSubmitCreateNoDuplicates(t *testing.T) {
	api := &fakeAPI{createID: "new-id"}
	results := &fakeResults{}
	query := url.Values{
		"zoom":       {"12"},
		"create_lat": {"48.1374"},
		"create_lng": {"11.5755"},
	}
	w := NewCreate(api, results, query)

	candidates, redirect, err := w.Submit(context.Background(), createForm())
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if len(candidates) != 0 {
		t.Fatalf("candidates = %v, want none", candidates)
	}
	if redirect == nil {
		t.Fatal("redirect = nil, want terminal redirect")
	}

	if api.checkCalls != 1 || api.createCalls != 1 || api.updateCalls != 0 {
		t.Errorf("calls = check %d, create %d, update %d; want 1, 1, 0",
			api.checkCalls, api.createCalls, api.updateCalls)
	}
	if got := api.lastCreate["version"]; got != 1 {
		t.Errorf("created version = %v, want 1", got)
	}

	if want := "/maps/entities/new-id"; redirect.Path != want {
		t.Errorf("redirect path = %q, want %q", redirect.Path, want)
	}
	if _, ok := redirect.Query["create_lat"]; ok {
		t.Error("pin seed create_lat leaked into redirect query")
	}
	if got := redirect.Query.Get("zoom"); got != "12" {
		t.Errorf("zoom = %q, want preserved", got)
	}

	if len(results.prepended) != 1 {
		t.Fatalf("prepended %d results, want 1", len(results.prepended))
	}
	if r := results.prepended[0]; r.ID != "new-id" || r.Title != "Repair Cafe" {
		t.Errorf("prepended result = %+v", r)
	}

	if w.State() != StateRedirected {
		t.Errorf("state = %v, want redirected", w.State())
	}
}

func TestSubmitWithDuplicatesParks(t *testing.T) {
	api := &fakeAPI{candidates: []models.DuplicatePayload{candidate("d1"), candidate("d2")}}
	w := NewCreate(api, &fakeResults{}, url.Values{})

	candidates, redirect, err := w.Submit(context.Background(), createForm())
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if redirect != nil {
		t.Fatal("redirect returned before decision")
	}
	if len(candidates) != 2 {
		t.Fatalf("got %d candidates, want 2", len(candidates))
	}
	if api.createCalls != 0 {
		t.Errorf("create called %d times before decision, want 0", api.createCalls)
	}
	if w.State() != StateAwaitingDecision {
		t.Errorf("state = %v, want awaiting decision", w.State())
	}
}

func TestConfirmCommits(t *testing.T) {
	api := &fakeAPI{
		candidates: []models.DuplicatePayload{candidate("d1")},
		createID:   "created-anyway",
	}
	results := &fakeResults{}
	w := NewCreate(api, results, url.Values{})

	if _, _, err := w.Submit(context.Background(), createForm()); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	redirect, err := w.Confirm(context.Background())
	if err != nil {
		t.Fatalf("Confirm() error = %v", err)
	}
	if want := "/maps/entities/created-anyway"; redirect.Path != want {
		t.Errorf("redirect path = %q, want %q", redirect.Path, want)
	}
	if api.createCalls != 1 {
		t.Errorf("create calls = %d, want 1", api.createCalls)
	}
	if len(results.prepended) != 1 {
		t.Errorf("prepended %d results, want 1", len(results.prepended))
	}
}

func TestDeclineReturnsDraft(t *testing.T) {
	api := &fakeAPI{candidates: []models.DuplicatePayload{candidate("d1")}}
	w := NewCreate(api, &fakeResults{}, url.Values{})

	form := createForm()
	if _, _, err := w.Submit(context.Background(), form); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	draft, err := w.Decline()
	if err != nil {
		t.Fatalf("Decline() error = %v", err)
	}
	if draft["title"] != "Repair Cafe" {
		t.Errorf("draft = %v, want original form", draft)
	}
	if api.createCalls != 0 {
		t.Error("decline must not commit")
	}
	if w.State() != StateEditing {
		t.Errorf("state = %v, want editing", w.State())
	}
}

func TestDecisionOutsideBranch(t *testing.T) {
	w := NewCreate(&fakeAPI{}, &fakeResults{}, url.Values{})

	if _, err := w.Confirm(context.Background()); !errors.Is(err, ErrNotAwaitingDecision) {
		t.Errorf("Confirm() error = %v, want ErrNotAwaitingDecision", err)
	}
	if _, err := w.Decline(); !errors.Is(err, ErrNotAwaitingDecision) {
		t.Errorf("Decline() error = %v, want ErrNotAwaitingDecision", err)
	}
}

func TestSubmitEdit(t *testing.T) {
	api := &fakeAPI{}
	w := NewEdit(api, url.Values{}, "entry-7")

	form := createForm()
	form["version"] = float64(5)
	_, redirect, err := w.Submit(context.Background(), form)
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	if api.updateCalls != 1 || api.createCalls != 0 {
		t.Errorf("calls = update %d, create %d; want 1, 0", api.updateCalls, api.createCalls)
	}
	if api.lastUpdID != "entry-7" {
		t.Errorf("updated id = %q, want entry-7", api.lastUpdID)
	}
	if got := api.lastUpdate["version"]; got != 6 {
		t.Errorf("updated version = %v, want 6", got)
	}
	if want := "/maps/entities/entry-7"; redirect.Path != want {
		t.Errorf("redirect path = %q, want %q", redirect.Path, want)
	}
}

func TestEditDoesNotPrepend(t *testing.T) {
	api := &fakeAPI{}
	w := NewEdit(api, url.Values{}, "entry-7")

	if _, _, err := w.Submit(context.Background(), createForm()); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	// NewEdit carries no result collection; the prepend path must be inert.
	if w.State() != StateRedirected {
		t.Errorf("state = %v, want redirected", w.State())
	}
}

func TestCheckFailureKeepsDraft(t *testing.T) {
	api := &fakeAPI{checkErr: errors.New("api down")}
	w := NewCreate(api, &fakeResults{}, url.Values{})

	form := createForm()
	_, _, err := w.Submit(context.Background(), form)
	if err == nil {
		t.Fatal("Submit() error = nil, want failure")
	}
	if w.State() != StateEditing {
		t.Errorf("state = %v, want editing", w.State())
	}
	if w.Draft()["title"] != "Repair Cafe" {
		t.Errorf("draft lost on failure: %v", w.Draft())
	}
	if api.createCalls != 0 {
		t.Error("commit attempted after failed duplicate check")
	}
}

func TestCommitFailureKeepsDraft(t *testing.T) {
	api := &fakeAPI{createErr: errors.New("write failed")}
	results := &fakeResults{}
	w := NewCreate(api, results, url.Values{})

	_, _, err := w.Submit(context.Background(), createForm())
	if err == nil {
		t.Fatal("Submit() error = nil, want failure")
	}
	if w.State() != StateEditing {
		t.Errorf("state = %v, want editing", w.State())
	}
	if len(results.prepended) != 0 {
		t.Error("failed create must not reach the result collection")
	}
}

func TestSnapshotRestore(t *testing.T) {
	api := &fakeAPI{candidates: []models.DuplicatePayload{candidate("d1")}}
	w := NewCreate(api, &fakeResults{}, url.Values{"zoom": {"10"}})

	if _, _, err := w.Submit(context.Background(), createForm()); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	snap := w.Snapshot()

	api2 := &fakeAPI{createID: "after-restore"}
	results2 := &fakeResults{}
	restored := Restore(api2, results2, snap)

	if restored.State() != StateAwaitingDecision {
		t.Fatalf("restored state = %v, want awaiting decision", restored.State())
	}
	if len(restored.Candidates()) != 1 {
		t.Fatalf("restored candidates = %v", restored.Candidates())
	}

	redirect, err := restored.Confirm(context.Background())
	if err != nil {
		t.Fatalf("Confirm() after restore error = %v", err)
	}
	if want := "/maps/entities/after-restore"; redirect.Path != want {
		t.Errorf("redirect path = %q, want %q", redirect.Path, want)
	}
	if got := redirect.Query.Get("zoom"); got != "10" {
		t.Errorf("zoom = %q, want carried through snapshot", got)
	}
	if len(results2.prepended) != 1 {
		t.Errorf("prepended %d results after restore, want 1", len(results2.prepended))
	}
}
