package db_test

import (
	"context"
	"errors"
	"testing"

	"mapdex/internal/db"
	"mapdex/internal/models"
	"mapdex/internal/testutil"
)

func TestCreateRatingWithRootComment(t *testing.T) {
	database, cleanup := testutil.TestDB(t)
	defer cleanup()

	ctx := context.Background()
	entryID := testutil.CreateTestEntry(t, database, "Rated place", 48.1, 11.5)

	r := &models.Rating{
		EntryID: entryID,
		Context: models.ContextFairness,
		Title:   "Fair to everyone",
		Value:   1,
	}
	if err := database.CreateRating(ctx, r, "They treat staff well."); err != nil {
		t.Fatalf("CreateRating() error = %v", err)
	}
	if r.ID == "" {
		t.Fatal("CreateRating() did not assign an id")
	}
	if len(r.Comments) != 1 || r.Comments[0].Text != "They treat staff well." {
		t.Errorf("root comment = %v", r.Comments)
	}
}

func TestCreateCommentOnMissingRating(t *testing.T) {
	database, cleanup := testutil.TestDB(t)
	defer cleanup()

	c := models.RatingComment{Text: "orphan"}
	err := database.CreateComment(context.Background(), "does-not-exist", &c)
	if !errors.Is(err, db.ErrRatingNotFound) {
		t.Errorf("CreateComment() error = %v, want ErrRatingNotFound", err)
	}
}

func TestGetRatingsByIDsOrderAndComments(t *testing.T) {
	database, cleanup := testutil.TestDB(t)
	defer cleanup()

	ctx := context.Background()
	entryID := testutil.CreateTestEntry(t, database, "Rated place", 48.1, 11.5)

	r1 := &models.Rating{EntryID: entryID, Context: models.ContextDiversity}
	r2 := &models.Rating{EntryID: entryID, Context: models.ContextFairness}
	if err := database.CreateRating(ctx, r1, "root one"); err != nil {
		t.Fatalf("CreateRating() error = %v", err)
	}
	if err := database.CreateRating(ctx, r2, "root two"); err != nil {
		t.Fatalf("CreateRating() error = %v", err)
	}

	reply := models.RatingComment{Text: "a reply"}
	if err := database.CreateComment(ctx, r1.ID, &reply); err != nil {
		t.Fatalf("CreateComment() error = %v", err)
	}

	// Requested order is preserved, unknown ids are skipped.
	got, err := database.GetRatingsByIDs(ctx, []string{r2.ID, "unknown", r1.ID})
	if err != nil {
		t.Fatalf("GetRatingsByIDs() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d ratings, want 2", len(got))
	}
	if got[0].ID != r2.ID || got[1].ID != r1.ID {
		t.Errorf("order = [%s %s], want requested order", got[0].ID, got[1].ID)
	}
	if len(got[1].Comments) != 2 || got[1].Comments[0].Text != "root one" {
		t.Errorf("comments of r1 = %v, want root first then reply", got[1].Comments)
	}
}

func TestGetRatingsByIDsEmpty(t *testing.T) {
	database, cleanup := testutil.TestDB(t)
	defer cleanup()

	got, err := database.GetRatingsByIDs(context.Background(), nil)
	if err != nil {
		t.Fatalf("GetRatingsByIDs() error = %v", err)
	}
	if got != nil {
		t.Errorf("GetRatingsByIDs(nil) = %v, want nil", got)
	}
}

func TestSubmissionOutcomeCounters(t *testing.T) {
	database, cleanup := testutil.TestDB(t)
	defer cleanup()

	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := database.IncrementSubmissionOutcome(ctx, models.OutcomeCreated); err != nil {
			t.Fatalf("IncrementSubmissionOutcome() error = %v", err)
		}
	}
	if err := database.IncrementSubmissionOutcome(ctx, models.OutcomeDeclined); err != nil {
		t.Fatalf("IncrementSubmissionOutcome() error = %v", err)
	}

	stats, err := database.GetAllSubmissionOutcomes(ctx)
	if err != nil {
		t.Fatalf("GetAllSubmissionOutcomes() error = %v", err)
	}

	counts := make(map[string]int64)
	for _, s := range stats {
		counts[s.Outcome] = s.Count
	}
	if counts[models.OutcomeCreated] != 3 {
		t.Errorf("created = %d, want 3", counts[models.OutcomeCreated])
	}
	if counts[models.OutcomeDeclined] != 1 {
		t.Errorf("declined = %d, want 1", counts[models.OutcomeDeclined])
	}
}
