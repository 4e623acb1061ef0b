package db_test

import (
	"context"
	"errors"
	"testing"

	"mapdex/internal/db"
	"mapdex/internal/models"
	"mapdex/internal/testutil"
)

func TestUpsertUser(t *testing.T) {
	database, cleanup := testutil.TestDB(t)
	defer cleanup()

	ctx := context.Background()

	u, err := database.UpsertUser(ctx, "sub-123", "alice@example.org", "Alice")
	if err != nil {
		t.Fatalf("UpsertUser() error = %v", err)
	}
	if u.Role != models.RoleUser {
		t.Errorf("role = %q, want default user role", u.Role)
	}

	// A refreshed login updates profile fields but never the role.
	testutil.CreateTestUser(t, database, "sub-123", "alice@example.org", models.RoleModerator)
	again, err := database.UpsertUser(ctx, "sub-123", "alice@new.example.org", "Alice A.")
	if err != nil {
		t.Fatalf("UpsertUser() refresh error = %v", err)
	}
	if again.Email != "alice@new.example.org" || again.Name != "Alice A." {
		t.Errorf("refreshed user = %+v", again)
	}
	if again.Role != models.RoleModerator {
		t.Errorf("role after refresh = %q, want locally managed role preserved", again.Role)
	}
}

func TestGetUserBySub(t *testing.T) {
	database, cleanup := testutil.TestDB(t)
	defer cleanup()

	ctx := context.Background()
	testutil.CreateTestUser(t, database, "sub-456", "bob@example.org", models.RoleUser)

	u, err := database.GetUserBySub(ctx, "sub-456")
	if err != nil {
		t.Fatalf("GetUserBySub() error = %v", err)
	}
	if u.Email != "bob@example.org" {
		t.Errorf("user = %+v", u)
	}

	if _, err := database.GetUserBySub(ctx, "nobody"); !errors.Is(err, db.ErrUserNotFound) {
		t.Errorf("GetUserBySub(nobody) error = %v, want ErrUserNotFound", err)
	}
}

func TestGetModeratorEmails(t *testing.T) {
	database, cleanup := testutil.TestDB(t)
	defer cleanup()

	ctx := context.Background()
	testutil.CreateTestUser(t, database, "mod-1", "mod@example.org", models.RoleModerator)
	testutil.CreateTestUser(t, database, "adm-1", "admin@example.org", models.RoleAdmin)
	testutil.CreateTestUser(t, database, "usr-1", "user@example.org", models.RoleUser)

	emails, err := database.GetModeratorEmails(ctx)
	if err != nil {
		t.Fatalf("GetModeratorEmails() error = %v", err)
	}
	if len(emails) != 2 {
		t.Errorf("emails = %v, want moderator and admin only", emails)
	}
}
