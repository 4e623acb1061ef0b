// Package testutil provides test utilities and helpers.
package testutil

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"mapdex/internal/db"
)

// TestDB creates a test database connection and returns a cleanup function.
// Skips the test when TEST_DATABASE_URL is not set.
func TestDB(t *testing.T) (*db.DB, func()) {
	t.Helper()

	connString := os.Getenv("TEST_DATABASE_URL")
	if connString == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping database test")
	}

	ctx := context.Background()
	database, err := db.New(ctx, connString)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	// Run migrations
	if err := database.RunMigrations(connString); err != nil {
		database.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	cleanup := func() {
		cleanupTestData(ctx, database.Pool)
		database.Close()
	}

	return database, cleanup
}

// cleanupTestData removes all test data from the database.
func cleanupTestData(ctx context.Context, pool *pgxpool.Pool) {
	// Delete in order to respect foreign keys
	pool.Exec(ctx, "DELETE FROM rating_comments")
	pool.Exec(ctx, "DELETE FROM ratings")
	pool.Exec(ctx, "DELETE FROM entries")
	pool.Exec(ctx, "DELETE FROM users")
	pool.Exec(ctx, "DELETE FROM submission_stats")
}

// CreateTestEntry inserts an entry directly and returns its ID.
func CreateTestEntry(t *testing.T, database *db.DB, title string, lat, lng float64) string {
	t.Helper()
	ctx := context.Background()

	var id string
	err := database.Pool.QueryRow(ctx, `
		INSERT INTO entries (id, title, description, lat, lng, version)
		VALUES (gen_random_uuid()::text, $1, 'test entry', $2, $3, 0)
		RETURNING id
	`, title, lat, lng).Scan(&id)
	if err != nil {
		t.Fatalf("failed to create test entry: %v", err)
	}

	return id
}

// CreateTestUser inserts a user and returns its sub.
func CreateTestUser(t *testing.T, database *db.DB, sub, email, role string) string {
	t.Helper()
	ctx := context.Background()

	_, err := database.Pool.Exec(ctx, `
		INSERT INTO users (sub, email, name, role)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (sub) DO UPDATE SET email = EXCLUDED.email, role = EXCLUDED.role
	`, sub, email, "Test User", role)
	if err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}

	return sub
}
