package db

import (
	"context"

	"mapdex/internal/models"
)

// IncrementSubmissionOutcome bumps the counter for a submission outcome
// (created, updated, duplicates_found, declined, failed).
func (d *DB) IncrementSubmissionOutcome(ctx context.Context, outcome string) error {
	_, err := d.Pool.Exec(ctx, `
		INSERT INTO submission_stats (outcome, count)
		VALUES ($1, 1)
		ON CONFLICT (outcome) DO UPDATE SET count = submission_stats.count + 1
	`, outcome)
	return err
}

// GetAllSubmissionOutcomes returns all submission outcome counters.
func (d *DB) GetAllSubmissionOutcomes(ctx context.Context) ([]models.SubmissionStat, error) {
	rows, err := d.Pool.Query(ctx, `SELECT outcome, count FROM submission_stats`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []models.SubmissionStat
	for rows.Next() {
		var s models.SubmissionStat
		if err := rows.Scan(&s.Outcome, &s.Count); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}
