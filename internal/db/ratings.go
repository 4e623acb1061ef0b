package db

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"mapdex/internal/models"
)

// CreateRating inserts a rating together with its root comment, atomically.
// Every rating carries at least one comment from the moment it exists.
func (d *DB) CreateRating(ctx context.Context, r *models.Rating, rootComment string) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}

	tx, err := d.Pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO ratings (id, entry_id, context, title, value, source)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`, r.ID, r.EntryID, r.Context, r.Title, r.Value, r.Source).Scan(&r.CreatedAt)
	if err != nil {
		return err
	}

	root := models.RatingComment{ID: uuid.NewString(), Text: rootComment}
	err = tx.QueryRow(ctx, `
		INSERT INTO rating_comments (id, rating_id, text)
		VALUES ($1, $2, $3)
		RETURNING created_at
	`, root.ID, r.ID, root.Text).Scan(&root.CreatedAt)
	if err != nil {
		return err
	}
	r.Comments = []models.RatingComment{root}

	return tx.Commit(ctx)
}

// CreateComment appends a reply comment to an existing rating.
func (d *DB) CreateComment(ctx context.Context, ratingID string, c *models.RatingComment) error {
	var exists bool
	if err := d.Pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM ratings WHERE id = $1)`, ratingID).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return ErrRatingNotFound
	}

	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return d.Pool.QueryRow(ctx, `
		INSERT INTO rating_comments (id, rating_id, text)
		VALUES ($1, $2, $3)
		RETURNING created_at
	`, c.ID, ratingID, c.Text).Scan(&c.CreatedAt)
}

// GetRatingsByIDs fetches ratings by id list, each with its comments in
// creation order (root comment first). Unknown ids are skipped.
func (d *DB) GetRatingsByIDs(ctx context.Context, ids []string) ([]models.Rating, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	rows, err := d.Pool.Query(ctx, `
		SELECT id, entry_id, context, title, value, source, created_at
		FROM ratings
		WHERE id = ANY($1)
		ORDER BY array_position($1, id)
	`, ids)
	if err != nil {
		return nil, err
	}

	ratings, err := scanRatings(rows)
	if err != nil {
		return nil, err
	}
	if len(ratings) == 0 {
		return nil, nil
	}

	return d.attachComments(ctx, ratings)
}

// GetRatingsForEntry fetches all ratings of an entry with their comments.
func (d *DB) GetRatingsForEntry(ctx context.Context, entryID string) ([]models.Rating, error) {
	rows, err := d.Pool.Query(ctx, `
		SELECT id, entry_id, context, title, value, source, created_at
		FROM ratings
		WHERE entry_id = $1
		ORDER BY created_at ASC
	`, entryID)
	if err != nil {
		return nil, err
	}

	ratings, err := scanRatings(rows)
	if err != nil {
		return nil, err
	}
	if len(ratings) == 0 {
		return nil, nil
	}

	return d.attachComments(ctx, ratings)
}

func scanRatings(rows pgx.Rows) ([]models.Rating, error) {
	defer rows.Close()

	var ratings []models.Rating
	for rows.Next() {
		var r models.Rating
		if err := rows.Scan(&r.ID, &r.EntryID, &r.Context, &r.Title, &r.Value, &r.Source, &r.CreatedAt); err != nil {
			return nil, err
		}
		ratings = append(ratings, r)
	}
	return ratings, rows.Err()
}

// attachComments loads the comments of all given ratings in one query and
// distributes them, preserving creation order within each rating.
func (d *DB) attachComments(ctx context.Context, ratings []models.Rating) ([]models.Rating, error) {
	ids := make([]string, len(ratings))
	index := make(map[string]int, len(ratings))
	for i, r := range ratings {
		ids[i] = r.ID
		index[r.ID] = i
	}

	rows, err := d.Pool.Query(ctx, `
		SELECT id, rating_id, text, created_at
		FROM rating_comments
		WHERE rating_id = ANY($1)
		ORDER BY created_at ASC, id ASC
	`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var c models.RatingComment
		var ratingID string
		if err := rows.Scan(&c.ID, &ratingID, &c.Text, &c.CreatedAt); err != nil {
			return nil, err
		}
		i, ok := index[ratingID]
		if !ok {
			continue
		}
		ratings[i].Comments = append(ratings[i].Comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return ratings, nil
}
