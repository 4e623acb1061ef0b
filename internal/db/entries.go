package db

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"mapdex/internal/models"
)

// entryColumns is the standard column list for entry queries.
const entryColumns = `id, version, title, description, lat, lng, street, zip, city,
	country, state, contact, telephone, email, homepage, opening_hours,
	image_url, image_link_url, tags, categories, links, license, org_tag,
	archived, created_at, updated_at`

// scanEntry scans a row into an Entry struct.
func scanEntry(row pgx.Row) (*models.Entry, error) {
	var e models.Entry
	var links []byte
	err := row.Scan(
		&e.ID,
		&e.Version,
		&e.Title,
		&e.Description,
		&e.Lat,
		&e.Lng,
		&e.Street,
		&e.Zip,
		&e.City,
		&e.Country,
		&e.State,
		&e.Contact,
		&e.Telephone,
		&e.Email,
		&e.Homepage,
		&e.OpeningHours,
		&e.ImageURL,
		&e.ImageLinkURL,
		&e.Tags,
		&e.Categories,
		&links,
		&e.License,
		&e.OrgTag,
		&e.Archived,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrEntryNotFound
	}
	if err != nil {
		return nil, err
	}
	if len(links) > 0 {
		if err := json.Unmarshal(links, &e.Links); err != nil {
			return nil, err
		}
	}
	return &e, nil
}

// scanEntries scans multiple rows into a slice of entries.
func scanEntries(rows pgx.Rows) ([]models.Entry, error) {
	defer rows.Close()

	var entries []models.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

// CreateEntry inserts a new entry. A fresh id is assigned when none is set.
func (d *DB) CreateEntry(ctx context.Context, e *models.Entry) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Version == 0 {
		e.Version = 1
	}

	links, err := json.Marshal(e.Links)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO entries (id, version, title, description, lat, lng, street, zip,
			city, country, state, contact, telephone, email, homepage, opening_hours,
			image_url, image_link_url, tags, categories, links, license, org_tag)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
			$16, $17, $18, $19, $20, $21, $22, $23)
		RETURNING created_at, updated_at
	`

	return d.Pool.QueryRow(ctx, query,
		e.ID, e.Version, e.Title, e.Description, e.Lat, e.Lng, e.Street, e.Zip,
		e.City, e.Country, e.State, e.Contact, e.Telephone, e.Email, e.Homepage,
		e.OpeningHours, e.ImageURL, e.ImageLinkURL, e.Tags, e.Categories, links,
		e.License, e.OrgTag,
	).Scan(&e.CreatedAt, &e.UpdatedAt)
}

// GetEntry fetches a non-archived entry by id. A non-empty orgTag restricts
// the fetch to entries carrying that tag.
func (d *DB) GetEntry(ctx context.Context, id, orgTag string) (*models.Entry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM entries
		WHERE id = $1 AND NOT archived AND ($2 = '' OR org_tag = $2)
	`
	return scanEntry(d.Pool.QueryRow(ctx, query, id, orgTag))
}

// UpdateEntry overwrites an entry with the submitted state. The submitted
// version is stored as-is: the client advances it optimistically and the
// last write wins.
func (d *DB) UpdateEntry(ctx context.Context, e *models.Entry) error {
	links, err := json.Marshal(e.Links)
	if err != nil {
		return err
	}

	query := `
		UPDATE entries
		SET version = $2, title = $3, description = $4, lat = $5, lng = $6,
			street = $7, zip = $8, city = $9, country = $10, state = $11,
			contact = $12, telephone = $13, email = $14, homepage = $15,
			opening_hours = $16, image_url = $17, image_link_url = $18,
			tags = $19, categories = $20, links = $21, updated_at = NOW()
		WHERE id = $1 AND NOT archived
	`

	result, err := d.Pool.Exec(ctx, query,
		e.ID, e.Version, e.Title, e.Description, e.Lat, e.Lng,
		e.Street, e.Zip, e.City, e.Country, e.State,
		e.Contact, e.Telephone, e.Email, e.Homepage,
		e.OpeningHours, e.ImageURL, e.ImageLinkURL,
		e.Tags, e.Categories, links,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrEntryNotFound
	}
	return nil
}

// UpdateEntryAddress fills in address fields resolved by the geocode
// backfill without touching the entry version.
func (d *DB) UpdateEntryAddress(ctx context.Context, id string, street, zip, city, country, state string) error {
	query := `
		UPDATE entries
		SET street = $2, zip = $3, city = $4, country = $5, state = $6, updated_at = NOW()
		WHERE id = $1 AND NOT archived
	`
	result, err := d.Pool.Exec(ctx, query, id, street, zip, city, country, state)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrEntryNotFound
	}
	return nil
}

// ArchiveEntry soft-deletes an entry.
func (d *DB) ArchiveEntry(ctx context.Context, id string) error {
	result, err := d.Pool.Exec(ctx,
		`UPDATE entries SET archived = TRUE, updated_at = NOW() WHERE id = $1 AND NOT archived`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrEntryNotFound
	}
	return nil
}

// SearchEntries returns non-archived entries inside a bounding box,
// optionally filtered by a text needle over title, description and tags.
func (d *DB) SearchEntries(ctx context.Context, south, west, north, east float64, text string, limit int) ([]models.Entry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM entries
		WHERE NOT archived
			AND lat BETWEEN $1 AND $3
			AND lng BETWEEN $2 AND $4
			AND ($5 = '' OR title ILIKE '%' || $5 || '%'
				OR description ILIKE '%' || $5 || '%'
				OR $5 = ANY(tags))
		ORDER BY updated_at DESC
		LIMIT $6
	`
	rows, err := d.Pool.Query(ctx, query, south, west, north, east, text, limit)
	if err != nil {
		return nil, err
	}
	return scanEntries(rows)
}

// FindNearbyEntries returns non-archived entries within roughly the given
// radius (meters) of a point, using a bounding-box prefilter. Exact distance
// and title similarity are scored by the caller.
func (d *DB) FindNearbyEntries(ctx context.Context, lat, lng, radiusMeters float64, limit int) ([]models.Entry, error) {
	dLat := radiusMeters / 111_000.0
	dLng := dLat
	if cos := math.Cos(lat * math.Pi / 180); cos > 0.01 {
		dLng = dLat / cos
	}

	query := `
		SELECT ` + entryColumns + `
		FROM entries
		WHERE NOT archived
			AND lat BETWEEN $1 AND $2
			AND lng BETWEEN $3 AND $4
		LIMIT $5
	`
	rows, err := d.Pool.Query(ctx, query, lat-dLat, lat+dLat, lng-dLng, lng+dLng, limit)
	if err != nil {
		return nil, err
	}
	return scanEntries(rows)
}

// GetEntriesNeedingGeocode returns entries with coordinates but no city,
// skipping ones updated more recently than maxAge ago so fresh submissions
// settle first.
func (d *DB) GetEntriesNeedingGeocode(ctx context.Context, maxAge time.Duration, limit int) ([]models.Entry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM entries
		WHERE NOT archived
			AND city = ''
			AND updated_at < NOW() - $1::interval
		ORDER BY updated_at ASC
		LIMIT $2
	`
	rows, err := d.Pool.Query(ctx, query, maxAge.String(), limit)
	if err != nil {
		return nil, err
	}
	return scanEntries(rows)
}
