package db

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"mapdex/internal/models"
)

// GetUserBySub fetches a user by OIDC subject.
func (d *DB) GetUserBySub(ctx context.Context, sub string) (*models.User, error) {
	var u models.User
	err := d.Pool.QueryRow(ctx, `
		SELECT id, sub, email, name, role, org_tag, created_at, updated_at
		FROM users
		WHERE sub = $1
	`, sub).Scan(&u.ID, &u.Sub, &u.Email, &u.Name, &u.Role, &u.OrgTag, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// UpsertUser creates or refreshes a user record after an OIDC login.
// Role and org tag are preserved on refresh; they are managed locally.
func (d *DB) UpsertUser(ctx context.Context, sub, email, name string) (*models.User, error) {
	var u models.User
	err := d.Pool.QueryRow(ctx, `
		INSERT INTO users (sub, email, name, role)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (sub) DO UPDATE
			SET email = EXCLUDED.email, name = EXCLUDED.name, updated_at = NOW()
		RETURNING id, sub, email, name, role, org_tag, created_at, updated_at
	`, sub, email, name, models.RoleUser).
		Scan(&u.ID, &u.Sub, &u.Email, &u.Name, &u.Role, &u.OrgTag, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetModeratorEmails returns the email addresses of all moderators and
// admins with an email on file.
func (d *DB) GetModeratorEmails(ctx context.Context) ([]string, error) {
	rows, err := d.Pool.Query(ctx, `
		SELECT email
		FROM users
		WHERE role IN ($1, $2) AND email <> ''
	`, models.RoleModerator, models.RoleAdmin)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var emails []string
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, err
		}
		emails = append(emails, email)
	}
	return emails, rows.Err()
}
