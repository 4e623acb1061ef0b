package db

import "errors"

// Domain-level database error sentinels.
var (
	// Entry errors
	ErrEntryNotFound = errors.New("entry not found")

	// Rating errors
	ErrRatingNotFound = errors.New("rating not found")

	// User errors
	ErrUserNotFound = errors.New("user not found")
)
