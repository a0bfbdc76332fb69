package repository

import "github.com/rpggio/atelier/internal/apperr"

// The sentinels carry an apperr classification so that a row-level failure
// a service did not translate still surfaces with a sensible code.
var (
	// ErrNotFound is returned when a requested entity doesn't exist
	ErrNotFound = apperr.NotFound("not found")

	// ErrConflict is returned when a unique constraint rejects a write
	ErrConflict = apperr.Invalid("conflict: entity already exists")

	// ErrStale is returned when a conditional write finds the row changed
	ErrStale = apperr.Invalid("entity changed concurrently")

	// ErrForeignKeyViolation is returned when a referenced parent row is missing
	ErrForeignKeyViolation = apperr.NotFound("referenced entity not found")
)
