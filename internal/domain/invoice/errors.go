package invoice

import "github.com/rpggio/atelier/internal/apperr"

var (
	// ErrInvoiceNotFound indicates the invoice doesn't exist.
	ErrInvoiceNotFound = apperr.NotFound("invoice not found")
	// ErrInvalidTransition indicates a disallowed status change.
	ErrInvalidTransition = apperr.Invalid("invalid invoice status transition")
)
