package quote

import "github.com/rpggio/atelier/internal/apperr"

var (
	// ErrQuoteNotFound indicates the quote doesn't exist.
	ErrQuoteNotFound = apperr.NotFound("quote not found")
	// ErrInvalidTransition indicates a disallowed status change.
	ErrInvalidTransition = apperr.Invalid("invalid quote status transition")
	// ErrUseApprove indicates approval must go through the approve operation.
	ErrUseApprove = apperr.Invalid("quotes are approved with approve_quote")
	// ErrClientNotFound indicates the quote references a missing client.
	ErrClientNotFound = apperr.NotFound("client not found")
)
