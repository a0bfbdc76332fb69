package client

import "github.com/rpggio/atelier/internal/apperr"

var (
	// ErrClientNotFound indicates the client doesn't exist.
	ErrClientNotFound = apperr.NotFound("client not found")
	// ErrDuplicateName indicates another client already uses the name.
	ErrDuplicateName = apperr.Invalid("a client with this name already exists")
)
