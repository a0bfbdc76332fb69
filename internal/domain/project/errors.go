package project

import "github.com/rpggio/atelier/internal/apperr"

var (
	// ErrProjectNotFound indicates the project doesn't exist.
	ErrProjectNotFound = apperr.NotFound("project not found")
	// ErrClientNotFound indicates the project references a missing client.
	ErrClientNotFound = apperr.NotFound("client not found")
	// ErrMilestoneNotFound indicates the milestone doesn't exist.
	ErrMilestoneNotFound = apperr.NotFound("milestone not found")
	// ErrScopeChangeNotFound indicates the scope change doesn't exist.
	ErrScopeChangeNotFound = apperr.NotFound("scope change not found")
	// ErrExpenseNotFound indicates the expense doesn't exist.
	ErrExpenseNotFound = apperr.NotFound("expense not found")
	// ErrDocumentNotFound indicates the document doesn't exist.
	ErrDocumentNotFound = apperr.NotFound("document not found")
	// ErrProjectLocked indicates a mutation on a completed project.
	ErrProjectLocked = apperr.Invalid("project is completed")
	// ErrScopeDecided indicates the scope change is no longer pending.
	ErrScopeDecided = apperr.Invalid("scope change already decided")
	// ErrDocumentFile indicates the document bytes could not be stored or read.
	ErrDocumentFile = apperr.FileIO("document file unavailable")
)
