package lifecycle

import "github.com/rpggio/atelier/internal/apperr"

var (
	// ErrMilestoneNotInvoiceable indicates a selected milestone is not completed.
	ErrMilestoneNotInvoiceable = apperr.Invalid("only completed milestones can be invoiced")
	// ErrDuplicateInvoiceNumber indicates the counter points at a used number.
	ErrDuplicateInvoiceNumber = apperr.Invalid("invoice number already used")
	// ErrInvalidExpense indicates expense input failed validation.
	ErrInvalidExpense = apperr.Invalid("invalid expense")
)
