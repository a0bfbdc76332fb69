package audit

import "time"

// Entity types recorded in the trail.
const (
	EntityQuote       = "quote"
	EntityProject     = "project"
	EntityScopeChange = "scope_change"
	EntityInvoice     = "invoice"
)

// Actions recorded in the trail.
const (
	ActionQuoteApproved = "quote_approved"
	ActionScopeApproved = "scope_change_approved"
	ActionScopeRejected = "scope_change_rejected"
	ActionInvoicePaid   = "invoice_paid"
	ActionInvoiceIssued = "invoice_generated"
)

// Entry is one append-only audit record.
type Entry struct {
	ID         int64     `json:"id"`
	EntityType string    `json:"entity_type"`
	EntityID   string    `json:"entity_id"`
	Action     string    `json:"action"`
	Details    string    `json:"details,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// ListOptions provides filtering options for listing the trail.
type ListOptions struct {
	EntityType string
	EntityID   string
	Limit      int
	Offset     int
}
