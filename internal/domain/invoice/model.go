package invoice

import "time"

// Status is the payment state of an invoice.
type Status string

const (
	StatusDraft    Status = "Draft"
	StatusSent     Status = "Sent"
	StatusPaid     Status = "Paid"
	StatusOverdue  Status = "Overdue"
	StatusArchived Status = "Archived"
)

// Valid reports whether s is a known invoice status.
func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusSent, StatusPaid, StatusOverdue, StatusArchived:
		return true
	}
	return false
}

// Invoice is a bill issued to a client, optionally for one project.
type Invoice struct {
	ID            string     `json:"id"`
	ClientID      string     `json:"client_id"`
	ProjectID     *string    `json:"project_id,omitempty"`
	InvoiceNumber string     `json:"invoice_number"`
	Status        Status     `json:"status"`
	Subtotal      float64    `json:"subtotal"`
	TaxRate       float64    `json:"tax_rate"`
	Tax           float64    `json:"tax"`
	Total         float64    `json:"total"`
	IssueDate     time.Time  `json:"issue_date"`
	DueDate       time.Time  `json:"due_date"`
	PaidAt        *time.Time `json:"paid_at,omitempty"`
	Notes         string     `json:"notes,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// ListOptions filters invoice listings. Empty fields match everything.
type ListOptions struct {
	ClientID  string
	ProjectID string
	Status    Status
}
