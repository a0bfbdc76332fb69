package client

import "time"

// Status is the lifecycle flag of a client.
type Status string

const (
	StatusActive   Status = "Active"
	StatusArchived Status = "Archived"
)

// Valid reports whether s is a known client status.
func (s Status) Valid() bool {
	return s == StatusActive || s == StatusArchived
}

// Client is a customer of the studio. Deleting a client removes its
// quotes, projects and invoices.
type Client struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Company   string    `json:"company,omitempty"`
	Address   string    `json:"address,omitempty"`
	Currency  string    `json:"currency"`
	TaxRate   float64   `json:"tax_rate"`
	Status    Status    `json:"status"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
