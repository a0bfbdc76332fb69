package quote

import (
	"time"

	"github.com/rpggio/atelier/internal/finance"
)

// Status is the workflow state of a quote.
type Status string

const (
	StatusDraft    Status = "Draft"
	StatusSent     Status = "Sent"
	StatusApproved Status = "Approved"
	StatusRejected Status = "Rejected"
	StatusArchived Status = "Archived"
)

// Quote is a priced proposal for a client. Approving it creates a project.
type Quote struct {
	ID           string     `json:"id"`
	ClientID     string     `json:"client_id"`
	Name         string     `json:"name"`
	Version      int        `json:"version"`
	Status       Status     `json:"status"`
	TotalCost    float64    `json:"total_cost"`
	TotalPrice   float64    `json:"total_price"`
	Margin       float64    `json:"margin"`
	TaxRate      float64    `json:"tax_rate"`
	DiscountRate float64    `json:"discount_rate"`
	Notes        string     `json:"notes,omitempty"`
	ValidUntil   *time.Time `json:"valid_until,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	Items        []Item     `json:"items,omitempty"`
}

// Item is one line of a quote. Quantity is in hours; Total is Quantity*Rate.
type Item struct {
	ID          string  `json:"id"`
	QuoteID     string  `json:"quote_id"`
	Position    int     `json:"position"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Rate        float64 `json:"rate"`
	Cost        float64 `json:"cost"`
	Total       float64 `json:"total"`
}

// Totals are the derived financial figures of a quote.
type Totals struct {
	Cost   float64
	Price  float64
	Margin float64
}

// ComputeTotals fills each item's Total and returns the quote totals.
func ComputeTotals(items []Item) Totals {
	prices := make([]float64, 0, len(items))
	costs := make([]float64, 0, len(items))
	for i := range items {
		items[i].Total = finance.Mul(items[i].Quantity, items[i].Rate)
		prices = append(prices, items[i].Total)
		costs = append(costs, items[i].Cost)
	}
	price := finance.Sum(prices...)
	cost := finance.Sum(costs...)
	return Totals{Cost: cost, Price: price, Margin: finance.Margin(price, cost)}
}

// ApplyTotals sets the quote's derived fields from its items.
func (q *Quote) ApplyTotals() {
	t := ComputeTotals(q.Items)
	q.TotalCost = t.Cost
	q.TotalPrice = t.Price
	q.Margin = t.Margin
}
