package project

import (
	"time"

	"github.com/rpggio/atelier/internal/finance"
)

// Type is the commercial model of a project.
type Type string

const (
	TypeFixed    Type = "Fixed"
	TypeTM       Type = "T&M"
	TypeRetainer Type = "Retainer"
)

// Valid reports whether t is a known project type.
func (t Type) Valid() bool {
	switch t {
	case TypeFixed, TypeTM, TypeRetainer:
		return true
	}
	return false
}

// Status is the delivery state of a project.
type Status string

const (
	StatusPlanned   Status = "Planned"
	StatusActive    Status = "Active"
	StatusCompleted Status = "Completed"
	StatusOnHold    Status = "On Hold"
	StatusArchived  Status = "Archived"
)

// Valid reports whether s is a known project status.
func (s Status) Valid() bool {
	switch s {
	case StatusPlanned, StatusActive, StatusCompleted, StatusOnHold, StatusArchived:
		return true
	}
	return false
}

// Project is contracted work for a client. The baseline is frozen at
// creation and changes only through approved scope changes; ActualCost is
// the running sum of expenses.
type Project struct {
	ID             string     `json:"id"`
	ClientID       string     `json:"client_id"`
	QuoteID        *string    `json:"quote_id,omitempty"`
	Name           string     `json:"name"`
	Description    string     `json:"description,omitempty"`
	Type           Type       `json:"type"`
	Status         Status     `json:"status"`
	BaselineCost   float64    `json:"baseline_cost"`
	BaselinePrice  float64    `json:"baseline_price"`
	BaselineMargin float64    `json:"baseline_margin"`
	ActualCost     float64    `json:"actual_cost"`
	Progress       int        `json:"progress"`
	StartDate      *time.Time `json:"start_date,omitempty"`
	EndDate        *time.Time `json:"end_date,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// RecomputeMargin derives BaselineMargin from the baseline cost and price.
func (p *Project) RecomputeMargin() {
	p.BaselineMargin = finance.Margin(p.BaselinePrice, p.BaselineCost)
}

// ApplyScopeChange adds approved impacts to the baseline.
func (p *Project) ApplyScopeChange(costImpact, priceImpact float64) {
	p.BaselineCost = finance.Sum(p.BaselineCost, costImpact)
	p.BaselinePrice = finance.Sum(p.BaselinePrice, priceImpact)
	p.RecomputeMargin()
}

// Locked reports whether the project rejects changes to its milestones,
// expenses and documents.
func (p *Project) Locked() bool {
	return p.Status == StatusCompleted
}

// MilestoneStatus is the progress state of a milestone.
type MilestoneStatus string

const (
	MilestonePlanned    MilestoneStatus = "Planned"
	MilestoneInProgress MilestoneStatus = "In Progress"
	MilestoneCompleted  MilestoneStatus = "Completed"
)

// Valid reports whether s is a known milestone status.
func (s MilestoneStatus) Valid() bool {
	switch s {
	case MilestonePlanned, MilestoneInProgress, MilestoneCompleted:
		return true
	}
	return false
}

// Milestone is a billable unit of project work.
type Milestone struct {
	ID             string          `json:"id"`
	ProjectID      string          `json:"project_id"`
	Name           string          `json:"name"`
	EstimatedHours float64         `json:"estimated_hours"`
	EstimatedCost  float64         `json:"estimated_cost"`
	Price          float64         `json:"price"`
	Progress       int             `json:"progress"`
	Status         MilestoneStatus `json:"status"`
	DueDate        *time.Time      `json:"due_date,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// Invoiceable reports whether the milestone may be selected for a partial
// invoice.
func (m *Milestone) Invoiceable() bool {
	return m.Status == MilestoneCompleted
}

// ScopeStatus is the decision state of a scope change.
type ScopeStatus string

const (
	ScopePending  ScopeStatus = "Pending"
	ScopeApproved ScopeStatus = "Approved"
	ScopeRejected ScopeStatus = "Rejected"
)

// ScopeChange is a proposed delta to a project's baseline.
type ScopeChange struct {
	ID          string      `json:"id"`
	ProjectID   string      `json:"project_id"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	CostImpact  float64     `json:"cost_impact"`
	PriceImpact float64     `json:"price_impact"`
	Status      ScopeStatus `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
	DecidedAt   *time.Time  `json:"decided_at,omitempty"`
}

// Expense is money spent on a project.
type Expense struct {
	ID          string    `json:"id"`
	ProjectID   string    `json:"project_id"`
	Category    string    `json:"category"`
	Description string    `json:"description,omitempty"`
	Amount      float64   `json:"amount"`
	Date        time.Time `json:"date"`
}

// Document is metadata for a file kept in the document store.
type Document struct {
	ID          string    `json:"id"`
	ProjectID   string    `json:"project_id"`
	Name        string    `json:"name"`
	MimeType    string    `json:"mime_type,omitempty"`
	Size        int64     `json:"size"`
	StoragePath string    `json:"storage_path"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

// Details is a project with everything it owns.
type Details struct {
	Project      Project       `json:"project"`
	Milestones   []Milestone   `json:"milestones"`
	ScopeChanges []ScopeChange `json:"scope_changes"`
	Expenses     []Expense     `json:"expenses"`
	Documents    []Document    `json:"documents"`
}
