package mcp

import (
	"github.com/rpggio/atelier/internal/domain/audit"
	"github.com/rpggio/atelier/internal/domain/client"
	"github.com/rpggio/atelier/internal/domain/invoice"
	"github.com/rpggio/atelier/internal/domain/project"
	"github.com/rpggio/atelier/internal/domain/quote"
	"github.com/rpggio/atelier/internal/domain/settings"
)

type NoParams struct{}

type IDParams struct {
	ID string `json:"id" jsonschema:"Identifier of the entity"`
}

type ClientFilterParams struct {
	ClientID string `json:"client_id,omitempty" jsonschema:"Only return entries for this client"`
}

type ProjectRefParams struct {
	ProjectID string `json:"project_id" jsonschema:"Project identifier"`
}

// Clients

type CreateClientParams struct {
	Name     string  `json:"name" jsonschema:"Client display name, unique"`
	Email    string  `json:"email,omitempty"`
	Phone    string  `json:"phone,omitempty"`
	Company  string  `json:"company,omitempty"`
	Address  string  `json:"address,omitempty"`
	Currency string  `json:"currency,omitempty" jsonschema:"ISO currency code, defaults to USD"`
	TaxRate  float64 `json:"tax_rate,omitempty" jsonschema:"Tax percentage applied to this client's invoices"`
	Notes    string  `json:"notes,omitempty"`
}

type UpdateClientParams struct {
	ID       string   `json:"id" jsonschema:"Client identifier"`
	Name     *string  `json:"name,omitempty"`
	Email    *string  `json:"email,omitempty"`
	Phone    *string  `json:"phone,omitempty"`
	Company  *string  `json:"company,omitempty"`
	Address  *string  `json:"address,omitempty"`
	Currency *string  `json:"currency,omitempty"`
	TaxRate  *float64 `json:"tax_rate,omitempty"`
	Status   *string  `json:"status,omitempty" jsonschema:"Active or Archived"`
	Notes    *string  `json:"notes,omitempty"`
}

// Quotes

type QuoteItemParams struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity" jsonschema:"Hours or units"`
	Rate        float64 `json:"rate" jsonschema:"Price per unit"`
	Cost        float64 `json:"cost,omitempty" jsonschema:"Internal cost of the whole line"`
}

type CreateQuoteParams struct {
	ClientID     string            `json:"client_id"`
	Name         string            `json:"name"`
	TaxRate      float64           `json:"tax_rate,omitempty"`
	DiscountRate float64           `json:"discount_rate,omitempty"`
	Notes        string            `json:"notes,omitempty"`
	ValidUntil   string            `json:"valid_until,omitempty" jsonschema:"Date as YYYY-MM-DD"`
	Items        []QuoteItemParams `json:"items,omitempty"`
}

type QuoteStatusParams struct {
	ID     string `json:"id" jsonschema:"Quote identifier"`
	Status string `json:"status" jsonschema:"Draft, Sent, Approved, Rejected or Archived"`
}

// Projects

type CreateProjectParams struct {
	ClientID      string  `json:"client_id"`
	Name          string  `json:"name"`
	Description   string  `json:"description,omitempty"`
	Type          string  `json:"type,omitempty" jsonschema:"Fixed, T&M or Retainer"`
	Status        string  `json:"status,omitempty" jsonschema:"Planned, Active, Completed, On Hold or Archived"`
	BaselineCost  float64 `json:"baseline_cost,omitempty"`
	BaselinePrice float64 `json:"baseline_price,omitempty"`
	StartDate     string  `json:"start_date,omitempty" jsonschema:"Date as YYYY-MM-DD"`
	EndDate       string  `json:"end_date,omitempty" jsonschema:"Date as YYYY-MM-DD"`
}

type UpdateProjectParams struct {
	ID          string  `json:"id" jsonschema:"Project identifier"`
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Type        *string `json:"type,omitempty"`
	Status      *string `json:"status,omitempty"`
	Progress    *int    `json:"progress,omitempty" jsonschema:"Percentage between 0 and 100"`
	StartDate   *string `json:"start_date,omitempty"`
	EndDate     *string `json:"end_date,omitempty"`
}

type CreateMilestoneParams struct {
	ProjectID      string  `json:"project_id"`
	Name           string  `json:"name"`
	EstimatedHours float64 `json:"estimated_hours,omitempty"`
	EstimatedCost  float64 `json:"estimated_cost,omitempty"`
	Price          float64 `json:"price,omitempty"`
	DueDate        string  `json:"due_date,omitempty" jsonschema:"Date as YYYY-MM-DD"`
}

type UpdateMilestoneParams struct {
	ID             string   `json:"id" jsonschema:"Milestone identifier"`
	Name           *string  `json:"name,omitempty"`
	EstimatedHours *float64 `json:"estimated_hours,omitempty"`
	EstimatedCost  *float64 `json:"estimated_cost,omitempty"`
	Price          *float64 `json:"price,omitempty"`
	Progress       *int     `json:"progress,omitempty"`
	Status         *string  `json:"status,omitempty" jsonschema:"Planned, In Progress or Completed"`
	DueDate        *string  `json:"due_date,omitempty"`
}

type CreateScopeChangeParams struct {
	ProjectID   string  `json:"project_id"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	CostImpact  float64 `json:"cost_impact,omitempty"`
	PriceImpact float64 `json:"price_impact,omitempty"`
}

type UploadDocumentParams struct {
	ProjectID     string `json:"project_id"`
	Name          string `json:"name" jsonschema:"File name"`
	MimeType      string `json:"mime_type,omitempty"`
	ContentBase64 string `json:"content_base64" jsonschema:"File content, base64 encoded"`
}

type AddExpenseParams struct {
	ProjectID   string  `json:"project_id"`
	Category    string  `json:"category"`
	Description string  `json:"description,omitempty"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date,omitempty" jsonschema:"Date as YYYY-MM-DD, defaults to today"`
}

// Invoices

type ListInvoicesParams struct {
	ClientID  string `json:"client_id,omitempty"`
	ProjectID string `json:"project_id,omitempty"`
	Status    string `json:"status,omitempty"`
}

type InvoiceStatusParams struct {
	ID     string `json:"id" jsonschema:"Invoice identifier"`
	Status string `json:"status" jsonschema:"Draft, Sent, Paid, Overdue or Archived"`
}

type GenerateInvoiceParams struct {
	ProjectID    string   `json:"project_id"`
	MilestoneIDs []string `json:"milestone_ids,omitempty" jsonschema:"Completed milestones to bill; omit to bill the baseline price"`
	Notes        string   `json:"notes,omitempty"`
}

type ManualInvoiceParams struct {
	ClientID  string   `json:"client_id"`
	ProjectID *string  `json:"project_id,omitempty"`
	Subtotal  float64  `json:"subtotal"`
	TaxRate   *float64 `json:"tax_rate,omitempty" jsonschema:"Overrides the client and settings tax rate"`
	Notes     string   `json:"notes,omitempty"`
}

// Settings, audit and maintenance

type UpdateSettingsParams struct {
	Settings map[string]string `json:"settings" jsonschema:"Keys to set, e.g. taxRate or invoicePrefix"`
}

type AuditTrailParams struct {
	EntityType string `json:"entity_type,omitempty"`
	EntityID   string `json:"entity_id,omitempty"`
	Limit      int    `json:"limit,omitempty"`
	Offset     int    `json:"offset,omitempty"`
}

type ResetParams struct {
	Confirm bool `json:"confirm" jsonschema:"Must be true"`
}

// Results. Lists are wrapped so structured output is always an object.

type ClientsResult struct {
	Clients []client.Client `json:"clients"`
}

type QuotesResult struct {
	Quotes []quote.Quote `json:"quotes"`
}

type ProjectsResult struct {
	Projects []project.Project `json:"projects"`
}

type DocumentsResult struct {
	Documents []project.Document `json:"documents"`
}

type DocumentContentResult struct {
	Document      *project.Document `json:"document"`
	ContentBase64 string            `json:"content_base64"`
}

type ExpensesResult struct {
	Expenses []project.Expense `json:"expenses"`
}

type InvoicesResult struct {
	Invoices []invoice.Invoice `json:"invoices"`
}

type SettingsResult struct {
	Settings settings.Settings `json:"settings"`
}

type AuditResult struct {
	Entries []audit.Entry `json:"entries"`
}

type ReportResult struct {
	FileName      string `json:"file_name"`
	MimeType      string `json:"mime_type"`
	ContentBase64 string `json:"content_base64"`
}

type DeletedResult struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}
