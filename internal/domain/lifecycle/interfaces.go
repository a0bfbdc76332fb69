package lifecycle

import (
	"context"
	"time"

	"github.com/rpggio/atelier/internal/domain/audit"
	"github.com/rpggio/atelier/internal/domain/client"
	"github.com/rpggio/atelier/internal/domain/invoice"
	"github.com/rpggio/atelier/internal/domain/project"
	"github.com/rpggio/atelier/internal/domain/quote"
	"github.com/rpggio/atelier/internal/domain/settings"
)

// Transactor runs fn inside one database transaction. The transaction
// commits when fn returns nil and rolls back otherwise.
type Transactor interface {
	Atomic(ctx context.Context, fn func(tx Tx) error) error
}

// Tx exposes the stores bound to a single transaction.
type Tx interface {
	Clients() ClientStore
	Quotes() QuoteStore
	Projects() ProjectStore
	Milestones() MilestoneStore
	ScopeChanges() ScopeChangeStore
	Expenses() ExpenseStore
	Invoices() InvoiceStore
	Settings() SettingsStore
	Audit() AuditStore
}

// ClientStore reads clients.
type ClientStore interface {
	Get(ctx context.Context, id string) (*client.Client, error)
}

// QuoteStore reads and writes quotes.
type QuoteStore interface {
	Create(ctx context.Context, q *quote.Quote) error
	Get(ctx context.Context, id string) (*quote.Quote, error)
	UpdateStatus(ctx context.Context, id string, from, to quote.Status, updatedAt time.Time) error
}

// ProjectStore reads and writes projects. UpdateFinancials touches only the
// baseline and actual cost columns.
type ProjectStore interface {
	Create(ctx context.Context, p *project.Project) error
	Get(ctx context.Context, id string) (*project.Project, error)
	UpdateFinancials(ctx context.Context, p *project.Project) error
}

// MilestoneStore reads and writes milestones.
type MilestoneStore interface {
	Create(ctx context.Context, m *project.Milestone) error
	ListByProject(ctx context.Context, projectID string) ([]project.Milestone, error)
}

// ScopeChangeStore reads scope changes and records decisions.
type ScopeChangeStore interface {
	Get(ctx context.Context, id string) (*project.ScopeChange, error)
	UpdateStatus(ctx context.Context, id string, status project.ScopeStatus, decidedAt time.Time) error
}

// ExpenseStore reads and writes expenses.
type ExpenseStore interface {
	Create(ctx context.Context, e *project.Expense) error
	Get(ctx context.Context, id string) (*project.Expense, error)
	Delete(ctx context.Context, id string) error
}

// InvoiceStore reads and writes invoices.
type InvoiceStore interface {
	Create(ctx context.Context, inv *invoice.Invoice) error
	Get(ctx context.Context, id string) (*invoice.Invoice, error)
	UpdateStatus(ctx context.Context, id string, status invoice.Status, paidAt *time.Time) error
}

// SettingsStore is the settings accessor consumed by invoice generation.
type SettingsStore interface {
	All(ctx context.Context) (settings.Settings, error)
	Upsert(ctx context.Context, values settings.Settings) error
}

// AuditStore appends audit entries.
type AuditStore interface {
	Log(ctx context.Context, entry *audit.Entry) error
}
