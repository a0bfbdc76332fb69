// Package app wires the persistence gateway, the document store and the
// domain services into the set of operations exposed to callers.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rpggio/atelier/internal/domain/audit"
	"github.com/rpggio/atelier/internal/domain/client"
	"github.com/rpggio/atelier/internal/domain/invoice"
	"github.com/rpggio/atelier/internal/domain/lifecycle"
	"github.com/rpggio/atelier/internal/domain/project"
	"github.com/rpggio/atelier/internal/domain/quote"
	"github.com/rpggio/atelier/internal/domain/settings"
	"github.com/rpggio/atelier/internal/filestore"
	"github.com/rpggio/atelier/internal/report"
	"github.com/rpggio/atelier/internal/sqlite"
)

// App is the request-facing facade. Every method is one logical operation.
type App struct {
	db     *sqlite.DB
	files  *filestore.Store
	logger *slog.Logger

	clients   *client.Service
	quotes    *quote.Service
	projects  *project.Service
	invoices  *invoice.Service
	settings  *settings.Service
	audit     *audit.Service
	lifecycle *lifecycle.Engine
}

// New builds the services on top of db and files.
func New(db *sqlite.DB, files *filestore.Store, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	documentRepo := sqlite.NewDocumentRepository(db)

	return &App{
		db:     db,
		files:  files,
		logger: logger,
		clients: client.NewService(sqlite.NewClientRepository(db), logger).
			WithDocumentCleanup(documentRepo, files),
		quotes: quote.NewService(sqlite.NewQuoteRepository(db), logger),
		projects: project.NewService(
			sqlite.NewProjectRepository(db),
			sqlite.NewMilestoneRepository(db),
			sqlite.NewScopeChangeRepository(db),
			sqlite.NewExpenseRepository(db),
			documentRepo,
			files,
			logger,
		),
		invoices:  invoice.NewService(sqlite.NewInvoiceRepository(db)),
		settings:  settings.NewService(sqlite.NewSettingsRepository(db)),
		audit:     audit.NewService(sqlite.NewAuditRepository(db)),
		lifecycle: lifecycle.NewEngine(sqlite.NewStore(db), logger),
	}
}

// Clients

func (a *App) ListClients(ctx context.Context) ([]client.Client, error) {
	return a.clients.List(ctx)
}

func (a *App) CreateClient(ctx context.Context, req client.CreateRequest) (*client.Client, error) {
	return a.clients.Create(ctx, req)
}

func (a *App) UpdateClient(ctx context.Context, req client.UpdateRequest) (*client.Client, error) {
	return a.clients.Update(ctx, req)
}

// DeleteClient removes the client with its quotes, projects, invoices and
// document files.
func (a *App) DeleteClient(ctx context.Context, id string) error {
	return a.clients.Delete(ctx, id)
}

// Quotes

func (a *App) ListQuotes(ctx context.Context, clientID string) ([]quote.Quote, error) {
	return a.quotes.List(ctx, clientID)
}

func (a *App) GetQuote(ctx context.Context, id string) (*quote.Quote, error) {
	return a.quotes.Get(ctx, id)
}

func (a *App) CreateQuote(ctx context.Context, req quote.CreateRequest) (*quote.Quote, error) {
	return a.quotes.Create(ctx, req)
}

func (a *App) UpdateQuoteStatus(ctx context.Context, id string, status quote.Status) (*quote.Quote, error) {
	return a.quotes.UpdateStatus(ctx, id, status)
}

func (a *App) DuplicateQuote(ctx context.Context, id string) (*quote.Quote, error) {
	return a.lifecycle.DuplicateQuote(ctx, id)
}

func (a *App) ApproveQuote(ctx context.Context, id string) (*lifecycle.ApproveResult, error) {
	return a.lifecycle.ApproveQuote(ctx, id)
}

func (a *App) DeleteQuote(ctx context.Context, id string) error {
	return a.quotes.Delete(ctx, id)
}

// Projects

func (a *App) ListProjects(ctx context.Context, clientID string) ([]project.Project, error) {
	return a.projects.List(ctx, clientID)
}

func (a *App) CreateProject(ctx context.Context, req project.CreateRequest) (*project.Project, error) {
	return a.projects.Create(ctx, req)
}

func (a *App) UpdateProject(ctx context.Context, req project.UpdateRequest) (*project.Project, error) {
	return a.projects.Update(ctx, req)
}

func (a *App) ProjectDetails(ctx context.Context, id string) (*project.Details, error) {
	return a.projects.Details(ctx, id)
}

func (a *App) DeleteProject(ctx context.Context, id string) error {
	return a.projects.Delete(ctx, id)
}

func (a *App) CreateMilestone(ctx context.Context, req project.MilestoneRequest) (*project.Milestone, error) {
	return a.projects.CreateMilestone(ctx, req)
}

func (a *App) UpdateMilestone(ctx context.Context, req project.MilestoneUpdate) (*project.Milestone, error) {
	return a.projects.UpdateMilestone(ctx, req)
}

func (a *App) DeleteMilestone(ctx context.Context, id string) error {
	return a.projects.DeleteMilestone(ctx, id)
}

func (a *App) CreateScopeChange(ctx context.Context, req project.ScopeChangeRequest) (*project.ScopeChange, error) {
	return a.projects.CreateScopeChange(ctx, req)
}

func (a *App) ApproveScopeChange(ctx context.Context, id string) (*lifecycle.ScopeResult, error) {
	return a.lifecycle.ApproveScopeChange(ctx, id)
}

func (a *App) RejectScopeChange(ctx context.Context, id string) (*project.ScopeChange, error) {
	return a.lifecycle.RejectScopeChange(ctx, id)
}

func (a *App) DeleteScopeChange(ctx context.Context, id string) error {
	return a.projects.DeleteScopeChange(ctx, id)
}

// Documents

func (a *App) ListDocuments(ctx context.Context, projectID string) ([]project.Document, error) {
	return a.projects.ListDocuments(ctx, projectID)
}

func (a *App) UploadDocument(ctx context.Context, req project.UploadRequest) (*project.Document, error) {
	return a.projects.UploadDocument(ctx, req)
}

func (a *App) DownloadDocument(ctx context.Context, id string) (*project.Document, []byte, error) {
	return a.projects.DownloadDocument(ctx, id)
}

func (a *App) DeleteDocument(ctx context.Context, id string) error {
	return a.projects.DeleteDocument(ctx, id)
}

// Expenses

func (a *App) ListExpenses(ctx context.Context, projectID string) ([]project.Expense, error) {
	return a.projects.ListExpenses(ctx, projectID)
}

func (a *App) AddExpense(ctx context.Context, req lifecycle.ExpenseRequest) (*lifecycle.ExpenseResult, error) {
	return a.lifecycle.AddExpense(ctx, req)
}

func (a *App) DeleteExpense(ctx context.Context, id string) (*lifecycle.ExpenseResult, error) {
	return a.lifecycle.DeleteExpense(ctx, id)
}

// Invoices

func (a *App) ListInvoices(ctx context.Context, opts invoice.ListOptions) ([]invoice.Invoice, error) {
	return a.invoices.List(ctx, opts)
}

func (a *App) MarkInvoicePaid(ctx context.Context, id string) (*invoice.Invoice, error) {
	return a.lifecycle.MarkInvoicePaid(ctx, id)
}

func (a *App) UpdateInvoiceStatus(ctx context.Context, id string, status invoice.Status) (*invoice.Invoice, error) {
	return a.lifecycle.UpdateInvoiceStatus(ctx, id, status)
}

func (a *App) GenerateInvoice(ctx context.Context, req lifecycle.GenerateRequest) (*invoice.Invoice, error) {
	return a.lifecycle.GenerateInvoice(ctx, req)
}

func (a *App) CreateManualInvoice(ctx context.Context, req lifecycle.ManualInvoiceRequest) (*invoice.Invoice, error) {
	return a.lifecycle.CreateManualInvoice(ctx, req)
}

// Settings and housekeeping

func (a *App) GetSettings(ctx context.Context) (settings.Settings, error) {
	return a.settings.Get(ctx)
}

func (a *App) UpdateSettings(ctx context.Context, values settings.Settings) (settings.Settings, error) {
	return a.settings.Update(ctx, values)
}

func (a *App) AuditTrail(ctx context.Context, opts audit.ListOptions) ([]audit.Entry, error) {
	return a.audit.List(ctx, opts)
}

// ProjectReport renders the project, its owned records and its invoices as
// an XLSX workbook.
func (a *App) ProjectReport(ctx context.Context, projectID string) ([]byte, error) {
	details, err := a.projects.Details(ctx, projectID)
	if err != nil {
		return nil, err
	}
	invoices, err := a.invoices.List(ctx, invoice.ListOptions{ProjectID: projectID})
	if err != nil {
		return nil, fmt.Errorf("listing project invoices: %w", err)
	}
	data, err := report.ProjectWorkbook(details, invoices)
	if err != nil {
		return nil, fmt.Errorf("building project report: %w", err)
	}
	return data, nil
}

// Reset empties every table and removes every stored document file.
func (a *App) Reset(ctx context.Context) error {
	if err := a.db.Reset(ctx); err != nil {
		return fmt.Errorf("resetting database: %w", err)
	}
	if a.files != nil {
		if err := a.files.Purge(); err != nil {
			a.logger.Warn("failed to purge document files", "error", err)
		}
	}
	a.logger.Warn("database reset")
	return nil
}
