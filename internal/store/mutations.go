package store

import (
	"context"

	"github.com/rpggio/atelier/internal/domain/client"
	"github.com/rpggio/atelier/internal/domain/invoice"
	"github.com/rpggio/atelier/internal/domain/lifecycle"
	"github.com/rpggio/atelier/internal/domain/project"
	"github.com/rpggio/atelier/internal/domain/quote"
	"github.com/rpggio/atelier/internal/domain/settings"
)

// Clients

func (s *Store) CreateClient(ctx context.Context, req client.CreateRequest) (*client.Client, error) {
	c, err := s.gw.CreateClient(ctx, req)
	if err != nil {
		return nil, s.fail(ctx, err)
	}
	s.mu.Lock()
	s.clients = upsert(s.clients, *c, clientID)
	s.mu.Unlock()
	s.succeed(ctx, "Client created")
	return c, nil
}

func (s *Store) UpdateClient(ctx context.Context, req client.UpdateRequest) (*client.Client, error) {
	c, err := s.gw.UpdateClient(ctx, req)
	if err != nil {
		return nil, s.fail(ctx, err)
	}
	s.mu.Lock()
	s.clients = upsert(s.clients, *c, clientID)
	s.mu.Unlock()
	s.succeed(ctx, "Client updated")
	return c, nil
}

// DeleteClient cascades on the backend, so every collection that can hold
// the client's rows is re-fetched.
func (s *Store) DeleteClient(ctx context.Context, id string) error {
	if err := s.gw.DeleteClient(ctx, id); err != nil {
		return s.fail(ctx, err)
	}
	s.dropDetails()
	s.refetch(ctx, s.fetchClients, s.fetchQuotes, s.fetchProjects, s.fetchInvoices)
	s.succeed(ctx, "Client deleted")
	return nil
}

// Quotes

func (s *Store) CreateQuote(ctx context.Context, req quote.CreateRequest) (*quote.Quote, error) {
	q, err := s.gw.CreateQuote(ctx, req)
	if err != nil {
		return nil, s.fail(ctx, err)
	}
	s.mu.Lock()
	s.quotes = upsert(s.quotes, *q, quoteID)
	s.mu.Unlock()
	s.succeed(ctx, "Quote created")
	return q, nil
}

func (s *Store) UpdateQuoteStatus(ctx context.Context, id string, status quote.Status) (*quote.Quote, error) {
	q, err := s.gw.UpdateQuoteStatus(ctx, id, status)
	if err != nil {
		return nil, s.fail(ctx, err)
	}
	s.mu.Lock()
	s.quotes = upsert(s.quotes, *q, quoteID)
	s.mu.Unlock()
	s.succeed(ctx, "Quote marked "+string(q.Status))
	return q, nil
}

func (s *Store) DuplicateQuote(ctx context.Context, id string) (*quote.Quote, error) {
	q, err := s.gw.DuplicateQuote(ctx, id)
	if err != nil {
		return nil, s.fail(ctx, err)
	}
	s.mu.Lock()
	s.quotes = upsert(s.quotes, *q, quoteID)
	s.mu.Unlock()
	s.succeed(ctx, "Quote duplicated")
	return q, nil
}

// ApproveQuote creates a project and milestones on the backend; quotes and
// projects are re-fetched.
func (s *Store) ApproveQuote(ctx context.Context, id string) (*lifecycle.ApproveResult, error) {
	result, err := s.gw.ApproveQuote(ctx, id)
	if err != nil {
		return nil, s.fail(ctx, err)
	}
	s.refetch(ctx, s.fetchQuotes, s.fetchProjects)
	s.succeed(ctx, "Quote approved and project created")
	return result, nil
}

// DeleteQuote also clears the quote reference of projects built from it.
func (s *Store) DeleteQuote(ctx context.Context, id string) error {
	if err := s.gw.DeleteQuote(ctx, id); err != nil {
		return s.fail(ctx, err)
	}
	s.mu.Lock()
	s.quotes = remove(s.quotes, id, quoteID)
	s.mu.Unlock()
	s.refetch(ctx, s.fetchProjects)
	s.succeed(ctx, "Quote deleted")
	return nil
}

// Projects

func (s *Store) CreateProject(ctx context.Context, req project.CreateRequest) (*project.Project, error) {
	p, err := s.gw.CreateProject(ctx, req)
	if err != nil {
		return nil, s.fail(ctx, err)
	}
	s.mu.Lock()
	s.projects = upsert(s.projects, *p, projectID)
	s.mu.Unlock()
	s.succeed(ctx, "Project created")
	return p, nil
}

func (s *Store) UpdateProject(ctx context.Context, req project.UpdateRequest) (*project.Project, error) {
	p, err := s.gw.UpdateProject(ctx, req)
	if err != nil {
		return nil, s.fail(ctx, err)
	}
	s.mu.Lock()
	s.projects = upsert(s.projects, *p, projectID)
	if d, ok := s.details[p.ID]; ok {
		d.Project = *p
	}
	s.mu.Unlock()
	s.succeed(ctx, "Project updated")
	return p, nil
}

// DeleteProject nulls the project reference of its invoices on the backend.
func (s *Store) DeleteProject(ctx context.Context, id string) error {
	if err := s.gw.DeleteProject(ctx, id); err != nil {
		return s.fail(ctx, err)
	}
	s.mu.Lock()
	s.projects = remove(s.projects, id, projectID)
	s.mu.Unlock()
	s.dropDetails(id)
	s.refetch(ctx, s.fetchInvoices)
	s.succeed(ctx, "Project deleted")
	return nil
}

// Milestones

func (s *Store) CreateMilestone(ctx context.Context, req project.MilestoneRequest) (*project.Milestone, error) {
	m, err := s.gw.CreateMilestone(ctx, req)
	if err != nil {
		return nil, s.fail(ctx, err)
	}
	s.patchDetails(m.ProjectID, func(d *project.Details) {
		d.Milestones = upsert(d.Milestones, *m, milestoneID)
	})
	s.succeed(ctx, "Milestone created")
	return m, nil
}

func (s *Store) UpdateMilestone(ctx context.Context, req project.MilestoneUpdate) (*project.Milestone, error) {
	m, err := s.gw.UpdateMilestone(ctx, req)
	if err != nil {
		return nil, s.fail(ctx, err)
	}
	s.patchDetails(m.ProjectID, func(d *project.Details) {
		d.Milestones = upsert(d.Milestones, *m, milestoneID)
	})
	s.succeed(ctx, "Milestone updated")
	return m, nil
}

func (s *Store) DeleteMilestone(ctx context.Context, id string) error {
	if err := s.gw.DeleteMilestone(ctx, id); err != nil {
		return s.fail(ctx, err)
	}
	if owner, ok := s.ownerOf(func(d *project.Details) bool { return containsID(d.Milestones, id, milestoneID) }); ok {
		s.patchDetails(owner, func(d *project.Details) {
			d.Milestones = remove(d.Milestones, id, milestoneID)
		})
	}
	s.succeed(ctx, "Milestone deleted")
	return nil
}

// Scope changes

func (s *Store) CreateScopeChange(ctx context.Context, req project.ScopeChangeRequest) (*project.ScopeChange, error) {
	sc, err := s.gw.CreateScopeChange(ctx, req)
	if err != nil {
		return nil, s.fail(ctx, err)
	}
	s.patchDetails(sc.ProjectID, func(d *project.Details) {
		d.ScopeChanges = upsert(d.ScopeChanges, *sc, scopeChangeID)
	})
	s.succeed(ctx, "Scope change created")
	return sc, nil
}

// ApproveScopeChange moves the project baseline on the backend; the
// project list and its details are re-fetched.
func (s *Store) ApproveScopeChange(ctx context.Context, id string) (*lifecycle.ScopeResult, error) {
	result, err := s.gw.ApproveScopeChange(ctx, id)
	if err != nil {
		return nil, s.fail(ctx, err)
	}
	s.refetch(ctx, s.fetchProjects, s.detailsLoader(result.ScopeChange.ProjectID))
	s.succeed(ctx, "Scope change approved")
	return result, nil
}

func (s *Store) RejectScopeChange(ctx context.Context, id string) (*project.ScopeChange, error) {
	sc, err := s.gw.RejectScopeChange(ctx, id)
	if err != nil {
		return nil, s.fail(ctx, err)
	}
	s.patchDetails(sc.ProjectID, func(d *project.Details) {
		d.ScopeChanges = upsert(d.ScopeChanges, *sc, scopeChangeID)
	})
	s.succeed(ctx, "Scope change rejected")
	return sc, nil
}

func (s *Store) DeleteScopeChange(ctx context.Context, id string) error {
	if err := s.gw.DeleteScopeChange(ctx, id); err != nil {
		return s.fail(ctx, err)
	}
	if owner, ok := s.ownerOf(func(d *project.Details) bool { return containsID(d.ScopeChanges, id, scopeChangeID) }); ok {
		s.patchDetails(owner, func(d *project.Details) {
			d.ScopeChanges = remove(d.ScopeChanges, id, scopeChangeID)
		})
	}
	s.succeed(ctx, "Scope change deleted")
	return nil
}

// Documents

func (s *Store) UploadDocument(ctx context.Context, req project.UploadRequest) (*project.Document, error) {
	doc, err := s.gw.UploadDocument(ctx, req)
	if err != nil {
		return nil, s.fail(ctx, err)
	}
	s.patchDetails(doc.ProjectID, func(d *project.Details) {
		d.Documents = append([]project.Document{*doc}, d.Documents...)
	})
	s.succeed(ctx, "Document uploaded")
	return doc, nil
}

func (s *Store) DeleteDocument(ctx context.Context, id string) error {
	if err := s.gw.DeleteDocument(ctx, id); err != nil {
		return s.fail(ctx, err)
	}
	if owner, ok := s.ownerOf(func(d *project.Details) bool { return containsID(d.Documents, id, documentID) }); ok {
		s.patchDetails(owner, func(d *project.Details) {
			d.Documents = remove(d.Documents, id, documentID)
		})
	}
	s.succeed(ctx, "Document deleted")
	return nil
}

// Expenses

// AddExpense changes the project's actual cost; the project list and its
// details are re-fetched.
func (s *Store) AddExpense(ctx context.Context, req lifecycle.ExpenseRequest) (*lifecycle.ExpenseResult, error) {
	result, err := s.gw.AddExpense(ctx, req)
	if err != nil {
		return nil, s.fail(ctx, err)
	}
	s.refetch(ctx, s.fetchProjects, s.detailsLoader(result.Project.ID))
	s.succeed(ctx, "Expense added")
	return result, nil
}

func (s *Store) DeleteExpense(ctx context.Context, id string) (*lifecycle.ExpenseResult, error) {
	result, err := s.gw.DeleteExpense(ctx, id)
	if err != nil {
		return nil, s.fail(ctx, err)
	}
	s.refetch(ctx, s.fetchProjects, s.detailsLoader(result.Project.ID))
	s.succeed(ctx, "Expense deleted")
	return result, nil
}

// Invoices

func (s *Store) MarkInvoicePaid(ctx context.Context, id string) (*invoice.Invoice, error) {
	inv, err := s.gw.MarkInvoicePaid(ctx, id)
	if err != nil {
		return nil, s.fail(ctx, err)
	}
	s.mu.Lock()
	s.invoices = upsert(s.invoices, *inv, invoiceID)
	s.mu.Unlock()
	s.succeed(ctx, "Invoice "+inv.InvoiceNumber+" marked paid")
	return inv, nil
}

func (s *Store) UpdateInvoiceStatus(ctx context.Context, id string, status invoice.Status) (*invoice.Invoice, error) {
	inv, err := s.gw.UpdateInvoiceStatus(ctx, id, status)
	if err != nil {
		return nil, s.fail(ctx, err)
	}
	s.mu.Lock()
	s.invoices = upsert(s.invoices, *inv, invoiceID)
	s.mu.Unlock()
	s.succeed(ctx, "Invoice "+inv.InvoiceNumber+" marked "+string(inv.Status))
	return inv, nil
}

// GenerateInvoice advances the invoice counter on the backend; invoices and
// settings are re-fetched.
func (s *Store) GenerateInvoice(ctx context.Context, req lifecycle.GenerateRequest) (*invoice.Invoice, error) {
	inv, err := s.gw.GenerateInvoice(ctx, req)
	if err != nil {
		return nil, s.fail(ctx, err)
	}
	s.refetch(ctx, s.fetchInvoices, s.fetchSettings)
	s.succeed(ctx, "Invoice "+inv.InvoiceNumber+" generated")
	return inv, nil
}

func (s *Store) CreateManualInvoice(ctx context.Context, req lifecycle.ManualInvoiceRequest) (*invoice.Invoice, error) {
	inv, err := s.gw.CreateManualInvoice(ctx, req)
	if err != nil {
		return nil, s.fail(ctx, err)
	}
	s.refetch(ctx, s.fetchInvoices, s.fetchSettings)
	s.succeed(ctx, "Invoice "+inv.InvoiceNumber+" created")
	return inv, nil
}

// Settings

func (s *Store) UpdateSettings(ctx context.Context, values settings.Settings) (settings.Settings, error) {
	updated, err := s.gw.UpdateSettings(ctx, values)
	if err != nil {
		return nil, s.fail(ctx, err)
	}
	s.mu.Lock()
	s.settings = updated
	s.loaded[keySettings] = true
	s.mu.Unlock()
	s.succeed(ctx, "Settings saved")
	return updated, nil
}

// Reset empties the backend and then the cache, and reloads everything.
func (s *Store) Reset(ctx context.Context) error {
	if err := s.gw.Reset(ctx); err != nil {
		return s.fail(ctx, err)
	}
	s.mu.Lock()
	s.clients, s.quotes, s.projects, s.invoices, s.settings = nil, nil, nil, nil, nil
	s.details = map[string]*project.Details{}
	s.loaded = map[string]bool{}
	s.mu.Unlock()
	s.refetch(ctx, s.fetchClients, s.fetchQuotes, s.fetchProjects, s.fetchInvoices, s.fetchSettings)
	s.succeed(ctx, "All data reset")
	return nil
}

func containsID[T any](list []T, itemID string, id func(T) string) bool {
	for _, v := range list {
		if id(v) == itemID {
			return true
		}
	}
	return false
}
