package mocks

import (
	"context"
	"time"

	"github.com/rpggio/atelier/internal/domain/audit"
	"github.com/rpggio/atelier/internal/domain/client"
	"github.com/rpggio/atelier/internal/domain/invoice"
	"github.com/rpggio/atelier/internal/domain/project"
	"github.com/rpggio/atelier/internal/domain/quote"
	"github.com/rpggio/atelier/internal/domain/settings"
	"github.com/stretchr/testify/mock"
)

// ClientRepository is a mock for client.Repository.
type ClientRepository struct {
	mock.Mock
}

func (m *ClientRepository) Create(ctx context.Context, c *client.Client) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *ClientRepository) Get(ctx context.Context, id string) (*client.Client, error) {
	args := m.Called(ctx, id)
	if c, ok := args.Get(0).(*client.Client); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ClientRepository) Update(ctx context.Context, c *client.Client) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *ClientRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *ClientRepository) List(ctx context.Context) ([]client.Client, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]client.Client); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// DocumentPaths is a mock for client.DocumentPaths.
type DocumentPaths struct {
	mock.Mock
}

func (m *DocumentPaths) PathsForClient(ctx context.Context, clientID string) ([]string, error) {
	args := m.Called(ctx, clientID)
	if paths, ok := args.Get(0).([]string); ok {
		return paths, args.Error(1)
	}
	return nil, args.Error(1)
}

// FileStore is a mock for project.FileStore and client.FileRemover.
type FileStore struct {
	mock.Mock
}

func (m *FileStore) Write(name string, data []byte) (string, error) {
	args := m.Called(name, data)
	return args.String(0), args.Error(1)
}

func (m *FileStore) Read(path string) ([]byte, error) {
	args := m.Called(path)
	if data, ok := args.Get(0).([]byte); ok {
		return data, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *FileStore) Delete(path string) error {
	args := m.Called(path)
	return args.Error(0)
}

// QuoteRepository is a mock for quote.Repository.
type QuoteRepository struct {
	mock.Mock
}

func (m *QuoteRepository) Create(ctx context.Context, q *quote.Quote) error {
	args := m.Called(ctx, q)
	return args.Error(0)
}

func (m *QuoteRepository) Get(ctx context.Context, id string) (*quote.Quote, error) {
	args := m.Called(ctx, id)
	if q, ok := args.Get(0).(*quote.Quote); ok {
		return q, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *QuoteRepository) List(ctx context.Context, clientID string) ([]quote.Quote, error) {
	args := m.Called(ctx, clientID)
	if list, ok := args.Get(0).([]quote.Quote); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *QuoteRepository) UpdateStatus(ctx context.Context, id string, from, to quote.Status, updatedAt time.Time) error {
	args := m.Called(ctx, id, from, to, updatedAt)
	return args.Error(0)
}

func (m *QuoteRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// ProjectRepository is a mock for project.Repository.
type ProjectRepository struct {
	mock.Mock
}

func (m *ProjectRepository) Create(ctx context.Context, p *project.Project) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *ProjectRepository) Get(ctx context.Context, id string) (*project.Project, error) {
	args := m.Called(ctx, id)
	if p, ok := args.Get(0).(*project.Project); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) Patch(ctx context.Context, id string, patch project.Patch) error {
	args := m.Called(ctx, id, patch)
	return args.Error(0)
}

func (m *ProjectRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *ProjectRepository) List(ctx context.Context, clientID string) ([]project.Project, error) {
	args := m.Called(ctx, clientID)
	if list, ok := args.Get(0).([]project.Project); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// MilestoneRepository is a mock for project.MilestoneRepository.
type MilestoneRepository struct {
	mock.Mock
}

func (m *MilestoneRepository) Create(ctx context.Context, ms *project.Milestone) error {
	args := m.Called(ctx, ms)
	return args.Error(0)
}

func (m *MilestoneRepository) Get(ctx context.Context, id string) (*project.Milestone, error) {
	args := m.Called(ctx, id)
	if ms, ok := args.Get(0).(*project.Milestone); ok {
		return ms, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MilestoneRepository) Patch(ctx context.Context, id string, patch project.MilestonePatch) error {
	args := m.Called(ctx, id, patch)
	return args.Error(0)
}

func (m *MilestoneRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MilestoneRepository) ListByProject(ctx context.Context, projectID string) ([]project.Milestone, error) {
	args := m.Called(ctx, projectID)
	if list, ok := args.Get(0).([]project.Milestone); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// ScopeChangeRepository is a mock for project.ScopeChangeRepository.
type ScopeChangeRepository struct {
	mock.Mock
}

func (m *ScopeChangeRepository) Create(ctx context.Context, sc *project.ScopeChange) error {
	args := m.Called(ctx, sc)
	return args.Error(0)
}

func (m *ScopeChangeRepository) Get(ctx context.Context, id string) (*project.ScopeChange, error) {
	args := m.Called(ctx, id)
	if sc, ok := args.Get(0).(*project.ScopeChange); ok {
		return sc, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ScopeChangeRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *ScopeChangeRepository) ListByProject(ctx context.Context, projectID string) ([]project.ScopeChange, error) {
	args := m.Called(ctx, projectID)
	if list, ok := args.Get(0).([]project.ScopeChange); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// ExpenseRepository is a mock for project.ExpenseRepository.
type ExpenseRepository struct {
	mock.Mock
}

func (m *ExpenseRepository) ListByProject(ctx context.Context, projectID string) ([]project.Expense, error) {
	args := m.Called(ctx, projectID)
	if list, ok := args.Get(0).([]project.Expense); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// DocumentRepository is a mock for project.DocumentRepository.
type DocumentRepository struct {
	mock.Mock
}

func (m *DocumentRepository) Create(ctx context.Context, d *project.Document) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *DocumentRepository) Get(ctx context.Context, id string) (*project.Document, error) {
	args := m.Called(ctx, id)
	if d, ok := args.Get(0).(*project.Document); ok {
		return d, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *DocumentRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *DocumentRepository) ListByProject(ctx context.Context, projectID string) ([]project.Document, error) {
	args := m.Called(ctx, projectID)
	if list, ok := args.Get(0).([]project.Document); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// InvoiceRepository is a mock for invoice.Repository.
type InvoiceRepository struct {
	mock.Mock
}

func (m *InvoiceRepository) Create(ctx context.Context, inv *invoice.Invoice) error {
	args := m.Called(ctx, inv)
	return args.Error(0)
}

func (m *InvoiceRepository) Get(ctx context.Context, id string) (*invoice.Invoice, error) {
	args := m.Called(ctx, id)
	if inv, ok := args.Get(0).(*invoice.Invoice); ok {
		return inv, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *InvoiceRepository) List(ctx context.Context, opts invoice.ListOptions) ([]invoice.Invoice, error) {
	args := m.Called(ctx, opts)
	if list, ok := args.Get(0).([]invoice.Invoice); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *InvoiceRepository) UpdateStatus(ctx context.Context, id string, status invoice.Status, paidAt *time.Time) error {
	args := m.Called(ctx, id, status, paidAt)
	return args.Error(0)
}

// SettingsRepository is a mock for settings.Repository.
type SettingsRepository struct {
	mock.Mock
}

func (m *SettingsRepository) All(ctx context.Context) (settings.Settings, error) {
	args := m.Called(ctx)
	if s, ok := args.Get(0).(settings.Settings); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *SettingsRepository) Upsert(ctx context.Context, values settings.Settings) error {
	args := m.Called(ctx, values)
	return args.Error(0)
}

// AuditRepository is a mock for audit.Repository.
type AuditRepository struct {
	mock.Mock
}

func (m *AuditRepository) Log(ctx context.Context, entry *audit.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *AuditRepository) List(ctx context.Context, opts audit.ListOptions) ([]audit.Entry, error) {
	args := m.Called(ctx, opts)
	if list, ok := args.Get(0).([]audit.Entry); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}
