package sqlite

import (
	"context"
	"database/sql"

	"github.com/rpggio/atelier/internal/domain/lifecycle"
)

// Store runs lifecycle operations against transaction-bound repositories.
type Store struct {
	db *DB
}

// NewStore creates a new Store
func NewStore(db *DB) *Store {
	return &Store{db: db}
}

// Atomic implements lifecycle.Transactor.
func (s *Store) Atomic(ctx context.Context, fn func(tx lifecycle.Tx) error) error {
	return s.db.WithTx(ctx, func(tx *sql.Tx) error {
		return fn(txRepos{tx: tx})
	})
}

type txRepos struct {
	tx *sql.Tx
}

func (t txRepos) Clients() lifecycle.ClientStore { return &ClientRepository{db: t.tx} }

func (t txRepos) Quotes() lifecycle.QuoteStore { return &QuoteRepository{db: t.tx} }

func (t txRepos) Projects() lifecycle.ProjectStore { return &ProjectRepository{db: t.tx} }

func (t txRepos) Milestones() lifecycle.MilestoneStore { return &MilestoneRepository{db: t.tx} }

func (t txRepos) ScopeChanges() lifecycle.ScopeChangeStore { return &ScopeChangeRepository{db: t.tx} }

func (t txRepos) Expenses() lifecycle.ExpenseStore { return &ExpenseRepository{db: t.tx} }

func (t txRepos) Invoices() lifecycle.InvoiceStore { return &InvoiceRepository{db: t.tx} }

func (t txRepos) Settings() lifecycle.SettingsStore { return &SettingsRepository{db: t.tx} }

func (t txRepos) Audit() lifecycle.AuditStore { return &AuditRepository{db: t.tx} }
