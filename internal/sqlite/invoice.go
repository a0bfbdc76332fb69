package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/rpggio/atelier/internal/domain/invoice"
	"github.com/rpggio/atelier/internal/repository"
)

// InvoiceRepository implements invoice.Repository for SQLite
type InvoiceRepository struct {
	db queryer
}

// NewInvoiceRepository creates a new InvoiceRepository
func NewInvoiceRepository(db *DB) *InvoiceRepository {
	return &InvoiceRepository{db: db.DB}
}

const invoiceColumns = `id, client_id, project_id, invoice_number, status, subtotal, tax_rate,
	tax, total, issue_date, due_date, paid_at, notes, created_at`

// Create inserts an invoice. A reused invoice number fails with
// repository.ErrConflict.
func (r *InvoiceRepository) Create(ctx context.Context, inv *invoice.Invoice) error {
	query := `INSERT INTO invoices (` + invoiceColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		inv.ID, inv.ClientID, nullString(inv.ProjectID), inv.InvoiceNumber, inv.Status,
		inv.Subtotal, inv.TaxRate, inv.Tax, inv.Total,
		inv.IssueDate, inv.DueDate, nullTime(inv.PaidAt), inv.Notes, inv.CreatedAt,
	)
	if err != nil {
		return writeErr("create invoice", err)
	}
	return nil
}

// Get retrieves an invoice by ID
func (r *InvoiceRepository) Get(ctx context.Context, id string) (*invoice.Invoice, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id = ?`, id)
	inv, err := scanInvoice(row)
	if isNoRows(err) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}
	return inv, nil
}

// List returns invoices matching the given filters, newest first
func (r *InvoiceRepository) List(ctx context.Context, opts invoice.ListOptions) ([]invoice.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices`

	var args []any
	var conditions []string
	if opts.ClientID != "" {
		conditions = append(conditions, "client_id = ?")
		args = append(args, opts.ClientID)
	}
	if opts.ProjectID != "" {
		conditions = append(conditions, "project_id = ?")
		args = append(args, opts.ProjectID)
	}
	if opts.Status != "" {
		conditions = append(conditions, "status = ?")
		args = append(args, opts.Status)
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY issue_date DESC, invoice_number DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	defer rows.Close()

	invoices := []invoice.Invoice{}
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invoice: %w", err)
		}
		invoices = append(invoices, *inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating invoice rows: %w", err)
	}
	return invoices, nil
}

// UpdateStatus sets an invoice's status and payment time
func (r *InvoiceRepository) UpdateStatus(ctx context.Context, id string, status invoice.Status, paidAt *time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE invoices SET status = ?, paid_at = ? WHERE id = ?`,
		status, nullTime(paidAt), id,
	)
	if err != nil {
		return writeErr("update invoice status", err)
	}
	return requireRow(res)
}

func scanInvoice(s scanner) (*invoice.Invoice, error) {
	var inv invoice.Invoice
	var projectID sql.NullString
	var paidAt sql.NullTime
	err := s.Scan(
		&inv.ID, &inv.ClientID, &projectID, &inv.InvoiceNumber, &inv.Status,
		&inv.Subtotal, &inv.TaxRate, &inv.Tax, &inv.Total,
		&inv.IssueDate, &inv.DueDate, &paidAt, &inv.Notes, &inv.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	inv.ProjectID = stringPtr(projectID)
	inv.PaidAt = timePtr(paidAt)
	return &inv, nil
}
