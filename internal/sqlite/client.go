package sqlite

import (
	"context"
	"fmt"

	"github.com/rpggio/atelier/internal/domain/client"
	"github.com/rpggio/atelier/internal/repository"
)

// ClientRepository implements client.Repository for SQLite
type ClientRepository struct {
	db queryer
}

// NewClientRepository creates a new ClientRepository
func NewClientRepository(db *DB) *ClientRepository {
	return &ClientRepository{db: db.DB}
}

const clientColumns = `id, name, email, phone, company, address, currency, tax_rate, status, notes, created_at, updated_at`

// Create inserts a new client
func (r *ClientRepository) Create(ctx context.Context, c *client.Client) error {
	query := `INSERT INTO clients (` + clientColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		c.ID, c.Name, c.Email, c.Phone, c.Company, c.Address,
		c.Currency, c.TaxRate, c.Status, c.Notes, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return writeErr("create client", err)
	}
	return nil
}

// Get retrieves a client by ID
func (r *ClientRepository) Get(ctx context.Context, id string) (*client.Client, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+clientColumns+` FROM clients WHERE id = ?`, id)

	c, err := scanClient(row)
	if isNoRows(err) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	return c, nil
}

// Update overwrites every mutable column of a client
func (r *ClientRepository) Update(ctx context.Context, c *client.Client) error {
	query := `
		UPDATE clients
		SET name = ?, email = ?, phone = ?, company = ?, address = ?,
			currency = ?, tax_rate = ?, status = ?, notes = ?, updated_at = ?
		WHERE id = ?
	`
	res, err := r.db.ExecContext(ctx, query,
		c.Name, c.Email, c.Phone, c.Company, c.Address,
		c.Currency, c.TaxRate, c.Status, c.Notes, c.UpdatedAt, c.ID,
	)
	if err != nil {
		return writeErr("update client", err)
	}
	return requireRow(res)
}

// Delete removes a client. Quotes, projects and invoices cascade.
func (r *ClientRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM clients WHERE id = ?`, id)
	if err != nil {
		return writeErr("delete client", err)
	}
	return requireRow(res)
}

// List returns all clients ordered by name
func (r *ClientRepository) List(ctx context.Context) ([]client.Client, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+clientColumns+` FROM clients ORDER BY name COLLATE NOCASE`)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	defer rows.Close()

	clients := []client.Client{}
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan client: %w", err)
		}
		clients = append(clients, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating client rows: %w", err)
	}
	return clients, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanClient(s scanner) (*client.Client, error) {
	var c client.Client
	err := s.Scan(
		&c.ID, &c.Name, &c.Email, &c.Phone, &c.Company, &c.Address,
		&c.Currency, &c.TaxRate, &c.Status, &c.Notes, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
