package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rpggio/atelier/internal/domain/quote"
	"github.com/rpggio/atelier/internal/repository"
)

// QuoteRepository implements quote.Repository for SQLite. Items are stored
// in quote_items and always read and written together with their quote.
type QuoteRepository struct {
	db queryer
}

// NewQuoteRepository creates a new QuoteRepository
func NewQuoteRepository(db *DB) *QuoteRepository {
	return &QuoteRepository{db: db.DB}
}

const quoteColumns = `id, client_id, name, version, status, total_cost, total_price, margin,
	tax_rate, discount_rate, notes, valid_until, created_at, updated_at`

// Create inserts a quote and its items. Callers that need atomicity run it
// on a transaction-bound repository.
func (r *QuoteRepository) Create(ctx context.Context, q *quote.Quote) error {
	query := `INSERT INTO quotes (` + quoteColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		q.ID, q.ClientID, q.Name, q.Version, q.Status,
		q.TotalCost, q.TotalPrice, q.Margin, q.TaxRate, q.DiscountRate,
		q.Notes, nullTime(q.ValidUntil), q.CreatedAt, q.UpdatedAt,
	)
	if err != nil {
		return writeErr("create quote", err)
	}

	for _, item := range q.Items {
		_, err := r.db.ExecContext(ctx, `
			INSERT INTO quote_items (id, quote_id, position, description, quantity, rate, cost, total)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, item.ID, q.ID, item.Position, item.Description, item.Quantity, item.Rate, item.Cost, item.Total)
		if err != nil {
			return writeErr("create quote item", err)
		}
	}
	return nil
}

// Get retrieves a quote with its items in position order
func (r *QuoteRepository) Get(ctx context.Context, id string) (*quote.Quote, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+quoteColumns+` FROM quotes WHERE id = ?`, id)
	q, err := scanQuote(row)
	if isNoRows(err) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get quote: %w", err)
	}

	items, err := r.items(ctx, id)
	if err != nil {
		return nil, err
	}
	q.Items = items
	return q, nil
}

func (r *QuoteRepository) items(ctx context.Context, quoteID string) ([]quote.Item, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, quote_id, position, description, quantity, rate, cost, total
		FROM quote_items
		WHERE quote_id = ?
		ORDER BY position ASC
	`, quoteID)
	if err != nil {
		return nil, fmt.Errorf("failed to list quote items: %w", err)
	}
	defer rows.Close()

	items := []quote.Item{}
	for rows.Next() {
		var item quote.Item
		if err := rows.Scan(
			&item.ID, &item.QuoteID, &item.Position, &item.Description,
			&item.Quantity, &item.Rate, &item.Cost, &item.Total,
		); err != nil {
			return nil, fmt.Errorf("failed to scan quote item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating quote item rows: %w", err)
	}
	return items, nil
}

// List returns quotes, newest first, optionally filtered by client. Items
// are not loaded.
func (r *QuoteRepository) List(ctx context.Context, clientID string) ([]quote.Quote, error) {
	query := `SELECT ` + quoteColumns + ` FROM quotes`
	var args []any
	if clientID != "" {
		query += ` WHERE client_id = ?`
		args = append(args, clientID)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list quotes: %w", err)
	}
	defer rows.Close()

	quotes := []quote.Quote{}
	for rows.Next() {
		q, err := scanQuote(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan quote: %w", err)
		}
		quotes = append(quotes, *q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating quote rows: %w", err)
	}
	return quotes, nil
}

// UpdateStatus moves a quote from status from to status to. It returns
// repository.ErrStale when the quote exists but no longer has status from.
func (r *QuoteRepository) UpdateStatus(ctx context.Context, id string, from, to quote.Status, updatedAt time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE quotes SET status = ?, updated_at = ? WHERE id = ? AND status = ?`,
		to, updatedAt, id, from,
	)
	if err != nil {
		return writeErr("update quote status", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n > 0 {
		return nil
	}

	var exists int
	err = r.db.QueryRowContext(ctx, `SELECT 1 FROM quotes WHERE id = ?`, id).Scan(&exists)
	if isNoRows(err) {
		return repository.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to check quote: %w", err)
	}
	return repository.ErrStale
}

// Delete removes a quote and its items. A project created from the quote
// keeps existing with a null quote reference.
func (r *QuoteRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM quotes WHERE id = ?`, id)
	if err != nil {
		return writeErr("delete quote", err)
	}
	return requireRow(res)
}

func scanQuote(s scanner) (*quote.Quote, error) {
	var q quote.Quote
	var validUntil sql.NullTime
	err := s.Scan(
		&q.ID, &q.ClientID, &q.Name, &q.Version, &q.Status,
		&q.TotalCost, &q.TotalPrice, &q.Margin, &q.TaxRate, &q.DiscountRate,
		&q.Notes, &validUntil, &q.CreatedAt, &q.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	q.ValidUntil = timePtr(validUntil)
	return &q, nil
}
