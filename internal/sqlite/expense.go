package sqlite

import (
	"context"
	"fmt"

	"github.com/rpggio/atelier/internal/domain/project"
	"github.com/rpggio/atelier/internal/repository"
)

// ExpenseRepository stores project expenses. Writes are only issued from
// transaction-bound instances so that the project's actual cost moves with
// them.
type ExpenseRepository struct {
	db queryer
}

// NewExpenseRepository creates a new ExpenseRepository
func NewExpenseRepository(db *DB) *ExpenseRepository {
	return &ExpenseRepository{db: db.DB}
}

const expenseColumns = `id, project_id, category, description, amount, date`

// Create inserts an expense
func (r *ExpenseRepository) Create(ctx context.Context, e *project.Expense) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO expenses (`+expenseColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.ProjectID, e.Category, e.Description, e.Amount, e.Date,
	)
	if err != nil {
		return writeErr("create expense", err)
	}
	return nil
}

// Get retrieves an expense by ID
func (r *ExpenseRepository) Get(ctx context.Context, id string) (*project.Expense, error) {
	var e project.Expense
	err := r.db.QueryRowContext(ctx, `SELECT `+expenseColumns+` FROM expenses WHERE id = ?`, id).Scan(
		&e.ID, &e.ProjectID, &e.Category, &e.Description, &e.Amount, &e.Date,
	)
	if isNoRows(err) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}
	return &e, nil
}

// Delete removes an expense
func (r *ExpenseRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = ?`, id)
	if err != nil {
		return writeErr("delete expense", err)
	}
	return requireRow(res)
}

// ListByProject returns a project's expenses, most recent date first
func (r *ExpenseRepository) ListByProject(ctx context.Context, projectID string) ([]project.Expense, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+expenseColumns+` FROM expenses WHERE project_id = ? ORDER BY date DESC`,
		projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	expenses := []project.Expense{}
	for rows.Next() {
		var e project.Expense
		if err := rows.Scan(&e.ID, &e.ProjectID, &e.Category, &e.Description, &e.Amount, &e.Date); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expense rows: %w", err)
	}
	return expenses, nil
}
