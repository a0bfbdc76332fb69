package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rpggio/atelier/internal/domain/project"
	"github.com/rpggio/atelier/internal/repository"
)

// ProjectRepository implements project.Repository for SQLite
type ProjectRepository struct {
	db queryer
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *DB) *ProjectRepository {
	return &ProjectRepository{db: db.DB}
}

const projectColumns = `id, client_id, quote_id, name, description, type, status,
	baseline_cost, baseline_price, baseline_margin, actual_cost, progress,
	start_date, end_date, created_at, updated_at`

// Create creates a new project
func (r *ProjectRepository) Create(ctx context.Context, p *project.Project) error {
	query := `INSERT INTO projects (` + projectColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.ClientID, nullString(p.QuoteID), p.Name, p.Description, p.Type, p.Status,
		p.BaselineCost, p.BaselinePrice, p.BaselineMargin, p.ActualCost, p.Progress,
		nullTime(p.StartDate), nullTime(p.EndDate), p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return writeErr("create project", err)
	}
	return nil
}

// Get retrieves a project by ID
func (r *ProjectRepository) Get(ctx context.Context, id string) (*project.Project, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = ?`, id)
	p, err := scanProject(row)
	if isNoRows(err) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return p, nil
}

// Patch overwrites the editable columns set in patch and leaves the rest,
// including the baseline and actual cost, as stored.
func (r *ProjectRepository) Patch(ctx context.Context, id string, patch project.Patch) error {
	query := `
		UPDATE projects
		SET name = COALESCE(?, name),
			description = COALESCE(?, description),
			type = COALESCE(?, type),
			status = COALESCE(?, status),
			progress = COALESCE(?, progress),
			start_date = COALESCE(?, start_date),
			end_date = COALESCE(?, end_date),
			updated_at = ?
		WHERE id = ?
	`
	res, err := r.db.ExecContext(ctx, query,
		optional(patch.Name), optional(patch.Description), optional(patch.Type),
		optional(patch.Status), optional(patch.Progress),
		nullTime(patch.StartDate), nullTime(patch.EndDate), patch.UpdatedAt,
		id,
	)
	if err != nil {
		return writeErr("patch project", err)
	}
	return requireRow(res)
}

// UpdateFinancials writes the baseline and actual cost of p.
func (r *ProjectRepository) UpdateFinancials(ctx context.Context, p *project.Project) error {
	query := `
		UPDATE projects
		SET baseline_cost = ?, baseline_price = ?, baseline_margin = ?,
			actual_cost = ?, updated_at = ?
		WHERE id = ?
	`
	res, err := r.db.ExecContext(ctx, query,
		p.BaselineCost, p.BaselinePrice, p.BaselineMargin, p.ActualCost, p.UpdatedAt,
		p.ID,
	)
	if err != nil {
		return writeErr("update project financials", err)
	}
	return requireRow(res)
}

// Delete removes a project. Milestones, scope changes, expenses and
// document rows cascade; invoices keep a null project reference.
func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return writeErr("delete project", err)
	}
	return requireRow(res)
}

// List returns projects, newest first, optionally filtered by client
func (r *ProjectRepository) List(ctx context.Context, clientID string) ([]project.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects`
	var args []any
	if clientID != "" {
		query += ` WHERE client_id = ?`
		args = append(args, clientID)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	projects := []project.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating project rows: %w", err)
	}
	return projects, nil
}

func scanProject(s scanner) (*project.Project, error) {
	var p project.Project
	var quoteID sql.NullString
	var start, end sql.NullTime
	err := s.Scan(
		&p.ID, &p.ClientID, &quoteID, &p.Name, &p.Description, &p.Type, &p.Status,
		&p.BaselineCost, &p.BaselinePrice, &p.BaselineMargin, &p.ActualCost, &p.Progress,
		&start, &end, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.QuoteID = stringPtr(quoteID)
	p.StartDate = timePtr(start)
	p.EndDate = timePtr(end)
	return &p, nil
}
