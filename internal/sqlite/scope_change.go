package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rpggio/atelier/internal/domain/project"
	"github.com/rpggio/atelier/internal/repository"
)

// ScopeChangeRepository implements project.ScopeChangeRepository for SQLite
type ScopeChangeRepository struct {
	db queryer
}

// NewScopeChangeRepository creates a new ScopeChangeRepository
func NewScopeChangeRepository(db *DB) *ScopeChangeRepository {
	return &ScopeChangeRepository{db: db.DB}
}

const scopeChangeColumns = `id, project_id, title, description, cost_impact, price_impact,
	status, created_at, decided_at`

// Create inserts a scope change
func (r *ScopeChangeRepository) Create(ctx context.Context, sc *project.ScopeChange) error {
	query := `INSERT INTO scope_changes (` + scopeChangeColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		sc.ID, sc.ProjectID, sc.Title, sc.Description, sc.CostImpact, sc.PriceImpact,
		sc.Status, sc.CreatedAt, nullTime(sc.DecidedAt),
	)
	if err != nil {
		return writeErr("create scope change", err)
	}
	return nil
}

// Get retrieves a scope change by ID
func (r *ScopeChangeRepository) Get(ctx context.Context, id string) (*project.ScopeChange, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+scopeChangeColumns+` FROM scope_changes WHERE id = ?`, id)
	sc, err := scanScopeChange(row)
	if isNoRows(err) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get scope change: %w", err)
	}
	return sc, nil
}

// UpdateStatus records the decision on a scope change
func (r *ScopeChangeRepository) UpdateStatus(ctx context.Context, id string, status project.ScopeStatus, decidedAt time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE scope_changes SET status = ?, decided_at = ? WHERE id = ?`,
		status, decidedAt, id,
	)
	if err != nil {
		return writeErr("update scope change status", err)
	}
	return requireRow(res)
}

// Delete removes a scope change
func (r *ScopeChangeRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM scope_changes WHERE id = ?`, id)
	if err != nil {
		return writeErr("delete scope change", err)
	}
	return requireRow(res)
}

// ListByProject returns a project's scope changes, newest first
func (r *ScopeChangeRepository) ListByProject(ctx context.Context, projectID string) ([]project.ScopeChange, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+scopeChangeColumns+` FROM scope_changes WHERE project_id = ? ORDER BY created_at DESC`,
		projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list scope changes: %w", err)
	}
	defer rows.Close()

	changes := []project.ScopeChange{}
	for rows.Next() {
		sc, err := scanScopeChange(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan scope change: %w", err)
		}
		changes = append(changes, *sc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating scope change rows: %w", err)
	}
	return changes, nil
}

func scanScopeChange(s scanner) (*project.ScopeChange, error) {
	var sc project.ScopeChange
	var decided sql.NullTime
	err := s.Scan(
		&sc.ID, &sc.ProjectID, &sc.Title, &sc.Description, &sc.CostImpact, &sc.PriceImpact,
		&sc.Status, &sc.CreatedAt, &decided,
	)
	if err != nil {
		return nil, err
	}
	sc.DecidedAt = timePtr(decided)
	return &sc, nil
}
