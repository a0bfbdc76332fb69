package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rpggio/atelier/internal/domain/project"
	"github.com/rpggio/atelier/internal/repository"
)

// MilestoneRepository implements project.MilestoneRepository for SQLite
type MilestoneRepository struct {
	db queryer
}

// NewMilestoneRepository creates a new MilestoneRepository
func NewMilestoneRepository(db *DB) *MilestoneRepository {
	return &MilestoneRepository{db: db.DB}
}

const milestoneColumns = `id, project_id, name, estimated_hours, estimated_cost, price,
	progress, status, due_date, created_at`

// Create inserts a milestone
func (r *MilestoneRepository) Create(ctx context.Context, m *project.Milestone) error {
	query := `INSERT INTO milestones (` + milestoneColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		m.ID, m.ProjectID, m.Name, m.EstimatedHours, m.EstimatedCost, m.Price,
		m.Progress, m.Status, nullTime(m.DueDate), m.CreatedAt,
	)
	if err != nil {
		return writeErr("create milestone", err)
	}
	return nil
}

// Get retrieves a milestone by ID
func (r *MilestoneRepository) Get(ctx context.Context, id string) (*project.Milestone, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+milestoneColumns+` FROM milestones WHERE id = ?`, id)
	m, err := scanMilestone(row)
	if isNoRows(err) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get milestone: %w", err)
	}
	return m, nil
}

// Patch overwrites the milestone columns set in patch
func (r *MilestoneRepository) Patch(ctx context.Context, id string, patch project.MilestonePatch) error {
	query := `
		UPDATE milestones
		SET name = COALESCE(?, name),
			estimated_hours = COALESCE(?, estimated_hours),
			estimated_cost = COALESCE(?, estimated_cost),
			price = COALESCE(?, price),
			progress = COALESCE(?, progress),
			status = COALESCE(?, status),
			due_date = COALESCE(?, due_date)
		WHERE id = ?
	`
	res, err := r.db.ExecContext(ctx, query,
		optional(patch.Name), optional(patch.EstimatedHours), optional(patch.EstimatedCost),
		optional(patch.Price), optional(patch.Progress), optional(patch.Status),
		nullTime(patch.DueDate), id,
	)
	if err != nil {
		return writeErr("patch milestone", err)
	}
	return requireRow(res)
}

// Delete removes a milestone
func (r *MilestoneRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM milestones WHERE id = ?`, id)
	if err != nil {
		return writeErr("delete milestone", err)
	}
	return requireRow(res)
}

// ListByProject returns a project's milestones in creation order
func (r *MilestoneRepository) ListByProject(ctx context.Context, projectID string) ([]project.Milestone, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+milestoneColumns+` FROM milestones WHERE project_id = ? ORDER BY created_at ASC, rowid ASC`,
		projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list milestones: %w", err)
	}
	defer rows.Close()

	milestones := []project.Milestone{}
	for rows.Next() {
		m, err := scanMilestone(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan milestone: %w", err)
		}
		milestones = append(milestones, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating milestone rows: %w", err)
	}
	return milestones, nil
}

func scanMilestone(s scanner) (*project.Milestone, error) {
	var m project.Milestone
	var due sql.NullTime
	err := s.Scan(
		&m.ID, &m.ProjectID, &m.Name, &m.EstimatedHours, &m.EstimatedCost, &m.Price,
		&m.Progress, &m.Status, &due, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	m.DueDate = timePtr(due)
	return &m, nil
}
