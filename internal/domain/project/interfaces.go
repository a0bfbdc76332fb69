package project

import (
	"context"
	"time"
)

// Patch lists the editable project fields to overwrite. Nil fields keep
// their stored value. The baseline and actual cost are never patched.
type Patch struct {
	Name        *string
	Description *string
	Type        *Type
	Status      *Status
	Progress    *int
	StartDate   *time.Time
	EndDate     *time.Time
	UpdatedAt   time.Time
}

// MilestonePatch lists the milestone fields to overwrite.
type MilestonePatch struct {
	Name           *string
	EstimatedHours *float64
	EstimatedCost  *float64
	Price          *float64
	Progress       *int
	Status         *MilestoneStatus
	DueDate        *time.Time
}

// Repository provides persistence for projects.
type Repository interface {
	Create(ctx context.Context, p *Project) error
	Get(ctx context.Context, id string) (*Project, error)
	Patch(ctx context.Context, id string, patch Patch) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, clientID string) ([]Project, error)
}

// MilestoneRepository provides persistence for milestones.
type MilestoneRepository interface {
	Create(ctx context.Context, m *Milestone) error
	Get(ctx context.Context, id string) (*Milestone, error)
	Patch(ctx context.Context, id string, patch MilestonePatch) error
	Delete(ctx context.Context, id string) error
	ListByProject(ctx context.Context, projectID string) ([]Milestone, error)
}

// ScopeChangeRepository provides persistence for scope changes.
type ScopeChangeRepository interface {
	Create(ctx context.Context, sc *ScopeChange) error
	Get(ctx context.Context, id string) (*ScopeChange, error)
	Delete(ctx context.Context, id string) error
	ListByProject(ctx context.Context, projectID string) ([]ScopeChange, error)
}

// ExpenseRepository lists expenses. Mutations go through the lifecycle
// engine so that ActualCost stays in sync.
type ExpenseRepository interface {
	ListByProject(ctx context.Context, projectID string) ([]Expense, error)
}

// DocumentRepository provides persistence for document metadata.
type DocumentRepository interface {
	Create(ctx context.Context, d *Document) error
	Get(ctx context.Context, id string) (*Document, error)
	Delete(ctx context.Context, id string) error
	ListByProject(ctx context.Context, projectID string) ([]Document, error)
}

// FileStore keeps document bytes keyed by absolute path.
type FileStore interface {
	Write(name string, data []byte) (string, error)
	Read(path string) ([]byte, error)
	Delete(path string) error
}
