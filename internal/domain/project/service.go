package project

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rpggio/atelier/internal/apperr"
	"github.com/rpggio/atelier/internal/repository"
)

// Service handles projects and the records they own, except for the
// multi-entity transitions handled by the lifecycle engine.
type Service struct {
	projects   Repository
	milestones MilestoneRepository
	scopes     ScopeChangeRepository
	expenses   ExpenseRepository
	documents  DocumentRepository
	files      FileStore
	logger     *slog.Logger
}

// NewService creates a new project service.
func NewService(
	projects Repository,
	milestones MilestoneRepository,
	scopes ScopeChangeRepository,
	expenses ExpenseRepository,
	documents DocumentRepository,
	files FileStore,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{
		projects:   projects,
		milestones: milestones,
		scopes:     scopes,
		expenses:   expenses,
		documents:  documents,
		files:      files,
		logger:     logger,
	}
}

// CreateRequest defines manual project creation inputs.
type CreateRequest struct {
	ClientID      string
	Name          string
	Description   string
	Type          Type
	Status        Status
	BaselineCost  float64
	BaselinePrice float64
	StartDate     *time.Time
	EndDate       *time.Time
}

// UpdateRequest carries the fields to change; nil means unchanged. The
// baseline is not editable here.
type UpdateRequest struct {
	ID          string
	Name        *string
	Description *string
	Type        *Type
	Status      *Status
	Progress    *int
	StartDate   *time.Time
	EndDate     *time.Time
}

// Create creates a project with a frozen baseline.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Project, error) {
	if req.Type == "" {
		req.Type = TypeFixed
	}
	if req.Status == "" {
		req.Status = StatusPlanned
	}

	v := apperr.Violations{}
	if strings.TrimSpace(req.ClientID) == "" {
		v["client_id"] = "required"
	}
	if strings.TrimSpace(req.Name) == "" {
		v["name"] = "required"
	}
	if !req.Type.Valid() {
		v["type"] = "invalid"
	}
	if !req.Status.Valid() {
		v["status"] = "invalid"
	}
	if req.BaselineCost < 0 {
		v["baseline_cost"] = "must_not_be_negative"
	}
	if req.BaselinePrice < 0 {
		v["baseline_price"] = "must_not_be_negative"
	}
	if err := v.Check(); err != nil {
		return nil, err
	}

	now := time.Now()
	p := &Project{
		ID:            uuid.NewString(),
		ClientID:      req.ClientID,
		Name:          strings.TrimSpace(req.Name),
		Description:   req.Description,
		Type:          req.Type,
		Status:        req.Status,
		BaselineCost:  req.BaselineCost,
		BaselinePrice: req.BaselinePrice,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	p.RecomputeMargin()

	if err := s.projects.Create(ctx, p); err != nil {
		if errors.Is(err, repository.ErrForeignKeyViolation) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("creating project: %w", err)
	}

	s.logger.Info("project created", "project_id", p.ID, "client_id", p.ClientID)
	return p, nil
}

// Get fetches a project by ID.
func (s *Service) Get(ctx context.Context, id string) (*Project, error) {
	p, err := s.projects.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("getting project: %w", err)
	}
	return p, nil
}

// List returns projects, optionally restricted to one client.
func (s *Service) List(ctx context.Context, clientID string) ([]Project, error) {
	return s.projects.List(ctx, clientID)
}

// Update applies a partial update to a project. Only the fields present in
// req are written, so a concurrent expense or scope approval keeps its
// effect on the baseline and actual cost.
func (s *Service) Update(ctx context.Context, req UpdateRequest) (*Project, error) {
	current, err := s.Get(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	patch := Patch{
		Description: req.Description,
		Type:        req.Type,
		Status:      req.Status,
		Progress:    req.Progress,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		UpdatedAt:   time.Now(),
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		patch.Name = &name
	}

	merged := *current
	if patch.Name != nil {
		merged.Name = *patch.Name
	}
	if patch.Type != nil {
		merged.Type = *patch.Type
	}
	if patch.Status != nil {
		merged.Status = *patch.Status
	}
	if patch.Progress != nil {
		merged.Progress = *patch.Progress
	}

	v := apperr.Violations{}
	if merged.Name == "" {
		v["name"] = "required"
	}
	if !merged.Type.Valid() {
		v["type"] = "invalid"
	}
	if !merged.Status.Valid() {
		v["status"] = "invalid"
	}
	if merged.Progress < 0 || merged.Progress > 100 {
		v["progress"] = "out_of_range"
	}
	if err := v.Check(); err != nil {
		return nil, err
	}

	if err := s.projects.Patch(ctx, req.ID, patch); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("updating project: %w", err)
	}
	return s.Get(ctx, req.ID)
}

// Details returns a project with its milestones, scope changes, expenses
// and documents.
func (s *Service) Details(ctx context.Context, id string) (*Details, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	milestones, err := s.milestones.ListByProject(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("listing milestones: %w", err)
	}
	scopes, err := s.scopes.ListByProject(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("listing scope changes: %w", err)
	}
	expenses, err := s.expenses.ListByProject(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("listing expenses: %w", err)
	}
	documents, err := s.documents.ListByProject(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}

	return &Details{
		Project:      *p,
		Milestones:   milestones,
		ScopeChanges: scopes,
		Expenses:     expenses,
		Documents:    documents,
	}, nil
}

// Delete removes a project and everything it owns. Document files are
// removed best-effort once the rows are gone.
func (s *Service) Delete(ctx context.Context, id string) error {
	docs, err := s.documents.ListByProject(ctx, id)
	if err != nil {
		return fmt.Errorf("listing documents: %w", err)
	}

	if err := s.projects.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("deleting project: %w", err)
	}

	for _, d := range docs {
		s.removeFile(d.StoragePath)
	}
	s.logger.Info("project deleted", "project_id", id, "documents_removed", len(docs))
	return nil
}

// ListExpenses returns a project's expenses, newest first.
func (s *Service) ListExpenses(ctx context.Context, projectID string) ([]Expense, error) {
	return s.expenses.ListByProject(ctx, projectID)
}

// ensureUnlocked loads the project and rejects completed ones.
func (s *Service) ensureUnlocked(ctx context.Context, projectID string) (*Project, error) {
	p, err := s.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if p.Locked() {
		return nil, ErrProjectLocked
	}
	return p, nil
}

func (s *Service) removeFile(path string) {
	if s.files == nil || path == "" {
		return
	}
	if err := s.files.Delete(path); err != nil {
		s.logger.Warn("failed to remove document file", "path", path, "error", err)
	}
}
