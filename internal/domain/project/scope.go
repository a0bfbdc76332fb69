package project

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rpggio/atelier/internal/apperr"
	"github.com/rpggio/atelier/internal/repository"
)

// ScopeChangeRequest defines scope change creation inputs.
type ScopeChangeRequest struct {
	ProjectID   string
	Title       string
	Description string
	CostImpact  float64
	PriceImpact float64
}

// CreateScopeChange records a pending scope change. Impacts may be
// negative; they only reach the baseline once approved.
func (s *Service) CreateScopeChange(ctx context.Context, req ScopeChangeRequest) (*ScopeChange, error) {
	v := apperr.Violations{}
	if strings.TrimSpace(req.ProjectID) == "" {
		v["project_id"] = "required"
	}
	if strings.TrimSpace(req.Title) == "" {
		v["title"] = "required"
	}
	if err := v.Check(); err != nil {
		return nil, err
	}

	sc := &ScopeChange{
		ID:          uuid.NewString(),
		ProjectID:   req.ProjectID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		CostImpact:  req.CostImpact,
		PriceImpact: req.PriceImpact,
		Status:      ScopePending,
		CreatedAt:   time.Now(),
	}
	if err := s.scopes.Create(ctx, sc); err != nil {
		if errors.Is(err, repository.ErrForeignKeyViolation) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("creating scope change: %w", err)
	}
	return sc, nil
}

// ListScopeChanges returns a project's scope changes, newest first.
func (s *Service) ListScopeChanges(ctx context.Context, projectID string) ([]ScopeChange, error) {
	return s.scopes.ListByProject(ctx, projectID)
}

// DeleteScopeChange removes a scope change record. An approved change has
// already been folded into the baseline and stays there.
func (s *Service) DeleteScopeChange(ctx context.Context, id string) error {
	if err := s.scopes.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrScopeChangeNotFound
		}
		return fmt.Errorf("deleting scope change: %w", err)
	}
	return nil
}
