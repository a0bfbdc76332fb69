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

// MilestoneRequest defines milestone creation inputs.
type MilestoneRequest struct {
	ProjectID      string
	Name           string
	EstimatedHours float64
	EstimatedCost  float64
	Price          float64
	DueDate        *time.Time
}

// MilestoneUpdate carries the fields to change; nil means unchanged.
type MilestoneUpdate struct {
	ID             string
	Name           *string
	EstimatedHours *float64
	EstimatedCost  *float64
	Price          *float64
	Progress       *int
	Status         *MilestoneStatus
	DueDate        *time.Time
}

// CreateMilestone adds a planned milestone to an unlocked project.
func (s *Service) CreateMilestone(ctx context.Context, req MilestoneRequest) (*Milestone, error) {
	m := &Milestone{
		ID:             uuid.NewString(),
		ProjectID:      req.ProjectID,
		Name:           strings.TrimSpace(req.Name),
		EstimatedHours: req.EstimatedHours,
		EstimatedCost:  req.EstimatedCost,
		Price:          req.Price,
		Status:         MilestonePlanned,
		DueDate:        req.DueDate,
		CreatedAt:      time.Now(),
	}
	if err := validateMilestone(m); err != nil {
		return nil, err
	}
	if _, err := s.ensureUnlocked(ctx, req.ProjectID); err != nil {
		return nil, err
	}

	if err := s.milestones.Create(ctx, m); err != nil {
		if errors.Is(err, repository.ErrForeignKeyViolation) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("creating milestone: %w", err)
	}
	return m, nil
}

// UpdateMilestone applies a partial update. Reaching 100% progress marks the
// milestone Completed unless a status was given explicitly.
func (s *Service) UpdateMilestone(ctx context.Context, req MilestoneUpdate) (*Milestone, error) {
	current, err := s.milestones.Get(ctx, req.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMilestoneNotFound
		}
		return nil, fmt.Errorf("getting milestone: %w", err)
	}
	if _, err := s.ensureUnlocked(ctx, current.ProjectID); err != nil {
		return nil, err
	}

	patch := MilestonePatch{
		EstimatedHours: req.EstimatedHours,
		EstimatedCost:  req.EstimatedCost,
		Price:          req.Price,
		Progress:       req.Progress,
		Status:         req.Status,
		DueDate:        req.DueDate,
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		patch.Name = &name
	}
	if patch.Status == nil && patch.Progress != nil && *patch.Progress == 100 {
		completed := MilestoneCompleted
		patch.Status = &completed
	}

	merged := *current
	if patch.Name != nil {
		merged.Name = *patch.Name
	}
	if patch.EstimatedHours != nil {
		merged.EstimatedHours = *patch.EstimatedHours
	}
	if patch.EstimatedCost != nil {
		merged.EstimatedCost = *patch.EstimatedCost
	}
	if patch.Price != nil {
		merged.Price = *patch.Price
	}
	if patch.Progress != nil {
		merged.Progress = *patch.Progress
	}
	if patch.Status != nil {
		merged.Status = *patch.Status
	}
	if patch.DueDate != nil {
		merged.DueDate = patch.DueDate
	}
	if err := validateMilestone(&merged); err != nil {
		return nil, err
	}

	if err := s.milestones.Patch(ctx, req.ID, patch); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMilestoneNotFound
		}
		return nil, fmt.Errorf("updating milestone: %w", err)
	}
	updated, err := s.milestones.Get(ctx, req.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMilestoneNotFound
		}
		return nil, fmt.Errorf("getting milestone: %w", err)
	}
	return updated, nil
}

// DeleteMilestone removes a milestone from an unlocked project.
func (s *Service) DeleteMilestone(ctx context.Context, id string) error {
	current, err := s.milestones.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrMilestoneNotFound
		}
		return fmt.Errorf("getting milestone: %w", err)
	}
	if _, err := s.ensureUnlocked(ctx, current.ProjectID); err != nil {
		return err
	}
	if err := s.milestones.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrMilestoneNotFound
		}
		return fmt.Errorf("deleting milestone: %w", err)
	}
	return nil
}

func validateMilestone(m *Milestone) error {
	v := apperr.Violations{}
	if strings.TrimSpace(m.ProjectID) == "" {
		v["project_id"] = "required"
	}
	if m.Name == "" {
		v["name"] = "required"
	}
	if m.EstimatedHours < 0 {
		v["estimated_hours"] = "must_not_be_negative"
	}
	if m.EstimatedCost < 0 {
		v["estimated_cost"] = "must_not_be_negative"
	}
	if m.Price < 0 {
		v["price"] = "must_not_be_negative"
	}
	if m.Progress < 0 || m.Progress > 100 {
		v["progress"] = "out_of_range"
	}
	if !m.Status.Valid() {
		v["status"] = "invalid"
	}
	return v.Check()
}
