package quote

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rpggio/atelier/internal/repository"
)

// Service handles quote operations that touch a single quote. Approval and
// duplication live in the lifecycle engine.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new quote service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{repo: repo, logger: logger}
}

// ItemInput describes one quote line.
type ItemInput struct {
	Description string
	Quantity    float64
	Rate        float64
	Cost        float64
}

// CreateRequest defines quote creation inputs.
type CreateRequest struct {
	ClientID     string
	Name         string
	TaxRate      float64
	DiscountRate float64
	Notes        string
	ValidUntil   *time.Time
	Items        []ItemInput
}

// Create creates a draft quote and computes its totals from the items.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Quote, error) {
	if err := ValidateCreateInput(req); err != nil {
		return nil, err
	}

	now := time.Now()
	q := &Quote{
		ID:           uuid.NewString(),
		ClientID:     req.ClientID,
		Name:         strings.TrimSpace(req.Name),
		Version:      1,
		Status:       StatusDraft,
		TaxRate:      req.TaxRate,
		DiscountRate: req.DiscountRate,
		Notes:        req.Notes,
		ValidUntil:   req.ValidUntil,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	for i, in := range req.Items {
		q.Items = append(q.Items, Item{
			ID:          uuid.NewString(),
			QuoteID:     q.ID,
			Position:    i,
			Description: strings.TrimSpace(in.Description),
			Quantity:    in.Quantity,
			Rate:        in.Rate,
			Cost:        in.Cost,
		})
	}
	q.ApplyTotals()

	if err := s.repo.Create(ctx, q); err != nil {
		if errors.Is(err, repository.ErrForeignKeyViolation) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("creating quote: %w", err)
	}

	s.logger.Info("quote created", "quote_id", q.ID, "items", len(q.Items), "total_price", q.TotalPrice)
	return q, nil
}

// Get fetches a quote with its items.
func (s *Service) Get(ctx context.Context, id string) (*Quote, error) {
	q, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrQuoteNotFound
		}
		return nil, fmt.Errorf("getting quote: %w", err)
	}
	return q, nil
}

// List returns quotes, optionally restricted to one client.
func (s *Service) List(ctx context.Context, clientID string) ([]Quote, error) {
	return s.repo.List(ctx, clientID)
}

// UpdateStatus moves a quote to Sent, Rejected or Archived.
func (s *Service) UpdateStatus(ctx context.Context, id string, to Status) (*Quote, error) {
	if to == StatusApproved {
		return nil, ErrUseApprove
	}

	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := ValidateTransition(current.Status, to); err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.repo.UpdateStatus(ctx, id, current.Status, to, now); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrQuoteNotFound
		case errors.Is(err, repository.ErrStale):
			return nil, ErrInvalidTransition
		}
		return nil, fmt.Errorf("updating quote status: %w", err)
	}

	current.Status = to
	current.UpdatedAt = now
	return current, nil
}

// Delete removes a quote and its items.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrQuoteNotFound
		}
		return fmt.Errorf("deleting quote: %w", err)
	}
	return nil
}
