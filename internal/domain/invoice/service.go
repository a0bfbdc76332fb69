package invoice

import (
	"context"
	"errors"
	"fmt"

	"github.com/rpggio/atelier/internal/repository"
)

// Service provides read access to invoices. Invoices are created and paid
// through the lifecycle engine.
type Service struct {
	repo Repository
}

// NewService creates a new invoice service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Get fetches an invoice by ID.
func (s *Service) Get(ctx context.Context, id string) (*Invoice, error) {
	inv, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("getting invoice: %w", err)
	}
	return inv, nil
}

// List returns invoices matching opts, newest first.
func (s *Service) List(ctx context.Context, opts ListOptions) ([]Invoice, error) {
	return s.repo.List(ctx, opts)
}
