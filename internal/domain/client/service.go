package client

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

// Service handles client operations.
type Service struct {
	repo   Repository
	docs   DocumentPaths
	files  FileRemover
	logger *slog.Logger
}

// NewService creates a new client service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{repo: repo, logger: logger}
}

// CreateRequest defines client creation inputs.
type CreateRequest struct {
	Name     string
	Email    string
	Phone    string
	Company  string
	Address  string
	Currency string
	TaxRate  float64
	Notes    string
}

// UpdateRequest carries the fields to change; nil means unchanged.
type UpdateRequest struct {
	ID       string
	Name     *string
	Email    *string
	Phone    *string
	Company  *string
	Address  *string
	Currency *string
	TaxRate  *float64
	Status   *Status
	Notes    *string
}

// Create creates a new active client.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Client, error) {
	v := apperr.Violations{}
	if strings.TrimSpace(req.Name) == "" {
		v["name"] = "required"
	}
	if req.TaxRate < 0 || req.TaxRate > 100 {
		v["tax_rate"] = "out_of_range"
	}
	if err := v.Check(); err != nil {
		return nil, err
	}

	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = "USD"
	}

	now := time.Now()
	c := &Client{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(req.Name),
		Email:     req.Email,
		Phone:     req.Phone,
		Company:   req.Company,
		Address:   req.Address,
		Currency:  currency,
		TaxRate:   req.TaxRate,
		Status:    StatusActive,
		Notes:     req.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrDuplicateName
		}
		return nil, fmt.Errorf("creating client: %w", err)
	}

	s.logger.Info("client created", "client_id", c.ID)
	return c, nil
}

// Get fetches a client by ID.
func (s *Service) Get(ctx context.Context, id string) (*Client, error) {
	c, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("getting client: %w", err)
	}
	return c, nil
}

// List returns all clients ordered by name.
func (s *Service) List(ctx context.Context) ([]Client, error) {
	return s.repo.List(ctx)
}

// Update applies a partial update to a client.
func (s *Service) Update(ctx context.Context, req UpdateRequest) (*Client, error) {
	current, err := s.Get(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	updated := *current
	if req.Name != nil {
		updated.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		updated.Email = *req.Email
	}
	if req.Phone != nil {
		updated.Phone = *req.Phone
	}
	if req.Company != nil {
		updated.Company = *req.Company
	}
	if req.Address != nil {
		updated.Address = *req.Address
	}
	if req.Currency != nil {
		updated.Currency = strings.ToUpper(strings.TrimSpace(*req.Currency))
	}
	if req.TaxRate != nil {
		updated.TaxRate = *req.TaxRate
	}
	if req.Status != nil {
		updated.Status = *req.Status
	}
	if req.Notes != nil {
		updated.Notes = *req.Notes
	}

	v := apperr.Violations{}
	if updated.Name == "" {
		v["name"] = "required"
	}
	if updated.TaxRate < 0 || updated.TaxRate > 100 {
		v["tax_rate"] = "out_of_range"
	}
	if !updated.Status.Valid() {
		v["status"] = "invalid"
	}
	if err := v.Check(); err != nil {
		return nil, err
	}
	updated.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, &updated); err != nil {
		switch {
		case errors.Is(err, repository.ErrConflict):
			return nil, ErrDuplicateName
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("updating client: %w", err)
	}
	return &updated, nil
}

// WithDocumentCleanup makes Delete remove the backing files of documents
// owned by the client's projects.
func (s *Service) WithDocumentCleanup(docs DocumentPaths, files FileRemover) *Service {
	s.docs = docs
	s.files = files
	return s
}

// Delete removes a client and, through cascading keys, everything it owns.
// Document files are removed best-effort after the rows are gone.
func (s *Service) Delete(ctx context.Context, id string) error {
	var paths []string
	if s.docs != nil {
		var err error
		paths, err = s.docs.PathsForClient(ctx, id)
		if err != nil {
			return fmt.Errorf("listing client documents: %w", err)
		}
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrClientNotFound
		}
		return fmt.Errorf("deleting client: %w", err)
	}

	for _, path := range paths {
		if err := s.files.Delete(path); err != nil {
			s.logger.Warn("failed to remove document file", "path", path, "error", err)
		}
	}
	s.logger.Info("client deleted", "client_id", id, "documents_removed", len(paths))
	return nil
}
