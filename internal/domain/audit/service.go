package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/rpggio/atelier/internal/apperr"
)

// ErrInvalidInput indicates an entry without entity or action.
var ErrInvalidInput = apperr.Invalid("invalid audit entry")

// Service handles audit trail operations.
type Service struct {
	repo Repository
}

// NewService creates a new audit service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Log appends an entry with the current timestamp if missing.
func (s *Service) Log(ctx context.Context, entry *Entry) error {
	if entry == nil || entry.EntityType == "" || entry.Action == "" {
		return ErrInvalidInput
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	if err := s.repo.Log(ctx, entry); err != nil {
		return fmt.Errorf("logging audit entry: %w", err)
	}
	return nil
}

// List returns entries matching opts, newest first.
func (s *Service) List(ctx context.Context, opts ListOptions) ([]Entry, error) {
	return s.repo.List(ctx, opts)
}
