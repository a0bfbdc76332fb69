package settings

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/rpggio/atelier/internal/apperr"
)

// Service reads and writes settings.
type Service struct {
	repo Repository
}

// NewService creates a new settings service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Get returns stored settings merged over the defaults.
func (s *Service) Get(ctx context.Context) (Settings, error) {
	stored, err := s.repo.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}
	return stored.WithDefaults(), nil
}

// Update validates and upserts the given keys, leaving others untouched.
func (s *Service) Update(ctx context.Context, values Settings) (Settings, error) {
	if err := Validate(values); err != nil {
		return nil, err
	}
	if err := s.repo.Upsert(ctx, values); err != nil {
		return nil, fmt.Errorf("saving settings: %w", err)
	}
	return s.Get(ctx)
}

// Validate checks the numeric keys of a settings patch.
func Validate(values Settings) error {
	v := apperr.Violations{}
	for key, raw := range values {
		raw = strings.TrimSpace(raw)
		switch key {
		case "":
			v["key"] = "required"
		case KeyTaxRate:
			f, err := strconv.ParseFloat(raw, 64)
			if err != nil || f < 0 || f > 100 {
				v[key] = "out_of_range"
			}
		case KeyInvoiceNextNumber:
			n, err := strconv.Atoi(raw)
			if err != nil || n <= 0 {
				v[key] = "must_be_positive"
			}
		case KeyPaymentTerms:
			n, err := strconv.Atoi(raw)
			if err != nil || n < 0 {
				v[key] = "must_not_be_negative"
			}
		}
	}
	return v.Check()
}
