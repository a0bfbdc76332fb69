package invoice

import (
	"context"
	"time"
)

// Repository provides persistence for invoices.
type Repository interface {
	Create(ctx context.Context, inv *Invoice) error
	Get(ctx context.Context, id string) (*Invoice, error)
	List(ctx context.Context, opts ListOptions) ([]Invoice, error)
	UpdateStatus(ctx context.Context, id string, status Status, paidAt *time.Time) error
}
