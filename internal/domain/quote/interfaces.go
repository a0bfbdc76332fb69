package quote

import (
	"context"
	"time"
)

// Repository provides persistence for quotes and their items.
type Repository interface {
	Create(ctx context.Context, q *Quote) error
	Get(ctx context.Context, id string) (*Quote, error)
	List(ctx context.Context, clientID string) ([]Quote, error)
	UpdateStatus(ctx context.Context, id string, from, to Status, updatedAt time.Time) error
	Delete(ctx context.Context, id string) error
}
