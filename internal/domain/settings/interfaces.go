package settings

import "context"

// Repository provides key/value persistence for settings.
type Repository interface {
	All(ctx context.Context) (Settings, error)
	Upsert(ctx context.Context, values Settings) error
}
