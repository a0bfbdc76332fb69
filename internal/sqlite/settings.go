package sqlite

import (
	"context"
	"fmt"

	"github.com/rpggio/atelier/internal/domain/settings"
)

// SettingsRepository implements settings.Repository for SQLite
type SettingsRepository struct {
	db queryer
}

// NewSettingsRepository creates a new SettingsRepository
func NewSettingsRepository(db *DB) *SettingsRepository {
	return &SettingsRepository{db: db.DB}
}

// All returns every stored key. Defaults are applied by the caller.
func (r *SettingsRepository) All(ctx context.Context) (settings.Settings, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key, value FROM settings`)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	defer rows.Close()

	out := settings.Settings{}
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan setting: %w", err)
		}
		out[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating setting rows: %w", err)
	}
	return out, nil
}

// Upsert inserts or replaces each given key
func (r *SettingsRepository) Upsert(ctx context.Context, values settings.Settings) error {
	query := `
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`
	for key, value := range values {
		if _, err := r.db.ExecContext(ctx, query, key, value); err != nil {
			return fmt.Errorf("failed to upsert setting %s: %w", key, err)
		}
	}
	return nil
}
