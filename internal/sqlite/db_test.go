package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestMigrations verifies that migrations run successfully
func TestMigrations(t *testing.T) {
	db := NewTestDB(t)

	tables := []string{
		"clients",
		"quotes",
		"quote_items",
		"projects",
		"milestones",
		"scope_changes",
		"expenses",
		"documents",
		"invoices",
		"settings",
		"audit_trail",
	}

	for _, table := range tables {
		var count int
		err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&count)
		require.NoError(t, err, "failed to query table %s", table)
		require.Equal(t, 1, count, "table %s not found", table)
	}

	// Running again is a no-op.
	require.NoError(t, db.RunMigrations())
}

// TestForeignKeys verifies that foreign key constraints are enabled
func TestForeignKeys(t *testing.T) {
	db := NewTestDB(t)

	var enabled int
	err := db.QueryRow("PRAGMA foreign_keys").Scan(&enabled)
	require.NoError(t, err)
	require.Equal(t, 1, enabled, "foreign keys not enabled")
}

func TestClientDeleteCascades(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	seedGraph(t, db)

	require.NoError(t, NewClientRepository(db).Delete(ctx, "c1"))

	for _, table := range []string{"quotes", "quote_items", "projects", "milestones", "scope_changes", "expenses", "documents", "invoices"} {
		require.Equal(t, 0, countRows(t, db, table), "orphans left in %s", table)
	}
}

func TestProjectDeleteNullsInvoiceReference(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	seedGraph(t, db)

	require.NoError(t, NewProjectRepository(db).Delete(ctx, "p1"))

	for _, table := range []string{"milestones", "scope_changes", "expenses", "documents"} {
		require.Equal(t, 0, countRows(t, db, table), "orphans left in %s", table)
	}

	inv, err := NewInvoiceRepository(db).Get(ctx, "inv1")
	require.NoError(t, err)
	require.Nil(t, inv.ProjectID)
	require.Equal(t, 1, countRows(t, db, "quotes"))
}

func TestQuoteDeleteKeepsProject(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	seedGraph(t, db)

	require.NoError(t, NewQuoteRepository(db).Delete(ctx, "q1"))
	require.Equal(t, 0, countRows(t, db, "quote_items"))

	p, err := NewProjectRepository(db).Get(ctx, "p1")
	require.NoError(t, err)
	require.Nil(t, p.QuoteID)
}

func TestReset(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	seedGraph(t, db)
	require.NoError(t, NewSettingsRepository(db).Upsert(ctx, map[string]string{"taxRate": "20"}))
	_, err := db.ExecContext(ctx, `INSERT INTO audit_trail (entity_type, entity_id, action) VALUES ('quote', 'q1', 'quote_approved')`)
	require.NoError(t, err)

	require.NoError(t, db.Reset(ctx))

	for _, table := range resetOrder {
		require.Equal(t, 0, countRows(t, db, table), "rows left in %s", table)
	}

	// Schema survives.
	require.NoError(t, NewClientRepository(db).Create(ctx, newClient("c2", "Other")))
}

func TestWithTxRollsBack(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()

	err := db.WithTx(ctx, func(tx *sql.Tx) error {
		repo := &ClientRepository{db: tx}
		if err := repo.Create(ctx, newClient("c1", "Acme")); err != nil {
			return err
		}
		return errors.New("boom")
	})
	require.EqualError(t, err, "boom")
	require.Equal(t, 0, countRows(t, db, "clients"))
}
