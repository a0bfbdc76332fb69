package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/rpggio/atelier/internal/domain/client"
	"github.com/rpggio/atelier/internal/domain/invoice"
	"github.com/rpggio/atelier/internal/domain/project"
	"github.com/rpggio/atelier/internal/domain/quote"
	"github.com/stretchr/testify/require"
)

func newClient(id, name string) *client.Client {
	now := time.Now()
	return &client.Client{
		ID:        id,
		Name:      name,
		Currency:  "USD",
		Status:    client.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func newProject(id, clientID string) *project.Project {
	now := time.Now()
	return &project.Project{
		ID:            id,
		ClientID:      clientID,
		Name:          "Website",
		Type:          project.TypeFixed,
		Status:        project.StatusActive,
		BaselineCost:  1000,
		BaselinePrice: 1500,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func countRows(t *testing.T, db *DB, table string) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM "+table).Scan(&n))
	return n
}

// seedGraph inserts one client owning a quote, a project built from it with
// one row of every child kind, and an invoice for the project.
func seedGraph(t *testing.T, db *DB) {
	t.Helper()
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, NewClientRepository(db).Create(ctx, newClient("c1", "Acme")))
	require.NoError(t, NewQuoteRepository(db).Create(ctx, &quote.Quote{
		ID: "q1", ClientID: "c1", Name: "Site", Version: 1, Status: quote.StatusApproved,
		CreatedAt: now, UpdatedAt: now,
		Items: []quote.Item{{ID: "qi1", Description: "Design", Quantity: 10, Rate: 100, Cost: 500, Total: 1000}},
	}))

	p := newProject("p1", "c1")
	quoteID := "q1"
	p.QuoteID = &quoteID
	require.NoError(t, NewProjectRepository(db).Create(ctx, p))
	require.NoError(t, NewMilestoneRepository(db).Create(ctx, &project.Milestone{
		ID: "m1", ProjectID: "p1", Name: "Design", Status: project.MilestonePlanned, CreatedAt: now,
	}))
	require.NoError(t, NewScopeChangeRepository(db).Create(ctx, &project.ScopeChange{
		ID: "s1", ProjectID: "p1", Title: "Extra page", Status: project.ScopePending, CreatedAt: now,
	}))
	require.NoError(t, NewExpenseRepository(db).Create(ctx, &project.Expense{
		ID: "e1", ProjectID: "p1", Category: "Software", Amount: 50, Date: now,
	}))
	require.NoError(t, NewDocumentRepository(db).Create(ctx, &project.Document{
		ID: "d1", ProjectID: "p1", Name: "brief.pdf", StoragePath: "/tmp/d1_brief.pdf", UploadedAt: now,
	}))

	projectID := "p1"
	require.NoError(t, NewInvoiceRepository(db).Create(ctx, &invoice.Invoice{
		ID: "inv1", ClientID: "c1", ProjectID: &projectID, InvoiceNumber: "INV-1001",
		Status: invoice.StatusDraft, Subtotal: 1500, Total: 1500,
		IssueDate: now, DueDate: now.AddDate(0, 0, 30), CreatedAt: now,
	}))
}
