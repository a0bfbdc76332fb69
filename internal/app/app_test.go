package app

import (
	"bytes"
	"context"
	"os"
	"testing"

	"github.com/rpggio/atelier/internal/apperr"
	"github.com/rpggio/atelier/internal/domain/audit"
	"github.com/rpggio/atelier/internal/domain/client"
	"github.com/rpggio/atelier/internal/domain/invoice"
	"github.com/rpggio/atelier/internal/domain/lifecycle"
	"github.com/rpggio/atelier/internal/domain/project"
	"github.com/rpggio/atelier/internal/domain/quote"
	"github.com/rpggio/atelier/internal/domain/settings"
	"github.com/rpggio/atelier/internal/filestore"
	"github.com/rpggio/atelier/internal/report"
	"github.com/rpggio/atelier/internal/sqlite"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func newTestApp(t *testing.T) (*App, *filestore.Store) {
	t.Helper()
	files, err := filestore.New(t.TempDir())
	require.NoError(t, err)
	return New(sqlite.NewTestDB(t), files, nil), files
}

func createApprovedProject(t *testing.T, a *App) (*client.Client, *lifecycle.ApproveResult) {
	t.Helper()
	ctx := context.Background()

	c, err := a.CreateClient(ctx, client.CreateRequest{Name: "Acme", Currency: "USD", TaxRate: 10})
	require.NoError(t, err)

	q, err := a.CreateQuote(ctx, quote.CreateRequest{
		ClientID: c.ID,
		Name:     "Website",
		Items: []quote.ItemInput{
			{Description: "Design", Quantity: 10, Rate: 50, Cost: 300},
			{Description: "Build", Quantity: 20, Rate: 50, Cost: 700},
		},
	})
	require.NoError(t, err)

	result, err := a.ApproveQuote(ctx, q.ID)
	require.NoError(t, err)
	return c, result
}

func TestQuoteToInvoiceFlow(t *testing.T) {
	ctx := context.Background()
	a, _ := newTestApp(t)

	c, approved := createApprovedProject(t, a)
	require.Equal(t, 1500.0, approved.Project.BaselinePrice)
	require.Len(t, approved.Milestones, 2)

	_, err := a.UpdateMilestone(ctx, project.MilestoneUpdate{ID: approved.Milestones[0].ID, Progress: intPtr(100)})
	require.NoError(t, err)

	inv, err := a.GenerateInvoice(ctx, lifecycle.GenerateRequest{
		ProjectID:    approved.Project.ID,
		MilestoneIDs: []string{approved.Milestones[0].ID},
	})
	require.NoError(t, err)
	require.Equal(t, "INV-1001", inv.InvoiceNumber)
	require.Equal(t, 500.0, inv.Subtotal)
	require.Equal(t, 550.0, inv.Total)

	paid, err := a.MarkInvoicePaid(ctx, inv.ID)
	require.NoError(t, err)
	require.Equal(t, invoice.StatusPaid, paid.Status)

	listed, err := a.ListInvoices(ctx, invoice.ListOptions{ClientID: c.ID})
	require.NoError(t, err)
	require.Len(t, listed, 1)

	trail, err := a.AuditTrail(ctx, audit.ListOptions{})
	require.NoError(t, err)
	actions := make([]string, 0, len(trail))
	for _, e := range trail {
		actions = append(actions, e.Action)
	}
	require.ElementsMatch(t, []string{audit.ActionQuoteApproved, audit.ActionInvoiceIssued, audit.ActionInvoicePaid}, actions)
}

func TestProjectReport(t *testing.T) {
	ctx := context.Background()
	a, _ := newTestApp(t)
	_, approved := createApprovedProject(t, a)

	_, err := a.AddExpense(ctx, lifecycle.ExpenseRequest{ProjectID: approved.Project.ID, Category: "Hosting", Amount: 42})
	require.NoError(t, err)

	data, err := a.ProjectReport(ctx, approved.Project.ID)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(report.SheetExpenses)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "Hosting", rows[1][1])

	_, err = a.ProjectReport(ctx, "missing")
	require.Equal(t, apperr.CodeNotFound, apperr.From(err).Code)
}

func TestDeleteClientRemovesDocumentFiles(t *testing.T) {
	ctx := context.Background()
	a, _ := newTestApp(t)
	c, approved := createApprovedProject(t, a)

	doc, err := a.UploadDocument(ctx, project.UploadRequest{
		ProjectID: approved.Project.ID,
		Name:      "brief.txt",
		Data:      []byte("hello"),
	})
	require.NoError(t, err)
	require.FileExists(t, doc.StoragePath)

	_, data, err := a.DownloadDocument(ctx, doc.ID)
	require.NoError(t, err)
	require.Equal(t, "hello", string(data))

	require.NoError(t, a.DeleteClient(ctx, c.ID))
	require.NoFileExists(t, doc.StoragePath)

	projects, err := a.ListProjects(ctx, "")
	require.NoError(t, err)
	require.Empty(t, projects)
}

func TestResetClearsTablesAndFiles(t *testing.T) {
	ctx := context.Background()
	a, files := newTestApp(t)
	_, approved := createApprovedProject(t, a)

	_, err := a.UploadDocument(ctx, project.UploadRequest{ProjectID: approved.Project.ID, Name: "a.txt", Data: []byte("a")})
	require.NoError(t, err)
	_, err = a.UpdateSettings(ctx, settings.Settings{settings.KeyInvoicePrefix: "ACME-"})
	require.NoError(t, err)

	require.NoError(t, a.Reset(ctx))

	clients, err := a.ListClients(ctx)
	require.NoError(t, err)
	require.Empty(t, clients)

	cfg, err := a.GetSettings(ctx)
	require.NoError(t, err)
	require.Equal(t, settings.DefaultInvoicePrefix, cfg.InvoicePrefix())

	entries, err := os.ReadDir(files.Root())
	require.NoError(t, err)
	require.Empty(t, entries)
}

func intPtr(v int) *int { return &v }
