package mcp

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"testing"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/atelier/internal/app"
	"github.com/rpggio/atelier/internal/apperr"
	"github.com/rpggio/atelier/internal/domain/client"
	"github.com/rpggio/atelier/internal/domain/invoice"
	"github.com/rpggio/atelier/internal/domain/lifecycle"
	"github.com/rpggio/atelier/internal/domain/project"
	"github.com/rpggio/atelier/internal/filestore"
	"github.com/rpggio/atelier/internal/sqlite"
	"github.com/stretchr/testify/require"
)

func connect(t *testing.T) *sdkmcp.ClientSession {
	t.Helper()
	ctx := context.Background()

	files, err := filestore.New(t.TempDir())
	require.NoError(t, err)
	server := NewServer(Config{
		App:           app.New(sqlite.NewTestDB(t), files, nil),
		TransportMode: "stdio",
	})

	serverTransport, clientTransport := sdkmcp.NewInMemoryTransports()
	serverSession, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = serverSession.Close() })

	c := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "0.0.1"}, nil)
	session, err := c.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })
	return session
}

func callText(t *testing.T, session *sdkmcp.ClientSession, name string, args any) (string, bool) {
	t.Helper()
	res, err := session.CallTool(context.Background(), &sdkmcp.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err)
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(*sdkmcp.TextContent)
	require.True(t, ok, "expected text content")
	return text.Text, res.IsError
}

func call[T any](t *testing.T, session *sdkmcp.ClientSession, name string, args any) T {
	t.Helper()
	text, isErr := callText(t, session, name, args)
	require.False(t, isErr, "tool %s failed: %s", name, text)
	var out T
	require.NoError(t, json.Unmarshal([]byte(text), &out))
	return out
}

func callError(t *testing.T, session *sdkmcp.ClientSession, name string, args any) apperr.Error {
	t.Helper()
	text, isErr := callText(t, session, name, args)
	require.True(t, isErr, "tool %s unexpectedly succeeded: %s", name, text)
	var out apperr.Error
	require.NoError(t, json.Unmarshal([]byte(text), &out))
	return out
}

func TestListTools(t *testing.T) {
	session := connect(t)

	res, err := session.ListTools(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, res.Tools, 40)

	names := make(map[string]bool, len(res.Tools))
	for _, tool := range res.Tools {
		names[tool.Name] = true
		require.NotNil(t, tool.InputSchema, tool.Name)
	}
	for _, name := range []string{"approve_quote", "generate_invoice", "export_project_report", "reset_database"} {
		require.True(t, names[name], name)
	}
}

func TestQuoteToInvoiceOverMCP(t *testing.T) {
	session := connect(t)

	c := call[client.Client](t, session, "create_client", map[string]any{
		"name": "Acme", "tax_rate": 10,
	})

	q := call[map[string]any](t, session, "create_quote", map[string]any{
		"client_id": c.ID,
		"name":      "Website",
		"items": []map[string]any{
			{"description": "Design", "quantity": 10, "rate": 50, "cost": 300},
		},
	})
	quoteID, _ := q["id"].(string)
	require.NotEmpty(t, quoteID)

	approved := call[lifecycle.ApproveResult](t, session, "approve_quote", map[string]any{"id": quoteID})
	require.Equal(t, 500.0, approved.Project.BaselinePrice)
	require.Len(t, approved.Milestones, 1)
	milestoneID := approved.Milestones[0].ID

	e := callError(t, session, "generate_invoice", map[string]any{
		"project_id":    approved.Project.ID,
		"milestone_ids": []string{milestoneID},
	})
	require.Equal(t, apperr.CodeValidation, e.Code)

	m := call[project.Milestone](t, session, "update_milestone", map[string]any{
		"id": milestoneID, "status": "Completed",
	})
	require.Equal(t, project.MilestoneCompleted, m.Status)

	inv := call[invoice.Invoice](t, session, "generate_invoice", map[string]any{
		"project_id":    approved.Project.ID,
		"milestone_ids": []string{milestoneID},
	})
	require.Equal(t, "INV-1001", inv.InvoiceNumber)
	require.Equal(t, 500.0, inv.Subtotal)
	require.Equal(t, 550.0, inv.Total)

	paid := call[invoice.Invoice](t, session, "mark_invoice_paid", map[string]any{"id": inv.ID})
	require.Equal(t, invoice.StatusPaid, paid.Status)
	require.NotNil(t, paid.PaidAt)

	report := call[ReportResult](t, session, "export_project_report", map[string]any{"project_id": approved.Project.ID})
	data, err := base64.StdEncoding.DecodeString(report.ContentBase64)
	require.NoError(t, err)
	require.NotEmpty(t, data)
}

func TestToolErrorsCarryCodes(t *testing.T) {
	session := connect(t)

	e := callError(t, session, "get_project_details", map[string]any{"id": "missing"})
	require.Equal(t, apperr.CodeNotFound, e.Code)

	e = callError(t, session, "create_client", map[string]any{"name": "  "})
	require.Equal(t, apperr.CodeValidation, e.Code)

	e = callError(t, session, "add_expense", map[string]any{
		"project_id": "p", "category": "travel", "amount": 10, "date": "yesterday",
	})
	require.Equal(t, apperr.CodeValidation, e.Code)

	e = callError(t, session, "reset_database", map[string]any{"confirm": false})
	require.Equal(t, apperr.CodeValidation, e.Code)
}

func TestDocumentRoundTripOverMCP(t *testing.T) {
	session := connect(t)

	c := call[client.Client](t, session, "create_client", map[string]any{"name": "Globex"})
	p := call[project.Project](t, session, "create_project", map[string]any{
		"client_id": c.ID, "name": "Brand", "start_date": "2026-01-05",
	})
	require.NotNil(t, p.StartDate)

	doc := call[project.Document](t, session, "upload_document", map[string]any{
		"project_id":     p.ID,
		"name":           "brief.txt",
		"mime_type":      "text/plain",
		"content_base64": base64.StdEncoding.EncodeToString([]byte("hello")),
	})
	require.Equal(t, int64(5), doc.Size)

	got := call[DocumentContentResult](t, session, "download_document", map[string]any{"id": doc.ID})
	content, err := base64.StdEncoding.DecodeString(got.ContentBase64)
	require.NoError(t, err)
	require.Equal(t, "hello", string(content))

	docs := call[DocumentsResult](t, session, "get_documents", map[string]any{"project_id": p.ID})
	require.Len(t, docs.Documents, 1)
}

func TestDocResources(t *testing.T) {
	session := connect(t)

	res, err := session.ReadResource(context.Background(), &sdkmcp.ReadResourceParams{URI: "atelier://docs/errors"})
	require.NoError(t, err)
	require.Len(t, res.Contents, 1)
	require.Contains(t, res.Contents[0].Text, "NOT_FOUND")
}
