package testserver

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/atelier/internal/apperr"
	"github.com/rpggio/atelier/internal/domain/client"
	"github.com/rpggio/atelier/internal/domain/invoice"
	"github.com/rpggio/atelier/internal/domain/lifecycle"
	"github.com/rpggio/atelier/internal/domain/project"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// callTool makes a tools/call and unwraps the text content.
func callTool(t *testing.T, session *sdkmcp.ClientSession, name string, args any) (json.RawMessage, bool) {
	t.Helper()

	res, err := session.CallTool(context.Background(), &sdkmcp.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err)
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(*sdkmcp.TextContent)
	require.True(t, ok)
	return json.RawMessage(text.Text), res.IsError
}

func mustCall[T any](t *testing.T, session *sdkmcp.ClientSession, name string, args any) T {
	t.Helper()
	raw, isErr := callTool(t, session, name, args)
	require.False(t, isErr, "tool %s error: %s", name, raw)
	var out T
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func TestFunctional_ServerInfo(t *testing.T) {
	ts := New(t)
	session := ts.Connect(t)

	info := session.InitializeResult()
	require.NotNil(t, info)
	require.Equal(t, "atelier", info.ServerInfo.Name)
	require.NotEmpty(t, info.Instructions)

	resp, err := http.Get(ts.Server.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestFunctional_FixedPriceEngagement(t *testing.T) {
	ts := New(t)
	session := ts.Connect(t)

	c := mustCall[client.Client](t, session, "create_client", map[string]any{"name": "Initech", "tax_rate": 20})

	q := mustCall[map[string]any](t, session, "create_quote", map[string]any{
		"client_id": c.ID,
		"name":      "TPS portal",
		"items": []map[string]any{
			{"description": "Discovery", "quantity": 8, "rate": 100, "cost": 400},
			{"description": "Build", "quantity": 40, "rate": 100, "cost": 2400},
		},
	})
	approved := mustCall[lifecycle.ApproveResult](t, session, "approve_quote", map[string]any{"id": q["id"]})
	require.Equal(t, 4800.0, approved.Project.BaselinePrice)
	require.Equal(t, 2800.0, approved.Project.BaselineCost)
	projectID := approved.Project.ID

	sc := mustCall[project.ScopeChange](t, session, "create_scope_change", map[string]any{
		"project_id": projectID, "title": "Reports", "cost_impact": 200, "price_impact": 500,
	})
	scoped := mustCall[lifecycle.ScopeResult](t, session, "approve_scope_change", map[string]any{"id": sc.ID})
	require.Equal(t, 5300.0, scoped.Project.BaselinePrice)

	spent := mustCall[lifecycle.ExpenseResult](t, session, "add_expense", map[string]any{
		"project_id": projectID, "category": "hosting", "amount": 120.5, "date": "2026-03-01",
	})
	require.Equal(t, 120.5, spent.Project.ActualCost)

	inv := mustCall[invoice.Invoice](t, session, "generate_invoice", map[string]any{"project_id": projectID})
	require.Equal(t, 5300.0, inv.Subtotal)
	require.Equal(t, 20.0, inv.TaxRate)
	require.Equal(t, 6360.0, inv.Total)

	// A second invoice takes the next number.
	manual := mustCall[invoice.Invoice](t, session, "create_manual_invoice", map[string]any{
		"client_id": c.ID, "subtotal": 100, "tax_rate": 0,
	})
	require.NotEqual(t, inv.InvoiceNumber, manual.InvoiceNumber)
	require.Equal(t, 100.0, manual.Total)

	resp, err := http.Get(ts.Server.URL + "/projects/" + projectID + "/report")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(body))
	require.NoError(t, err)
	defer f.Close()
	require.Contains(t, f.GetSheetList(), "Summary")
}

func TestFunctional_DocumentDownload(t *testing.T) {
	ts := New(t)
	session := ts.Connect(t)

	c := mustCall[client.Client](t, session, "create_client", map[string]any{"name": "Umbrella"})
	p := mustCall[project.Project](t, session, "create_project", map[string]any{"client_id": c.ID, "name": "Labs"})
	doc := mustCall[project.Document](t, session, "upload_document", map[string]any{
		"project_id":     p.ID,
		"name":           "contract.txt",
		"mime_type":      "text/plain",
		"content_base64": base64.StdEncoding.EncodeToString([]byte("signed")),
	})

	resp, err := http.Get(ts.Server.URL + "/documents/" + doc.ID)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, "signed", string(body))

	mustCall[map[string]any](t, session, "delete_client", map[string]any{"id": c.ID})

	missing, err := http.Get(ts.Server.URL + "/documents/" + doc.ID)
	require.NoError(t, err)
	defer missing.Body.Close()
	require.Equal(t, http.StatusNotFound, missing.StatusCode)

	raw, isErr := callTool(t, session, "get_project_details", map[string]any{"id": p.ID})
	require.True(t, isErr)
	var e apperr.Error
	require.NoError(t, json.Unmarshal(raw, &e))
	require.Equal(t, apperr.CodeNotFound, e.Code)
}
