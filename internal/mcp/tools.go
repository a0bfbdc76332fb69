package mcp

import (
	"context"
	"encoding/base64"
	"strings"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/atelier/internal/app"
	"github.com/rpggio/atelier/internal/domain/audit"
	"github.com/rpggio/atelier/internal/domain/client"
	"github.com/rpggio/atelier/internal/domain/invoice"
	"github.com/rpggio/atelier/internal/domain/lifecycle"
	"github.com/rpggio/atelier/internal/domain/project"
	"github.com/rpggio/atelier/internal/domain/quote"
	"github.com/rpggio/atelier/internal/report"
)

const dateLayout = "2006-01-02"

// handle adapts an operation into a tool handler. Failures become tool
// results carrying the classified error instead of protocol errors.
func handle[In any](fn func(ctx context.Context, in In) (any, error)) sdkmcp.ToolHandlerFor[In, any] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, in In) (*sdkmcp.CallToolResult, any, error) {
		out, err := fn(ctx, in)
		if err != nil {
			return toolError(err), nil, nil
		}
		return nil, out, nil
	}
}

func addTool[In any](server *sdkmcp.Server, name, description string, fn func(ctx context.Context, in In) (any, error)) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{Name: name, Description: description}, handle(fn))
}

// parseDate accepts YYYY-MM-DD or RFC 3339. Empty input yields nil.
func parseDate(field, value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	if t, err := time.Parse(dateLayout, value); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, invalidArg(field, "must be a date formatted as YYYY-MM-DD")
	}
	return &t, nil
}

func parseOptionalDate(field string, value *string) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}
	return parseDate(field, *value)
}

func registerTools(server *sdkmcp.Server, a *app.App) {
	registerClientTools(server, a)
	registerQuoteTools(server, a)
	registerProjectTools(server, a)
	registerInvoiceTools(server, a)
	registerAdminTools(server, a)
}

func registerClientTools(server *sdkmcp.Server, a *app.App) {
	addTool(server, "get_clients", "List all clients ordered by name",
		func(ctx context.Context, _ NoParams) (any, error) {
			clients, err := a.ListClients(ctx)
			if err != nil {
				return nil, err
			}
			return ClientsResult{Clients: clients}, nil
		})

	addTool(server, "create_client", "Create a client. Names must be unique",
		func(ctx context.Context, in CreateClientParams) (any, error) {
			return a.CreateClient(ctx, client.CreateRequest{
				Name:     in.Name,
				Email:    in.Email,
				Phone:    in.Phone,
				Company:  in.Company,
				Address:  in.Address,
				Currency: in.Currency,
				TaxRate:  in.TaxRate,
				Notes:    in.Notes,
			})
		})

	addTool(server, "update_client", "Update the given fields of a client",
		func(ctx context.Context, in UpdateClientParams) (any, error) {
			req := client.UpdateRequest{
				ID:       in.ID,
				Name:     in.Name,
				Email:    in.Email,
				Phone:    in.Phone,
				Company:  in.Company,
				Address:  in.Address,
				Currency: in.Currency,
				TaxRate:  in.TaxRate,
				Notes:    in.Notes,
			}
			if in.Status != nil {
				status := client.Status(*in.Status)
				req.Status = &status
			}
			return a.UpdateClient(ctx, req)
		})

	addTool(server, "delete_client", "Delete a client with its quotes, projects, invoices and document files",
		func(ctx context.Context, in IDParams) (any, error) {
			if err := a.DeleteClient(ctx, in.ID); err != nil {
				return nil, err
			}
			return DeletedResult{ID: in.ID, Deleted: true}, nil
		})
}

func registerQuoteTools(server *sdkmcp.Server, a *app.App) {
	addTool(server, "get_quotes", "List quotes, optionally for one client",
		func(ctx context.Context, in ClientFilterParams) (any, error) {
			quotes, err := a.ListQuotes(ctx, in.ClientID)
			if err != nil {
				return nil, err
			}
			return QuotesResult{Quotes: quotes}, nil
		})

	addTool(server, "get_quote", "Get a quote with its line items",
		func(ctx context.Context, in IDParams) (any, error) {
			return a.GetQuote(ctx, in.ID)
		})

	addTool(server, "create_quote", "Create a Draft quote from line items. Totals and margin are computed",
		func(ctx context.Context, in CreateQuoteParams) (any, error) {
			validUntil, err := parseDate("valid_until", in.ValidUntil)
			if err != nil {
				return nil, err
			}
			items := make([]quote.ItemInput, 0, len(in.Items))
			for _, item := range in.Items {
				items = append(items, quote.ItemInput{
					Description: item.Description,
					Quantity:    item.Quantity,
					Rate:        item.Rate,
					Cost:        item.Cost,
				})
			}
			return a.CreateQuote(ctx, quote.CreateRequest{
				ClientID:     in.ClientID,
				Name:         in.Name,
				TaxRate:      in.TaxRate,
				DiscountRate: in.DiscountRate,
				Notes:        in.Notes,
				ValidUntil:   validUntil,
				Items:        items,
			})
		})

	addTool(server, "update_quote_status", "Move a quote to another status. Use approve_quote to approve",
		func(ctx context.Context, in QuoteStatusParams) (any, error) {
			return a.UpdateQuoteStatus(ctx, in.ID, quote.Status(in.Status))
		})

	addTool(server, "duplicate_quote", "Copy a quote and its items into a new Draft with the next version",
		func(ctx context.Context, in IDParams) (any, error) {
			return a.DuplicateQuote(ctx, in.ID)
		})

	addTool(server, "approve_quote", "Approve a quote, creating its project and one milestone per item",
		func(ctx context.Context, in IDParams) (any, error) {
			return a.ApproveQuote(ctx, in.ID)
		})

	addTool(server, "delete_quote", "Delete a quote and its items",
		func(ctx context.Context, in IDParams) (any, error) {
			if err := a.DeleteQuote(ctx, in.ID); err != nil {
				return nil, err
			}
			return DeletedResult{ID: in.ID, Deleted: true}, nil
		})
}

func registerProjectTools(server *sdkmcp.Server, a *app.App) {
	addTool(server, "get_projects", "List projects, optionally for one client",
		func(ctx context.Context, in ClientFilterParams) (any, error) {
			projects, err := a.ListProjects(ctx, in.ClientID)
			if err != nil {
				return nil, err
			}
			return ProjectsResult{Projects: projects}, nil
		})

	addTool(server, "create_project", "Create a project directly, without a quote",
		func(ctx context.Context, in CreateProjectParams) (any, error) {
			start, err := parseDate("start_date", in.StartDate)
			if err != nil {
				return nil, err
			}
			end, err := parseDate("end_date", in.EndDate)
			if err != nil {
				return nil, err
			}
			return a.CreateProject(ctx, project.CreateRequest{
				ClientID:      in.ClientID,
				Name:          in.Name,
				Description:   in.Description,
				Type:          project.Type(in.Type),
				Status:        project.Status(in.Status),
				BaselineCost:  in.BaselineCost,
				BaselinePrice: in.BaselinePrice,
				StartDate:     start,
				EndDate:       end,
			})
		})

	addTool(server, "update_project", "Update descriptive fields, status or progress. Baselines only move through scope changes",
		func(ctx context.Context, in UpdateProjectParams) (any, error) {
			start, err := parseOptionalDate("start_date", in.StartDate)
			if err != nil {
				return nil, err
			}
			end, err := parseOptionalDate("end_date", in.EndDate)
			if err != nil {
				return nil, err
			}
			req := project.UpdateRequest{
				ID:          in.ID,
				Name:        in.Name,
				Description: in.Description,
				Progress:    in.Progress,
				StartDate:   start,
				EndDate:     end,
			}
			if in.Type != nil {
				t := project.Type(*in.Type)
				req.Type = &t
			}
			if in.Status != nil {
				s := project.Status(*in.Status)
				req.Status = &s
			}
			return a.UpdateProject(ctx, req)
		})

	addTool(server, "get_project_details", "Get a project with its milestones, scope changes, expenses and documents",
		func(ctx context.Context, in IDParams) (any, error) {
			return a.ProjectDetails(ctx, in.ID)
		})

	addTool(server, "delete_project", "Delete a project, its owned records and document files",
		func(ctx context.Context, in IDParams) (any, error) {
			if err := a.DeleteProject(ctx, in.ID); err != nil {
				return nil, err
			}
			return DeletedResult{ID: in.ID, Deleted: true}, nil
		})

	addTool(server, "create_milestone", "Add a milestone to a project",
		func(ctx context.Context, in CreateMilestoneParams) (any, error) {
			due, err := parseDate("due_date", in.DueDate)
			if err != nil {
				return nil, err
			}
			return a.CreateMilestone(ctx, project.MilestoneRequest{
				ProjectID:      in.ProjectID,
				Name:           in.Name,
				EstimatedHours: in.EstimatedHours,
				EstimatedCost:  in.EstimatedCost,
				Price:          in.Price,
				DueDate:        due,
			})
		})

	addTool(server, "update_milestone", "Update a milestone. Only Completed milestones can be invoiced",
		func(ctx context.Context, in UpdateMilestoneParams) (any, error) {
			due, err := parseOptionalDate("due_date", in.DueDate)
			if err != nil {
				return nil, err
			}
			req := project.MilestoneUpdate{
				ID:             in.ID,
				Name:           in.Name,
				EstimatedHours: in.EstimatedHours,
				EstimatedCost:  in.EstimatedCost,
				Price:          in.Price,
				Progress:       in.Progress,
				DueDate:        due,
			}
			if in.Status != nil {
				s := project.MilestoneStatus(*in.Status)
				req.Status = &s
			}
			return a.UpdateMilestone(ctx, req)
		})

	addTool(server, "delete_milestone", "Delete a milestone",
		func(ctx context.Context, in IDParams) (any, error) {
			if err := a.DeleteMilestone(ctx, in.ID); err != nil {
				return nil, err
			}
			return DeletedResult{ID: in.ID, Deleted: true}, nil
		})

	addTool(server, "create_scope_change", "Propose a Pending change to a project's baseline",
		func(ctx context.Context, in CreateScopeChangeParams) (any, error) {
			return a.CreateScopeChange(ctx, project.ScopeChangeRequest{
				ProjectID:   in.ProjectID,
				Title:       in.Title,
				Description: in.Description,
				CostImpact:  in.CostImpact,
				PriceImpact: in.PriceImpact,
			})
		})

	addTool(server, "approve_scope_change", "Approve a Pending scope change and apply its impact to the baseline",
		func(ctx context.Context, in IDParams) (any, error) {
			return a.ApproveScopeChange(ctx, in.ID)
		})

	addTool(server, "reject_scope_change", "Reject a Pending scope change",
		func(ctx context.Context, in IDParams) (any, error) {
			return a.RejectScopeChange(ctx, in.ID)
		})

	addTool(server, "delete_scope_change", "Delete a scope change. An applied baseline is not reverted",
		func(ctx context.Context, in IDParams) (any, error) {
			if err := a.DeleteScopeChange(ctx, in.ID); err != nil {
				return nil, err
			}
			return DeletedResult{ID: in.ID, Deleted: true}, nil
		})

	addTool(server, "get_documents", "List the documents attached to a project",
		func(ctx context.Context, in ProjectRefParams) (any, error) {
			docs, err := a.ListDocuments(ctx, in.ProjectID)
			if err != nil {
				return nil, err
			}
			return DocumentsResult{Documents: docs}, nil
		})

	addTool(server, "upload_document", "Attach a file to a project",
		func(ctx context.Context, in UploadDocumentParams) (any, error) {
			data, err := base64.StdEncoding.DecodeString(in.ContentBase64)
			if err != nil {
				return nil, invalidArg("content_base64", "must be valid base64")
			}
			return a.UploadDocument(ctx, project.UploadRequest{
				ProjectID: in.ProjectID,
				Name:      in.Name,
				MimeType:  in.MimeType,
				Data:      data,
			})
		})

	addTool(server, "download_document", "Read a document's content as base64",
		func(ctx context.Context, in IDParams) (any, error) {
			doc, data, err := a.DownloadDocument(ctx, in.ID)
			if err != nil {
				return nil, err
			}
			return DocumentContentResult{
				Document:      doc,
				ContentBase64: base64.StdEncoding.EncodeToString(data),
			}, nil
		})

	addTool(server, "delete_document", "Delete a document and its file",
		func(ctx context.Context, in IDParams) (any, error) {
			if err := a.DeleteDocument(ctx, in.ID); err != nil {
				return nil, err
			}
			return DeletedResult{ID: in.ID, Deleted: true}, nil
		})

	addTool(server, "get_expenses", "List a project's expenses, newest first",
		func(ctx context.Context, in ProjectRefParams) (any, error) {
			expenses, err := a.ListExpenses(ctx, in.ProjectID)
			if err != nil {
				return nil, err
			}
			return ExpensesResult{Expenses: expenses}, nil
		})

	addTool(server, "add_expense", "Record an expense. The project's actual cost grows by the amount",
		func(ctx context.Context, in AddExpenseParams) (any, error) {
			date, err := parseDate("date", in.Date)
			if err != nil {
				return nil, err
			}
			return a.AddExpense(ctx, lifecycle.ExpenseRequest{
				ProjectID:   in.ProjectID,
				Category:    in.Category,
				Description: in.Description,
				Amount:      in.Amount,
				Date:        date,
			})
		})

	addTool(server, "delete_expense", "Delete an expense. The project's actual cost shrinks by the amount",
		func(ctx context.Context, in IDParams) (any, error) {
			return a.DeleteExpense(ctx, in.ID)
		})
}

func registerInvoiceTools(server *sdkmcp.Server, a *app.App) {
	addTool(server, "get_invoices", "List invoices, optionally filtered by client, project or status",
		func(ctx context.Context, in ListInvoicesParams) (any, error) {
			invoices, err := a.ListInvoices(ctx, invoice.ListOptions{
				ClientID:  in.ClientID,
				ProjectID: in.ProjectID,
				Status:    invoice.Status(in.Status),
			})
			if err != nil {
				return nil, err
			}
			return InvoicesResult{Invoices: invoices}, nil
		})

	addTool(server, "mark_invoice_paid", "Mark an invoice Paid and stamp the payment time",
		func(ctx context.Context, in IDParams) (any, error) {
			return a.MarkInvoicePaid(ctx, in.ID)
		})

	addTool(server, "update_invoice_status", "Move an invoice to another status",
		func(ctx context.Context, in InvoiceStatusParams) (any, error) {
			return a.UpdateInvoiceStatus(ctx, in.ID, invoice.Status(in.Status))
		})

	addTool(server, "generate_invoice", "Invoice a project's baseline price or a set of Completed milestones",
		func(ctx context.Context, in GenerateInvoiceParams) (any, error) {
			return a.GenerateInvoice(ctx, lifecycle.GenerateRequest{
				ProjectID:    in.ProjectID,
				MilestoneIDs: in.MilestoneIDs,
				Notes:        in.Notes,
			})
		})

	addTool(server, "create_manual_invoice", "Create an invoice for an arbitrary subtotal",
		func(ctx context.Context, in ManualInvoiceParams) (any, error) {
			return a.CreateManualInvoice(ctx, lifecycle.ManualInvoiceRequest{
				ClientID:  in.ClientID,
				ProjectID: in.ProjectID,
				Subtotal:  in.Subtotal,
				TaxRate:   in.TaxRate,
				Notes:     in.Notes,
			})
		})
}

func registerAdminTools(server *sdkmcp.Server, a *app.App) {
	addTool(server, "get_settings", "Read all settings with defaults filled in",
		func(ctx context.Context, _ NoParams) (any, error) {
			values, err := a.GetSettings(ctx)
			if err != nil {
				return nil, err
			}
			return SettingsResult{Settings: values}, nil
		})

	addTool(server, "update_settings", "Set one or more settings",
		func(ctx context.Context, in UpdateSettingsParams) (any, error) {
			values, err := a.UpdateSettings(ctx, in.Settings)
			if err != nil {
				return nil, err
			}
			return SettingsResult{Settings: values}, nil
		})

	addTool(server, "get_audit_trail", "List audit entries, newest first",
		func(ctx context.Context, in AuditTrailParams) (any, error) {
			entries, err := a.AuditTrail(ctx, audit.ListOptions{
				EntityType: in.EntityType,
				EntityID:   in.EntityID,
				Limit:      in.Limit,
				Offset:     in.Offset,
			})
			if err != nil {
				return nil, err
			}
			return AuditResult{Entries: entries}, nil
		})

	addTool(server, "export_project_report", "Export a project summary workbook (XLSX, base64)",
		func(ctx context.Context, in ProjectRefParams) (any, error) {
			data, err := a.ProjectReport(ctx, in.ProjectID)
			if err != nil {
				return nil, err
			}
			return ReportResult{
				FileName:      "project-" + in.ProjectID + ".xlsx",
				MimeType:      report.ContentType,
				ContentBase64: base64.StdEncoding.EncodeToString(data),
			}, nil
		})

	addTool(server, "reset_database", "Delete every record and document file. Requires confirm=true",
		func(ctx context.Context, in ResetParams) (any, error) {
			if !in.Confirm {
				return nil, invalidArg("confirm", "must be true")
			}
			if err := a.Reset(ctx); err != nil {
				return nil, err
			}
			return map[string]bool{"reset": true}, nil
		})
}
