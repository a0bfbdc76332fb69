package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `atelier tracks the Quote -> Project -> Invoice lifecycle of a freelance studio.

Core concepts:
- Client: a customer. Deleting one removes its quotes, projects, invoices and document files.
- Quote: priced line items (hours x rate, with an internal cost). Draft -> Sent -> Approved/Rejected, or Archived.
- Project: created by approve_quote (or create_project). Its baseline cost/price is frozen and only moves through approved scope changes.
- Milestone: billable unit of a project. Only Completed milestones can be invoiced.
- Expense: money spent on a project; actual_cost is always the sum of expenses.
- Invoice: generated from a project (whole baseline or selected milestones) or entered manually. Numbers come from settings and never repeat.

Default workflow:
1) get_clients / create_client.
2) create_quote with items, then approve_quote. This creates the project and one milestone per item.
3) Track work with update_milestone, add_expense, create_scope_change + approve_scope_change.
4) generate_invoice, then mark_invoice_paid.

Completed projects are locked: milestone, expense and document changes fail with VALIDATION_ERROR.
Errors are returned as tool errors whose text is JSON {code, message, details}.
See atelier://docs/errors for the codes.
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "atelier://docs/errors",
		Name:        "docs_errors",
		Title:       "atelier error codes",
		Description: "Failure codes returned by every tool and what to do about them.",
		Content: `# Error codes

Every failing tool call returns ` + "`{code, message, details}`" + `.

| code | meaning | what to do |
|---|---|---|
| NOT_FOUND | the referenced id does not exist | list the collection again and pick a valid id |
| VALIDATION_ERROR | bad input or a disallowed transition; details maps field -> rule | fix the listed fields |
| FILE_IO_ERROR | the document file could not be written or read | re-upload the document |
| DATABASE_ERROR | unexpected storage failure | retry later; nothing was written |

Multi-entity operations (approve_quote, approve_scope_change, generate_invoice,
add_expense, delete_expense, mark_invoice_paid) are atomic: on any error no
partial state is kept and no invoice number is consumed.
`,
	},
	{
		URI:         "atelier://docs/invoicing",
		Name:        "docs_invoicing",
		Title:       "atelier invoicing rules",
		Description: "How invoice numbers, tax and due dates are derived.",
		Content: `# Invoicing

- Number: settings.invoicePrefix + settings.invoiceNextNumber; the counter is advanced in the same transaction.
- Subtotal: project baseline price, or the sum of the selected Completed milestones.
- Tax rate: explicit value, else the client's tax rate when above zero, else settings.taxRate.
- Due date: issue date + settings.paymentTerms days.
- Status: Draft -> Sent -> Overdue; Draft, Sent or Overdue -> Paid; any -> Archived. Paid sets paid_at.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
