// Package report renders project workbooks.
package report

import (
	"fmt"
	"time"

	"github.com/rpggio/atelier/internal/domain/invoice"
	"github.com/rpggio/atelier/internal/domain/project"
	"github.com/rpggio/atelier/internal/finance"
	"github.com/xuri/excelize/v2"
)

// Sheet names in the order they appear in the workbook.
const (
	SheetSummary    = "Summary"
	SheetMilestones = "Milestones"
	SheetExpenses   = "Expenses"
	SheetInvoices   = "Invoices"
)

const dateLayout = "2006-01-02"

// ContentType is the MIME type of the generated workbook.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ProjectWorkbook writes an XLSX with a summary of the project and one sheet
// per owned collection.
func ProjectWorkbook(details *project.Details, invoices []invoice.Invoice) ([]byte, error) {
	if details == nil {
		return nil, fmt.Errorf("project details are required")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return nil, fmt.Errorf("rename default sheet: %w", err)
	}
	for _, name := range []string{SheetMilestones, SheetExpenses, SheetInvoices} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("create sheet %s: %w", name, err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6E6FA"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	w := &sheetWriter{f: f, header: headerStyle}
	w.summary(details, invoices)
	w.milestones(details.Milestones)
	w.expenses(details.Expenses)
	w.invoices(invoices)
	if w.err != nil {
		return nil, w.err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// sheetWriter keeps the first error so the sheet builders stay linear.
type sheetWriter struct {
	f      *excelize.File
	header int
	err    error
}

func (w *sheetWriter) row(sheet string, row int, values ...any) {
	if w.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		w.err = err
		return
	}
	if err := w.f.SetSheetRow(sheet, cell, &values); err != nil {
		w.err = fmt.Errorf("write %s row %d: %w", sheet, row, err)
	}
}

func (w *sheetWriter) headers(sheet string, names ...any) {
	w.row(sheet, 1, names...)
	if w.err != nil {
		return
	}
	if err := w.f.SetRowStyle(sheet, 1, 1, w.header); err != nil {
		w.err = fmt.Errorf("style %s header: %w", sheet, err)
		return
	}
	last, _ := excelize.ColumnNumberToName(len(names))
	if err := w.f.SetColWidth(sheet, "A", last, 18); err != nil {
		w.err = fmt.Errorf("size %s columns: %w", sheet, err)
	}
}

func (w *sheetWriter) summary(d *project.Details, invoices []invoice.Invoice) {
	p := d.Project
	costs := make([]float64, 0, len(d.Expenses))
	for _, e := range d.Expenses {
		costs = append(costs, e.Amount)
	}
	var invoiced, paid []float64
	for _, inv := range invoices {
		invoiced = append(invoiced, inv.Total)
		if inv.Status == invoice.StatusPaid {
			paid = append(paid, inv.Total)
		}
	}

	rows := [][]any{
		{"Project", p.Name},
		{"Type", string(p.Type)},
		{"Status", string(p.Status)},
		{"Progress (%)", p.Progress},
		{"Baseline cost", p.BaselineCost},
		{"Baseline price", p.BaselinePrice},
		{"Baseline margin (%)", p.BaselineMargin},
		{"Actual cost", p.ActualCost},
		{"Expenses recorded", finance.Sum(costs...)},
		{"Actual margin (%)", finance.Margin(p.BaselinePrice, p.ActualCost)},
		{"Invoiced", finance.Sum(invoiced...)},
		{"Paid", finance.Sum(paid...)},
	}
	w.headers(SheetSummary, "Field", "Value")
	for i, r := range rows {
		w.row(SheetSummary, i+2, r...)
	}
}

func (w *sheetWriter) milestones(items []project.Milestone) {
	w.headers(SheetMilestones, "Name", "Status", "Progress (%)", "Estimated hours", "Estimated cost", "Price", "Due date")
	for i, m := range items {
		w.row(SheetMilestones, i+2, m.Name, string(m.Status), m.Progress, m.EstimatedHours, m.EstimatedCost, m.Price, formatDate(m.DueDate))
	}
}

func (w *sheetWriter) expenses(items []project.Expense) {
	w.headers(SheetExpenses, "Date", "Category", "Description", "Amount")
	for i, e := range items {
		w.row(SheetExpenses, i+2, e.Date.Format(dateLayout), e.Category, e.Description, e.Amount)
	}
}

func (w *sheetWriter) invoices(items []invoice.Invoice) {
	w.headers(SheetInvoices, "Number", "Status", "Issue date", "Due date", "Subtotal", "Tax rate (%)", "Tax", "Total", "Paid at")
	for i, inv := range items {
		w.row(SheetInvoices, i+2,
			inv.InvoiceNumber, string(inv.Status),
			inv.IssueDate.Format(dateLayout), inv.DueDate.Format(dateLayout),
			inv.Subtotal, inv.TaxRate, inv.Tax, inv.Total, formatDate(inv.PaidAt))
	}
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}
