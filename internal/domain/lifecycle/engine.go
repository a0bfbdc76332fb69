// Package lifecycle implements the multi-entity operations of the
// quote, project and invoice lifecycle. Each operation runs in a single
// transaction obtained from a Transactor.
package lifecycle

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rpggio/atelier/internal/apperr"
	"github.com/rpggio/atelier/internal/domain/audit"
	"github.com/rpggio/atelier/internal/domain/client"
	"github.com/rpggio/atelier/internal/domain/invoice"
	"github.com/rpggio/atelier/internal/domain/project"
	"github.com/rpggio/atelier/internal/domain/quote"
	"github.com/rpggio/atelier/internal/domain/settings"
	"github.com/rpggio/atelier/internal/finance"
	"github.com/rpggio/atelier/internal/repository"
)

// Engine coordinates lifecycle transitions.
type Engine struct {
	tx     Transactor
	logger *slog.Logger
	now    func() time.Time
}

// NewEngine creates a lifecycle engine.
func NewEngine(tx Transactor, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Engine{tx: tx, logger: logger, now: time.Now}
}

// ApproveResult is the outcome of a quote approval.
type ApproveResult struct {
	Quote      *quote.Quote        `json:"quote"`
	Project    *project.Project    `json:"project"`
	Milestones []project.Milestone `json:"milestones"`
}

// ApproveQuote marks the quote approved, creates a project from its totals
// and turns every line item into a planned milestone.
func (e *Engine) ApproveQuote(ctx context.Context, quoteID string) (*ApproveResult, error) {
	var result *ApproveResult
	err := e.tx.Atomic(ctx, func(tx Tx) error {
		q, err := tx.Quotes().Get(ctx, quoteID)
		if err != nil {
			return translate(err, quote.ErrQuoteNotFound)
		}
		if err := quote.ValidateTransition(q.Status, quote.StatusApproved); err != nil {
			return err
		}

		now := e.now()
		if err := tx.Quotes().UpdateStatus(ctx, q.ID, q.Status, quote.StatusApproved, now); err != nil {
			if errors.Is(err, repository.ErrStale) {
				return quote.ErrInvalidTransition
			}
			return fmt.Errorf("approve quote: %w", err)
		}
		q.Status = quote.StatusApproved
		q.UpdatedAt = now

		quoteRef := q.ID
		p := &project.Project{
			ID:            uuid.NewString(),
			ClientID:      q.ClientID,
			QuoteID:       &quoteRef,
			Name:          q.Name,
			Type:          project.TypeFixed,
			Status:        project.StatusActive,
			BaselineCost:  q.TotalCost,
			BaselinePrice: q.TotalPrice,
			StartDate:     &now,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		p.RecomputeMargin()
		if err := tx.Projects().Create(ctx, p); err != nil {
			return fmt.Errorf("create project: %w", err)
		}

		milestones := make([]project.Milestone, 0, len(q.Items))
		for _, item := range q.Items {
			m := project.Milestone{
				ID:             uuid.NewString(),
				ProjectID:      p.ID,
				Name:           item.Description,
				EstimatedHours: item.Quantity,
				EstimatedCost:  item.Cost,
				Price:          item.Total,
				Status:         project.MilestonePlanned,
				CreatedAt:      now,
			}
			if err := tx.Milestones().Create(ctx, &m); err != nil {
				return fmt.Errorf("create milestone: %w", err)
			}
			milestones = append(milestones, m)
		}

		if err := logAudit(ctx, tx, audit.EntityQuote, q.ID, audit.ActionQuoteApproved, map[string]any{
			"project_id":      p.ID,
			"milestone_count": len(milestones),
		}, now); err != nil {
			return err
		}

		result = &ApproveResult{Quote: q, Project: p, Milestones: milestones}
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.logger.Info("quote approved", "quote_id", quoteID, "project_id", result.Project.ID, "milestones", len(result.Milestones))
	return result, nil
}

// DuplicateQuote copies a quote and its items into a new draft.
func (e *Engine) DuplicateQuote(ctx context.Context, quoteID string) (*quote.Quote, error) {
	var dup *quote.Quote
	err := e.tx.Atomic(ctx, func(tx Tx) error {
		src, err := tx.Quotes().Get(ctx, quoteID)
		if err != nil {
			return translate(err, quote.ErrQuoteNotFound)
		}

		now := e.now()
		dup = &quote.Quote{
			ID:           uuid.NewString(),
			ClientID:     src.ClientID,
			Name:         src.Name + " (Copy)",
			Version:      1,
			Status:       quote.StatusDraft,
			TotalCost:    src.TotalCost,
			TotalPrice:   src.TotalPrice,
			Margin:       src.Margin,
			TaxRate:      src.TaxRate,
			DiscountRate: src.DiscountRate,
			Notes:        src.Notes,
			ValidUntil:   src.ValidUntil,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		for _, item := range src.Items {
			item.ID = uuid.NewString()
			item.QuoteID = dup.ID
			dup.Items = append(dup.Items, item)
		}
		if err := tx.Quotes().Create(ctx, dup); err != nil {
			return fmt.Errorf("duplicate quote: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dup, nil
}

// ScopeResult is the outcome of a scope change decision. Project is nil
// when the owning project could not be loaded.
type ScopeResult struct {
	ScopeChange *project.ScopeChange `json:"scope_change"`
	Project     *project.Project     `json:"project,omitempty"`
}

// ApproveScopeChange approves a pending scope change and folds its impacts
// into the project baseline.
func (e *Engine) ApproveScopeChange(ctx context.Context, id string) (*ScopeResult, error) {
	var result *ScopeResult
	err := e.tx.Atomic(ctx, func(tx Tx) error {
		sc, err := decideScope(ctx, tx, id, project.ScopeApproved, e.now())
		if err != nil {
			return err
		}
		result = &ScopeResult{ScopeChange: sc}

		p, err := tx.Projects().Get(ctx, sc.ProjectID)
		if errors.Is(err, repository.ErrNotFound) {
			e.logger.Warn("scope change approved without project", "scope_change_id", sc.ID, "project_id", sc.ProjectID)
			return nil
		}
		if err != nil {
			return fmt.Errorf("load project: %w", err)
		}

		p.ApplyScopeChange(sc.CostImpact, sc.PriceImpact)
		p.UpdatedAt = *sc.DecidedAt
		if err := tx.Projects().UpdateFinancials(ctx, p); err != nil {
			return fmt.Errorf("update baseline: %w", err)
		}
		result.Project = p

		return logAudit(ctx, tx, audit.EntityScopeChange, sc.ID, audit.ActionScopeApproved, map[string]any{
			"project_id":   p.ID,
			"cost_impact":  sc.CostImpact,
			"price_impact": sc.PriceImpact,
		}, *sc.DecidedAt)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// RejectScopeChange rejects a pending scope change. The baseline is not
// touched.
func (e *Engine) RejectScopeChange(ctx context.Context, id string) (*project.ScopeChange, error) {
	var sc *project.ScopeChange
	err := e.tx.Atomic(ctx, func(tx Tx) error {
		var err error
		sc, err = decideScope(ctx, tx, id, project.ScopeRejected, e.now())
		if err != nil {
			return err
		}
		return logAudit(ctx, tx, audit.EntityScopeChange, sc.ID, audit.ActionScopeRejected, map[string]any{
			"project_id": sc.ProjectID,
		}, *sc.DecidedAt)
	})
	if err != nil {
		return nil, err
	}
	return sc, nil
}

func decideScope(ctx context.Context, tx Tx, id string, status project.ScopeStatus, now time.Time) (*project.ScopeChange, error) {
	sc, err := tx.ScopeChanges().Get(ctx, id)
	if err != nil {
		return nil, translate(err, project.ErrScopeChangeNotFound)
	}
	if sc.Status != project.ScopePending {
		return nil, project.ErrScopeDecided
	}
	if err := tx.ScopeChanges().UpdateStatus(ctx, id, status, now); err != nil {
		return nil, fmt.Errorf("decide scope change: %w", err)
	}
	sc.Status = status
	sc.DecidedAt = &now
	return sc, nil
}

// GenerateRequest selects what a project invoice bills. When MilestoneIDs
// is empty the whole baseline price is billed.
type GenerateRequest struct {
	ProjectID    string
	MilestoneIDs []string
	Notes        string
}

// GenerateInvoice issues a draft invoice for a project.
func (e *Engine) GenerateInvoice(ctx context.Context, req GenerateRequest) (*invoice.Invoice, error) {
	if strings.TrimSpace(req.ProjectID) == "" {
		return nil, apperr.Violations{"project_id": "required"}.Check()
	}

	var inv *invoice.Invoice
	err := e.tx.Atomic(ctx, func(tx Tx) error {
		p, err := tx.Projects().Get(ctx, req.ProjectID)
		if err != nil {
			return translate(err, project.ErrProjectNotFound)
		}

		subtotal := p.BaselinePrice
		if len(req.MilestoneIDs) > 0 {
			subtotal, err = milestoneSubtotal(ctx, tx, p.ID, req.MilestoneIDs)
			if err != nil {
				return err
			}
		}

		c, err := tx.Clients().Get(ctx, p.ClientID)
		if err != nil {
			return translate(err, project.ErrClientNotFound)
		}

		projectRef := p.ID
		inv, err = e.issue(ctx, tx, issueInput{
			clientID:  p.ClientID,
			projectID: &projectRef,
			subtotal:  subtotal,
			client:    c,
			notes:     req.Notes,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	e.logger.Info("invoice generated", "invoice_number", inv.InvoiceNumber, "project_id", req.ProjectID, "total", inv.Total)
	return inv, nil
}

func milestoneSubtotal(ctx context.Context, tx Tx, projectID string, ids []string) (float64, error) {
	milestones, err := tx.Milestones().ListByProject(ctx, projectID)
	if err != nil {
		return 0, fmt.Errorf("list milestones: %w", err)
	}
	byID := make(map[string]project.Milestone, len(milestones))
	for _, m := range milestones {
		byID[m.ID] = m
	}

	seen := make(map[string]bool, len(ids))
	prices := make([]float64, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		m, ok := byID[id]
		if !ok {
			return 0, fmt.Errorf("milestone %s: %w", id, project.ErrMilestoneNotFound)
		}
		if !m.Invoiceable() {
			return 0, fmt.Errorf("milestone %s: %w", id, ErrMilestoneNotInvoiceable)
		}
		prices = append(prices, m.Price)
	}
	return finance.Sum(prices...), nil
}

// ManualInvoiceRequest describes an invoice entered by hand. A nil TaxRate
// falls back to the client and then the global rate.
type ManualInvoiceRequest struct {
	ClientID  string
	ProjectID *string
	Subtotal  float64
	TaxRate   *float64
	Notes     string
}

// CreateManualInvoice issues a draft invoice from caller-supplied amounts.
func (e *Engine) CreateManualInvoice(ctx context.Context, req ManualInvoiceRequest) (*invoice.Invoice, error) {
	v := apperr.Violations{}
	if strings.TrimSpace(req.ClientID) == "" {
		v["client_id"] = "required"
	}
	if req.Subtotal < 0 {
		v["subtotal"] = "must_not_be_negative"
	}
	if req.TaxRate != nil && (*req.TaxRate < 0 || *req.TaxRate > 100) {
		v["tax_rate"] = "out_of_range"
	}
	if err := v.Check(); err != nil {
		return nil, err
	}

	var inv *invoice.Invoice
	err := e.tx.Atomic(ctx, func(tx Tx) error {
		c, err := tx.Clients().Get(ctx, req.ClientID)
		if err != nil {
			return translate(err, client.ErrClientNotFound)
		}
		if req.ProjectID != nil && *req.ProjectID != "" {
			if _, err := tx.Projects().Get(ctx, *req.ProjectID); err != nil {
				return translate(err, project.ErrProjectNotFound)
			}
		}

		projectID := req.ProjectID
		if projectID != nil && *projectID == "" {
			projectID = nil
		}
		inv, err = e.issue(ctx, tx, issueInput{
			clientID:  c.ID,
			projectID: projectID,
			subtotal:  req.Subtotal,
			taxRate:   req.TaxRate,
			client:    c,
			notes:     req.Notes,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	e.logger.Info("manual invoice created", "invoice_number", inv.InvoiceNumber, "client_id", req.ClientID, "total", inv.Total)
	return inv, nil
}

type issueInput struct {
	clientID  string
	projectID *string
	subtotal  float64
	taxRate   *float64
	client    *client.Client
	notes     string
}

// issue claims the next invoice number and inserts the invoice. The counter
// is read and advanced inside the caller's transaction, so a failed insert
// leaves it untouched.
func (e *Engine) issue(ctx context.Context, tx Tx, in issueInput) (*invoice.Invoice, error) {
	cfg, err := tx.Settings().All(ctx)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	next := cfg.InvoiceNextNumber()
	if err := tx.Settings().Upsert(ctx, settings.Settings{
		settings.KeyInvoiceNextNumber: strconv.Itoa(next + 1),
	}); err != nil {
		return nil, fmt.Errorf("advance invoice counter: %w", err)
	}

	rate := resolveTaxRate(in.taxRate, in.client, cfg)
	subtotal := finance.Round2(in.subtotal)
	now := e.now()
	inv := &invoice.Invoice{
		ID:            uuid.NewString(),
		ClientID:      in.clientID,
		ProjectID:     in.projectID,
		InvoiceNumber: cfg.InvoicePrefix() + strconv.Itoa(next),
		Status:        invoice.StatusDraft,
		Subtotal:      subtotal,
		TaxRate:       rate,
		Tax:           finance.Tax(subtotal, rate),
		Total:         finance.TotalWithTax(subtotal, rate),
		IssueDate:     now,
		DueDate:       now.AddDate(0, 0, cfg.PaymentTerms()),
		Notes:         in.notes,
		CreatedAt:     now,
	}
	if err := tx.Invoices().Create(ctx, inv); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, fmt.Errorf("%s: %w", inv.InvoiceNumber, ErrDuplicateInvoiceNumber)
		}
		return nil, fmt.Errorf("create invoice: %w", err)
	}

	if err := logAudit(ctx, tx, audit.EntityInvoice, inv.ID, audit.ActionInvoiceIssued, map[string]any{
		"invoice_number": inv.InvoiceNumber,
		"total":          inv.Total,
	}, now); err != nil {
		return nil, err
	}
	return inv, nil
}

func resolveTaxRate(explicit *float64, c *client.Client, cfg settings.Settings) float64 {
	if explicit != nil {
		return *explicit
	}
	if c != nil && c.TaxRate > 0 {
		return c.TaxRate
	}
	return cfg.TaxRate()
}

// ExpenseRequest describes a new project expense.
type ExpenseRequest struct {
	ProjectID   string
	Category    string
	Description string
	Amount      float64
	Date        *time.Time
}

// ExpenseResult is the outcome of an expense mutation.
type ExpenseResult struct {
	Expense *project.Expense `json:"expense,omitempty"`
	Project *project.Project `json:"project"`
}

// AddExpense records an expense and adds it to the project's actual cost.
func (e *Engine) AddExpense(ctx context.Context, req ExpenseRequest) (*ExpenseResult, error) {
	v := apperr.Violations{}
	if strings.TrimSpace(req.ProjectID) == "" {
		v["project_id"] = "required"
	}
	if strings.TrimSpace(req.Category) == "" {
		v["category"] = "required"
	}
	if req.Amount <= 0 {
		v["amount"] = "must_be_positive"
	}
	if err := v.Check(); err != nil {
		return nil, err
	}

	var result *ExpenseResult
	err := e.tx.Atomic(ctx, func(tx Tx) error {
		p, err := lockedCheck(ctx, tx, req.ProjectID)
		if err != nil {
			return err
		}

		now := e.now()
		date := now
		if req.Date != nil {
			date = *req.Date
		}
		exp := &project.Expense{
			ID:          uuid.NewString(),
			ProjectID:   p.ID,
			Category:    strings.TrimSpace(req.Category),
			Description: req.Description,
			Amount:      req.Amount,
			Date:        date,
		}
		if err := tx.Expenses().Create(ctx, exp); err != nil {
			return fmt.Errorf("create expense: %w", err)
		}

		p.ActualCost = finance.Sum(p.ActualCost, exp.Amount)
		p.UpdatedAt = now
		if err := tx.Projects().UpdateFinancials(ctx, p); err != nil {
			return fmt.Errorf("update actual cost: %w", err)
		}

		result = &ExpenseResult{Expense: exp, Project: p}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// DeleteExpense removes an expense and subtracts it from the project's
// actual cost, never going below zero.
func (e *Engine) DeleteExpense(ctx context.Context, id string) (*ExpenseResult, error) {
	var result *ExpenseResult
	err := e.tx.Atomic(ctx, func(tx Tx) error {
		exp, err := tx.Expenses().Get(ctx, id)
		if err != nil {
			return translate(err, project.ErrExpenseNotFound)
		}
		p, err := lockedCheck(ctx, tx, exp.ProjectID)
		if err != nil {
			return err
		}

		if err := tx.Expenses().Delete(ctx, id); err != nil {
			return translate(err, project.ErrExpenseNotFound)
		}
		p.ActualCost = finance.SubFloor0(p.ActualCost, exp.Amount)
		p.UpdatedAt = e.now()
		if err := tx.Projects().UpdateFinancials(ctx, p); err != nil {
			return fmt.Errorf("update actual cost: %w", err)
		}

		result = &ExpenseResult{Project: p}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func lockedCheck(ctx context.Context, tx Tx, projectID string) (*project.Project, error) {
	p, err := tx.Projects().Get(ctx, projectID)
	if err != nil {
		return nil, translate(err, project.ErrProjectNotFound)
	}
	if p.Locked() {
		return nil, project.ErrProjectLocked
	}
	return p, nil
}

// MarkInvoicePaid sets an invoice to Paid with the current time.
func (e *Engine) MarkInvoicePaid(ctx context.Context, id string) (*invoice.Invoice, error) {
	return e.UpdateInvoiceStatus(ctx, id, invoice.StatusPaid)
}

// UpdateInvoiceStatus moves an invoice to a new status. Payment stamps
// paidAt and writes an audit entry.
func (e *Engine) UpdateInvoiceStatus(ctx context.Context, id string, status invoice.Status) (*invoice.Invoice, error) {
	if !status.Valid() {
		return nil, apperr.Violations{"status": "invalid"}.Check()
	}

	var inv *invoice.Invoice
	err := e.tx.Atomic(ctx, func(tx Tx) error {
		var err error
		inv, err = tx.Invoices().Get(ctx, id)
		if err != nil {
			return translate(err, invoice.ErrInvoiceNotFound)
		}
		if err := invoice.ValidateTransition(inv.Status, status); err != nil {
			return err
		}

		now := e.now()
		var paidAt *time.Time
		if status == invoice.StatusPaid {
			paidAt = &now
		} else {
			paidAt = inv.PaidAt
		}
		if err := tx.Invoices().UpdateStatus(ctx, id, status, paidAt); err != nil {
			return translate(err, invoice.ErrInvoiceNotFound)
		}
		inv.Status = status
		inv.PaidAt = paidAt

		if status != invoice.StatusPaid {
			return nil
		}
		return logAudit(ctx, tx, audit.EntityInvoice, inv.ID, audit.ActionInvoicePaid, map[string]any{
			"invoice_number": inv.InvoiceNumber,
			"total":          inv.Total,
		}, now)
	})
	if err != nil {
		return nil, err
	}
	return inv, nil
}

func logAudit(ctx context.Context, tx Tx, entityType, entityID, action string, details map[string]any, at time.Time) error {
	raw, err := json.Marshal(details)
	if err != nil {
		return fmt.Errorf("encode audit details: %w", err)
	}
	entry := &audit.Entry{
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
		Details:    string(raw),
		Timestamp:  at,
	}
	if err := tx.Audit().Log(ctx, entry); err != nil {
		return fmt.Errorf("write audit entry: %w", err)
	}
	return nil
}

// translate maps a missing row to the domain error and wraps anything else.
func translate(err, notFound error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return notFound
	}
	return err
}
