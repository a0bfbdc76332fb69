// Package store keeps a client-side cache of the backend collections. Every
// mutation goes to the gateway first; the cache is then patched for
// single-entity changes or re-fetched when the backend changed more than the
// entity that was touched.
package store

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/rpggio/atelier/internal/apperr"
	"github.com/rpggio/atelier/internal/domain/audit"
	"github.com/rpggio/atelier/internal/domain/client"
	"github.com/rpggio/atelier/internal/domain/invoice"
	"github.com/rpggio/atelier/internal/domain/lifecycle"
	"github.com/rpggio/atelier/internal/domain/project"
	"github.com/rpggio/atelier/internal/domain/quote"
	"github.com/rpggio/atelier/internal/domain/settings"
	"golang.org/x/sync/singleflight"
)

// Gateway is the backend the store talks to.
type Gateway interface {
	ListClients(ctx context.Context) ([]client.Client, error)
	CreateClient(ctx context.Context, req client.CreateRequest) (*client.Client, error)
	UpdateClient(ctx context.Context, req client.UpdateRequest) (*client.Client, error)
	DeleteClient(ctx context.Context, id string) error

	ListQuotes(ctx context.Context, clientID string) ([]quote.Quote, error)
	CreateQuote(ctx context.Context, req quote.CreateRequest) (*quote.Quote, error)
	UpdateQuoteStatus(ctx context.Context, id string, status quote.Status) (*quote.Quote, error)
	DuplicateQuote(ctx context.Context, id string) (*quote.Quote, error)
	ApproveQuote(ctx context.Context, id string) (*lifecycle.ApproveResult, error)
	DeleteQuote(ctx context.Context, id string) error

	ListProjects(ctx context.Context, clientID string) ([]project.Project, error)
	CreateProject(ctx context.Context, req project.CreateRequest) (*project.Project, error)
	UpdateProject(ctx context.Context, req project.UpdateRequest) (*project.Project, error)
	ProjectDetails(ctx context.Context, id string) (*project.Details, error)
	DeleteProject(ctx context.Context, id string) error

	CreateMilestone(ctx context.Context, req project.MilestoneRequest) (*project.Milestone, error)
	UpdateMilestone(ctx context.Context, req project.MilestoneUpdate) (*project.Milestone, error)
	DeleteMilestone(ctx context.Context, id string) error

	CreateScopeChange(ctx context.Context, req project.ScopeChangeRequest) (*project.ScopeChange, error)
	ApproveScopeChange(ctx context.Context, id string) (*lifecycle.ScopeResult, error)
	RejectScopeChange(ctx context.Context, id string) (*project.ScopeChange, error)
	DeleteScopeChange(ctx context.Context, id string) error

	UploadDocument(ctx context.Context, req project.UploadRequest) (*project.Document, error)
	DeleteDocument(ctx context.Context, id string) error

	AddExpense(ctx context.Context, req lifecycle.ExpenseRequest) (*lifecycle.ExpenseResult, error)
	DeleteExpense(ctx context.Context, id string) (*lifecycle.ExpenseResult, error)

	ListInvoices(ctx context.Context, opts invoice.ListOptions) ([]invoice.Invoice, error)
	MarkInvoicePaid(ctx context.Context, id string) (*invoice.Invoice, error)
	UpdateInvoiceStatus(ctx context.Context, id string, status invoice.Status) (*invoice.Invoice, error)
	GenerateInvoice(ctx context.Context, req lifecycle.GenerateRequest) (*invoice.Invoice, error)
	CreateManualInvoice(ctx context.Context, req lifecycle.ManualInvoiceRequest) (*invoice.Invoice, error)

	GetSettings(ctx context.Context) (settings.Settings, error)
	UpdateSettings(ctx context.Context, values settings.Settings) (settings.Settings, error)

	AuditTrail(ctx context.Context, opts audit.ListOptions) ([]audit.Entry, error)
	Reset(ctx context.Context) error
}

// Store is the cache. It is safe for concurrent use.
type Store struct {
	gw       Gateway
	notifier Notifier
	group    singleflight.Group
	loading  atomic.Int32

	mu       sync.RWMutex
	clients  []client.Client
	quotes   []quote.Quote
	projects []project.Project
	invoices []invoice.Invoice
	settings settings.Settings
	details  map[string]*project.Details
	loaded   map[string]bool

	// Per key: callers inside fetch, the sequence of the newest load started
	// and of the newest load stored.
	inflight map[string]int
	started  map[string]uint64
	applied  map[string]uint64
}

// New creates an empty store. A nil notifier discards notifications.
func New(gw Gateway, notifier Notifier) *Store {
	if notifier == nil {
		notifier = NotifierFunc(func(context.Context, Notification) {})
	}
	return &Store{
		gw:       gw,
		notifier: notifier,
		details:  map[string]*project.Details{},
		loaded:   map[string]bool{},
		inflight: map[string]int{},
		started:  map[string]uint64{},
		applied:  map[string]uint64{},
	}
}

// Collection keys used for loading and coalescing.
const (
	keyClients  = "clients"
	keyQuotes   = "quotes"
	keyProjects = "projects"
	keyInvoices = "invoices"
	keySettings = "settings"
)

// Loading reports whether a fetch is in flight.
func (s *Store) Loading() bool {
	return s.loading.Load() > 0
}

// fetch runs fn once per key among concurrent callers and stores the result
// through apply. A result is dropped when a load started later has already
// been stored.
func fetch[T any](ctx context.Context, s *Store, key string, fn func(context.Context) (T, error), apply func(T)) error {
	s.loading.Add(1)
	defer s.loading.Add(-1)

	s.mu.Lock()
	s.inflight[key]++
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		if s.inflight[key]--; s.inflight[key] == 0 {
			delete(s.inflight, key)
		}
		s.mu.Unlock()
	}()

	_, err, _ := s.group.Do(key, func() (any, error) {
		s.mu.Lock()
		s.started[key]++
		seq := s.started[key]
		s.mu.Unlock()

		out, err := fn(ctx)
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		if seq > s.applied[key] {
			apply(out)
			s.applied[key] = seq
			s.loaded[key] = true
		}
		s.mu.Unlock()
		return out, nil
	})
	return err
}

// forgetInflight detaches running loads so that the next fetch of their key
// reads the backend again instead of joining a read that predates a mutation.
func (s *Store) forgetInflight() {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for key := range s.inflight {
		s.group.Forget(key)
	}
}

// Refresh loads every collection.
func (s *Store) Refresh(ctx context.Context) error {
	loaders := []func(context.Context) error{
		s.fetchClients, s.fetchQuotes, s.fetchProjects, s.fetchInvoices, s.fetchSettings,
	}
	for _, load := range loaders {
		if err := load(ctx); err != nil {
			return s.fail(ctx, err)
		}
	}
	return nil
}

func (s *Store) fetchClients(ctx context.Context) error {
	return fetch(ctx, s, keyClients, s.gw.ListClients, func(v []client.Client) { s.clients = v })
}

func (s *Store) fetchQuotes(ctx context.Context) error {
	return fetch(ctx, s, keyQuotes, func(ctx context.Context) ([]quote.Quote, error) {
		return s.gw.ListQuotes(ctx, "")
	}, func(v []quote.Quote) { s.quotes = v })
}

func (s *Store) fetchProjects(ctx context.Context) error {
	return fetch(ctx, s, keyProjects, func(ctx context.Context) ([]project.Project, error) {
		return s.gw.ListProjects(ctx, "")
	}, func(v []project.Project) { s.projects = v })
}

func (s *Store) fetchInvoices(ctx context.Context) error {
	return fetch(ctx, s, keyInvoices, func(ctx context.Context) ([]invoice.Invoice, error) {
		return s.gw.ListInvoices(ctx, invoice.ListOptions{})
	}, func(v []invoice.Invoice) { s.invoices = v })
}

func (s *Store) fetchSettings(ctx context.Context) error {
	return fetch(ctx, s, keySettings, s.gw.GetSettings, func(v settings.Settings) { s.settings = v })
}

func (s *Store) fetchDetails(ctx context.Context, projectID string) error {
	return fetch(ctx, s, "details:"+projectID, func(ctx context.Context) (*project.Details, error) {
		return s.gw.ProjectDetails(ctx, projectID)
	}, func(v *project.Details) { s.details[projectID] = v })
}

// ensure fetches key through load unless it has been loaded already.
func (s *Store) ensure(ctx context.Context, key string, load func(context.Context) error) error {
	s.mu.RLock()
	ok := s.loaded[key]
	s.mu.RUnlock()
	if ok {
		return nil
	}
	if err := load(ctx); err != nil {
		return s.fail(ctx, err)
	}
	return nil
}

// Clients returns the cached clients, loading them on first use.
func (s *Store) Clients(ctx context.Context) ([]client.Client, error) {
	if err := s.ensure(ctx, keyClients, s.fetchClients); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]client.Client(nil), s.clients...), nil
}

// Quotes returns the cached quotes, loading them on first use.
func (s *Store) Quotes(ctx context.Context) ([]quote.Quote, error) {
	if err := s.ensure(ctx, keyQuotes, s.fetchQuotes); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]quote.Quote(nil), s.quotes...), nil
}

// Projects returns the cached projects, loading them on first use.
func (s *Store) Projects(ctx context.Context) ([]project.Project, error) {
	if err := s.ensure(ctx, keyProjects, s.fetchProjects); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]project.Project(nil), s.projects...), nil
}

// Invoices returns the cached invoices, loading them on first use.
func (s *Store) Invoices(ctx context.Context) ([]invoice.Invoice, error) {
	if err := s.ensure(ctx, keyInvoices, s.fetchInvoices); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]invoice.Invoice(nil), s.invoices...), nil
}

// Settings returns the cached settings, loading them on first use.
func (s *Store) Settings(ctx context.Context) (settings.Settings, error) {
	if err := s.ensure(ctx, keySettings, s.fetchSettings); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(settings.Settings, len(s.settings))
	for k, v := range s.settings {
		out[k] = v
	}
	return out, nil
}

// ProjectDetails returns the cached details of a project, loading them on
// first use.
func (s *Store) ProjectDetails(ctx context.Context, projectID string) (*project.Details, error) {
	if err := s.ensure(ctx, "details:"+projectID, func(ctx context.Context) error {
		return s.fetchDetails(ctx, projectID)
	}); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	cached, ok := s.details[projectID]
	if !ok {
		return nil, s.fail(ctx, project.ErrProjectNotFound)
	}
	return cloneDetails(cached), nil
}

// AuditTrail is not cached.
func (s *Store) AuditTrail(ctx context.Context, opts audit.ListOptions) ([]audit.Entry, error) {
	entries, err := s.gw.AuditTrail(ctx, opts)
	if err != nil {
		return nil, s.fail(ctx, err)
	}
	return entries, nil
}

// succeed emits a success notification.
func (s *Store) succeed(ctx context.Context, msg string) {
	s.notifier.Notify(ctx, Notification{Level: LevelSuccess, Message: msg})
}

// fail classifies err, emits a warning or error notification and returns
// the classified value.
func (s *Store) fail(ctx context.Context, err error) error {
	appErr := apperr.From(err)
	s.notifier.Notify(ctx, Notification{Level: levelFor(appErr), Message: appErr.Message})
	return appErr
}

// refetch re-loads the given collections after a mutation with side
// effects. A failed re-fetch is reported but does not undo the mutation.
func (s *Store) refetch(ctx context.Context, loaders ...func(context.Context) error) {
	s.forgetInflight()

	var errs []error
	for _, load := range loaders {
		if err := load(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		s.fail(ctx, err)
	}
}

// detailsLoader re-fetches a project's details only when they are cached
// or being loaded.
func (s *Store) detailsLoader(projectID string) func(context.Context) error {
	return func(ctx context.Context) error {
		s.mu.RLock()
		_, cached := s.details[projectID]
		loading := s.inflight["details:"+projectID] > 0
		s.mu.RUnlock()
		if !cached && !loading {
			return nil
		}
		return s.fetchDetails(ctx, projectID)
	}
}

// dropDetails forgets cached project details.
func (s *Store) dropDetails(projectIDs ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(projectIDs) == 0 {
		for id := range s.details {
			delete(s.loaded, "details:"+id)
		}
		s.details = map[string]*project.Details{}
		return
	}
	for _, id := range projectIDs {
		delete(s.details, id)
		delete(s.loaded, "details:"+id)
	}
}

// patchDetails runs fn on the cached details of a project, if any.
func (s *Store) patchDetails(projectID string, fn func(d *project.Details)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d, ok := s.details[projectID]; ok {
		fn(d)
	}
}

// ownerOf finds the cached project owning a child entity.
func (s *Store) ownerOf(match func(d *project.Details) bool) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for id, d := range s.details {
		if match(d) {
			return id, true
		}
	}
	return "", false
}

func cloneDetails(d *project.Details) *project.Details {
	return &project.Details{
		Project:      d.Project,
		Milestones:   append([]project.Milestone(nil), d.Milestones...),
		ScopeChanges: append([]project.ScopeChange(nil), d.ScopeChanges...),
		Expenses:     append([]project.Expense(nil), d.Expenses...),
		Documents:    append([]project.Document(nil), d.Documents...),
	}
}

func upsert[T any](list []T, item T, id func(T) string) []T {
	for i := range list {
		if id(list[i]) == id(item) {
			list[i] = item
			return list
		}
	}
	return append(list, item)
}

func remove[T any](list []T, itemID string, id func(T) string) []T {
	out := list[:0]
	for _, v := range list {
		if id(v) != itemID {
			out = append(out, v)
		}
	}
	return out
}

func clientID(c client.Client) string { return c.ID }
func quoteID(q quote.Quote) string { return q.ID }
func projectID(p project.Project) string { return p.ID }
func invoiceID(i invoice.Invoice) string { return i.ID }
func milestoneID(m project.Milestone) string { return m.ID }
func scopeChangeID(c project.ScopeChange) string { return c.ID }
func documentID(d project.Document) string { return d.ID }
