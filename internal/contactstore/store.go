// Package contactstore holds the client-side state of the contacts list:
// the current page, the pagination cursor, the active search, and the
// loading/error flags. It synchronizes that state with the collection API
// and notifies subscribers whenever it changes.
package contactstore

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/contactapp/backend/internal/model"
	"github.com/contactapp/backend/pkg/contactsapi"
)

// User-facing messages recorded by LoadContacts.
const (
	ConnectionErrorMessage = "Error de conexión: No se pudo conectar al servidor. Por favor, intente nuevamente más tarde."
	loadErrorPrefix        = "Error al obtener contactos: "
)

// Snapshot is an immutable copy of the store state.
type Snapshot struct {
	Contacts      []*model.Contact
	TotalContacts int
	CurrentPage   int
	CurrentLimit  int
	ActiveQuery   string
	IsLoading     bool
	// ErrorMessage is empty when no error is recorded.
	ErrorMessage string
}

// LoadRequest describes one list load. Nil or non-positive Page and Limit
// fall back to the stored cursor; supplied values are committed to the
// cursor only when the load succeeds. A nil or blank Query means no filter.
type LoadRequest struct {
	Query *string
	Page  *int
	Limit *int
}

// WithQuery returns a copy of r filtering by q.
func (r LoadRequest) WithQuery(q string) LoadRequest { r.Query = &q; return r }

// WithPage returns a copy of r requesting page p.
func (r LoadRequest) WithPage(p int) LoadRequest { r.Page = &p; return r }

// WithLimit returns a copy of r requesting n contacts per page.
func (r LoadRequest) WithLimit(n int) LoadRequest { r.Limit = &n; return r }

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for mutation failures.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithPageSize sets the initial page size. Non-positive values are ignored.
func WithPageSize(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.limit = n
		}
	}
}

// Store is the contacts state container. It is safe for concurrent use.
type Store struct {
	client contactsapi.Client
	logger *slog.Logger
	subs   *bus

	mu       sync.Mutex
	contacts []*model.Contact
	total    int
	page     int
	limit    int
	query    string
	loading  bool
	errMsg   string
	// seq identifies the newest load; completions of older loads are dropped.
	seq uint64
}

// New creates a Store starting at page 1 with model.DefaultLimit contacts per page.
func New(client contactsapi.Client, opts ...Option) *Store {
	s := &Store{
		client:   client,
		logger:   slog.Default(),
		subs:     newBus(),
		contacts: []*model.Contact{},
		page:     model.DefaultPage,
		limit:    model.DefaultLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot returns a consistent copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Contacts returns a copy of the contacts of the current page.
func (s *Store) Contacts() []*model.Contact { return s.Snapshot().Contacts }

// TotalContacts returns the number of contacts matching the active search.
func (s *Store) TotalContacts() int { return s.Snapshot().TotalContacts }

// CurrentPage returns the 1-based page of the cursor.
func (s *Store) CurrentPage() int { return s.Snapshot().CurrentPage }

// CurrentLimit returns the page size of the cursor.
func (s *Store) CurrentLimit() int { return s.Snapshot().CurrentLimit }

// IsLoading reports whether a load is in flight.
func (s *Store) IsLoading() bool { return s.Snapshot().IsLoading }

// ErrorMessage returns the recorded error message and whether one is set.
func (s *Store) ErrorMessage() (string, bool) {
	snap := s.Snapshot()
	return snap.ErrorMessage, snap.ErrorMessage != ""
}

// SetCurrentPage moves the cursor without loading. Non-positive pages are ignored.
func (s *Store) SetCurrentPage(page int) {
	if page < 1 {
		return
	}
	s.update(func() { s.page = page })
}

// SetCurrentLimit changes the page size without loading. Non-positive sizes are ignored.
func (s *Store) SetCurrentLimit(limit int) {
	if limit < 1 {
		return
	}
	s.update(func() { s.limit = limit })
}

// ClearError drops the recorded error message. Nothing else changes.
func (s *Store) ClearError() {
	s.update(func() { s.errMsg = "" })
}

// Subscribe returns a channel receiving a Snapshot after every state change
// and a function that ends the subscription. Slow subscribers miss updates
// instead of blocking the store.
func (s *Store) Subscribe() (<-chan Snapshot, func()) {
	return s.subs.subscribe()
}

// LoadContacts fetches one page from the API and replaces the current list.
// Failures are recorded in the error message, never returned.
func (s *Store) LoadContacts(ctx context.Context, req LoadRequest) {
	// non-positive overrides fall back to the stored cursor
	if req.Page != nil && *req.Page < 1 {
		req.Page = nil
	}
	if req.Limit != nil && *req.Limit < 1 {
		req.Limit = nil
	}

	s.mu.Lock()
	s.seq++
	seq := s.seq
	s.loading = true
	s.errMsg = ""
	page, limit := s.page, s.limit
	if req.Page != nil {
		page = *req.Page
	}
	if req.Limit != nil {
		limit = *req.Limit
	}
	var query string
	if req.Query != nil {
		query = strings.TrimSpace(*req.Query)
	}
	s.publishLocked()
	s.mu.Unlock()

	result, err := s.client.List(ctx, contactsapi.ListParams{Query: query, Page: page, Limit: limit})

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.seq {
		s.logger.Debug("discarding stale contacts load", "page", page, "query", query)
		return
	}
	s.loading = false
	if err != nil {
		s.errMsg = loadErrorMessage(err)
		s.publishLocked()
		return
	}

	s.contacts = result.Contacts
	s.total = result.Total
	s.query = query
	if req.Page != nil {
		s.page = page
	}
	if req.Limit != nil {
		s.limit = limit
	}
	s.publishLocked()
}

// Reload fetches the current page again with the active search.
func (s *Store) Reload(ctx context.Context) {
	s.mu.Lock()
	q := s.query
	s.mu.Unlock()
	s.LoadContacts(ctx, LoadRequest{}.WithQuery(q))
}

// AddContact creates a contact and, on success, reloads the current page.
// The new contact only shows up if it falls on that page. Failures are
// logged and returned; they never touch the error message or the list.
func (s *Store) AddContact(ctx context.Context, in model.ContactInput) error {
	if _, err := s.client.Create(ctx, in); err != nil {
		s.logger.Error("Error creating Contact", "error", err)
		return err
	}
	s.Reload(ctx)
	return nil
}

// RemoveContact deletes the contact with the given ID and, on success,
// reloads the current page. Failures behave as in AddContact.
func (s *Store) RemoveContact(ctx context.Context, id string) error {
	if err := s.client.Delete(ctx, id); err != nil {
		s.logger.Error("Error removing contact", "error", err, "id", id)
		return err
	}
	s.Reload(ctx)
	return nil
}

func (s *Store) update(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn()
	s.publishLocked()
}

func (s *Store) snapshotLocked() Snapshot {
	return Snapshot{
		Contacts:      slices.Clone(s.contacts),
		TotalContacts: s.total,
		CurrentPage:   s.page,
		CurrentLimit:  s.limit,
		ActiveQuery:   s.query,
		IsLoading:     s.loading,
		ErrorMessage:  s.errMsg,
	}
}

func (s *Store) publishLocked() {
	s.subs.publish(s.snapshotLocked())
}

func loadErrorMessage(err error) string {
	if contactsapi.IsNetworkError(err) {
		return ConnectionErrorMessage
	}
	var statusErr *contactsapi.HTTPStatusError
	if errors.As(err, &statusErr) {
		return loadErrorPrefix + statusErr.Error()
	}
	return loadErrorPrefix + err.Error()
}
