package repository

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/contactapp/backend/internal/model"
	"github.com/google/uuid"
)

// MemContactRepository is an in-memory ContactRepository used when no
// database is configured and in tests. Contacts keep insertion order.
type MemContactRepository struct {
	mu       sync.RWMutex
	contacts []*model.Contact
}

var _ ContactRepository = (*MemContactRepository)(nil)

// NewMemContactRepository creates a repository seeded with the given contacts.
// Seeds without an ID get a fresh one.
func NewMemContactRepository(seed ...*model.Contact) *MemContactRepository {
	r := &MemContactRepository{}
	for _, c := range seed {
		cp := *c
		if cp.ID == "" {
			cp.ID = uuid.NewString()
		}
		r.contacts = append(r.contacts, &cp)
	}
	return r
}

func (r *MemContactRepository) List(_ context.Context, opts model.ContactListOptions) (*model.ContactPage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	q := strings.ToLower(strings.TrimSpace(opts.Query))
	var matched []*model.Contact
	for _, c := range r.contacts {
		if q == "" || matches(c, q) {
			matched = append(matched, c)
		}
	}

	start := max(0, min(opts.Offset(), len(matched)))
	end := min(start+opts.Limit, len(matched))

	page := make([]*model.Contact, 0, end-start)
	for _, c := range matched[start:end] {
		cp := *c
		page = append(page, &cp)
	}
	return &model.ContactPage{Contacts: page, Total: len(matched)}, nil
}

func (r *MemContactRepository) GetByID(_ context.Context, id string) (*model.Contact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i := r.indexOf(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	cp := *r.contacts[i]
	return &cp, nil
}

func (r *MemContactRepository) Create(_ context.Context, c *model.Contact) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c.ID = uuid.NewString()
	cp := *c
	r.contacts = append(r.contacts, &cp)
	return nil
}

func (r *MemContactRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}
	r.contacts = slices.Delete(r.contacts, i, i+1)
	return nil
}

// Ping satisfies DB so the health check works without PostgreSQL.
func (r *MemContactRepository) Ping(context.Context) error { return nil }

func (r *MemContactRepository) indexOf(id string) int {
	return slices.IndexFunc(r.contacts, func(c *model.Contact) bool { return c.ID == id })
}

// matches reports whether any searchable field contains q (already lower-cased).
func matches(c *model.Contact, q string) bool {
	for _, field := range []string{c.Name, c.Description, c.Action} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}
