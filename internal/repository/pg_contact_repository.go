package repository

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/contactapp/backend/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ContactRepository defines the persistence interface for contacts.
// It is defined here (in repository) to avoid an import cycle with service.
type ContactRepository interface {
	List(ctx context.Context, opts model.ContactListOptions) (*model.ContactPage, error)
	GetByID(ctx context.Context, id string) (*model.Contact, error)
	Create(ctx context.Context, c *model.Contact) error
	Delete(ctx context.Context, id string) error
}

// PgContactRepository is the PostgreSQL implementation of ContactRepository.
type PgContactRepository struct {
	pool *pgxpool.Pool
}

// NewPgContactRepository creates a PgContactRepository backed by the given pool.
func NewPgContactRepository(pool *pgxpool.Pool) *PgContactRepository {
	return &PgContactRepository{pool: pool}
}

// Ensure PgContactRepository implements ContactRepository at compile time.
var _ ContactRepository = (*PgContactRepository)(nil)

// List returns one page of contacts matching opts.Query together with the
// total number of matching rows. Rows are ordered by creation time so newly
// added contacts land on the last page, like the mock server did.
func (r *PgContactRepository) List(ctx context.Context, opts model.ContactListOptions) (*model.ContactPage, error) {
	var args []any
	where := ""
	if q := strings.TrimSpace(opts.Query); q != "" {
		args = append(args, "%"+escapeLike(q)+"%")
		where = "WHERE name ILIKE $1 OR description ILIKE $1 OR action ILIKE $1"
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM contacts `+where, args...).Scan(&total); err != nil {
		return nil, err
	}

	limitArg := len(args) + 1
	offsetArg := len(args) + 2
	args = append(args, opts.Limit, opts.Offset())

	rows, err := r.pool.Query(ctx,
		`SELECT id::text, name, description, photo, action
		 FROM contacts `+where+
			` ORDER BY created_at, id
		  LIMIT $`+strconv.Itoa(limitArg)+` OFFSET $`+strconv.Itoa(offsetArg),
		args...,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	contacts := []*model.Contact{}
	for rows.Next() {
		var c model.Contact
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.Photo, &c.Action); err != nil {
			return nil, err
		}
		contacts = append(contacts, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &model.ContactPage{Contacts: contacts, Total: total}, nil
}

// GetByID returns a single contact or ErrNotFound.
func (r *PgContactRepository) GetByID(ctx context.Context, id string) (*model.Contact, error) {
	var c model.Contact
	err := r.pool.QueryRow(ctx,
		`SELECT id::text, name, description, photo, action FROM contacts WHERE id::text = $1`,
		id,
	).Scan(&c.ID, &c.Name, &c.Description, &c.Photo, &c.Action)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts a new contacts row and populates c.ID from the RETURNING clause.
func (r *PgContactRepository) Create(ctx context.Context, c *model.Contact) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO contacts (name, description, photo, action)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id::text`,
		c.Name, c.Description, c.Photo, c.Action,
	).Scan(&c.ID)
}

// Delete removes the contact. Returns ErrNotFound when no row matched.
func (r *PgContactRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM contacts WHERE id::text = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// escapeLike escapes the ILIKE wildcards so user input is matched literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
