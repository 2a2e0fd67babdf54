package service

import (
	"context"
	"errors"

	"github.com/contactapp/backend/internal/model"
)

// ErrInvalidInput is returned when a contact payload fails validation.
var ErrInvalidInput = errors.New("invalid input")

// ContactService defines the business logic for the contacts collection.
type ContactService interface {
	// List returns one page of contacts and the total matching count.
	// Page and Limit are normalized; Limit is capped at model.MaxLimit.
	List(ctx context.Context, opts model.ContactListOptions) (*model.ContactPage, error)

	GetByID(ctx context.Context, id string) (*model.Contact, error)

	// Create stores a new contact. The returned contact carries the
	// server-assigned ID.
	Create(ctx context.Context, in model.ContactInput) (*model.Contact, error)

	// Delete removes a contact. Returns repository.ErrNotFound when absent.
	Delete(ctx context.Context, id string) error
}
