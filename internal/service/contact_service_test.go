package service

import (
	"context"
	"errors"
	"testing"

	"github.com/contactapp/backend/internal/model"
	"github.com/contactapp/backend/internal/repository"
)

// ---------------------------------------------------------------------------
// mockContactRepository is a func-field stub of repository.ContactRepository.
// ---------------------------------------------------------------------------

type mockContactRepository struct {
	listFunc    func(ctx context.Context, opts model.ContactListOptions) (*model.ContactPage, error)
	getByIDFunc func(ctx context.Context, id string) (*model.Contact, error)
	createFunc  func(ctx context.Context, c *model.Contact) error
	deleteFunc  func(ctx context.Context, id string) error
}

func (m *mockContactRepository) List(ctx context.Context, opts model.ContactListOptions) (*model.ContactPage, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, opts)
	}
	return &model.ContactPage{}, nil
}

func (m *mockContactRepository) GetByID(ctx context.Context, id string) (*model.Contact, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, repository.ErrNotFound
}

func (m *mockContactRepository) Create(ctx context.Context, c *model.Contact) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, c)
	}
	return nil
}

func (m *mockContactRepository) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

// ---------------------------------------------------------------------------
// List tests
// ---------------------------------------------------------------------------

func TestContactService_List_NormalizesOptions(t *testing.T) {
	tests := []struct {
		name string
		in   model.ContactListOptions
		want model.ContactListOptions
	}{
		{"defaults", model.ContactListOptions{}, model.ContactListOptions{Page: 1, Limit: 6}},
		{"kept", model.ContactListOptions{Query: "ana", Page: 3, Limit: 12}, model.ContactListOptions{Query: "ana", Page: 3, Limit: 12}},
		{"clamped", model.ContactListOptions{Page: 1, Limit: 1000}, model.ContactListOptions{Page: 1, Limit: 100}},
		{"trimmed query", model.ContactListOptions{Query: "  ana  ", Page: 1, Limit: 6}, model.ContactListOptions{Query: "ana", Page: 1, Limit: 6}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var captured model.ContactListOptions
			svc := NewContactService(&mockContactRepository{
				listFunc: func(ctx context.Context, opts model.ContactListOptions) (*model.ContactPage, error) {
					captured = opts
					return &model.ContactPage{}, nil
				},
			})
			if _, err := svc.List(context.Background(), tt.in); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if captured != tt.want {
				t.Errorf("expected %+v forwarded, got %+v", tt.want, captured)
			}
		})
	}
}

func TestContactService_List_RepositoryError(t *testing.T) {
	svc := NewContactService(&mockContactRepository{
		listFunc: func(ctx context.Context, opts model.ContactListOptions) (*model.ContactPage, error) {
			return nil, errors.New("db read failed")
		},
	})

	if _, err := svc.List(context.Background(), model.ContactListOptions{}); err == nil {
		t.Error("expected error from repository, got nil")
	}
}

// ---------------------------------------------------------------------------
// Create tests
// ---------------------------------------------------------------------------

func TestContactService_Create_TrimsAndReturnsID(t *testing.T) {
	var saved *model.Contact
	svc := NewContactService(&mockContactRepository{
		createFunc: func(ctx context.Context, c *model.Contact) error {
			saved = c
			c.ID = "42"
			return nil
		},
	})

	got, err := svc.Create(context.Background(), model.ContactInput{Name: "  Ana ", Action: " call "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved == nil {
		t.Fatal("expected Create to be called")
	}
	if got.ID != "42" {
		t.Errorf("expected id=42, got %q", got.ID)
	}
	if got.Name != "Ana" || got.Action != "call" {
		t.Errorf("expected trimmed fields, got %+v", got)
	}
}

func TestContactService_Create_NameRequired(t *testing.T) {
	called := false
	svc := NewContactService(&mockContactRepository{
		createFunc: func(ctx context.Context, c *model.Contact) error {
			called = true
			return nil
		},
	})

	_, err := svc.Create(context.Background(), model.ContactInput{Name: "   "})
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
	if called {
		t.Error("repository should not be called for invalid input")
	}
}

// ---------------------------------------------------------------------------
// Delete tests
// ---------------------------------------------------------------------------

func TestContactService_Delete_PropagatesNotFound(t *testing.T) {
	svc := NewContactService(&mockContactRepository{
		deleteFunc: func(ctx context.Context, id string) error {
			return repository.ErrNotFound
		},
	})

	if err := svc.Delete(context.Background(), "missing"); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
