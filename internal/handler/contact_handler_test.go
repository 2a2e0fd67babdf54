package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/contactapp/backend/internal/model"
	"github.com/contactapp/backend/internal/repository"
	"github.com/contactapp/backend/internal/service"
	"github.com/go-chi/chi/v5"
)

// ---------------------------------------------------------------------------
// Mock ContactService
// ---------------------------------------------------------------------------

type mockContactService struct {
	listFunc    func(ctx context.Context, opts model.ContactListOptions) (*model.ContactPage, error)
	getByIDFunc func(ctx context.Context, id string) (*model.Contact, error)
	createFunc  func(ctx context.Context, in model.ContactInput) (*model.Contact, error)
	deleteFunc  func(ctx context.Context, id string) error
}

func (m *mockContactService) List(ctx context.Context, opts model.ContactListOptions) (*model.ContactPage, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, opts)
	}
	return &model.ContactPage{}, nil
}

func (m *mockContactService) GetByID(ctx context.Context, id string) (*model.Contact, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, repository.ErrNotFound
}

func (m *mockContactService) Create(ctx context.Context, in model.ContactInput) (*model.Contact, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, in)
	}
	return &model.Contact{ID: "1", Name: in.Name}, nil
}

func (m *mockContactService) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

// withURLParam attaches a chi route context carrying {id} to req.
func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

// ---------------------------------------------------------------------------
// GET /api/users
// ---------------------------------------------------------------------------

func TestContactHandler_List_ParsesQueryAndSetsTotal(t *testing.T) {
	var captured model.ContactListOptions
	mock := &mockContactService{
		listFunc: func(ctx context.Context, opts model.ContactListOptions) (*model.ContactPage, error) {
			captured = opts
			return &model.ContactPage{
				Contacts: []*model.Contact{{ID: "1", Name: "Ana"}},
				Total:    13,
			}, nil
		},
	}
	h := NewContactHandler(mock)

	req := httptest.NewRequest(http.MethodGet, "/api/users?q=ana&_page=3&_limit=4", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if captured.Query != "ana" || captured.Page != 3 || captured.Limit != 4 {
		t.Errorf("unexpected options %+v", captured)
	}
	if got := rec.Header().Get("X-Total-Count"); got != "13" {
		t.Errorf("expected X-Total-Count=13, got %q", got)
	}
	var body []model.Contact
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body) != 1 || body[0].Name != "Ana" {
		t.Errorf("unexpected body %+v", body)
	}
}

func TestContactHandler_List_InvalidPagingFallsBackToDefaults(t *testing.T) {
	var captured model.ContactListOptions
	mock := &mockContactService{
		listFunc: func(ctx context.Context, opts model.ContactListOptions) (*model.ContactPage, error) {
			captured = opts
			return &model.ContactPage{}, nil
		},
	}
	h := NewContactHandler(mock)

	req := httptest.NewRequest(http.MethodGet, "/api/users?_page=abc&_limit=-2", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	if captured.Page != model.DefaultPage || captured.Limit != model.DefaultLimit {
		t.Errorf("expected defaults, got %+v", captured)
	}
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Errorf("expected [] for empty list, got %q", rec.Body.String())
	}
	if got := rec.Header().Get("X-Total-Count"); got != "0" {
		t.Errorf("expected X-Total-Count=0, got %q", got)
	}
}

func TestContactHandler_List_ServiceError(t *testing.T) {
	mock := &mockContactService{
		listFunc: func(ctx context.Context, opts model.ContactListOptions) (*model.ContactPage, error) {
			return nil, errors.New("db down")
		},
	}
	h := NewContactHandler(mock)

	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/api/users", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
}

// ---------------------------------------------------------------------------
// GET /api/users/{id}
// ---------------------------------------------------------------------------

func TestContactHandler_Get(t *testing.T) {
	mock := &mockContactService{
		getByIDFunc: func(ctx context.Context, id string) (*model.Contact, error) {
			if id == "42" {
				return &model.Contact{ID: "42", Name: "Ana"}, nil
			}
			return nil, repository.ErrNotFound
		},
	}
	h := NewContactHandler(mock)

	rec := httptest.NewRecorder()
	h.Get(rec, withURLParam(httptest.NewRequest(http.MethodGet, "/api/users/42", nil), "id", "42"))
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.Get(rec, withURLParam(httptest.NewRequest(http.MethodGet, "/api/users/7", nil), "id", "7"))
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

// ---------------------------------------------------------------------------
// POST /api/users
// ---------------------------------------------------------------------------

func TestContactHandler_Create_Success(t *testing.T) {
	var captured model.ContactInput
	mock := &mockContactService{
		createFunc: func(ctx context.Context, in model.ContactInput) (*model.Contact, error) {
			captured = in
			return &model.Contact{ID: "abc", Name: in.Name, Action: in.Action}, nil
		},
	}
	h := NewContactHandler(mock)

	body := `{"name":"Ana","description":"vecina","photo":"/uploads/photos/a.png","action":"llamar"}`
	req := httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d, body: %s", rec.Code, rec.Body.String())
	}
	if captured.Name != "Ana" || captured.Description != "vecina" || captured.Photo != "/uploads/photos/a.png" {
		t.Errorf("unexpected input %+v", captured)
	}
	var created model.Contact
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.ID != "abc" {
		t.Errorf("expected id=abc, got %q", created.ID)
	}
}

func TestContactHandler_Create_InvalidJSON(t *testing.T) {
	h := NewContactHandler(&mockContactService{})

	rec := httptest.NewRecorder()
	h.Create(rec, httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader(`{`)))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
	var resp map[string]string
	_ = json.NewDecoder(rec.Body).Decode(&resp)
	if resp["error"] != "invalid_json" {
		t.Errorf("expected error=invalid_json, got %q", resp["error"])
	}
}

func TestContactHandler_Create_NameRequired(t *testing.T) {
	mock := &mockContactService{
		createFunc: func(ctx context.Context, in model.ContactInput) (*model.Contact, error) {
			return nil, fmt.Errorf("%w: name is required", service.ErrInvalidInput)
		},
	}
	h := NewContactHandler(mock)

	rec := httptest.NewRecorder()
	h.Create(rec, httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader(`{"description":"x"}`)))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
	var resp map[string]string
	_ = json.NewDecoder(rec.Body).Decode(&resp)
	if resp["error"] != "name_required" {
		t.Errorf("expected error=name_required, got %q", resp["error"])
	}
}

// ---------------------------------------------------------------------------
// DELETE /api/users/{id}
// ---------------------------------------------------------------------------

func TestContactHandler_Delete(t *testing.T) {
	var deleted string
	mock := &mockContactService{
		deleteFunc: func(ctx context.Context, id string) error {
			deleted = id
			return nil
		},
	}
	h := NewContactHandler(mock)

	rec := httptest.NewRecorder()
	h.Delete(rec, withURLParam(httptest.NewRequest(http.MethodDelete, "/api/users/42", nil), "id", "42"))

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if deleted != "42" {
		t.Errorf("expected id=42 deleted, got %q", deleted)
	}
}

func TestContactHandler_Delete_NotFound(t *testing.T) {
	mock := &mockContactService{
		deleteFunc: func(ctx context.Context, id string) error {
			return repository.ErrNotFound
		},
	}
	h := NewContactHandler(mock)

	rec := httptest.NewRecorder()
	h.Delete(rec, withURLParam(httptest.NewRequest(http.MethodDelete, "/api/users/nope", nil), "id", "nope"))

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}
