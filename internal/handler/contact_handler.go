package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/contactapp/backend/internal/model"
	"github.com/contactapp/backend/internal/repository"
	"github.com/contactapp/backend/internal/service"
	"github.com/contactapp/backend/pkg/contactsapi"
	"github.com/go-chi/chi/v5"
)

// ContactHandler serves the /api/users collection.
type ContactHandler struct {
	contactService service.ContactService
}

// NewContactHandler creates a ContactHandler with the given service.
func NewContactHandler(contactService service.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// List handles GET /api/users.
// Supports query params: q (search), _page (1-based), _limit.
// The total number of matches is returned in X-Total-Count.
func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	opts := model.ContactListOptions{
		Query: query.Get("q"),
		Page:  model.DefaultPage,
		Limit: model.DefaultLimit,
	}
	if p := query.Get("_page"); p != "" {
		if n, err := strconv.Atoi(p); err == nil && n > 0 {
			opts.Page = n
		}
	}
	if l := query.Get("_limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 {
			opts.Limit = n
		}
	}

	page, err := h.contactService.List(r.Context(), opts)
	if err != nil {
		slog.Error("list contacts failed", "error", err)
		writeError(w, http.StatusInternalServerError, "list_failed")
		return
	}

	// Return [] not null for empty lists
	contacts := page.Contacts
	if contacts == nil {
		contacts = []*model.Contact{}
	}

	w.Header().Set(contactsapi.TotalCountHeader, strconv.Itoa(page.Total))
	writeJSON(w, http.StatusOK, contacts)
}

// Get handles GET /api/users/{id}.
func (h *ContactHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	contact, err := h.contactService.GetByID(r.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	if err != nil {
		slog.Error("get contact failed", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "get_failed")
		return
	}

	writeJSON(w, http.StatusOK, contact)
}

// Create handles POST /api/users. name is required; the other fields are optional.
func (h *ContactHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in model.ContactInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}

	contact, err := h.contactService.Create(r.Context(), in)
	if errors.Is(err, service.ErrInvalidInput) {
		writeError(w, http.StatusBadRequest, "name_required")
		return
	}
	if err != nil {
		slog.Error("create contact failed", "error", err)
		writeError(w, http.StatusInternalServerError, "create_failed")
		return
	}

	writeJSON(w, http.StatusCreated, contact)
}

// Delete handles DELETE /api/users/{id}.
func (h *ContactHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	err := h.contactService.Delete(r.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	if err != nil {
		slog.Error("delete contact failed", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "delete_failed")
		return
	}

	writeJSON(w, http.StatusOK, struct{}{})
}
