package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/paisavault/paisavault/internal/adapter/http/dto"
	"github.com/paisavault/paisavault/internal/adapter/http/middleware"
	"github.com/paisavault/paisavault/internal/domain"
	"github.com/paisavault/paisavault/internal/usecase"
)

// NotebookService defines the behavior needed by NotebookHandler.
type NotebookService interface {
	Load(ctx context.Context, userID string) []domain.NotebookEntry
	Add(ctx context.Context, userID string, input usecase.AddEntryInput) (*domain.NotebookEntry, error)
	ToggleSettled(ctx context.Context, userID, id string) (*domain.NotebookEntry, error)
	Remove(ctx context.Context, userID, id string) (bool, error)
	History(ctx context.Context, userID, id string) ([]*domain.AuditLog, error)
}

// NotebookHandler handles lend/borrow notebook HTTP requests.
type NotebookHandler struct {
	notebookUC NotebookService
}

// NewNotebookHandler creates a new NotebookHandler.
func NewNotebookHandler(notebookUC NotebookService) *NotebookHandler {
	return &NotebookHandler{notebookUC: notebookUC}
}

// List returns the caller's notebook split by settlement state, with
// outstanding totals over the pending entries.
func (h *NotebookHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	entries := h.notebookUC.Load(r.Context(), user.ID)

	writeJSON(w, http.StatusOK, dto.NotebookFromDomain(entries))
}

// Add creates a new pending entry at the front of the collection.
func (h *NotebookHandler) Add(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	var req dto.AddNotebookEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	entry, err := h.notebookUC.Add(r.Context(), user.ID, req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to add entry", err.Error())
		return
	}
	if entry == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	writeJSON(w, http.StatusCreated, dto.NotebookEntryFromDomain(*entry))
}

// ToggleSettled flips the settlement state of one entry. An id that matches
// nothing answers 204; the entry is simply gone already.
func (h *NotebookHandler) ToggleSettled(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing entry ID", "")
		return
	}

	entry, err := h.notebookUC.ToggleSettled(r.Context(), user.ID, id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to toggle entry", err.Error())
		return
	}
	if entry == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	writeJSON(w, http.StatusOK, dto.NotebookEntryFromDomain(*entry))
}

// Remove deletes one entry. Absent ids answer 204 like successful removals.
func (h *NotebookHandler) Remove(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing entry ID", "")
		return
	}

	if _, err := h.notebookUC.Remove(r.Context(), user.ID, id); err != nil {
		writeError(w, mapDomainError(err), "failed to remove entry", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// History returns the audit trail of one entry.
func (h *NotebookHandler) History(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing entry ID", "")
		return
	}

	logs, err := h.notebookUC.History(r.Context(), user.ID, id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to load entry history", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.AuditLogsFromDomain(logs))
}
