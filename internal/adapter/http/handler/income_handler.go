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

// IncomeService defines the behavior needed by IncomeHandler.
type IncomeService interface {
	CreateIncome(ctx context.Context, input usecase.CreateIncomeInput) (*domain.Income, error)
	ListIncome(ctx context.Context, input usecase.ListIncomeInput) ([]*domain.Income, error)
	UpdateIncome(ctx context.Context, input usecase.UpdateIncomeInput) (*domain.Income, error)
	DeleteIncome(ctx context.Context, userID, id string) error
}

// IncomeHandler handles income record HTTP requests.
type IncomeHandler struct {
	incomeUC IncomeService
}

// NewIncomeHandler creates a new IncomeHandler.
func NewIncomeHandler(incomeUC IncomeService) *IncomeHandler {
	return &IncomeHandler{incomeUC: incomeUC}
}

// Create records a new income entry.
func (h *IncomeHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	var req dto.CreateIncomeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	income, err := h.incomeUC.CreateIncome(r.Context(), req.ToUseCaseInput(user.ID))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create income", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.IncomeFromDomain(income))
}

// List lists the caller's income records, most recent first.
func (h *IncomeHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	records, err := h.incomeUC.ListIncome(r.Context(), usecase.ListIncomeInput{
		UserID: user.ID,
		Limit:  parseIntQuery(r, "limit", 0),
		Offset: parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list income", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.IncomeListFromDomain(records))
}

// Update partially updates one income record.
func (h *IncomeHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing income ID", "")
		return
	}

	var req dto.UpdateIncomeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	income, err := h.incomeUC.UpdateIncome(r.Context(), req.ToUseCaseInput(user.ID, id))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to update income", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.IncomeFromDomain(income))
}

// Delete removes one income record.
func (h *IncomeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing income ID", "")
		return
	}

	if err := h.incomeUC.DeleteIncome(r.Context(), user.ID, id); err != nil {
		writeError(w, mapDomainError(err), "failed to delete income", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
