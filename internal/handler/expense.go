package handler

import (
	"net/http"

	"github.com/spendtrack/spendtrack-go/internal/middleware"
	"github.com/spendtrack/spendtrack-go/internal/model"
	"github.com/spendtrack/spendtrack-go/internal/service"
)

// ExpenseHandler handles HTTP requests for expense operations.
type ExpenseHandler struct {
	service *service.ExpenseService
}

// NewExpenseHandler creates a new ExpenseHandler.
func NewExpenseHandler(svc *service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{service: svc}
}

// HandleList handles GET /api/expenses requests.
func (h *ExpenseHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	expenses, err := h.service.List(r.Context(), identity.UserID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	writeData(w, http.StatusOK, "", map[string]any{"expenses": expenses})
}

// HandleGet handles GET /api/expenses/{id} requests.
func (h *ExpenseHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusNotFound, "expense not found")
		return
	}

	expense, err := h.service.Get(r.Context(), identity.UserID, id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	writeData(w, http.StatusOK, "", map[string]any{"expense": expense})
}

// HandleCreate handles POST /api/expenses requests.
func (h *ExpenseHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req model.ExpenseRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	expense, err := h.service.Create(r.Context(), identity.UserID, req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	writeData(w, http.StatusCreated, "expense created successfully", map[string]any{"expense": expense})
}

// HandleUpdate handles PUT /api/expenses/{id} requests.
func (h *ExpenseHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusNotFound, "expense not found")
		return
	}

	var req model.ExpenseRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	expense, err := h.service.Update(r.Context(), identity.UserID, id, req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	writeData(w, http.StatusOK, "expense updated successfully", map[string]any{"expense": expense})
}

// HandleDelete handles DELETE /api/expenses/{id} requests.
func (h *ExpenseHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusNotFound, "expense not found")
		return
	}

	if err := h.service.Delete(r.Context(), identity.UserID, id); err != nil {
		respondServiceError(w, err)
		return
	}

	writeMessage(w, http.StatusOK, "expense deleted successfully")
}
