package handler

import (
	"net/http"

	"github.com/spendtrack/spendtrack-go/internal/middleware"
	"github.com/spendtrack/spendtrack-go/internal/model"
	"github.com/spendtrack/spendtrack-go/internal/service"
)

// CategoryHandler handles HTTP requests for category operations.
type CategoryHandler struct {
	service *service.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(svc *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{service: svc}
}

// HandleList handles GET /api/categories requests.
func (h *CategoryHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	categories, err := h.service.List(r.Context(), identity.UserID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	writeData(w, http.StatusOK, "", map[string]any{"categories": categories})
}

// HandleCreate handles POST /api/categories requests.
func (h *CategoryHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req model.CategoryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	category, err := h.service.Create(r.Context(), identity.UserID, req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	writeData(w, http.StatusCreated, "category created successfully", map[string]any{"category": category})
}

// HandleUpdate handles PUT /api/categories/{id} requests.
func (h *CategoryHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusNotFound, "category not found")
		return
	}

	var req model.CategoryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	category, err := h.service.Update(r.Context(), identity.UserID, id, req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	writeData(w, http.StatusOK, "category updated successfully", map[string]any{"category": category})
}

// HandleDelete handles DELETE /api/categories/{id} requests.
func (h *CategoryHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, ok := idParam(r)
	if !ok {
		writeError(w, http.StatusNotFound, "category not found")
		return
	}

	if err := h.service.Delete(r.Context(), identity.UserID, id); err != nil {
		respondServiceError(w, err)
		return
	}

	writeMessage(w, http.StatusOK, "category deleted successfully")
}
