package handler

import (
	"net/http"

	"github.com/spendtrack/spendtrack-go/internal/middleware"
	"github.com/spendtrack/spendtrack-go/internal/model"
	"github.com/spendtrack/spendtrack-go/internal/service"
)

// UserHandler handles HTTP requests for the authenticated user's profile.
type UserHandler struct {
	service *service.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(svc *service.UserService) *UserHandler {
	return &UserHandler{service: svc}
}

// HandleGetMe handles GET /api/users/me requests.
func (h *UserHandler) HandleGetMe(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	user, err := h.service.Get(r.Context(), identity.UserID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	writeData(w, http.StatusOK, "", map[string]any{"user": user})
}

// HandleUpdateMe handles PUT /api/users/me requests.
func (h *UserHandler) HandleUpdateMe(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req model.UpdateProfileRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.service.UpdateProfile(r.Context(), identity.UserID, req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	writeData(w, http.StatusOK, "profile updated successfully", map[string]any{"user": user})
}

// HandleDeleteMe handles DELETE /api/users/me requests.
func (h *UserHandler) HandleDeleteMe(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := h.service.Delete(r.Context(), identity.UserID); err != nil {
		respondServiceError(w, err)
		return
	}

	writeMessage(w, http.StatusOK, "account deleted successfully")
}
