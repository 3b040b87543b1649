package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/spendtrack/spendtrack-go/internal/model"
	"github.com/spendtrack/spendtrack-go/internal/repository"
	"github.com/spendtrack/spendtrack-go/internal/service"
)

// envelope is the single response shape every endpoint uses:
// {success, message?, data?}.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeData(w http.ResponseWriter, status int, msg string, data any) {
	writeJSON(w, status, envelope{Success: true, Message: msg, Data: data})
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, envelope{Success: true, Message: msg})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, envelope{Success: false, Message: msg})
}

// decodeJSON reads a size-capped JSON body into dst. On failure it writes the
// error response itself and returns false.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return false
		}
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// idParam parses the {id} route parameter. A non-numeric id can never name a
// resource, so callers treat false as not found.
func idParam(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

// respondServiceError translates a service error into a status code and
// envelope. Validation and conflict failures map to 400 (the published API
// contract uses 400 for conflicts), ownership and existence misses are the
// same 404, store unavailability is 503, anything else logs and returns a
// generic 500.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case isValidationError(err):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrCategoryNotFound),
		errors.Is(err, service.ErrExpenseNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case repository.IsUnavailable(err):
		slog.Error("database unavailable", "error", err)
		writeError(w, http.StatusServiceUnavailable, "service temporarily unavailable")
	default:
		slog.Error("internal error", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func isValidationError(err error) bool {
	return errors.Is(err, service.ErrNameRequired) ||
		errors.Is(err, service.ErrEmailRequired) ||
		errors.Is(err, service.ErrPasswordRequired) ||
		errors.Is(err, service.ErrInvalidEmail) ||
		errors.Is(err, service.ErrEmailTaken) ||
		errors.Is(err, service.ErrNothingToUpdate) ||
		errors.Is(err, service.ErrCategoryNameRequired) ||
		errors.Is(err, service.ErrCategoryNameTaken) ||
		errors.Is(err, service.ErrCategoryHasExpenses) ||
		errors.Is(err, service.ErrCategoryIDRequired) ||
		errors.Is(err, service.ErrAmountRequired) ||
		errors.Is(err, service.ErrDateRequired) ||
		errors.Is(err, service.ErrInvalidDate) ||
		errors.Is(err, service.ErrInvalidCategory) ||
		errors.Is(err, model.ErrAmountNotPositive)
}
