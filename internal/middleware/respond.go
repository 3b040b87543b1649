package middleware

import (
	"encoding/json"
	"net/http"
)

// writeUnauthorized emits a 401 in the API's standard envelope. Kept local so
// the middleware package does not depend on the handler package.
func writeUnauthorized(w http.ResponseWriter, msg string) {
	writeError(w, http.StatusUnauthorized, msg)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"message": msg,
	})
}
