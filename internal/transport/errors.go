package transport

import (
	"encoding/json"
	"net/http"

	"github.com/rpggio/atelier/internal/apperr"
)

// StatusFor maps an error code to an HTTP status.
func StatusFor(code apperr.Code) int {
	switch code {
	case apperr.CodeNotFound:
		return http.StatusNotFound
	case apperr.CodeValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// WriteError classifies err and writes it as a JSON body.
func WriteError(w http.ResponseWriter, err error) {
	appErr := apperr.From(err)
	writeJSON(w, StatusFor(appErr.Code), appErr)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
