package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/kill-n-keep/api/internal/session"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Success: false, Message: message})
}

// writeGameError maps engine errors to responses. notFoundMessage keeps
// the per-endpoint wording ("Invalid session" vs "Session not found").
func writeGameError(w http.ResponseWriter, err error, notFoundMessage string) {
	var verr *session.ValidationError
	if errors.As(err, &verr) {
		writeError(w, http.StatusBadRequest, verr.Message)
		return
	}

	var nferr *session.NotFoundError
	if errors.As(err, &nferr) {
		writeError(w, http.StatusBadRequest, notFoundMessage)
		return
	}

	writeError(w, http.StatusInternalServerError, "Internal server error")
}
