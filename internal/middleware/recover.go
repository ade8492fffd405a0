package middleware

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Recover converts handler panics into a 500 response so one bad
// request cannot take the server down.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("[API] Panic serving %s %s: %v", r.Method, r.URL.Path, rec)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(ErrorResponse{
					Success: false,
					Message: fmt.Sprintf("Internal server error: %v", rec),
				})
			}
		}()

		next.ServeHTTP(w, r)
	})
}
