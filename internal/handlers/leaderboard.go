package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/kill-n-keep/api/internal/engine"
)

const defaultLeaderboardLimit = 10

type LeaderboardHandler struct {
	engine *engine.Engine
}

func NewLeaderboardHandler(eng *engine.Engine) *LeaderboardHandler {
	return &LeaderboardHandler{engine: eng}
}

// GetLeaderboard returns the ranked list of completed runs. The board
// type path segment is accepted for client compatibility; only the
// global score board exists. Responds with a bare array.
func (h *LeaderboardHandler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	limit := defaultLeaderboardLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			limit = parsed
		}
	}

	entries, err := h.engine.Leaderboard(r.Context(), limit)
	if err != nil {
		log.Printf("[Leaderboard] Failed to read leaderboard: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to read leaderboard")
		return
	}

	writeJSON(w, http.StatusOK, entries)
}
