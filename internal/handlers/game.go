package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/kill-n-keep/api/internal/engine"
	"github.com/kill-n-keep/api/internal/models"
)

type GameHandler struct {
	engine *engine.Engine
}

func NewGameHandler(eng *engine.Engine) *GameHandler {
	return &GameHandler{engine: eng}
}

// StartGameRequest represents the game creation request body
type StartGameRequest struct {
	Nickname string `json:"nickname"`
}

// StartGameResponse represents the game creation response
type StartGameResponse struct {
	Success   bool   `json:"success"`
	SessionID string `json:"sessionId"`
	Message   string `json:"message"`
}

// StartWaveRequest represents the wave start request body
type StartWaveRequest struct {
	SessionID   string `json:"sessionId"`
	CurrentWave int    `json:"currentWave"`
}

// StartWaveResponse represents the wave start response
type StartWaveResponse struct {
	Success  bool            `json:"success"`
	WaveInfo models.WaveInfo `json:"waveInfo"`
}

// EnemySpawnedRequest represents the spawn report request body
type EnemySpawnedRequest struct {
	SessionID string `json:"sessionId"`
}

// EnemySpawnedResponse represents the spawn report response
type EnemySpawnedResponse struct {
	Success        bool `json:"success"`
	EnemiesSpawned int  `json:"enemiesSpawned"`
}

// EnemyKilledRequest represents the kill report request body
type EnemyKilledRequest struct {
	SessionID   string `json:"sessionId"`
	EnemyType   string `json:"enemyType"`
	CurrentWave int    `json:"currentWave"`
}

// EnemyKilledResponse represents the kill report response
type EnemyKilledResponse struct {
	Success       bool `json:"success"`
	ScoreGain     int  `json:"scoreGain"`
	EnemiesKilled int  `json:"enemiesKilled"`
}

// CompleteWaveRequest represents the wave completion request body
type CompleteWaveRequest struct {
	SessionID  string `json:"sessionId"`
	WaveNumber int    `json:"waveNumber"`
}

// CompleteWaveResponse represents the wave completion response
type CompleteWaveResponse struct {
	Success    bool `json:"success"`
	WaveBonus  int  `json:"waveBonus"`
	NextWave   int  `json:"nextWave"`
	TotalScore int  `json:"totalScore"`
}

// CompleteSessionRequest represents the session completion request body.
// Score and wave are pointers so a missing field is distinguishable
// from zero.
type CompleteSessionRequest struct {
	FinalScore *int   `json:"finalScore"`
	FinalWave  *int   `json:"finalWave"`
	PlayerID   string `json:"playerId"`
}

// StatusResponse represents the session status response
type StatusResponse struct {
	Success bool             `json:"success"`
	Session models.Session   `json:"session"`
	Wave    models.WaveState `json:"wave"`
}

// StartGame handles game session creation
func (h *GameHandler) StartGame(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req StartGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	sessionID, err := h.engine.StartGame(r.Context(), req.Nickname)
	if err != nil {
		writeGameError(w, err, "Invalid session")
		return
	}

	writeJSON(w, http.StatusOK, StartGameResponse{
		Success:   true,
		SessionID: sessionID,
		Message:   "Game started successfully",
	})
}

// StartWave handles wave start events
func (h *GameHandler) StartWave(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req StartWaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	info, err := h.engine.StartWave(r.Context(), req.SessionID, req.CurrentWave)
	if err != nil {
		writeGameError(w, err, "Invalid session")
		return
	}

	writeJSON(w, http.StatusOK, StartWaveResponse{Success: true, WaveInfo: info})
}

// EnemySpawned handles spawn report events
func (h *GameHandler) EnemySpawned(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req EnemySpawnedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	spawned, err := h.engine.EnemySpawned(r.Context(), req.SessionID)
	if err != nil {
		writeGameError(w, err, "Invalid session")
		return
	}

	writeJSON(w, http.StatusOK, EnemySpawnedResponse{Success: true, EnemiesSpawned: spawned})
}

// EnemyKilled handles kill report events
func (h *GameHandler) EnemyKilled(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req EnemyKilledRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	gain, killed, err := h.engine.EnemyKilled(r.Context(), req.SessionID, req.EnemyType, req.CurrentWave)
	if err != nil {
		writeGameError(w, err, "Invalid session")
		return
	}

	writeJSON(w, http.StatusOK, EnemyKilledResponse{
		Success:       true,
		ScoreGain:     gain,
		EnemiesKilled: killed,
	})
}

// CompleteWave handles wave completion events
func (h *GameHandler) CompleteWave(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req CompleteWaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	res, err := h.engine.CompleteWave(r.Context(), req.SessionID, req.WaveNumber)
	if err != nil {
		writeGameError(w, err, "Invalid session")
		return
	}

	writeJSON(w, http.StatusOK, CompleteWaveResponse{
		Success:    true,
		WaveBonus:  res.WaveBonus,
		NextWave:   res.NextWave,
		TotalScore: res.TotalScore,
	})
}

// CompleteSession records a finished run on the leaderboard. Requests
// missing finalScore or finalWave still succeed, they just don't place.
func (h *GameHandler) CompleteSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req CompleteSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	recorded, err := h.engine.CompleteSession(r.Context(), req.FinalScore, req.FinalWave, req.PlayerID)
	if err != nil {
		log.Printf("[Game] Failed to record session result: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to record result")
		return
	}

	if !recorded {
		log.Printf("[Game] Session completion without final score/wave, skipping leaderboard")
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Session completed",
	})
}

// GetStatus returns the current session and wave snapshot
func (h *GameHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	sessionID := r.PathValue("sessionId")

	sess, wave, err := h.engine.Status(sessionID)
	if err != nil {
		writeGameError(w, err, "Session not found")
		return
	}

	writeJSON(w, http.StatusOK, StatusResponse{Success: true, Session: sess, Wave: wave})
}
