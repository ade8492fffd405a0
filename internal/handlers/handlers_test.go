package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kill-n-keep/api/internal/engine"
	"github.com/kill-n-keep/api/internal/leaderboard"
	"github.com/kill-n-keep/api/internal/session"
)

func newTestServer(t *testing.T) (*httptest.Server, *leaderboard.MemoryStore) {
	t.Helper()

	board := leaderboard.NewMemoryStore()
	eng := engine.New(session.NewStore(), board, nil, nil)
	gameHandler := NewGameHandler(eng)
	leaderboardHandler := NewLeaderboardHandler(eng)

	mux := http.NewServeMux()
	mux.HandleFunc("/api/game/start", gameHandler.StartGame)
	mux.HandleFunc("/api/wave/start", gameHandler.StartWave)
	mux.HandleFunc("/api/wave/enemy-spawned", gameHandler.EnemySpawned)
	mux.HandleFunc("/api/wave/enemy-killed", gameHandler.EnemyKilled)
	mux.HandleFunc("/api/wave/complete", gameHandler.CompleteWave)
	mux.HandleFunc("/api/session/{sessionId}/status", gameHandler.GetStatus)
	mux.HandleFunc("/api/session/complete", gameHandler.CompleteSession)
	mux.HandleFunc("/api/leaderboard/{boardType}", leaderboardHandler.GetLeaderboard)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, board
}

func postJSON(t *testing.T, url string, body any) (*http.Response, map[string]any) {
	t.Helper()

	data, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

func startGame(t *testing.T, srv *httptest.Server, nickname string) string {
	t.Helper()

	resp, body := postJSON(t, srv.URL+"/api/game/start", map[string]any{"nickname": nickname})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, true, body["success"])

	id, ok := body["sessionId"].(string)
	require.True(t, ok)
	return id
}

func TestStartGameEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, body := postJSON(t, srv.URL+"/api/game/start", map[string]any{"nickname": "Alice"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	assert.NotEmpty(t, body["sessionId"])
	assert.Equal(t, "Game started successfully", body["message"])
}

func TestStartGameEndpointRejectsBlankNickname(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, body := postJSON(t, srv.URL+"/api/game/start", map[string]any{"nickname": " "})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Nickname is required", body["message"])
}

func TestStartGameEndpointMethodNotAllowed(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/game/start")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestStartWaveEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)
	id := startGame(t, srv, "Alice")

	resp, body := postJSON(t, srv.URL+"/api/wave/start", map[string]any{
		"sessionId":   id,
		"currentWave": 5,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, true, body["success"])

	waveInfo, ok := body["waveInfo"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(5), waveInfo["waveNumber"])
	assert.Equal(t, float64(11), waveInfo["enemyCount"])
	assert.Equal(t, true, waveInfo["hasBoss"])
	assert.Equal(t, float64(3000), waveInfo["preparationTime"])
	assert.Len(t, waveInfo["enemies"], 12)
}

func TestStartWaveEndpointUnknownSession(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, body := postJSON(t, srv.URL+"/api/wave/start", map[string]any{
		"sessionId":   "session_ghost",
		"currentWave": 1,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Invalid session", body["message"])
}

func TestEnemyEventsAndWaveCompletion(t *testing.T) {
	srv, _ := newTestServer(t)
	id := startGame(t, srv, "Alice")

	_, body := postJSON(t, srv.URL+"/api/wave/start", map[string]any{"sessionId": id, "currentWave": 5})
	require.Equal(t, true, body["success"])

	resp, body := postJSON(t, srv.URL+"/api/wave/enemy-spawned", map[string]any{"sessionId": id})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), body["enemiesSpawned"])

	resp, body = postJSON(t, srv.URL+"/api/wave/enemy-killed", map[string]any{
		"sessionId":   id,
		"enemyType":   "boss",
		"currentWave": 5,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(300), body["scoreGain"])
	assert.Equal(t, float64(1), body["enemiesKilled"])

	resp, body = postJSON(t, srv.URL+"/api/wave/complete", map[string]any{
		"sessionId":  id,
		"waveNumber": 5,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(250), body["waveBonus"])
	assert.Equal(t, float64(6), body["nextWave"])
	assert.Equal(t, float64(550), body["totalScore"])
}

func TestGetStatusEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)
	id := startGame(t, srv, "Alice")

	resp, err := http.Get(srv.URL + "/api/session/" + id + "/status")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, true, body["success"])

	sess, ok := body["session"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Alice", sess["nickname"])
	assert.Equal(t, float64(0), sess["score"])
	assert.Equal(t, float64(1), sess["wave"])
	assert.Equal(t, float64(100), sess["treasureHealth"])
	assert.Equal(t, float64(150), sess["playerHealth"])

	wave, ok := body["wave"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, false, wave["waveActive"])
}

func TestGetStatusEndpointUnknownSession(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/session/session_ghost/status")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Session not found", body["message"])
}

func TestCompleteSessionAndLeaderboardFlow(t *testing.T) {
	srv, board := newTestServer(t)

	resp, body := postJSON(t, srv.URL+"/api/session/complete", map[string]any{
		"finalScore": 900,
		"finalWave":  7,
		"playerId":   "alice",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Session completed", body["message"])
	assert.Equal(t, 1, board.Size())

	resp, body = postJSON(t, srv.URL+"/api/session/complete", map[string]any{
		"finalScore": 1500,
		"finalWave":  11,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])

	httpResp, err := http.Get(srv.URL + "/api/leaderboard/global?limit=5")
	require.NoError(t, err)
	defer httpResp.Body.Close()
	require.Equal(t, http.StatusOK, httpResp.StatusCode)

	var rows []map[string]any
	require.NoError(t, json.NewDecoder(httpResp.Body).Decode(&rows))
	require.Len(t, rows, 2)
	assert.Equal(t, float64(1), rows[0]["rank"])
	assert.Equal(t, "Player1", rows[0]["username"])
	assert.Equal(t, float64(1500), rows[0]["bestScore"])
	assert.Equal(t, float64(11), rows[0]["bestWave"])
	assert.Equal(t, float64(1), rows[0]["level"])
	assert.Equal(t, float64(900), rows[1]["bestScore"])
}

func TestCompleteSessionMissingFieldsStillSucceeds(t *testing.T) {
	srv, board := newTestServer(t)

	resp, body := postJSON(t, srv.URL+"/api/session/complete", map[string]any{
		"playerId": "alice",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, 0, board.Size())
}

func TestLeaderboardDefaultLimit(t *testing.T) {
	srv, _ := newTestServer(t)

	for i := 0; i < 15; i++ {
		_, body := postJSON(t, srv.URL+"/api/session/complete", map[string]any{
			"finalScore": 100 + i,
			"finalWave":  2,
		})
		require.Equal(t, true, body["success"])
	}

	resp, err := http.Get(srv.URL + "/api/leaderboard/global")
	require.NoError(t, err)
	defer resp.Body.Close()

	var rows []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rows))
	assert.Len(t, rows, 10)
}

func TestInvalidJSONBody(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/game/start", "application/json", bytes.NewReader([]byte("{not json")))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Invalid request body", body["message"])
}
