// Package engine orchestrates session lifecycle, wave generation,
// scoring and leaderboard submission. Each client event resolves to one
// atomic session update; the engine never retries and never calls back
// into the transport layer.
package engine

import (
	"context"
	"log"
	"time"

	"github.com/kill-n-keep/api/internal/database"
	"github.com/kill-n-keep/api/internal/game"
	"github.com/kill-n-keep/api/internal/leaderboard"
	"github.com/kill-n-keep/api/internal/models"
	redisclient "github.com/kill-n-keep/api/internal/redis"
	"github.com/kill-n-keep/api/internal/session"
)

// Engine coordinates the game state stores. archive and cache are
// optional backends; a nil value disables them.
type Engine struct {
	sessions *session.Store
	board    leaderboard.Store
	archive  *database.DB
	cache    *redisclient.Client
}

// New creates an engine over the given stores.
func New(sessions *session.Store, board leaderboard.Store, archive *database.DB, cache *redisclient.Client) *Engine {
	return &Engine{
		sessions: sessions,
		board:    board,
		archive:  archive,
		cache:    cache,
	}
}

// CompleteWaveResult carries the derived values of a wave completion.
type CompleteWaveResult struct {
	WaveBonus  int `json:"waveBonus"`
	NextWave   int `json:"nextWave"`
	TotalScore int `json:"totalScore"`
}

// StartGame creates a fresh session for the nickname and returns its id.
func (e *Engine) StartGame(ctx context.Context, nickname string) (string, error) {
	id, err := e.sessions.Create(nickname)
	if err != nil {
		return "", err
	}

	log.Printf("[Engine] Session started: %s (nickname: %s)", id, nickname)
	e.saveSnapshot(ctx, id)
	return id, nil
}

// StartWave generates the wave roster and arms the session's wave state.
func (e *Engine) StartWave(ctx context.Context, sessionID string, currentWave int) (models.WaveInfo, error) {
	waveNumber := clampWave(currentWave)
	info := game.GenerateWave(waveNumber)

	_, _, err := e.sessions.Update(sessionID, func(sess *models.Session, wave *models.WaveState) {
		wave.CurrentWave = waveNumber
		wave.WaveActive = true
		wave.EnemiesSpawned = 0
		wave.EnemiesKilled = 0
		wave.WaveStartTime = time.Now()
	})
	if err != nil {
		return models.WaveInfo{}, err
	}

	e.saveSnapshot(ctx, sessionID)
	return info, nil
}

// EnemySpawned records one spawn and returns the running count.
func (e *Engine) EnemySpawned(ctx context.Context, sessionID string) (int, error) {
	_, wave, err := e.sessions.Update(sessionID, func(sess *models.Session, wave *models.WaveState) {
		wave.EnemiesSpawned++
	})
	if err != nil {
		return 0, err
	}
	return wave.EnemiesSpawned, nil
}

// EnemyKilled scores the kill and credits the session in one step.
func (e *Engine) EnemyKilled(ctx context.Context, sessionID, enemyType string, currentWave int) (scoreGain, enemiesKilled int, err error) {
	scoreGain = game.ScoreForKill(enemyType, clampWave(currentWave))

	_, wave, err := e.sessions.Update(sessionID, func(sess *models.Session, wave *models.WaveState) {
		sess.Score += scoreGain
		wave.EnemiesKilled++
	})
	if err != nil {
		return 0, 0, err
	}
	return scoreGain, wave.EnemiesKilled, nil
}

// CompleteWave awards the completion bonus and advances the session to
// the next wave.
func (e *Engine) CompleteWave(ctx context.Context, sessionID string, waveNumber int) (CompleteWaveResult, error) {
	waveNumber = clampWave(waveNumber)
	bonus := game.CompletionBonus(waveNumber)

	sess, _, err := e.sessions.Update(sessionID, func(sess *models.Session, wave *models.WaveState) {
		sess.Score += bonus
		sess.Wave = waveNumber + 1
		wave.WaveActive = false
		wave.CurrentWave = waveNumber + 1
	})
	if err != nil {
		return CompleteWaveResult{}, err
	}

	e.saveSnapshot(ctx, sessionID)
	return CompleteWaveResult{
		WaveBonus:  bonus,
		NextWave:   waveNumber + 1,
		TotalScore: sess.Score,
	}, nil
}

// CompleteSession submits the final result to the leaderboard. When
// finalScore or finalWave is missing the submission is skipped without
// error; the reported bool tells callers whether an entry was recorded.
func (e *Engine) CompleteSession(ctx context.Context, finalScore, finalWave *int, playerID string) (bool, error) {
	if finalScore == nil || finalWave == nil {
		return false, nil
	}
	if playerID == "" {
		playerID = "anonymous"
	}

	entry := models.LeaderboardEntry{
		Score:     *finalScore,
		Wave:      *finalWave,
		PlayerID:  playerID,
		Timestamp: time.Now(),
	}

	if err := e.board.Submit(ctx, entry); err != nil {
		return false, err
	}

	if e.archive != nil {
		if err := e.archive.ArchiveResult(ctx, entry); err != nil {
			// Archive is telemetry, not part of the game contract
			log.Printf("[Engine] Failed to archive result for %s: %v", playerID, err)
		}
	}

	log.Printf("[Engine] Session completed: player=%s score=%d wave=%d", playerID, entry.Score, entry.Wave)
	return true, nil
}

// Status returns a read-only snapshot of the session and wave state.
func (e *Engine) Status(sessionID string) (models.Session, models.WaveState, error) {
	return e.sessions.Get(sessionID)
}

// Leaderboard returns up to limit ranked entries.
func (e *Engine) Leaderboard(ctx context.Context, limit int) ([]models.RankedEntry, error) {
	return e.board.Top(ctx, limit)
}

// ActiveSessions returns the number of sessions held in memory.
func (e *Engine) ActiveSessions() int {
	return e.sessions.Count()
}

func (e *Engine) saveSnapshot(ctx context.Context, sessionID string) {
	if e.cache == nil {
		return
	}
	sess, wave, err := e.sessions.Get(sessionID)
	if err != nil {
		return
	}
	if err := e.cache.SaveSnapshot(ctx, sess, wave); err != nil {
		log.Printf("[Engine] Failed to cache session snapshot %s: %v", sessionID, err)
	}
}

func clampWave(w int) int {
	if w < 1 {
		return 1
	}
	return w
}
