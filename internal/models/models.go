package models

import "time"

// Session represents one player's game run
type Session struct {
	ID             string    `json:"sessionId"`
	Nickname       string    `json:"nickname"`
	StartTime      time.Time `json:"startTime"`
	Score          int       `json:"score"`
	Wave           int       `json:"wave"`
	TreasureHealth int       `json:"treasureHealth"`
	PlayerHealth   int       `json:"playerHealth"`
}

// WaveState tracks per-session wave progress
type WaveState struct {
	CurrentWave    int       `json:"currentWave"`
	WaveActive     bool      `json:"waveActive"`
	EnemiesSpawned int       `json:"enemiesSpawned"`
	EnemiesKilled  int       `json:"enemiesKilled"`
	WaveStartTime  time.Time `json:"waveStartTime"`
}

// Enemy describes one enemy to spawn during a wave
type Enemy struct {
	Type       string `json:"type"`
	Health     int    `json:"health"`
	Speed      int    `json:"speed"`
	Damage     int    `json:"damage"`
	SpawnDelay int    `json:"spawnDelay"`
}

// WaveInfo describes a generated wave
type WaveInfo struct {
	WaveNumber      int     `json:"waveNumber"`
	EnemyCount      int     `json:"enemyCount"`
	SpawnDelay      int     `json:"spawnDelay"`
	HasBoss         bool    `json:"hasBoss"`
	PreparationTime int     `json:"preparationTime"`
	Enemies         []Enemy `json:"enemies"`
}

// LeaderboardEntry is a completed session result
type LeaderboardEntry struct {
	Score     int       `json:"score"`
	Wave      int       `json:"wave"`
	PlayerID  string    `json:"playerId"`
	Timestamp time.Time `json:"timestamp"`
}

// RankedEntry is a leaderboard row decorated for display
type RankedEntry struct {
	Rank        int    `json:"rank"`
	DisplayName string `json:"username"`
	BestScore   int    `json:"bestScore"`
	BestWave    int    `json:"bestWave"`
	Level       int    `json:"level"`
}
