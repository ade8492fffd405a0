package game

import "github.com/kill-n-keep/api/internal/models"

const (
	baseEnemies = 3

	// Wave-level pacing between spawns, floored at 800ms
	baseSpawnDelay = 2000
	minSpawnDelay  = 800

	// Fixed lead time before the first enemy appears
	preparationTime = 3000

	bossWaveInterval = 5
)

// GenerateWave produces the enemy roster and pacing for a wave.
// Deterministic: the same wave number always yields the same wave,
// backed by a freshly allocated enemy slice. Callers clamp the wave
// number to >= 1.
func GenerateWave(waveNumber int) models.WaveInfo {
	enemyCount := baseEnemies + (waveNumber-1)*2

	spawnDelay := baseSpawnDelay - waveNumber*100
	if spawnDelay < minSpawnDelay {
		spawnDelay = minSpawnDelay
	}

	hasBoss := waveNumber%bossWaveInterval == 0

	enemies := make([]models.Enemy, 0, enemyCount+1)
	for i := 0; i < enemyCount; i++ {
		enemies = append(enemies, models.Enemy{
			Type:       TypeEnemy,
			Health:     20 + waveNumber*5,
			Speed:      50 + waveNumber*5,
			Damage:     15,
			SpawnDelay: i * 1000, // one per second
		})
	}

	if hasBoss {
		// Boss arrives 2s after the last regular spawn slot
		enemies = append(enemies, models.Enemy{
			Type:       TypeBoss,
			Health:     200 + waveNumber*50,
			Speed:      40 + waveNumber*3,
			Damage:     30 + waveNumber*5,
			SpawnDelay: enemyCount*1000 + 2000,
		})
	}

	return models.WaveInfo{
		WaveNumber:      waveNumber,
		EnemyCount:      enemyCount,
		SpawnDelay:      spawnDelay,
		HasBoss:         hasBoss,
		PreparationTime: preparationTime,
		Enemies:         enemies,
	}
}
