package game

// Enemy type constants
const (
	TypeEnemy = "enemy"
	TypeBoss  = "boss"
)

// ScoreForKill returns the points awarded for killing an enemy on the
// given wave. Unrecognized enemy types score as regular enemies.
func ScoreForKill(enemyType string, waveNumber int) int {
	switch enemyType {
	case TypeBoss:
		return 200 + waveNumber*20
	default:
		return 10 + waveNumber
	}
}

// CompletionBonus returns the bonus awarded for clearing a wave.
func CompletionBonus(waveNumber int) int {
	return waveNumber * 50
}
