package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreForKillBoss(t *testing.T) {
	for w := 1; w <= 30; w++ {
		assert.Equal(t, 200+w*20, ScoreForKill(TypeBoss, w))
	}
	assert.Equal(t, 300, ScoreForKill("boss", 5))
}

func TestScoreForKillRegular(t *testing.T) {
	for w := 1; w <= 30; w++ {
		assert.Equal(t, 10+w, ScoreForKill(TypeEnemy, w))
	}
}

func TestScoreForKillUnknownTypeScoresAsRegular(t *testing.T) {
	assert.Equal(t, 13, ScoreForKill("dragon", 3))
	assert.Equal(t, 13, ScoreForKill("", 3))
}

func TestCompletionBonus(t *testing.T) {
	for w := 1; w <= 30; w++ {
		assert.Equal(t, w*50, CompletionBonus(w))
	}
	assert.Equal(t, 250, CompletionBonus(5))
}
