package services

import (
	"testing"

	"memory-arcade-core/game"
	"memory-arcade-core/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func eventByType(events []AchievementEvent, code string) (AchievementEvent, bool) {
	for _, ev := range events {
		if ev.Type == code {
			return ev, true
		}
	}
	return AchievementEvent{}, false
}

func TestEvaluateAchievements_FirstWin(t *testing.T) {
	stats := UserStats{TotalGamesPlayed: 1, GamesWon: 1, CurrentStreak: 1, Level: 1}
	out := game.Outcome{IsWin: true, TotalPairs: 6, Moves: 10, Duration: 45}

	events := EvaluateAchievements(stats, out, nil)

	ev, ok := eventByType(events, models.AchFirstWin)
	require.True(t, ok)
	assert.True(t, ev.Unlock)
}

func TestEvaluateAchievements_SkipsAlreadyUnlocked(t *testing.T) {
	stats := UserStats{GamesWon: 1, CurrentStreak: 1, Level: 1}
	out := game.Outcome{IsWin: true, TotalPairs: 6, Moves: 10, Duration: 45}

	unlocked := map[string]bool{models.AchFirstWin: true}
	events := EvaluateAchievements(stats, out, unlocked)

	_, ok := eventByType(events, models.AchFirstWin)
	assert.False(t, ok, "re-evaluating an unlocked achievement is a no-op")

	// Running the engine twice with identical inputs yields identical events.
	again := EvaluateAchievements(stats, out, unlocked)
	assert.Equal(t, events, again)
}

func TestEvaluateAchievements_SinglePassUnlocksSeveral(t *testing.T) {
	stats := UserStats{GamesWon: 10, CurrentStreak: 3, Level: 10}
	out := game.Outcome{IsWin: true, TotalPairs: 6, Moves: 6, Duration: 20}

	events := EvaluateAchievements(stats, out, nil)

	for _, code := range []string{
		models.AchFirstWin,
		models.AchWins10,
		models.AchSpeedRunner,
		models.AchPerfectGame,
		models.AchStreak3,
		models.AchLevel10,
	} {
		ev, ok := eventByType(events, code)
		require.Truef(t, ok, "expected event for %s", code)
		assert.Truef(t, ev.Unlock, "expected unlock for %s", code)
	}
}

func TestEvaluateAchievements_ProgressEvents(t *testing.T) {
	stats := UserStats{GamesWon: 25, CurrentStreak: 2, Level: 5}
	out := game.Outcome{IsWin: true, TotalPairs: 6, Moves: 20, Duration: 120}

	events := EvaluateAchievements(stats, out, map[string]bool{
		models.AchFirstWin: true,
		models.AchWins10:   true,
	})

	ev, ok := eventByType(events, models.AchWins50)
	require.True(t, ok)
	assert.False(t, ev.Unlock)
	assert.Equal(t, 50, ev.Progress, "25 of 50 wins")

	ev, ok = eventByType(events, models.AchWins100)
	require.True(t, ok)
	assert.Equal(t, 25, ev.Progress)

	_, ok = eventByType(events, models.AchArcadeDiver)
	assert.False(t, ok, "zero progress produces no event")
}

func TestEvaluateAchievements_LossUnlocksNothingWinBased(t *testing.T) {
	stats := UserStats{TotalGamesPlayed: 5, CurrentStreak: 1, Level: 1}
	out := game.Outcome{IsWin: false, TimedOut: true, TotalPairs: 6, Moves: 4, Duration: 10}

	events := EvaluateAchievements(stats, out, nil)

	for _, code := range []string{models.AchFirstWin, models.AchSpeedRunner, models.AchPerfectGame} {
		_, ok := eventByType(events, code)
		assert.Falsef(t, ok, "%s must not trigger on a loss", code)
	}
}
