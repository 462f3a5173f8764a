package services

import (
	"memory-arcade-core/game"
	"memory-arcade-core/models"
)

// UserStats is the cumulative snapshot the rule engine evaluates against,
// taken *after* the triggering session has been folded into the profile.
type UserStats struct {
	TotalGamesPlayed int64
	GamesWon         int64
	CurrentStreak    int
	Level            int
	BestArcadeRounds int
}

// AchievementEvent is one rule's verdict: either an unlock or a progress
// advance toward one. Progress is 0..100.
type AchievementEvent struct {
	Type     string
	Unlock   bool
	Progress int
}

const speedRunnerThreshold = 30 // seconds

type achievementRule struct {
	code string
	eval func(stats UserStats, out game.Outcome) (unlock bool, progress int)
}

func countRule(code string, target int64, count func(UserStats) int64) achievementRule {
	return achievementRule{code: code, eval: func(stats UserStats, _ game.Outcome) (bool, int) {
		n := count(stats)
		if n >= target {
			return true, 100
		}
		return false, int(n * 100 / target)
	}}
}

var achievementRules = []achievementRule{
	{code: models.AchFirstWin, eval: func(stats UserStats, out game.Outcome) (bool, int) {
		return out.IsWin && stats.GamesWon >= 1, 0
	}},
	countRule(models.AchWins10, 10, func(s UserStats) int64 { return s.GamesWon }),
	countRule(models.AchWins50, 50, func(s UserStats) int64 { return s.GamesWon }),
	countRule(models.AchWins100, 100, func(s UserStats) int64 { return s.GamesWon }),
	{code: models.AchSpeedRunner, eval: func(_ UserStats, out game.Outcome) (bool, int) {
		return out.IsWin && out.Duration < speedRunnerThreshold, 0
	}},
	{code: models.AchPerfectGame, eval: func(_ UserStats, out game.Outcome) (bool, int) {
		return out.IsWin && Accuracy(out.TotalPairs, out.Moves) >= 100, 0
	}},
	countRule(models.AchStreak3, 3, func(s UserStats) int64 { return int64(s.CurrentStreak) }),
	countRule(models.AchStreak7, 7, func(s UserStats) int64 { return int64(s.CurrentStreak) }),
	countRule(models.AchStreak30, 30, func(s UserStats) int64 { return int64(s.CurrentStreak) }),
	countRule(models.AchLevel10, 10, func(s UserStats) int64 { return int64(s.Level) }),
	countRule(models.AchLevel25, 25, func(s UserStats) int64 { return int64(s.Level) }),
	countRule(models.AchArcadeDiver, 10, func(s UserStats) int64 { return int64(s.BestArcadeRounds) }),
}

// EvaluateAchievements runs every rule in a single pass and returns the
// resulting events. Rules whose achievement is already in unlocked are
// skipped entirely, so re-evaluation is idempotent; zero-progress non-unlock
// verdicts produce no event.
func EvaluateAchievements(stats UserStats, out game.Outcome, unlocked map[string]bool) []AchievementEvent {
	var events []AchievementEvent
	for _, r := range achievementRules {
		if unlocked[r.code] {
			continue
		}
		win, progress := r.eval(stats, out)
		if win {
			events = append(events, AchievementEvent{Type: r.code, Unlock: true, Progress: 100})
		} else if progress > 0 {
			events = append(events, AchievementEvent{Type: r.code, Progress: progress})
		}
	}
	return events
}
