package game

import (
	"time"

	"memory-arcade-core/models"
)

// arcadeLadder is the board escalation for arcade runs; past the end the
// largest grid repeats.
var arcadeLadder = []models.GridSize{
	models.Grid4x3,
	models.Grid4x4,
	models.Grid5x4,
	models.Grid6x5,
	models.Grid6x6,
}

// ArcadeRun strings sessions together into an endless escalation: each
// cleared round deals a bigger board on a tighter clock until one round is
// failed or the run is abandoned. Only the run as a whole is persisted, as
// one ArcadeSession row.
type ArcadeRun struct {
	theme         models.Theme
	tickInterval  time.Duration
	mismatchDelay time.Duration

	round      int // 0-based index of the round about to be dealt
	totalScore int
	peakCombo  int
	duration   int
}

func NewArcadeRun(theme models.Theme, tick, mismatchDelay time.Duration) *ArcadeRun {
	return &ArcadeRun{theme: theme, tickInterval: tick, mismatchDelay: mismatchDelay}
}

// NextRound deals the session for the upcoming round.
func (a *ArcadeRun) NextRound() *Session {
	grid := arcadeLadder[len(arcadeLadder)-1]
	if a.round < len(arcadeLadder) {
		grid = arcadeLadder[a.round]
	}
	// 10s per pair, squeezed 5% per round, floor of 4s per pair.
	perPair := 10000 - 500*a.round
	if perPair < 4000 {
		perPair = 4000
	}
	limit := grid.Pairs() * perPair / 1000

	return NewSession(Config{
		Mode:          models.ModeArcade,
		Theme:         a.theme,
		Grid:          grid,
		Difficulty:    models.DifficultyHard,
		TimeLimit:     limit,
		TickInterval:  a.tickInterval,
		MismatchDelay: a.mismatchDelay,
	})
}

// RecordRound folds a finished round's outcome into the run and reports
// whether the run continues (round won) or ends (round lost/timed out).
func (a *ArcadeRun) RecordRound(out Outcome) bool {
	a.totalScore += out.Score
	a.duration += out.Duration
	if out.PeakCombo > a.peakCombo {
		a.peakCombo = out.PeakCombo
	}
	if !out.IsWin {
		return false
	}
	a.round++
	return true
}

// RoundsCleared is the number of rounds won so far.
func (a *ArcadeRun) RoundsCleared() int { return a.round }

// Outcome summarizes the run for persistence once it has ended.
func (a *ArcadeRun) Outcome() (roundsCleared, peakCombo, totalScore, duration int) {
	return a.round, a.peakCombo, a.totalScore, a.duration
}
