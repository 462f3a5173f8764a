package services

import "math"

// Star bonus XP per star count 0..3.
var StarXPBonus = [4]int{0, 25, 50, 100}

// SpeedBreakpoint awards a flat XP bonus for finishing under a time.
type SpeedBreakpoint struct {
	UnderSeconds int
	Bonus        int
}

// SpeedBonuses are checked in order; the first matching breakpoint wins.
var SpeedBonuses = []SpeedBreakpoint{
	{UnderSeconds: 15, Bonus: 50},
	{UnderSeconds: 30, Bonus: 25},
	{UnderSeconds: 60, Bonus: 10},
}

// SpeedBonus returns the flat XP bonus for a completion time.
func SpeedBonus(seconds int) int {
	for _, bp := range SpeedBonuses {
		if seconds < bp.UnderSeconds {
			return bp.Bonus
		}
	}
	return 0
}

// StarRating grades a session 0..3. Three stars require near-perfect moves
// (within 1.5x the pair count) and a completion time under fastThreshold;
// two stars allow double both budgets; any completion is worth one star.
// Failed or abandoned sessions are zero.
func StarRating(moves, totalPairs, timeTaken, fastThreshold int, completed bool) int {
	if !completed {
		return 0
	}
	threeStarMoves := totalPairs + totalPairs/2
	if moves <= threeStarMoves && timeTaken <= fastThreshold {
		return 3
	}
	if moves <= totalPairs*2 && timeTaken <= fastThreshold*2 {
		return 2
	}
	return 1
}

// SessionXP: xp = floor(score/10) + star bonus + speed bonus.
func SessionXP(score, stars, timeTaken int) int64 {
	if stars < 0 {
		stars = 0
	}
	if stars > 3 {
		stars = 3
	}
	return int64(score/10 + StarXPBonus[stars] + SpeedBonus(timeTaken))
}

// LevelForXP maps lifetime XP to a level: floor(sqrt(totalXP/100)) + 1.
// Monotonic non-decreasing since TotalXP only ever grows.
func LevelForXP(totalXP int64) int {
	if totalXP < 0 {
		totalXP = 0
	}
	return int(math.Sqrt(float64(totalXP)/100)) + 1
}

// Accuracy is min(100, perfectMoves/actualMoves*100) with
// perfectMoves = totalPairs*2 (each pair needs two card reveals).
func Accuracy(totalPairs, moves int) float64 {
	if moves <= 0 {
		return 0
	}
	acc := float64(totalPairs*2) / float64(moves) * 100
	return math.Min(100, acc)
}
