package services

import "time"

// StreakWindow is the longest gap between plays that still continues a
// streak. The rule is gap-based, not calendar-day based: several sessions in
// one day only move lastPlayedAt, they never double-increment.
const StreakWindow = 48 * time.Hour

// NextStreak evaluates the streak for one completed session. A nil
// lastPlayedAt (first ever session) or a gap over the window starts the
// streak over at 1; otherwise it continues. bestStreak only ever rises.
func NextStreak(current, best int, lastPlayedAt *time.Time, now time.Time) (newCurrent, newBest int) {
	if lastPlayedAt == nil || now.Sub(*lastPlayedAt) > StreakWindow {
		newCurrent = 1
	} else {
		newCurrent = current + 1
	}
	newBest = best
	if newCurrent > newBest {
		newBest = newCurrent
	}
	return newCurrent, newBest
}
