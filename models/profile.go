package models

import "time"

// UserProfile is the denormalized per-user progression row (one per user).
// It is rewritten after every completed session and pushed to the remote
// store last-local-write-wins; the remote copy is never merged back.
type UserProfile struct {
	ID     string `gorm:"primaryKey" json:"id"`
	UserID string `gorm:"uniqueIndex;not null" json:"user_id"` // opaque id from the identity provider

	// Core progression
	TotalXP int64 `json:"total_xp" gorm:"default:0"`
	Level   int   `json:"level" gorm:"default:1"`

	// Lifetime counters
	TotalGamesPlayed int64 `json:"total_games_played" gorm:"default:0"`
	GamesWon         int64 `json:"games_won" gorm:"default:0"`

	// Streaks (gap-based, see services.NextStreak)
	CurrentStreak int `json:"current_streak" gorm:"default:0"`
	BestStreak    int `json:"best_streak" gorm:"default:0"`

	// Rolling aggregates over completed sessions
	AverageCompletionTime float64 `json:"average_completion_time" gorm:"default:0"`
	AccuracyRate          float64 `json:"accuracy_rate" gorm:"default:0"`

	LastPlayedAt *time.Time `json:"last_played_at,omitempty"`

	Synced bool `json:"synced" gorm:"index;default:false"`

	Timestamps
}

func (p *UserProfile) SyncID() string         { return p.ID }
func (p *UserProfile) SyncCollection() string { return CollectionProfiles }
