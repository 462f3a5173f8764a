package models

import "time"

// ArcadeSession is the append-only outcome of one arcade (endless) run:
// consecutive boards of increasing size until the player fails a round.
// Like GameResult it is created once on completion and never edited.
type ArcadeSession struct {
	ID     string `gorm:"primaryKey" json:"id"` // client-generated uuid
	UserID string `gorm:"index;not null" json:"user_id"`

	RoundsCleared int `json:"rounds_cleared"`
	PeakCombo     int `json:"peak_combo"`
	TotalScore    int `json:"total_score"`
	Duration      int `json:"duration"` // seconds across all rounds

	CompletedAt time.Time `json:"completed_at"`

	Synced bool `json:"synced" gorm:"index;default:false"`

	Timestamps
}

func (s *ArcadeSession) SyncID() string         { return s.ID }
func (s *ArcadeSession) SyncCollection() string { return CollectionArcadeSessions }
