package models

import "time"

// Game modes. Multiplayer is the local two-player hot-seat mode; there is no
// networked play in this core.
type Mode string

const (
	ModeClassic     Mode = "classic"
	ModeTimed       Mode = "timed"
	ModeMultiplayer Mode = "multiplayer"
	ModeArcade      Mode = "arcade"
)

// GameResult is the append-only record of one finished session. It is created
// exactly once when a session completes, never for abandoned sessions, and is
// never mutated afterwards except for its Synced flag.
type GameResult struct {
	ID     string `gorm:"primaryKey" json:"id"` // client-generated uuid
	UserID string `gorm:"index;not null" json:"user_id"`

	Mode       Mode       `json:"mode" gorm:"type:varchar(16)"`
	Theme      string     `json:"theme"`
	GridSize   string     `json:"grid_size"`
	Difficulty Difficulty `json:"difficulty" gorm:"type:varchar(16)"`

	Score     int     `json:"score"`
	TimeTaken int     `json:"time_taken"` // seconds
	Moves     int     `json:"moves"`
	Accuracy  float64 `json:"accuracy"` // 0..100

	CompletedAt time.Time `json:"completed_at"`
	IsWin       bool      `json:"is_win"`

	Synced bool `json:"synced" gorm:"index;default:false"`

	Timestamps
}

func (r *GameResult) SyncID() string         { return r.ID }
func (r *GameResult) SyncCollection() string { return CollectionResults }
