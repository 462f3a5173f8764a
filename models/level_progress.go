package models

// LevelProgress is one row per user×level, mutated in place on replay. Stars
// and the best-* fields are monotonic: the store layer only ever improves
// them, so replaying a level badly can never erase an earlier result.
type LevelProgress struct {
	ID          string `gorm:"primaryKey" json:"id"`
	UserID      string `gorm:"index:idx_user_level,unique;not null" json:"user_id"`
	LevelNumber int    `gorm:"index:idx_user_level,unique;not null" json:"level_number"`

	Stars     int `json:"stars" gorm:"default:0"` // 0..3, only increases
	BestScore int `json:"best_score" gorm:"default:0"`
	BestTime  int `json:"best_time" gorm:"default:0"` // seconds, 0 = never completed
	BestMoves int `json:"best_moves" gorm:"default:0"` // 0 = never completed

	IsUnlocked  bool `json:"is_unlocked" gorm:"default:false"`
	IsCompleted bool `json:"is_completed" gorm:"default:false"`
	TimesPlayed int  `json:"times_played" gorm:"default:0"`

	Synced bool `json:"synced" gorm:"index;default:false"`

	Timestamps
}

func (l *LevelProgress) SyncID() string         { return l.ID }
func (l *LevelProgress) SyncCollection() string { return CollectionLevelProgress }
