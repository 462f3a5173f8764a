package models

import (
	"errors"
	"time"
)

// Sync collection names. The remote document store keys objects by
// collection + entity id, so these must stay stable across releases.
const (
	CollectionProfiles       = "profiles"
	CollectionResults        = "game_results"
	CollectionLevelProgress  = "level_progress"
	CollectionAchievements   = "achievements"
	CollectionArcadeSessions = "arcade_sessions"
)

var (
	// ErrNotFound is returned by store services when a row does not exist.
	// Absence is a normal outcome, callers branch on it with errors.Is.
	ErrNotFound = errors.New("record not found")
)

// Syncable is implemented by every persisted entity. Local writes always
// reset Synced to false; only the sync worker flips it back, and only after
// the remote store acknowledged the row's current content.
type Syncable interface {
	SyncID() string
	SyncCollection() string
}

// Timestamps adds GORM auto-times
type Timestamps struct {
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}
