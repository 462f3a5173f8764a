package models

import "time"

// Achievement codes, stable wire identifiers.
const (
	AchFirstWin     = "FIRST_WIN"
	AchWins10       = "WINS_10"
	AchWins50       = "WINS_50"
	AchWins100      = "WINS_100"
	AchSpeedRunner  = "SPEED_RUNNER"
	AchPerfectGame  = "PERFECT_GAME"
	AchStreak3      = "STREAK_3"
	AchStreak7      = "STREAK_7"
	AchStreak30     = "STREAK_30"
	AchLevel10      = "LEVEL_10"
	AchLevel25      = "LEVEL_25"
	AchArcadeDiver  = "ARCADE_DIVER"
)

// Achievement is one row per user×type: created on first award or first
// progress, mutated only to advance Progress and flip Unlocked.
type Achievement struct {
	ID     string `gorm:"primaryKey" json:"id"`
	UserID string `gorm:"index:idx_user_ach,unique;not null" json:"user_id"`
	Type   string `gorm:"index:idx_user_ach,unique;not null" json:"type"`

	Progress   int        `json:"progress" gorm:"default:0"` // 0..100
	Unlocked   bool       `json:"unlocked" gorm:"default:false"`
	UnlockedAt *time.Time `json:"unlocked_at,omitempty"`

	Synced bool `json:"synced" gorm:"index;default:false"`

	Timestamps
}

func (a *Achievement) SyncID() string         { return a.ID }
func (a *Achievement) SyncCollection() string { return CollectionAchievements }

// AchievementType: static catalog entry (display data only; unlock logic
// lives in the rule engine)
type AchievementType struct {
	Code        string
	Name        string
	Description string
	Rarity      string // common, rare, epic, legendary
}

// AchievementCatalog lists every achievement the rule engine can award.
var AchievementCatalog = []AchievementType{
	{Code: AchFirstWin, Name: "First Victory", Description: "Win your first game", Rarity: "common"},
	{Code: AchWins10, Name: "Getting Good", Description: "Win 10 games", Rarity: "common"},
	{Code: AchWins50, Name: "Veteran", Description: "Win 50 games", Rarity: "rare"},
	{Code: AchWins100, Name: "Centurion", Description: "Win 100 games", Rarity: "epic"},
	{Code: AchSpeedRunner, Name: "Speed Runner", Description: "Finish a board in under 30 seconds", Rarity: "rare"},
	{Code: AchPerfectGame, Name: "Perfect Recall", Description: "Finish a board with 100% accuracy", Rarity: "epic"},
	{Code: AchStreak3, Name: "Warming Up", Description: "Play 3 days in a row", Rarity: "common"},
	{Code: AchStreak7, Name: "Regular", Description: "Play 7 days in a row", Rarity: "rare"},
	{Code: AchStreak30, Name: "Devoted", Description: "Play 30 days in a row", Rarity: "legendary"},
	{Code: AchLevel10, Name: "Rising Star", Description: "Reach level 10", Rarity: "common"},
	{Code: AchLevel25, Name: "Master of Memory", Description: "Reach level 25", Rarity: "epic"},
	{Code: AchArcadeDiver, Name: "Deep Diver", Description: "Clear 10 arcade rounds in one run", Rarity: "rare"},
}

// AchievementByCode returns the catalog entry for a code, if present.
func AchievementByCode(code string) (AchievementType, bool) {
	for _, a := range AchievementCatalog {
		if a.Code == code {
			return a, true
		}
	}
	return AchievementType{}, false
}
