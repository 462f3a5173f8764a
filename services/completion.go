package services

import (
	"fmt"
	"log"
	"time"

	"memory-arcade-core/game"
	"memory-arcade-core/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CompletionService turns a finished session into its persisted effects:
// the GameResult row, profile counters/XP/streak, level progress, and
// achievement awards. Everything is computed by the pure engines first and
// applied to the store in one transaction, so a single completion either
// lands whole or not at all.
type CompletionService struct {
	DB           *gorm.DB
	Levels       *LevelService
	Achievements *AchievementService

	// Now is injectable for tests; defaults to time.Now.
	Now func() time.Time
}

func NewCompletionService(db *gorm.DB, levels *LevelService, achievements *AchievementService) *CompletionService {
	return &CompletionService{DB: db, Levels: levels, Achievements: achievements, Now: time.Now}
}

// CompletionSummary is what the presentation layer shows after a session.
type CompletionSummary struct {
	Result        *models.GameResult       `json:"result"`
	Stars         int                      `json:"stars"`
	XPGained      int64                    `json:"xp_gained"`
	NewLevel      int                      `json:"new_level"`
	LeveledUp     bool                     `json:"leveled_up"`
	CurrentStreak int                      `json:"current_streak"`
	Unlocked      []models.AchievementType `json:"unlocked"`
}

// CompleteSession persists one completed session for userID. Callers only
// reach this with outcomes from StatusComplete sessions; abandoned sessions
// never produce an Outcome and therefore never reach the store.
func (s *CompletionService) CompleteSession(userID string, out game.Outcome) (*CompletionSummary, error) {
	now := s.Now()
	diff := models.DifficultySettings[out.Difficulty]

	stars := StarRating(out.Moves, out.TotalPairs, out.Duration, diff.FastThreshold, out.IsWin)
	accuracy := Accuracy(out.TotalPairs, out.Moves)
	xp := SessionXP(out.Score, stars, out.Duration)

	result := &models.GameResult{
		ID:          uuid.NewString(),
		UserID:      userID,
		Mode:        out.Mode,
		Theme:       out.Theme,
		GridSize:    out.Grid,
		Difficulty:  out.Difficulty,
		Score:       out.Score,
		TimeTaken:   out.Duration,
		Moves:       out.Moves,
		Accuracy:    accuracy,
		CompletedAt: now,
		IsWin:       out.IsWin,
	}

	summary := &CompletionSummary{Result: result, Stars: stars, XPGained: xp}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(result).Error; err != nil {
			return fmt.Errorf("saving game result: %w", err)
		}

		prof, err := ensureProfile(tx, userID)
		if err != nil {
			return err
		}

		prevLevel := prof.Level
		n := prof.TotalGamesPlayed + 1
		prof.AverageCompletionTime = (prof.AverageCompletionTime*float64(n-1) + float64(out.Duration)) / float64(n)
		prof.AccuracyRate = (prof.AccuracyRate*float64(n-1) + accuracy) / float64(n)
		prof.TotalGamesPlayed = n
		if out.IsWin {
			prof.GamesWon++
		}
		prof.CurrentStreak, prof.BestStreak = NextStreak(prof.CurrentStreak, prof.BestStreak, prof.LastPlayedAt, now)
		prof.TotalXP += xp
		prof.Level = LevelForXP(prof.TotalXP)
		played := now
		prof.LastPlayedAt = &played
		prof.Synced = false
		if err := tx.Save(prof).Error; err != nil {
			return fmt.Errorf("saving profile: %w", err)
		}

		summary.NewLevel = prof.Level
		summary.LeveledUp = prof.Level > prevLevel
		summary.CurrentStreak = prof.CurrentStreak

		if out.LevelNumber > 0 {
			if _, err := s.Levels.RecordPlay(tx, userID, out.LevelNumber, stars, out.Score, out.Duration, out.Moves, out.IsWin); err != nil {
				return fmt.Errorf("recording level play: %w", err)
			}
		}

		unlocked, err := s.awardAchievements(tx, userID, prof, out, now)
		if err != nil {
			return err
		}
		summary.Unlocked = unlocked
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("🎮 Session complete: user=%s score=%d stars=%d xp=+%d level=%d streak=%d",
		userID, out.Score, stars, xp, summary.NewLevel, summary.CurrentStreak)
	return summary, nil
}

// CompleteArcadeRun persists a finished arcade run and folds its score into
// the profile the same way a session does (arcade runs award xp but carry
// no star rating or level progress).
func (s *CompletionService) CompleteArcadeRun(userID string, run *game.ArcadeRun) (*CompletionSummary, error) {
	now := s.Now()
	rounds, peak, score, duration := run.Outcome()
	xp := int64(score/10 + 20*rounds)

	session := &models.ArcadeSession{
		ID:            uuid.NewString(),
		UserID:        userID,
		RoundsCleared: rounds,
		PeakCombo:     peak,
		TotalScore:    score,
		Duration:      duration,
		CompletedAt:   now,
	}

	summary := &CompletionSummary{XPGained: xp}
	outcome := game.Outcome{Mode: models.ModeArcade, Score: score, Duration: duration}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(session).Error; err != nil {
			return fmt.Errorf("saving arcade session: %w", err)
		}

		prof, err := ensureProfile(tx, userID)
		if err != nil {
			return err
		}
		prevLevel := prof.Level
		prof.CurrentStreak, prof.BestStreak = NextStreak(prof.CurrentStreak, prof.BestStreak, prof.LastPlayedAt, now)
		prof.TotalXP += xp
		prof.Level = LevelForXP(prof.TotalXP)
		played := now
		prof.LastPlayedAt = &played
		prof.Synced = false
		if err := tx.Save(prof).Error; err != nil {
			return fmt.Errorf("saving profile: %w", err)
		}

		summary.NewLevel = prof.Level
		summary.LeveledUp = prof.Level > prevLevel
		summary.CurrentStreak = prof.CurrentStreak

		unlocked, err := s.awardAchievements(tx, userID, prof, outcome, now)
		if err != nil {
			return err
		}
		summary.Unlocked = unlocked
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("🕹️ Arcade run complete: user=%s rounds=%d score=%d xp=+%d", userID, rounds, score, xp)
	return summary, nil
}

// awardAchievements runs the rule engine against the already-updated
// profile and applies the event batch inside the caller's transaction.
func (s *CompletionService) awardAchievements(tx *gorm.DB, userID string, prof *models.UserProfile, out game.Outcome, now time.Time) ([]models.AchievementType, error) {
	var unlockedRows []models.Achievement
	if err := tx.Where("user_id = ? AND unlocked = ?", userID, true).Find(&unlockedRows).Error; err != nil {
		return nil, err
	}
	already := make(map[string]bool, len(unlockedRows))
	for _, a := range unlockedRows {
		already[a.Type] = true
	}

	var bestArcade *int
	if err := tx.Model(&models.ArcadeSession{}).
		Select("MAX(rounds_cleared)").
		Where("user_id = ?", userID).
		Scan(&bestArcade).Error; err != nil {
		return nil, err
	}

	stats := UserStats{
		TotalGamesPlayed: prof.TotalGamesPlayed,
		GamesWon:         prof.GamesWon,
		CurrentStreak:    prof.CurrentStreak,
		Level:            prof.Level,
	}
	if bestArcade != nil {
		stats.BestArcadeRounds = *bestArcade
	}

	events := EvaluateAchievements(stats, out, already)
	newRows, err := s.Achievements.Apply(tx, userID, events, now)
	if err != nil {
		return nil, fmt.Errorf("applying achievements: %w", err)
	}

	var unlocked []models.AchievementType
	for _, row := range newRows {
		if at, ok := models.AchievementByCode(row.Type); ok {
			unlocked = append(unlocked, at)
			log.Printf("🎖️ Achievement unlocked: %s → %s", at.Name, userID)
		}
	}
	return unlocked, nil
}

func ensureProfile(db *gorm.DB, userID string) (*models.UserProfile, error) {
	var p models.UserProfile
	err := db.Where("user_id = ?", userID).First(&p).Error
	if err == gorm.ErrRecordNotFound {
		p = models.UserProfile{ID: uuid.NewString(), UserID: userID, Level: 1}
		if err := db.Create(&p).Error; err != nil {
			return nil, fmt.Errorf("creating profile for %s: %w", userID, err)
		}
		return &p, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}
