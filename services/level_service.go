package services

import (
	"errors"
	"fmt"

	"memory-arcade-core/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LevelService struct {
	DB *gorm.DB
}

func NewLevelService(db *gorm.DB) *LevelService {
	return &LevelService{DB: db}
}

// Ensure returns the user's row for a level, creating a locked one if it
// does not exist yet. Level 1 is always created unlocked.
func (s *LevelService) Ensure(userID string, level int) (*models.LevelProgress, error) {
	return s.ensure(s.DB, userID, level)
}

func (s *LevelService) ensure(db *gorm.DB, userID string, level int) (*models.LevelProgress, error) {
	var lp models.LevelProgress
	err := db.Where("user_id = ? AND level_number = ?", userID, level).First(&lp).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		lp = models.LevelProgress{
			ID:          uuid.NewString(),
			UserID:      userID,
			LevelNumber: level,
			IsUnlocked:  level == 1,
		}
		if err := db.Create(&lp).Error; err != nil {
			return nil, fmt.Errorf("creating level progress %d for %s: %w", level, userID, err)
		}
		return &lp, nil
	}
	if err != nil {
		return nil, err
	}
	return &lp, nil
}

// RecordPlay folds one completed play of a level into its progress row.
// Stars and bests are strictly monotonic: a worse replay changes nothing
// but the play counter. A win also unlocks the next level. All writes run
// in the provided db handle so the completion pipeline can pass its tx.
func (s *LevelService) RecordPlay(db *gorm.DB, userID string, level, stars, score, timeTaken, moves int, won bool) (*models.LevelProgress, error) {
	lp, err := s.ensure(db, userID, level)
	if err != nil {
		return nil, err
	}

	lp.TimesPlayed++
	if won {
		lp.IsCompleted = true
		if stars > lp.Stars {
			lp.Stars = stars
		}
		if score > lp.BestScore {
			lp.BestScore = score
		}
		if lp.BestTime == 0 || timeTaken < lp.BestTime {
			lp.BestTime = timeTaken
		}
		if lp.BestMoves == 0 || moves < lp.BestMoves {
			lp.BestMoves = moves
		}
	}
	lp.Synced = false
	if err := db.Save(lp).Error; err != nil {
		return nil, err
	}

	if won {
		next, err := s.ensure(db, userID, level+1)
		if err != nil {
			return nil, err
		}
		if !next.IsUnlocked {
			next.IsUnlocked = true
			next.Synced = false
			if err := db.Save(next).Error; err != nil {
				return nil, err
			}
		}
	}
	return lp, nil
}

func (s *LevelService) ListByUser(userID string) ([]models.LevelProgress, error) {
	var rows []models.LevelProgress
	err := s.DB.Where("user_id = ?", userID).Order("level_number ASC").Find(&rows).Error
	return rows, err
}

func (s *LevelService) GetUnsynced(userID string) ([]models.LevelProgress, error) {
	var rows []models.LevelProgress
	err := s.DB.Where("user_id = ? AND synced = ?", userID, false).Find(&rows).Error
	return rows, err
}

func (s *LevelService) MarkSynced(ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	return s.DB.Model(&models.LevelProgress{}).Where("id IN ?", ids).Update("synced", true).Error
}
