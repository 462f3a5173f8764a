package services

import (
	"errors"
	"time"

	"memory-arcade-core/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AchievementService struct {
	DB *gorm.DB
}

func NewAchievementService(db *gorm.DB) *AchievementService {
	return &AchievementService{DB: db}
}

// UnlockedSet returns the codes the user has already unlocked, in the shape
// the rule engine consumes.
func (s *AchievementService) UnlockedSet(userID string) (map[string]bool, error) {
	var rows []models.Achievement
	if err := s.DB.Where("user_id = ? AND unlocked = ?", userID, true).Find(&rows).Error; err != nil {
		return nil, err
	}
	set := make(map[string]bool, len(rows))
	for _, a := range rows {
		set[a.Type] = true
	}
	return set, nil
}

// Apply writes a batch of rule-engine events: creates rows on first
// progress, advances progress monotonically, and flips unlocks. Returns
// the achievements newly unlocked by this batch. Already-unlocked rows are
// never touched, so replays are no-ops.
func (s *AchievementService) Apply(db *gorm.DB, userID string, events []AchievementEvent, now time.Time) ([]models.Achievement, error) {
	var unlocked []models.Achievement
	for _, ev := range events {
		var a models.Achievement
		err := db.Where("user_id = ? AND type = ?", userID, ev.Type).First(&a).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			a = models.Achievement{
				ID:     uuid.NewString(),
				UserID: userID,
				Type:   ev.Type,
			}
		} else if err != nil {
			return nil, err
		}
		if a.Unlocked {
			continue
		}

		changed := false
		if ev.Progress > a.Progress {
			a.Progress = ev.Progress
			changed = true
		}
		if ev.Unlock {
			a.Unlocked = true
			a.Progress = 100
			t := now
			a.UnlockedAt = &t
			changed = true
		}
		if !changed {
			continue
		}
		a.Synced = false
		if err := db.Save(&a).Error; err != nil {
			return nil, err
		}
		if ev.Unlock {
			unlocked = append(unlocked, a)
		}
	}
	return unlocked, nil
}

func (s *AchievementService) ListByUser(userID string) ([]models.Achievement, error) {
	var rows []models.Achievement
	err := s.DB.Where("user_id = ?", userID).Order("type ASC").Find(&rows).Error
	return rows, err
}

func (s *AchievementService) GetUnsynced(userID string) ([]models.Achievement, error) {
	var rows []models.Achievement
	err := s.DB.Where("user_id = ? AND synced = ?", userID, false).Find(&rows).Error
	return rows, err
}

func (s *AchievementService) MarkSynced(ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	return s.DB.Model(&models.Achievement{}).Where("id IN ?", ids).Update("synced", true).Error
}
