package services

import (
	"fmt"

	"memory-arcade-core/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ArcadeService struct {
	DB *gorm.DB
}

func NewArcadeService(db *gorm.DB) *ArcadeService {
	return &ArcadeService{DB: db}
}

// Create appends one finished arcade run; like GameResult rows it is never
// edited afterwards.
func (s *ArcadeService) Create(run *models.ArcadeSession) error {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	run.Synced = false
	if err := s.DB.Create(run).Error; err != nil {
		return fmt.Errorf("saving arcade session: %w", err)
	}
	return nil
}

func (s *ArcadeService) ListByUser(userID string, limit int) ([]models.ArcadeSession, error) {
	var rows []models.ArcadeSession
	q := s.DB.Where("user_id = ?", userID).Order("completed_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&rows).Error
	return rows, err
}

// BestRounds is the user's deepest arcade run, 0 if they never played one.
func (s *ArcadeService) BestRounds(userID string) (int, error) {
	var best *int
	err := s.DB.Model(&models.ArcadeSession{}).
		Select("MAX(rounds_cleared)").
		Where("user_id = ?", userID).
		Scan(&best).Error
	if err != nil {
		return 0, err
	}
	if best == nil {
		return 0, nil
	}
	return *best, nil
}

func (s *ArcadeService) GetUnsynced(userID string) ([]models.ArcadeSession, error) {
	var rows []models.ArcadeSession
	err := s.DB.Where("user_id = ? AND synced = ?", userID, false).Find(&rows).Error
	return rows, err
}

func (s *ArcadeService) MarkSynced(ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	return s.DB.Model(&models.ArcadeSession{}).Where("id IN ?", ids).Update("synced", true).Error
}
