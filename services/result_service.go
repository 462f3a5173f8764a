package services

import (
	"fmt"

	"memory-arcade-core/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ResultService struct {
	DB *gorm.DB
}

func NewResultService(db *gorm.DB) *ResultService {
	return &ResultService{DB: db}
}

// Create appends one game result. Results are immutable after this point
// except for the synced flag.
func (s *ResultService) Create(r *models.GameResult) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	r.Synced = false
	if err := s.DB.Create(r).Error; err != nil {
		return fmt.Errorf("saving game result: %w", err)
	}
	return nil
}

// ListByUser returns results newest-first.
func (s *ResultService) ListByUser(userID string, limit int) ([]models.GameResult, error) {
	var rows []models.GameResult
	q := s.DB.Where("user_id = ?", userID).Order("completed_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&rows).Error
	return rows, err
}

// ResultStats are plain aggregates over a user's result rows.
type ResultStats struct {
	TotalGames  int64   `json:"total_games"`
	Wins        int64   `json:"wins"`
	BestScore   int     `json:"best_score"`
	AvgTime     float64 `json:"avg_time"`
	AvgAccuracy float64 `json:"avg_accuracy"`
}

// Stats aggregates the user's completed sessions.
func (s *ResultService) Stats(userID string) (*ResultStats, error) {
	var stats ResultStats
	base := s.DB.Model(&models.GameResult{}).Where("user_id = ?", userID)

	if err := base.Session(&gorm.Session{}).Count(&stats.TotalGames).Error; err != nil {
		return nil, err
	}
	if stats.TotalGames == 0 {
		return &stats, nil
	}
	if err := base.Session(&gorm.Session{}).Where("is_win = ?", true).Count(&stats.Wins).Error; err != nil {
		return nil, err
	}
	row := struct {
		BestScore   int
		AvgTime     float64
		AvgAccuracy float64
	}{}
	err := s.DB.Model(&models.GameResult{}).
		Select("MAX(score) AS best_score, AVG(time_taken) AS avg_time, AVG(accuracy) AS avg_accuracy").
		Where("user_id = ?", userID).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	stats.BestScore = row.BestScore
	stats.AvgTime = row.AvgTime
	stats.AvgAccuracy = row.AvgAccuracy
	return &stats, nil
}

func (s *ResultService) GetUnsynced(userID string) ([]models.GameResult, error) {
	var rows []models.GameResult
	err := s.DB.Where("user_id = ? AND synced = ?", userID, false).Find(&rows).Error
	return rows, err
}

func (s *ResultService) MarkSynced(ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	return s.DB.Model(&models.GameResult{}).Where("id IN ?", ids).Update("synced", true).Error
}
