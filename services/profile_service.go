package services

import (
	"errors"
	"fmt"

	"memory-arcade-core/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProfileService struct {
	DB *gorm.DB
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{DB: db}
}

// Ensure returns the user's profile row, creating a fresh level-1 profile on
// first login (idempotent).
func (s *ProfileService) Ensure(userID string) (*models.UserProfile, error) {
	var p models.UserProfile
	err := s.DB.Where("user_id = ?", userID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		p = models.UserProfile{
			ID:     uuid.NewString(),
			UserID: userID,
			Level:  1,
		}
		if err := s.DB.Create(&p).Error; err != nil {
			return nil, fmt.Errorf("creating profile for %s: %w", userID, err)
		}
		return &p, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Get returns the profile or models.ErrNotFound; absence is a normal,
// typed outcome here, not a failure.
func (s *ProfileService) Get(userID string) (*models.UserProfile, error) {
	var p models.UserProfile
	err := s.DB.Where("user_id = ?", userID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Save persists the profile and resets its synced flag; only the sync
// worker ever sets the flag back.
func (s *ProfileService) Save(p *models.UserProfile) error {
	p.Synced = false
	return s.DB.Save(p).Error
}

func (s *ProfileService) GetUnsynced(userID string) ([]models.UserProfile, error) {
	var rows []models.UserProfile
	err := s.DB.Where("user_id = ? AND synced = ?", userID, false).Find(&rows).Error
	return rows, err
}

func (s *ProfileService) MarkSynced(ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	return s.DB.Model(&models.UserProfile{}).Where("id IN ?", ids).Update("synced", true).Error
}
