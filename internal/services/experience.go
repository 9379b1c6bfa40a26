package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/studyhive-dev/studyhive/internal/apperrors"
	"github.com/studyhive-dev/studyhive/internal/models"
	"github.com/studyhive-dev/studyhive/internal/utils"
)

// Levels are flat 1000-experience bands.
const experiencePerLevel = 1000

type ExperienceService struct {
	db *gorm.DB
}

func NewExperienceService(db *gorm.DB) *ExperienceService {
	return &ExperienceService{db: db}
}

// Grant appends a log row and bumps the user's counters in one transaction.
// The log is append-only; the counters are derived state.
func (s *ExperienceService) Grant(ctx context.Context, userID uint, amount int, reason string) error {
	if amount <= 0 {
		return apperrors.Validation("Experience amount must be positive")
	}

	if reason == "" {
		return apperrors.Validation("Experience reason is required")
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.grant(tx, userID, amount, reason)
	})
}

// grant is the transactional body; other services call it while committing
// the action that earned the experience.
func (s *ExperienceService) grant(tx *gorm.DB, userID uint, amount int, reason string) error {
	entry := models.ExperienceLog{
		UserID: userID,
		Amount: amount,
		Reason: reason,
	}

	if err := tx.Create(&entry).Error; err != nil {
		return err
	}

	var user models.User

	if err := tx.First(&user, userID).Error; err != nil {
		return err
	}

	experience := user.Experience + amount

	return tx.Model(&user).Updates(map[string]interface{}{
		"experience": experience,
		"level":      experience/experiencePerLevel + 1,
	}).Error
}

func (s *ExperienceService) List(ctx context.Context, userID uint, page utils.Page) ([]models.ExperienceLog, int64, error) {
	query := s.db.WithContext(ctx).Model(&models.ExperienceLog{}).Where("user_id = ?", userID)

	var total int64

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []models.ExperienceLog

	err := query.Order("created_at DESC, id DESC").
		Limit(page.Limit).
		Offset(page.Offset()).
		Find(&logs).Error
	if err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}
