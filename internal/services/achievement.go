package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/studyhive-dev/studyhive/internal/apperrors"
	"github.com/studyhive-dev/studyhive/internal/models"
	"github.com/studyhive-dev/studyhive/internal/utils"
)

type AchievementService struct {
	db         *gorm.DB
	experience *ExperienceService
}

func NewAchievementService(db *gorm.DB, experience *ExperienceService) *AchievementService {
	return &AchievementService{db: db, experience: experience}
}

// ListCatalog returns the achievement catalog with the requestor's progress
// joined in where it exists.
func (s *AchievementService) ListCatalog(ctx context.Context, userID uint, category string, page utils.Page) ([]models.Achievement, int64, error) {
	query := s.db.WithContext(ctx).Model(&models.Achievement{})

	if category != "" {
		query = query.Where("category = ?", category)
	}

	var total int64

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var achievements []models.Achievement

	err := query.Preload("UserAchievements", "user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(page.Limit).
		Offset(page.Offset()).
		Find(&achievements).Error
	if err != nil {
		return nil, 0, err
	}

	return achievements, total, nil
}

// AddProgress upserts the (user, achievement) row and clamps progress to
// 0..100. Delta must be positive: progress never regresses.
func (s *AchievementService) AddProgress(ctx context.Context, userID, achievementID uint, delta int) (*models.UserAchievement, error) {
	if delta <= 0 || delta > 100 {
		return nil, apperrors.Validation("Progress delta must be between 1 and 100")
	}

	var record models.UserAchievement

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var achievement models.Achievement

		if err := tx.First(&achievement, achievementID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("Achievement not found")
			}
			return err
		}

		err := tx.Where("user_id = ? AND achievement_id = ?", userID, achievementID).First(&record).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			record = models.UserAchievement{UserID: userID, AchievementID: achievementID}
			if err := tx.Create(&record).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		if record.IsAcquired {
			return apperrors.Validation("Achievement already acquired")
		}

		progress := record.Progress + delta
		if progress > 100 {
			progress = 100
		}

		if err := tx.Model(&record).Update("progress", progress).Error; err != nil {
			return err
		}
		record.Progress = progress

		return tx.Create(&models.AchievementHistory{
			UserID:        userID,
			AchievementID: achievementID,
			Action:        "progress",
			Delta:         delta,
		}).Error
	})
	if err != nil {
		return nil, err
	}

	return &record, nil
}

// Acquire marks the achievement acquired once progress has reached the
// requirement. The history row, the experience grant from the reward, and
// the flag flip commit together. A second acquire fails validation.
func (s *AchievementService) Acquire(ctx context.Context, userID, achievementID uint) (*models.UserAchievement, error) {
	var record models.UserAchievement

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var achievement models.Achievement

		if err := tx.First(&achievement, achievementID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("Achievement not found")
			}
			return err
		}

		err := tx.Where("user_id = ? AND achievement_id = ?", userID, achievementID).First(&record).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.Validation("Achievement progress has not been started")
			}
			return err
		}

		if record.IsAcquired {
			return apperrors.Validation("Achievement already acquired")
		}

		if record.Progress < achievement.RequiredProgress {
			return apperrors.Validation("Achievement requirements are not met")
		}

		now := time.Now().UTC()

		// The acquired guard in the WHERE makes the flip idempotent under
		// concurrent acquire calls: only one statement can match.
		result := tx.Model(&models.UserAchievement{}).
			Where("id = ? AND is_acquired = ?", record.ID, false).
			Updates(map[string]interface{}{"is_acquired": true, "acquired_at": now})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return apperrors.Validation("Achievement already acquired")
		}

		record.IsAcquired = true
		record.AcquiredAt = &now

		if err := tx.Create(&models.AchievementHistory{
			UserID:        userID,
			AchievementID: achievementID,
			Action:        "acquired",
			Delta:         0,
		}).Error; err != nil {
			return err
		}

		reward := achievement.Reward.Data()
		if reward.Experience > 0 {
			return s.experience.grant(tx, userID, reward.Experience, "achievement")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &record, nil
}

// ListMine returns the requestor's progress rows, acquired first.
func (s *AchievementService) ListMine(ctx context.Context, userID uint, page utils.Page) ([]models.UserAchievement, int64, error) {
	query := s.db.WithContext(ctx).Model(&models.UserAchievement{}).Where("user_id = ?", userID)

	var total int64

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []models.UserAchievement

	err := query.Preload("Achievement").
		Order("is_acquired DESC, created_at DESC, id DESC").
		Limit(page.Limit).
		Offset(page.Offset()).
		Find(&records).Error
	if err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

func (s *AchievementService) History(ctx context.Context, userID uint, page utils.Page) ([]models.AchievementHistory, int64, error) {
	query := s.db.WithContext(ctx).Model(&models.AchievementHistory{}).Where("user_id = ?", userID)

	var total int64

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var history []models.AchievementHistory

	err := query.Order("created_at DESC, id DESC").
		Limit(page.Limit).
		Offset(page.Offset()).
		Find(&history).Error
	if err != nil {
		return nil, 0, err
	}

	return history, total, nil
}
