package services

import (
	"context"
	"errors"
	"unicode/utf8"

	"gorm.io/gorm"

	"github.com/studyhive-dev/studyhive/internal/apperrors"
	"github.com/studyhive-dev/studyhive/internal/models"
)

type ProfileService struct {
	db *gorm.DB
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

// Get returns the user's profile, creating the default row on first access.
func (s *ProfileService) Get(ctx context.Context, userID uint) (*models.UserProfile, error) {
	var profile models.UserProfile

	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		profile = models.UserProfile{UserID: userID, Timezone: "UTC", DailyGoalMinutes: 60}
		if err := s.db.WithContext(ctx).Create(&profile).Error; err != nil {
			return nil, err
		}
	}

	return &profile, nil
}

type UpdateProfileInput struct {
	Bio              *string
	AvatarPath       *string
	Timezone         *string
	DailyGoalMinutes *int
}

func (s *ProfileService) Update(ctx context.Context, userID uint, input UpdateProfileInput) (*models.UserProfile, error) {
	if _, err := s.Get(ctx, userID); err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})

	if input.Bio != nil {
		if utf8.RuneCountInString(*input.Bio) > 500 {
			return nil, apperrors.Validation("Bio must be at most 500 characters")
		}
		updates["bio"] = *input.Bio
	}

	if input.AvatarPath != nil {
		updates["avatar_path"] = *input.AvatarPath
	}

	if input.Timezone != nil {
		updates["timezone"] = *input.Timezone
	}

	if input.DailyGoalMinutes != nil {
		if *input.DailyGoalMinutes < 0 || *input.DailyGoalMinutes > 1440 {
			return nil, apperrors.Validation("Daily goal must be between 0 and 1440 minutes")
		}
		updates["daily_goal_minutes"] = *input.DailyGoalMinutes
	}

	if len(updates) == 0 {
		return nil, apperrors.Validation("No valid fields to update")
	}

	err := s.db.WithContext(ctx).Model(&models.UserProfile{}).
		Where("user_id = ?", userID).
		Updates(updates).Error
	if err != nil {
		return nil, err
	}

	var profile models.UserProfile

	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}

	return &profile, nil
}
