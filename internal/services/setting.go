package services

import (
	"context"
	"errors"
	"unicode/utf8"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/studyhive-dev/studyhive/internal/apperrors"
	"github.com/studyhive-dev/studyhive/internal/models"
)

type SettingService struct {
	db *gorm.DB
}

func NewSettingService(db *gorm.DB) *SettingService {
	return &SettingService{db: db}
}

// Get returns the user's settings, creating the default row on first access.
func (s *SettingService) Get(ctx context.Context, userID uint) (*models.UserSetting, error) {
	var setting models.UserSetting

	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&setting).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		setting = models.UserSetting{
			UserID:             userID,
			Theme:              "light",
			Language:           "en",
			FontSize:           14,
			NotifyFriends:      true,
			NotifyChat:         true,
			NotifyAchievements: true,
		}
		if err := s.db.WithContext(ctx).Create(&setting).Error; err != nil {
			return nil, err
		}
	}

	return &setting, nil
}

type UpdateSettingInput struct {
	Theme              *string
	Language           *string
	FontSize           *int
	NotifyFriends      *bool
	NotifyChat         *bool
	NotifyAchievements *bool
	FocusMode          *models.FocusMode
}

func (s *SettingService) Update(ctx context.Context, userID uint, input UpdateSettingInput) (*models.UserSetting, error) {
	if _, err := s.Get(ctx, userID); err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})

	if input.Theme != nil {
		if *input.Theme != "light" && *input.Theme != "dark" && *input.Theme != "system" {
			return nil, apperrors.Validation("Theme must be light, dark, or system")
		}
		updates["theme"] = *input.Theme
	}

	if input.Language != nil {
		if utf8.RuneCountInString(*input.Language) < 2 || utf8.RuneCountInString(*input.Language) > 8 {
			return nil, apperrors.Validation("Invalid language code")
		}
		updates["language"] = *input.Language
	}

	if input.FontSize != nil {
		if *input.FontSize < 8 || *input.FontSize > 32 {
			return nil, apperrors.Validation("Font size must be between 8 and 32")
		}
		updates["font_size"] = *input.FontSize
	}

	if input.NotifyFriends != nil {
		updates["notify_friends"] = *input.NotifyFriends
	}

	if input.NotifyChat != nil {
		updates["notify_chat"] = *input.NotifyChat
	}

	if input.NotifyAchievements != nil {
		updates["notify_achievements"] = *input.NotifyAchievements
	}

	if input.FocusMode != nil {
		if input.FocusMode.DurationMinutes < 0 || input.FocusMode.DurationMinutes > 480 {
			return nil, apperrors.Validation("Focus duration must be between 0 and 480 minutes")
		}
		if input.FocusMode.BreakMinutes < 0 || input.FocusMode.BreakMinutes > 120 {
			return nil, apperrors.Validation("Break duration must be between 0 and 120 minutes")
		}
		updates["focus_mode"] = datatypes.NewJSONType(*input.FocusMode)
	}

	if len(updates) == 0 {
		return nil, apperrors.Validation("No valid fields to update")
	}

	err := s.db.WithContext(ctx).Model(&models.UserSetting{}).
		Where("user_id = ?", userID).
		Updates(updates).Error
	if err != nil {
		return nil, err
	}

	var setting models.UserSetting

	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&setting).Error; err != nil {
		return nil, err
	}

	return &setting, nil
}
