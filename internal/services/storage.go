package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/studyhive-dev/studyhive/internal/apperrors"
	"github.com/studyhive-dev/studyhive/internal/models"
	"github.com/studyhive-dev/studyhive/internal/utils"
)

type StorageService struct {
	db *gorm.DB
}

func NewStorageService(db *gorm.DB) *StorageService {
	return &StorageService{db: db}
}

// GetSettings returns the user's storage settings, creating the default row
// on first access.
func (s *StorageService) GetSettings(ctx context.Context, userID uint) (*models.StorageSetting, error) {
	var setting models.StorageSetting

	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&setting).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		setting = models.StorageSetting{UserID: userID, Provider: "local", QuotaBytes: 104857600}
		if err := s.db.WithContext(ctx).Create(&setting).Error; err != nil {
			return nil, err
		}
	}

	return &setting, nil
}

type UpdateStorageInput struct {
	Provider  *string
	BucketURL *string
}

func (s *StorageService) UpdateSettings(ctx context.Context, userID uint, input UpdateStorageInput) (*models.StorageSetting, error) {
	if _, err := s.GetSettings(ctx, userID); err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})

	if input.Provider != nil {
		if *input.Provider != "local" && *input.Provider != "s3" {
			return nil, apperrors.Validation("Provider must be local or s3")
		}
		updates["provider"] = *input.Provider
	}

	if input.BucketURL != nil {
		updates["bucket_url"] = *input.BucketURL
	}

	if len(updates) == 0 {
		return nil, apperrors.Validation("No valid fields to update")
	}

	err := s.db.WithContext(ctx).Model(&models.StorageSetting{}).
		Where("user_id = ?", userID).
		Updates(updates).Error
	if err != nil {
		return nil, err
	}

	var setting models.StorageSetting

	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&setting).Error; err != nil {
		return nil, err
	}

	return &setting, nil
}

// CheckQuota fails with a validation error when storing size more bytes
// would exceed the user's quota.
func (s *StorageService) CheckQuota(ctx context.Context, userID uint, size int64) error {
	setting, err := s.GetSettings(ctx, userID)
	if err != nil {
		return err
	}

	if setting.UsedBytes+size > setting.QuotaBytes {
		return apperrors.Validation("Storage quota exceeded")
	}

	return nil
}

func (s *StorageService) ListUsage(ctx context.Context, userID uint, page utils.Page) ([]models.StorageUsageLog, int64, error) {
	query := s.db.WithContext(ctx).Model(&models.StorageUsageLog{}).Where("user_id = ?", userID)

	var total int64

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []models.StorageUsageLog

	err := query.Order("created_at DESC, id DESC").
		Limit(page.Limit).
		Offset(page.Offset()).
		Find(&logs).Error
	if err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}

// recordUsage appends a usage log row and bumps the used-bytes counter in
// the caller's transaction. The log is append-only.
func (s *StorageService) recordUsage(tx *gorm.DB, userID uint, delta int64, action, filePath string) error {
	entry := models.StorageUsageLog{
		UserID:     userID,
		DeltaBytes: delta,
		Action:     action,
		FilePath:   filePath,
	}

	if err := tx.Create(&entry).Error; err != nil {
		return err
	}

	return tx.Model(&models.StorageSetting{}).
		Where("user_id = ?", userID).
		Update("used_bytes", gorm.Expr("GREATEST(used_bytes + ?, 0)", delta)).Error
}
