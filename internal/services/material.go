package services

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"

	"github.com/studyhive-dev/studyhive/internal/apperrors"
	"github.com/studyhive-dev/studyhive/internal/models"
	"github.com/studyhive-dev/studyhive/internal/types"
	"github.com/studyhive-dev/studyhive/internal/utils"
)

type MaterialService struct {
	db       *gorm.DB
	uploader *utils.Uploader
	storage  *StorageService
}

func NewMaterialService(db *gorm.DB, uploader *utils.Uploader, storage *StorageService) *MaterialService {
	return &MaterialService{db: db, uploader: uploader, storage: storage}
}

type CreateMaterialInput struct {
	Title      string
	Category   string
	Content    string
	FilePath   string
	FileSize   int64
	Visibility string
}

func (s *MaterialService) Create(ctx context.Context, userID uint, input CreateMaterialInput) (*models.Material, error) {
	title := strings.TrimSpace(input.Title)

	if title == "" || utf8.RuneCountInString(title) > 200 {
		return nil, apperrors.Validation("Title must be between 1 and 200 characters")
	}

	visibility := input.Visibility
	if visibility == "" {
		visibility = types.VisibilityPrivate
	}
	if visibility != types.VisibilityPrivate && visibility != types.VisibilityFriends && visibility != types.VisibilityPublic {
		return nil, apperrors.Validation("Invalid visibility")
	}

	material := models.Material{
		UserID:     userID,
		Title:      title,
		Category:   input.Category,
		Content:    input.Content,
		FilePath:   input.FilePath,
		Visibility: visibility,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&material).Error; err != nil {
			return err
		}

		if input.FilePath != "" && input.FileSize > 0 {
			return s.storage.recordUsage(tx, userID, input.FileSize, "upload", input.FilePath)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &material, nil
}

// Get enforces visibility: private materials are owner-only, friends-scoped
// materials additionally open to accepted friends, public to everyone.
func (s *MaterialService) Get(ctx context.Context, id, requestorID uint) (*models.Material, error) {
	var material models.Material

	err := s.db.WithContext(ctx).First(&material, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Material not found")
		}
		return nil, err
	}

	if material.UserID == requestorID || material.Visibility == types.VisibilityPublic {
		return &material, nil
	}

	if material.Visibility == types.VisibilityFriends {
		var count int64

		err := s.db.WithContext(ctx).Model(&models.Friend{}).
			Where("status = ?", types.FriendStatusAccepted).
			Where("(requester_id = ? AND addressee_id = ?) OR (requester_id = ? AND addressee_id = ?)",
				material.UserID, requestorID, requestorID, material.UserID).
			Count(&count).Error
		if err != nil {
			return nil, err
		}

		if count > 0 {
			return &material, nil
		}
	}

	return nil, apperrors.Forbidden("You do not have access to this material")
}

type MaterialFilters struct {
	Category string
	Search   string
}

func (s *MaterialService) List(ctx context.Context, userID uint, filters MaterialFilters, page utils.Page) ([]models.Material, int64, error) {
	query := s.db.WithContext(ctx).Model(&models.Material{}).Where("user_id = ?", userID)

	if filters.Category != "" {
		query = query.Where("category = ?", filters.Category)
	}

	if filters.Search != "" {
		pattern := "%" + filters.Search + "%"
		query = query.Where("title LIKE ? OR content LIKE ?", pattern, pattern)
	}

	var total int64

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var materials []models.Material

	err := query.Order("created_at DESC, id DESC").
		Limit(page.Limit).
		Offset(page.Offset()).
		Find(&materials).Error
	if err != nil {
		return nil, 0, err
	}

	return materials, total, nil
}

type UpdateMaterialInput struct {
	Title      *string
	Category   *string
	Content    *string
	Visibility *string
	Rating     *int
}

func (s *MaterialService) Update(ctx context.Context, id, userID uint, input UpdateMaterialInput) (*models.Material, error) {
	updates := make(map[string]interface{})

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" || utf8.RuneCountInString(title) > 200 {
			return nil, apperrors.Validation("Title must be between 1 and 200 characters")
		}
		updates["title"] = title
	}

	if input.Category != nil {
		updates["category"] = *input.Category
	}

	if input.Content != nil {
		updates["content"] = *input.Content
	}

	if input.Visibility != nil {
		if *input.Visibility != types.VisibilityPrivate && *input.Visibility != types.VisibilityFriends && *input.Visibility != types.VisibilityPublic {
			return nil, apperrors.Validation("Invalid visibility")
		}
		updates["visibility"] = *input.Visibility
	}

	if input.Rating != nil {
		if *input.Rating < 1 || *input.Rating > 5 {
			return nil, apperrors.Validation("Rating must be between 1 and 5")
		}
		updates["rating"] = *input.Rating
	}

	if len(updates) == 0 {
		return nil, apperrors.Validation("No valid fields to update")
	}

	result := s.db.WithContext(ctx).Model(&models.Material{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}

	if result.RowsAffected == 0 {
		return nil, apperrors.NotFound("Material not found")
	}

	var material models.Material

	if err := s.db.WithContext(ctx).First(&material, id).Error; err != nil {
		return nil, err
	}

	return &material, nil
}

// Delete soft-deletes the row and releases the stored bytes from the owner's
// quota in the same transaction. The blob itself is removed best-effort.
func (s *MaterialService) Delete(ctx context.Context, id, userID uint) error {
	var material models.Material

	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&material).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("Material not found")
		}
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Material{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return apperrors.NotFound("Material not found")
		}

		if material.FilePath != "" {
			var usage models.StorageUsageLog

			err := tx.Where("user_id = ? AND file_path = ? AND action = ?", userID, material.FilePath, "upload").
				Order("id DESC").
				First(&usage).Error
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			if err == nil {
				return s.storage.recordUsage(tx, userID, -usage.DeltaBytes, "delete", material.FilePath)
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	if material.FilePath != "" {
		_ = s.uploader.Remove(material.FilePath)
	}

	return nil
}
