package services

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"gorm.io/gorm"

	"github.com/studyhive-dev/studyhive/internal/apperrors"
	"github.com/studyhive-dev/studyhive/internal/models"
	"github.com/studyhive-dev/studyhive/internal/types"
	"github.com/studyhive-dev/studyhive/internal/utils"
)

type GoalService struct {
	db *gorm.DB
}

func NewGoalService(db *gorm.DB) *GoalService {
	return &GoalService{db: db}
}

type CreateGoalInput struct {
	Title       string
	Description string
	Category    string
	StartDate   time.Time
	EndDate     time.Time
}

func (s *GoalService) Create(ctx context.Context, userID uint, input CreateGoalInput) (*models.Goal, error) {
	title := strings.TrimSpace(input.Title)

	if title == "" || utf8.RuneCountInString(title) > 200 {
		return nil, apperrors.Validation("Title must be between 1 and 200 characters")
	}

	if !input.EndDate.After(input.StartDate) {
		return nil, apperrors.Validation("End date must be after start date")
	}

	goal := models.Goal{
		UserID:      userID,
		Title:       title,
		Description: input.Description,
		Category:    input.Category,
		Status:      types.GoalStatusActive,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
	}

	if err := s.db.WithContext(ctx).Create(&goal).Error; err != nil {
		return nil, err
	}

	return &goal, nil
}

func (s *GoalService) Get(ctx context.Context, id, requestorID uint) (*models.Goal, error) {
	var goal models.Goal

	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, requestorID).
		First(&goal).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Goal not found")
		}
		return nil, err
	}

	return &goal, nil
}

type GoalFilters struct {
	Category string
	Status   string
	Search   string
}

func (s *GoalService) List(ctx context.Context, userID uint, filters GoalFilters, page utils.Page) ([]models.Goal, int64, error) {
	query := s.db.WithContext(ctx).Model(&models.Goal{}).Where("user_id = ?", userID)

	if filters.Category != "" {
		query = query.Where("category = ?", filters.Category)
	}

	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}

	if filters.Search != "" {
		pattern := "%" + filters.Search + "%"
		query = query.Where("title LIKE ? OR description LIKE ?", pattern, pattern)
	}

	var total int64

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var goals []models.Goal

	err := query.Order("created_at DESC, id DESC").
		Limit(page.Limit).
		Offset(page.Offset()).
		Find(&goals).Error
	if err != nil {
		return nil, 0, err
	}

	return goals, total, nil
}

type UpdateGoalInput struct {
	Title       *string
	Description *string
	Category    *string
	Progress    *int
	Status      *string
}

// Update is owner-atomic: ownership is re-verified in the same statement as
// the mutation, so zero affected rows covers both "doesn't exist" and "not
// yours" without leaking which.
func (s *GoalService) Update(ctx context.Context, id, userID uint, input UpdateGoalInput) (*models.Goal, error) {
	updates := make(map[string]interface{})

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" || utf8.RuneCountInString(title) > 200 {
			return nil, apperrors.Validation("Title must be between 1 and 200 characters")
		}
		updates["title"] = title
	}

	if input.Description != nil {
		updates["description"] = *input.Description
	}

	if input.Category != nil {
		updates["category"] = *input.Category
	}

	if input.Progress != nil {
		if *input.Progress < 0 || *input.Progress > 100 {
			return nil, apperrors.Validation("Progress must be between 0 and 100")
		}
		updates["progress"] = *input.Progress
		if *input.Progress == 100 {
			updates["status"] = types.GoalStatusCompleted
		}
	}

	if input.Status != nil {
		if *input.Status != types.GoalStatusActive && *input.Status != types.GoalStatusCompleted && *input.Status != types.GoalStatusAbandoned {
			return nil, apperrors.Validation("Invalid goal status")
		}
		updates["status"] = *input.Status
	}

	if len(updates) == 0 {
		return nil, apperrors.Validation("No valid fields to update")
	}

	// Completed and abandoned are terminal: the status guard in the WHERE
	// keeps a finished goal from re-opening.
	tx := s.db.WithContext(ctx).Model(&models.Goal{}).
		Where("id = ? AND user_id = ?", id, userID)

	if _, changesStatus := updates["status"]; changesStatus {
		tx = tx.Where("status = ?", types.GoalStatusActive)
	}

	result := tx.Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}

	if result.RowsAffected == 0 {
		return nil, apperrors.NotFound("Goal not found")
	}

	return s.Get(ctx, id, userID)
}

func (s *GoalService) Delete(ctx context.Context, id, userID uint) error {
	result := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Goal{})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return apperrors.NotFound("Goal not found")
	}

	return nil
}
