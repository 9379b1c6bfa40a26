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
	"github.com/studyhive-dev/studyhive/internal/utils"
)

type SessionService struct {
	db *gorm.DB
}

func NewSessionService(db *gorm.DB) *SessionService {
	return &SessionService{db: db}
}

type CreateSessionInput struct {
	Subject     string
	StartedAt   time.Time
	EndedAt     time.Time
	FocusRating int
	Note        string
}

func (s *SessionService) Create(ctx context.Context, userID uint, input CreateSessionInput) (*models.StudySession, error) {
	subject := strings.TrimSpace(input.Subject)

	if subject == "" || utf8.RuneCountInString(subject) > 100 {
		return nil, apperrors.Validation("Subject must be between 1 and 100 characters")
	}

	if !input.EndedAt.After(input.StartedAt) {
		return nil, apperrors.Validation("End time must be after start time")
	}

	if input.FocusRating != 0 && (input.FocusRating < 1 || input.FocusRating > 5) {
		return nil, apperrors.Validation("Focus rating must be between 1 and 5")
	}

	session := models.StudySession{
		UserID:          userID,
		Subject:         subject,
		StartedAt:       input.StartedAt,
		EndedAt:         input.EndedAt,
		DurationMinutes: int(input.EndedAt.Sub(input.StartedAt) / time.Minute),
		FocusRating:     input.FocusRating,
		Note:            input.Note,
	}

	if err := s.db.WithContext(ctx).Create(&session).Error; err != nil {
		return nil, err
	}

	return &session, nil
}

func (s *SessionService) Get(ctx context.Context, id, requestorID uint) (*models.StudySession, error) {
	var session models.StudySession

	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, requestorID).
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Study session not found")
		}
		return nil, err
	}

	return &session, nil
}

type SessionFilters struct {
	Subject string
	From    *time.Time
	To      *time.Time
}

func (s *SessionService) List(ctx context.Context, userID uint, filters SessionFilters, page utils.Page) ([]models.StudySession, int64, error) {
	query := s.db.WithContext(ctx).Model(&models.StudySession{}).Where("user_id = ?", userID)

	if filters.Subject != "" {
		query = query.Where("subject = ?", filters.Subject)
	}

	if filters.From != nil {
		query = query.Where("started_at >= ?", *filters.From)
	}

	if filters.To != nil {
		query = query.Where("started_at < ?", *filters.To)
	}

	var total int64

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var sessions []models.StudySession

	err := query.Order("created_at DESC, id DESC").
		Limit(page.Limit).
		Offset(page.Offset()).
		Find(&sessions).Error
	if err != nil {
		return nil, 0, err
	}

	return sessions, total, nil
}

type UpdateSessionInput struct {
	Subject     *string
	FocusRating *int
	Note        *string
}

func (s *SessionService) Update(ctx context.Context, id, userID uint, input UpdateSessionInput) (*models.StudySession, error) {
	updates := make(map[string]interface{})

	if input.Subject != nil {
		subject := strings.TrimSpace(*input.Subject)
		if subject == "" || utf8.RuneCountInString(subject) > 100 {
			return nil, apperrors.Validation("Subject must be between 1 and 100 characters")
		}
		updates["subject"] = subject
	}

	if input.FocusRating != nil {
		if *input.FocusRating < 1 || *input.FocusRating > 5 {
			return nil, apperrors.Validation("Focus rating must be between 1 and 5")
		}
		updates["focus_rating"] = *input.FocusRating
	}

	if input.Note != nil {
		updates["note"] = *input.Note
	}

	if len(updates) == 0 {
		return nil, apperrors.Validation("No valid fields to update")
	}

	result := s.db.WithContext(ctx).Model(&models.StudySession{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}

	if result.RowsAffected == 0 {
		return nil, apperrors.NotFound("Study session not found")
	}

	return s.Get(ctx, id, userID)
}

func (s *SessionService) Delete(ctx context.Context, id, userID uint) error {
	result := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.StudySession{})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return apperrors.NotFound("Study session not found")
	}

	return nil
}
