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

type MentorshipService struct {
	db            *gorm.DB
	notifications *NotificationService
}

func NewMentorshipService(db *gorm.DB, notifications *NotificationService) *MentorshipService {
	return &MentorshipService{db: db, notifications: notifications}
}

// Request creates a pending mentorship from mentee to mentor. One row per
// (mentor, mentee) pair.
func (s *MentorshipService) Request(ctx context.Context, menteeID, mentorID uint, subject string) (*models.Mentorship, error) {
	if menteeID == mentorID {
		return nil, apperrors.Validation("You cannot mentor yourself")
	}

	subject = strings.TrimSpace(subject)
	if subject == "" || utf8.RuneCountInString(subject) > 100 {
		return nil, apperrors.Validation("Subject must be between 1 and 100 characters")
	}

	var mentor models.User

	err := s.db.WithContext(ctx).First(&mentor, mentorID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("User not found")
		}
		return nil, err
	}

	mentorship := models.Mentorship{
		MentorID: mentorID,
		MenteeID: menteeID,
		Subject:  subject,
		Status:   types.MentorshipStatusPending,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&mentorship).Error; err != nil {
			if apperrors.IsDuplicate(err) {
				return apperrors.Conflict("A mentorship already exists with this user")
			}
			return err
		}

		return s.notifications.create(tx, mentorID, "mentorship", "Mentorship request", "You have received a mentorship request")
	})
	if err != nil {
		return nil, err
	}

	return &mentorship, nil
}

// Accept is mentor-only; the WHERE clause carries the check.
func (s *MentorshipService) Accept(ctx context.Context, mentorshipID, userID uint) (*models.Mentorship, error) {
	var mentorship models.Mentorship

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Mentorship{}).
			Where("id = ? AND mentor_id = ? AND status = ?", mentorshipID, userID, types.MentorshipStatusPending).
			Update("status", types.MentorshipStatusAccepted)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return apperrors.NotFound("Mentorship request not found")
		}

		if err := tx.First(&mentorship, mentorshipID).Error; err != nil {
			return err
		}

		return s.notifications.create(tx, mentorship.MenteeID, "mentorship", "Mentorship accepted", "Your mentorship request was accepted")
	})
	if err != nil {
		return nil, err
	}

	return &mentorship, nil
}

func (s *MentorshipService) Decline(ctx context.Context, mentorshipID, userID uint) error {
	result := s.db.WithContext(ctx).Model(&models.Mentorship{}).
		Where("id = ? AND mentor_id = ? AND status = ?", mentorshipID, userID, types.MentorshipStatusPending).
		Update("status", types.MentorshipStatusDeclined)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return apperrors.NotFound("Mentorship request not found")
	}

	return nil
}

// End closes an accepted mentorship. Either side may end it; ended is
// terminal.
func (s *MentorshipService) End(ctx context.Context, mentorshipID, userID uint) error {
	now := time.Now().UTC()

	result := s.db.WithContext(ctx).Model(&models.Mentorship{}).
		Where("id = ? AND status = ? AND (mentor_id = ? OR mentee_id = ?)",
			mentorshipID, types.MentorshipStatusAccepted, userID, userID).
		Updates(map[string]interface{}{"status": types.MentorshipStatusEnded, "ended_at": now})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return apperrors.NotFound("Mentorship not found")
	}

	return nil
}

// List returns mentorships where the user is on the requested side, or both
// sides when role is empty.
func (s *MentorshipService) List(ctx context.Context, userID uint, role, status string, page utils.Page) ([]models.Mentorship, int64, error) {
	query := s.db.WithContext(ctx).Model(&models.Mentorship{})

	switch role {
	case "mentor":
		query = query.Where("mentor_id = ?", userID)
	case "mentee":
		query = query.Where("mentee_id = ?", userID)
	case "":
		query = query.Where("mentor_id = ? OR mentee_id = ?", userID, userID)
	default:
		return nil, 0, apperrors.Validation("Role filter must be mentor or mentee")
	}

	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var mentorships []models.Mentorship

	err := query.Preload("Mentor").Preload("Mentee").
		Order("created_at DESC, id DESC").
		Limit(page.Limit).
		Offset(page.Offset()).
		Find(&mentorships).Error
	if err != nil {
		return nil, 0, err
	}

	return mentorships, total, nil
}
