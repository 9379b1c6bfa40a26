package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/studyhive-dev/studyhive/internal/apperrors"
	"github.com/studyhive-dev/studyhive/internal/models"
	"github.com/studyhive-dev/studyhive/internal/types"
	"github.com/studyhive-dev/studyhive/internal/utils"
)

type FriendService struct {
	db            *gorm.DB
	notifications *NotificationService
}

func NewFriendService(db *gorm.DB, notifications *NotificationService) *FriendService {
	return &FriendService{db: db, notifications: notifications}
}

// SendRequest creates a pending row. One row per unordered pair: a request
// in either direction blocks a duplicate.
func (s *FriendService) SendRequest(ctx context.Context, requesterID, addresseeID uint) (*models.Friend, error) {
	if requesterID == addresseeID {
		return nil, apperrors.Validation("You cannot send a friend request to yourself")
	}

	var addressee models.User

	err := s.db.WithContext(ctx).First(&addressee, addresseeID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("User not found")
		}
		return nil, err
	}

	var existing models.Friend

	err = s.db.WithContext(ctx).
		Where("(requester_id = ? AND addressee_id = ?) OR (requester_id = ? AND addressee_id = ?)",
			requesterID, addresseeID, addresseeID, requesterID).
		First(&existing).Error
	if err == nil {
		switch existing.Status {
		case types.FriendStatusAccepted:
			return nil, apperrors.Conflict("You are already friends")
		case types.FriendStatusBlocked:
			return nil, apperrors.Forbidden("Unable to send a friend request to this user")
		default:
			return nil, apperrors.Conflict("A friend request already exists for this user")
		}
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	friend := models.Friend{
		RequesterID: requesterID,
		AddresseeID: addresseeID,
		Status:      types.FriendStatusPending,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&friend).Error; err != nil {
			if apperrors.IsDuplicate(err) {
				return apperrors.Conflict("A friend request already exists for this user")
			}
			return err
		}

		return s.notifications.create(tx, addresseeID, "friend_request", "New friend request", "You have received a friend request")
	})
	if err != nil {
		return nil, err
	}

	return &friend, nil
}

// Accept flips the pending row to accepted. Only the addressee may accept;
// the WHERE clause carries that check so there is no race between check and
// write, and an outsider gets the same 404 as a missing request.
func (s *FriendService) Accept(ctx context.Context, requestID, userID uint) (*models.Friend, error) {
	var friend models.Friend

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Friend{}).
			Where("id = ? AND addressee_id = ? AND status = ?", requestID, userID, types.FriendStatusPending).
			Update("status", types.FriendStatusAccepted)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return apperrors.NotFound("Friend request not found")
		}

		if err := tx.First(&friend, requestID).Error; err != nil {
			return err
		}

		return s.notifications.create(tx, friend.RequesterID, "friend_request", "Friend request accepted", "Your friend request was accepted")
	})
	if err != nil {
		return nil, err
	}

	return &friend, nil
}

func (s *FriendService) Reject(ctx context.Context, requestID, userID uint) error {
	result := s.db.WithContext(ctx).Model(&models.Friend{}).
		Where("id = ? AND addressee_id = ? AND status = ?", requestID, userID, types.FriendStatusPending).
		Update("status", types.FriendStatusRejected)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return apperrors.NotFound("Friend request not found")
	}

	return nil
}

// Unfriend removes the accepted row regardless of which side created it.
func (s *FriendService) Unfriend(ctx context.Context, userID, friendUserID uint) error {
	result := s.db.WithContext(ctx).
		Where("status = ?", types.FriendStatusAccepted).
		Where("(requester_id = ? AND addressee_id = ?) OR (requester_id = ? AND addressee_id = ?)",
			userID, friendUserID, friendUserID, userID).
		Delete(&models.Friend{})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return apperrors.NotFound("Friend not found")
	}

	return nil
}

// List returns accepted friendships for the user, either side of the pair.
// Each pair appears exactly once because only one row exists per pair.
func (s *FriendService) List(ctx context.Context, userID uint, page utils.Page) ([]models.Friend, int64, error) {
	query := s.db.WithContext(ctx).Model(&models.Friend{}).
		Where("status = ?", types.FriendStatusAccepted).
		Where("requester_id = ? OR addressee_id = ?", userID, userID)

	var total int64

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var friends []models.Friend

	err := query.Preload("Requester").Preload("Addressee").
		Order("created_at DESC, id DESC").
		Limit(page.Limit).
		Offset(page.Offset()).
		Find(&friends).Error
	if err != nil {
		return nil, 0, err
	}

	return friends, total, nil
}

// ListPending returns requests waiting on the user's answer.
func (s *FriendService) ListPending(ctx context.Context, userID uint, page utils.Page) ([]models.Friend, int64, error) {
	query := s.db.WithContext(ctx).Model(&models.Friend{}).
		Where("addressee_id = ? AND status = ?", userID, types.FriendStatusPending)

	var total int64

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var requests []models.Friend

	err := query.Preload("Requester").
		Order("created_at DESC, id DESC").
		Limit(page.Limit).
		Offset(page.Offset()).
		Find(&requests).Error
	if err != nil {
		return nil, 0, err
	}

	return requests, total, nil
}

// AreFriends reports whether the pair has an accepted row in either
// direction.
func (s *FriendService) AreFriends(ctx context.Context, userA, userB uint) (bool, error) {
	var count int64

	err := s.db.WithContext(ctx).Model(&models.Friend{}).
		Where("status = ?", types.FriendStatusAccepted).
		Where("(requester_id = ? AND addressee_id = ?) OR (requester_id = ? AND addressee_id = ?)",
			userA, userB, userB, userA).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}
