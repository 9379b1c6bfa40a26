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

type InvitationService struct {
	db            *gorm.DB
	groups        *GroupService
	notifications *NotificationService
}

func NewInvitationService(db *gorm.DB, groups *GroupService, notifications *NotificationService) *InvitationService {
	return &InvitationService{db: db, groups: groups, notifications: notifications}
}

// SendBulk invites several users in one transaction: all rows commit
// together or none do. Users who are already members or already invited are
// skipped; if everyone was skipped the call fails with a conflict.
func (s *InvitationService) SendBulk(ctx context.Context, groupID, inviterID uint, inviteeIDs []uint, message string) ([]models.GroupInvitation, error) {
	if len(inviteeIDs) == 0 {
		return nil, apperrors.Validation("At least one invitee is required")
	}

	if len(inviteeIDs) > 50 {
		return nil, apperrors.Validation("At most 50 invitees per request")
	}

	if err := s.groups.requireAdmin(ctx, groupID, inviterID); err != nil {
		return nil, err
	}

	var created []models.GroupInvitation

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, inviteeID := range inviteeIDs {
			if inviteeID == inviterID {
				continue
			}

			var user models.User

			if err := tx.First(&user, inviteeID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperrors.NotFound("One of the invited users does not exist")
				}
				return err
			}

			var memberCount int64

			err := tx.Model(&models.GroupMember{}).
				Where("group_id = ? AND user_id = ? AND status = ?", groupID, inviteeID, types.MemberStatusActive).
				Count(&memberCount).Error
			if err != nil {
				return err
			}
			if memberCount > 0 {
				continue
			}

			var pendingCount int64

			err = tx.Model(&models.GroupInvitation{}).
				Where("group_id = ? AND invitee_id = ? AND status = ?", groupID, inviteeID, types.InviteStatusPending).
				Count(&pendingCount).Error
			if err != nil {
				return err
			}
			if pendingCount > 0 {
				continue
			}

			invitation := models.GroupInvitation{
				GroupID:   groupID,
				InviteeID: inviteeID,
				InviterID: inviterID,
				Status:    types.InviteStatusPending,
				Message:   message,
			}

			if err := tx.Create(&invitation).Error; err != nil {
				if apperrors.IsDuplicate(err) {
					continue
				}
				return err
			}

			if err := s.notifications.create(tx, inviteeID, "group_invite", "Group invitation", "You have been invited to a study group"); err != nil {
				return err
			}

			created = append(created, invitation)
		}

		if len(created) == 0 {
			return apperrors.Conflict("All invited users are already members or invited")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// Accept flips the invitation and creates the membership in one
// transaction. The invitee-scoped WHERE doubles as the authorization check.
func (s *InvitationService) Accept(ctx context.Context, invitationID, userID uint) (*models.GroupMember, error) {
	var member models.GroupMember

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var invitation models.GroupInvitation

		err := tx.Where("id = ? AND invitee_id = ? AND status = ?", invitationID, userID, types.InviteStatusPending).
			First(&invitation).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("Invitation not found")
			}
			return err
		}

		var group models.StudyGroup

		if err := tx.First(&group, invitation.GroupID).Error; err != nil {
			return err
		}

		var count int64

		err = tx.Model(&models.GroupMember{}).
			Where("group_id = ? AND status = ?", group.ID, types.MemberStatusActive).
			Count(&count).Error
		if err != nil {
			return err
		}

		if count >= int64(group.Capacity) {
			return apperrors.Conflict("Group is full")
		}

		result := tx.Model(&models.GroupInvitation{}).
			Where("id = ? AND status = ?", invitationID, types.InviteStatusPending).
			Update("status", types.InviteStatusAccepted)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return apperrors.NotFound("Invitation not found")
		}

		var existing models.GroupMember

		err = tx.Where("group_id = ? AND user_id = ?", group.ID, userID).First(&existing).Error
		if err == nil {
			member = existing
			return tx.Model(&existing).Updates(map[string]interface{}{
				"status": types.MemberStatusActive,
				"role":   types.RoleMember,
			}).Error
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		member = models.GroupMember{
			GroupID: group.ID,
			UserID:  userID,
			Role:    types.RoleMember,
			Status:  types.MemberStatusActive,
		}

		return tx.Create(&member).Error
	})
	if err != nil {
		return nil, err
	}

	return &member, nil
}

func (s *InvitationService) Decline(ctx context.Context, invitationID, userID uint) error {
	result := s.db.WithContext(ctx).Model(&models.GroupInvitation{}).
		Where("id = ? AND invitee_id = ? AND status = ?", invitationID, userID, types.InviteStatusPending).
		Update("status", types.InviteStatusDeclined)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return apperrors.NotFound("Invitation not found")
	}

	return nil
}

// ListForUser returns pending invitations addressed to the user.
func (s *InvitationService) ListForUser(ctx context.Context, userID uint, page utils.Page) ([]models.GroupInvitation, int64, error) {
	query := s.db.WithContext(ctx).Model(&models.GroupInvitation{}).
		Where("invitee_id = ? AND status = ?", userID, types.InviteStatusPending)

	var total int64

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var invitations []models.GroupInvitation

	err := query.Preload("Group").Preload("Inviter").
		Order("created_at DESC, id DESC").
		Limit(page.Limit).
		Offset(page.Offset()).
		Find(&invitations).Error
	if err != nil {
		return nil, 0, err
	}

	return invitations, total, nil
}
