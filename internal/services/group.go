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

type GroupService struct {
	db *gorm.DB
}

func NewGroupService(db *gorm.DB) *GroupService {
	return &GroupService{db: db}
}

type CreateGroupInput struct {
	Name        string
	Description string
	Category    string
	Capacity    int
	Visibility  string
}

// Create inserts the group and its first admin membership in one
// transaction.
func (s *GroupService) Create(ctx context.Context, ownerID uint, input CreateGroupInput) (*models.StudyGroup, error) {
	name := strings.TrimSpace(input.Name)

	if name == "" || utf8.RuneCountInString(name) > 100 {
		return nil, apperrors.Validation("Group name must be between 1 and 100 characters")
	}

	capacity := input.Capacity
	if capacity == 0 {
		capacity = 20
	}
	if capacity < 2 || capacity > 500 {
		return nil, apperrors.Validation("Capacity must be between 2 and 500")
	}

	visibility := input.Visibility
	if visibility == "" {
		visibility = types.VisibilityPublic
	}
	if visibility != types.VisibilityPublic && visibility != types.VisibilityPrivate {
		return nil, apperrors.Validation("Visibility must be public or private")
	}

	group := models.StudyGroup{
		OwnerID:     ownerID,
		Name:        name,
		Description: input.Description,
		Category:    input.Category,
		Capacity:    capacity,
		Visibility:  visibility,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&group).Error; err != nil {
			return err
		}

		return tx.Create(&models.GroupMember{
			GroupID: group.ID,
			UserID:  ownerID,
			Role:    types.RoleAdmin,
			Status:  types.MemberStatusActive,
		}).Error
	})
	if err != nil {
		return nil, err
	}

	return &group, nil
}

// Get returns the group. Private groups are visible to members only.
func (s *GroupService) Get(ctx context.Context, id, requestorID uint) (*models.StudyGroup, error) {
	var group models.StudyGroup

	err := s.db.WithContext(ctx).First(&group, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Group not found")
		}
		return nil, err
	}

	if group.Visibility == types.VisibilityPrivate {
		if _, err := s.activeMember(ctx, id, requestorID); err != nil {
			return nil, apperrors.Forbidden("This group is private")
		}
	}

	return &group, nil
}

type GroupFilters struct {
	Category string
	Search   string
}

// List returns public groups plus any the requestor belongs to.
func (s *GroupService) List(ctx context.Context, requestorID uint, filters GroupFilters, page utils.Page) ([]models.StudyGroup, int64, error) {
	memberGroups := s.db.Model(&models.GroupMember{}).
		Select("group_id").
		Where("user_id = ? AND status = ?", requestorID, types.MemberStatusActive)

	query := s.db.WithContext(ctx).Model(&models.StudyGroup{}).
		Where("visibility = ? OR id IN (?)", types.VisibilityPublic, memberGroups)

	if filters.Category != "" {
		query = query.Where("category = ?", filters.Category)
	}

	if filters.Search != "" {
		pattern := "%" + filters.Search + "%"
		query = query.Where("name LIKE ? OR description LIKE ?", pattern, pattern)
	}

	var total int64

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var groups []models.StudyGroup

	err := query.Order("created_at DESC, id DESC").
		Limit(page.Limit).
		Offset(page.Offset()).
		Find(&groups).Error
	if err != nil {
		return nil, 0, err
	}

	return groups, total, nil
}

type UpdateGroupInput struct {
	Name        *string
	Description *string
	Category    *string
	Capacity    *int
	Visibility  *string
}

// Update is admin-only. Ownership of the admin role is checked first; the
// mutation itself is still scoped to the group id.
func (s *GroupService) Update(ctx context.Context, id, userID uint, input UpdateGroupInput) (*models.StudyGroup, error) {
	if err := s.requireAdmin(ctx, id, userID); err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" || utf8.RuneCountInString(name) > 100 {
			return nil, apperrors.Validation("Group name must be between 1 and 100 characters")
		}
		updates["name"] = name
	}

	if input.Description != nil {
		updates["description"] = *input.Description
	}

	if input.Category != nil {
		updates["category"] = *input.Category
	}

	if input.Capacity != nil {
		if *input.Capacity < 2 || *input.Capacity > 500 {
			return nil, apperrors.Validation("Capacity must be between 2 and 500")
		}
		updates["capacity"] = *input.Capacity
	}

	if input.Visibility != nil {
		if *input.Visibility != types.VisibilityPublic && *input.Visibility != types.VisibilityPrivate {
			return nil, apperrors.Validation("Visibility must be public or private")
		}
		updates["visibility"] = *input.Visibility
	}

	if len(updates) == 0 {
		return nil, apperrors.Validation("No valid fields to update")
	}

	result := s.db.WithContext(ctx).Model(&models.StudyGroup{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}

	if result.RowsAffected == 0 {
		return nil, apperrors.NotFound("Group not found")
	}

	var group models.StudyGroup

	if err := s.db.WithContext(ctx).First(&group, id).Error; err != nil {
		return nil, err
	}

	return &group, nil
}

func (s *GroupService) Delete(ctx context.Context, id, userID uint) error {
	if err := s.requireAdmin(ctx, id, userID); err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("group_id = ?", id).Delete(&models.GroupMember{}).Error; err != nil {
			return err
		}

		if err := tx.Where("group_id = ?", id).Delete(&models.GroupInvitation{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.StudyGroup{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return apperrors.NotFound("Group not found")
		}

		return nil
	})
}

// Join adds the requestor as a member. The capacity check and the insert run
// in one transaction; the unique (group, user) index backstops double joins.
func (s *GroupService) Join(ctx context.Context, groupID, userID uint) (*models.GroupMember, error) {
	var member models.GroupMember

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var group models.StudyGroup

		if err := tx.First(&group, groupID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("Group not found")
			}
			return err
		}

		if group.Visibility == types.VisibilityPrivate {
			return apperrors.Forbidden("This group is invitation-only")
		}

		var existing models.GroupMember

		err := tx.Where("group_id = ? AND user_id = ?", groupID, userID).First(&existing).Error
		if err == nil {
			if existing.Status == types.MemberStatusActive {
				return apperrors.Conflict("You are already a member of this group")
			}

			// Re-joining after leaving re-activates the old row.
			member = existing
			return tx.Model(&existing).Updates(map[string]interface{}{
				"status": types.MemberStatusActive,
				"role":   types.RoleMember,
			}).Error
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		var count int64

		if err := tx.Model(&models.GroupMember{}).
			Where("group_id = ? AND status = ?", groupID, types.MemberStatusActive).
			Count(&count).Error; err != nil {
			return err
		}

		if count >= int64(group.Capacity) {
			return apperrors.Conflict("Group is full")
		}

		member = models.GroupMember{
			GroupID: groupID,
			UserID:  userID,
			Role:    types.RoleMember,
			Status:  types.MemberStatusActive,
		}

		if err := tx.Create(&member).Error; err != nil {
			if apperrors.IsDuplicate(err) {
				return apperrors.Conflict("You are already a member of this group")
			}
			return err
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &member, nil
}

// Leave marks the membership left. The last admin cannot leave; they must
// delete the group or promote someone first.
func (s *GroupService) Leave(ctx context.Context, groupID, userID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var member models.GroupMember

		err := tx.Where("group_id = ? AND user_id = ? AND status = ?", groupID, userID, types.MemberStatusActive).
			First(&member).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("Membership not found")
			}
			return err
		}

		if member.Role == types.RoleAdmin {
			var admins int64

			err := tx.Model(&models.GroupMember{}).
				Where("group_id = ? AND role = ? AND status = ?", groupID, types.RoleAdmin, types.MemberStatusActive).
				Count(&admins).Error
			if err != nil {
				return err
			}

			if admins <= 1 {
				return apperrors.Validation("The last admin cannot leave the group")
			}
		}

		return tx.Model(&member).Update("status", types.MemberStatusLeft).Error
	})
}

func (s *GroupService) Members(ctx context.Context, groupID, requestorID uint, page utils.Page) ([]models.GroupMember, int64, error) {
	if _, err := s.Get(ctx, groupID, requestorID); err != nil {
		return nil, 0, err
	}

	query := s.db.WithContext(ctx).Model(&models.GroupMember{}).
		Where("group_id = ? AND status = ?", groupID, types.MemberStatusActive)

	var total int64

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var members []models.GroupMember

	err := query.Preload("User").
		Order("created_at DESC, id DESC").
		Limit(page.Limit).
		Offset(page.Offset()).
		Find(&members).Error
	if err != nil {
		return nil, 0, err
	}

	return members, total, nil
}

// SetRole promotes or demotes a member. Admin-only; an admin cannot demote
// themselves below the last-admin floor.
func (s *GroupService) SetRole(ctx context.Context, groupID, actorID, memberUserID uint, role string) error {
	if role != types.RoleAdmin && role != types.RoleMember {
		return apperrors.Validation("Role must be admin or member")
	}

	if err := s.requireAdmin(ctx, groupID, actorID); err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if role == types.RoleMember && actorID == memberUserID {
			var admins int64

			err := tx.Model(&models.GroupMember{}).
				Where("group_id = ? AND role = ? AND status = ?", groupID, types.RoleAdmin, types.MemberStatusActive).
				Count(&admins).Error
			if err != nil {
				return err
			}

			if admins <= 1 {
				return apperrors.Validation("The last admin cannot demote themselves")
			}
		}

		result := tx.Model(&models.GroupMember{}).
			Where("group_id = ? AND user_id = ? AND status = ?", groupID, memberUserID, types.MemberStatusActive).
			Update("role", role)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return apperrors.NotFound("Member not found")
		}

		return nil
	})
}

func (s *GroupService) activeMember(ctx context.Context, groupID, userID uint) (*models.GroupMember, error) {
	var member models.GroupMember

	err := s.db.WithContext(ctx).
		Where("group_id = ? AND user_id = ? AND status = ?", groupID, userID, types.MemberStatusActive).
		First(&member).Error
	if err != nil {
		return nil, err
	}

	return &member, nil
}

func (s *GroupService) requireAdmin(ctx context.Context, groupID, userID uint) error {
	member, err := s.activeMember(ctx, groupID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("Group not found")
		}
		return err
	}

	if member.Role != types.RoleAdmin {
		return apperrors.Forbidden("Only group admins can do this")
	}

	return nil
}
