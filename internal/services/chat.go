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

// Broadcaster pushes a persisted message to connected room participants.
// The websocket hub implements it; a nil broadcaster disables pushes.
type Broadcaster interface {
	BroadcastMessage(roomID uint, message *models.ChatMessage)
}

type ChatService struct {
	db          *gorm.DB
	broadcaster Broadcaster
}

func NewChatService(db *gorm.DB, broadcaster Broadcaster) *ChatService {
	return &ChatService{db: db, broadcaster: broadcaster}
}

// RoomSummary is a room plus the requestor's unread count.
type RoomSummary struct {
	Room        models.ChatRoom `json:"room"`
	UnreadCount int64           `json:"unread_count"`
}

// CreateDirectRoom returns the existing direct room for the pair when there
// is one; otherwise it creates the room and both participant rows in one
// transaction.
func (s *ChatService) CreateDirectRoom(ctx context.Context, userID, otherID uint) (*models.ChatRoom, error) {
	if userID == otherID {
		return nil, apperrors.Validation("You cannot open a chat with yourself")
	}

	var other models.User

	err := s.db.WithContext(ctx).First(&other, otherID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("User not found")
		}
		return nil, err
	}

	var room models.ChatRoom

	// Dedup: a direct room whose participant set is exactly this pair.
	err = s.db.WithContext(ctx).
		Joins("JOIN chat_room_participants a ON a.room_id = chat_rooms.id AND a.user_id = ?", userID).
		Joins("JOIN chat_room_participants b ON b.room_id = chat_rooms.id AND b.user_id = ?", otherID).
		Where("chat_rooms.type = ?", types.RoomTypeDirect).
		First(&room).Error
	if err == nil {
		return &room, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	room = models.ChatRoom{Type: types.RoomTypeDirect}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&room).Error; err != nil {
			return err
		}

		participants := []models.ChatRoomParticipant{
			{RoomID: room.ID, UserID: userID, Role: types.RoleMember},
			{RoomID: room.ID, UserID: otherID, Role: types.RoleMember},
		}

		return tx.Create(&participants).Error
	})
	if err != nil {
		return nil, err
	}

	return &room, nil
}

// CreateGroupRoom opens the chat room attached to a study group. Only
// active group members may open it; all active members become participants.
func (s *ChatService) CreateGroupRoom(ctx context.Context, groupID, userID uint) (*models.ChatRoom, error) {
	var membership models.GroupMember

	err := s.db.WithContext(ctx).
		Where("group_id = ? AND user_id = ? AND status = ?", groupID, userID, types.MemberStatusActive).
		First(&membership).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Group not found")
		}
		return nil, err
	}

	var room models.ChatRoom

	err = s.db.WithContext(ctx).
		Where("type = ? AND group_id = ?", types.RoomTypeGroup, groupID).
		First(&room).Error
	if err == nil {
		return &room, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var group models.StudyGroup

	if err := s.db.WithContext(ctx).First(&group, groupID).Error; err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		room = models.ChatRoom{Type: types.RoomTypeGroup, Name: group.Name, GroupID: &group.ID}

		if err := tx.Create(&room).Error; err != nil {
			return err
		}

		var members []models.GroupMember

		if err := tx.Where("group_id = ? AND status = ?", groupID, types.MemberStatusActive).
			Find(&members).Error; err != nil {
			return err
		}

		participants := make([]models.ChatRoomParticipant, 0, len(members))
		for _, member := range members {
			role := types.RoleMember
			if member.Role == types.RoleAdmin {
				role = types.RoleAdmin
			}
			participants = append(participants, models.ChatRoomParticipant{
				RoomID: room.ID,
				UserID: member.UserID,
				Role:   role,
			})
		}

		return tx.Create(&participants).Error
	})
	if err != nil {
		return nil, err
	}

	return &room, nil
}

// ListRooms returns the user's rooms with unread counts, most recently
// active first. Activity is the room's latest message; rooms with no
// messages yet sort last, newest participation first among them.
func (s *ChatService) ListRooms(ctx context.Context, userID uint, page utils.Page) ([]RoomSummary, int64, error) {
	var participations []models.ChatRoomParticipant

	query := s.db.WithContext(ctx).Model(&models.ChatRoomParticipant{}).Where("user_id = ?", userID)

	var total int64

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("Room").
		Order("(SELECT COALESCE(MAX(m.id), 0) FROM chat_messages m WHERE m.room_id = chat_room_participants.room_id) DESC, id DESC").
		Limit(page.Limit).
		Offset(page.Offset()).
		Find(&participations).Error
	if err != nil {
		return nil, 0, err
	}

	summaries := make([]RoomSummary, 0, len(participations))

	for _, participation := range participations {
		var unread int64

		err := s.db.WithContext(ctx).Model(&models.ChatMessage{}).
			Where("room_id = ? AND id > ? AND sender_id <> ?", participation.RoomID, participation.LastReadMessageID, userID).
			Count(&unread).Error
		if err != nil {
			return nil, 0, err
		}

		summaries = append(summaries, RoomSummary{Room: participation.Room, UnreadCount: unread})
	}

	return summaries, total, nil
}

// PostMessage persists the message and pushes it to connected participants.
// Only room participants may post; outsiders get the same 404 as a missing
// room.
func (s *ChatService) PostMessage(ctx context.Context, roomID, senderID uint, messageType, content string) (*models.ChatMessage, error) {
	content = strings.TrimSpace(content)

	if content == "" || utf8.RuneCountInString(content) > 4000 {
		return nil, apperrors.Validation("Message must be between 1 and 4000 characters")
	}

	if messageType == "" {
		messageType = "text"
	}
	if messageType != "text" && messageType != "image" && messageType != "file" {
		return nil, apperrors.Validation("Invalid message type")
	}

	if _, err := s.participant(ctx, roomID, senderID); err != nil {
		return nil, err
	}

	message := models.ChatMessage{
		RoomID:   roomID,
		SenderID: senderID,
		Type:     messageType,
		Content:  content,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&message).Error; err != nil {
			return err
		}

		// The sender has read their own message by definition.
		return tx.Model(&models.ChatRoomParticipant{}).
			Where("room_id = ? AND user_id = ? AND last_read_message_id < ?", roomID, senderID, message.ID).
			Update("last_read_message_id", message.ID).Error
	})
	if err != nil {
		return nil, err
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastMessage(roomID, &message)
	}

	return &message, nil
}

func (s *ChatService) ListMessages(ctx context.Context, roomID, userID uint, page utils.Page) ([]models.ChatMessage, int64, error) {
	if _, err := s.participant(ctx, roomID, userID); err != nil {
		return nil, 0, err
	}

	query := s.db.WithContext(ctx).Model(&models.ChatMessage{}).Where("room_id = ?", roomID)

	var total int64

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var messages []models.ChatMessage

	err := query.Preload("Sender").
		Order("created_at DESC, id DESC").
		Limit(page.Limit).
		Offset(page.Offset()).
		Find(&messages).Error
	if err != nil {
		return nil, 0, err
	}

	return messages, total, nil
}

// MarkRead advances the read cursor. The cursor only moves forward; marking
// an older message read again is a no-op that still succeeds.
func (s *ChatService) MarkRead(ctx context.Context, roomID, userID, messageID uint) error {
	if _, err := s.participant(ctx, roomID, userID); err != nil {
		return err
	}

	return s.db.WithContext(ctx).Model(&models.ChatRoomParticipant{}).
		Where("room_id = ? AND user_id = ? AND last_read_message_id < ?", roomID, userID, messageID).
		Update("last_read_message_id", messageID).Error
}

// IsParticipant is used by the websocket handler to authorize connections.
func (s *ChatService) IsParticipant(ctx context.Context, roomID, userID uint) (bool, error) {
	_, err := s.participant(ctx, roomID, userID)
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}

func (s *ChatService) participant(ctx context.Context, roomID, userID uint) (*models.ChatRoomParticipant, error) {
	var participant models.ChatRoomParticipant

	err := s.db.WithContext(ctx).
		Where("room_id = ? AND user_id = ?", roomID, userID).
		First(&participant).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Chat room not found")
		}
		return nil, err
	}

	return &participant, nil
}
