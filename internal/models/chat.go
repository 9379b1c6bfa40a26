package models

import "gorm.io/gorm"

type ChatRoom struct {
	gorm.Model

	Type      string `gorm:"not null"` // "direct", "group"
	Name      string
	GroupID   *uint `gorm:"index"` // set for group rooms
	Encrypted bool  `gorm:"not null;default:false"` // schema placeholder, no logic attached

	// Relationships
	Group        *StudyGroup           `gorm:"foreignKey:GroupID;constraint:OnUpdate:Cascade,OnDelete:SET NULL"`
	Participants []ChatRoomParticipant `gorm:"foreignKey:RoomID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Messages     []ChatMessage         `gorm:"foreignKey:RoomID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}

type ChatRoomParticipant struct {
	BaseModel

	RoomID            uint   `gorm:"not null;uniqueIndex:idx_room_user"`
	UserID            uint   `gorm:"not null;uniqueIndex:idx_room_user"`
	Role              string `gorm:"not null;default:member"` // "admin", "member"
	LastReadMessageID uint   `gorm:"not null;default:0"`      // advances monotonically

	// Relationships
	Room ChatRoom `gorm:"foreignKey:RoomID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
	User User     `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}

type ChatMessage struct {
	BaseModel

	RoomID   uint   `gorm:"not null;index"`
	SenderID uint   `gorm:"not null;index"`
	Type     string `gorm:"not null;default:text"` // "text", "image", "file"
	Content  string `gorm:"type:text;not null"`

	// Relationships
	Room   ChatRoom `gorm:"foreignKey:RoomID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
	Sender User     `gorm:"foreignKey:SenderID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
