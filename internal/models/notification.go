package models

import "time"

type Notification struct {
	BaseModel

	UserID uint   `gorm:"not null;index"`
	Type   string `gorm:"not null"` // "friend_request", "group_invite", "chat", "achievement", "system"
	Title  string `gorm:"not null"`
	Body   string `gorm:"size:1000"`
	IsRead bool   `gorm:"not null;default:false"`
	ReadAt *time.Time

	// Relationships
	User User `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}
