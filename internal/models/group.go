package models

import "gorm.io/gorm"

type StudyGroup struct {
	gorm.Model

	OwnerID     uint   `gorm:"not null;index"`
	Name        string `gorm:"not null"`
	Description string `gorm:"size:1000"`
	Category    string `gorm:"index"`
	Capacity    int    `gorm:"not null;default:20"`
	Visibility  string `gorm:"not null;default:public"` // "public", "private"

	// Relationships
	Owner       User              `gorm:"foreignKey:OwnerID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Members     []GroupMember     `gorm:"foreignKey:GroupID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Invitations []GroupInvitation `gorm:"foreignKey:GroupID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}

type GroupMember struct {
	BaseModel

	GroupID uint   `gorm:"not null;uniqueIndex:idx_group_member"`
	UserID  uint   `gorm:"not null;uniqueIndex:idx_group_member"`
	Role    string `gorm:"not null;default:member"` // "admin", "member"
	Status  string `gorm:"not null;default:active"` // "active", "left", "removed"

	// Relationships
	Group StudyGroup `gorm:"foreignKey:GroupID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
	User  User       `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
