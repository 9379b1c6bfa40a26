package models

import "gorm.io/gorm"

type User struct {
	gorm.Model

	Nickname     string `gorm:"uniqueIndex;not null"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null" json:"-"`
	Status       string `gorm:"not null;default:active"` // "active", "inactive", "suspended"
	Level        int    `gorm:"not null;default:1"`
	Experience   int    `gorm:"not null;default:0"`
	RefreshToken string `json:"-"` // current refresh token, overwritten on each refresh (revocation-by-overwrite)

	// Relationships
	Profile          UserProfile      `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Setting          UserSetting      `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	StorageSetting   StorageSetting   `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Goals            []Goal           `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	StudySessions    []StudySession   `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Materials        []Material       `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Notifications    []Notification   `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	UserAchievements []UserAchievement `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	ExperienceLogs   []ExperienceLog  `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
