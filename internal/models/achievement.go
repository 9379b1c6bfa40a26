package models

import (
	"time"

	"gorm.io/datatypes"
)

// Reward is the schema'd shape of an achievement's reward JSON column.
type Reward struct {
	Experience int    `json:"experience"`
	BadgePath  string `json:"badge_path,omitempty"`
	Title      string `json:"title,omitempty"`
}

type Achievement struct {
	BaseModel

	Name             string `gorm:"not null;uniqueIndex"`
	Description      string
	Category         string `gorm:"not null;index"` // "study", "social", "streak"
	RequiredProgress int    `gorm:"not null;default:100"`
	Reward           datatypes.JSONType[Reward] `gorm:"type:json"`

	// Relationships
	UserAchievements []UserAchievement `gorm:"foreignKey:AchievementID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}

type UserAchievement struct {
	BaseModel

	UserID        uint `gorm:"not null;uniqueIndex:idx_user_achievement"`
	AchievementID uint `gorm:"not null;uniqueIndex:idx_user_achievement"`
	Progress      int  `gorm:"not null;default:0"` // bounded 0..100
	IsAcquired    bool `gorm:"not null;default:false"`
	AcquiredAt    *time.Time

	// Relationships
	User        User        `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
	Achievement Achievement `gorm:"foreignKey:AchievementID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}

// AchievementHistory is append-only: one row per progress change or
// acquisition, recording the delta and the action that caused it.
type AchievementHistory struct {
	BaseModel

	UserID        uint   `gorm:"not null;index"`
	AchievementID uint   `gorm:"not null;index"`
	Action        string `gorm:"not null"` // "progress", "acquired"
	Delta         int    `gorm:"not null"`

	// Relationships
	User        User        `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
	Achievement Achievement `gorm:"foreignKey:AchievementID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}
