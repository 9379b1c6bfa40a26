package models

import (
	"gorm.io/datatypes"
)

// FocusMode is the schema'd shape of the focus_mode JSON column. It is a
// typed value rather than a free-form blob so use-sites stay compile-checked.
type FocusMode struct {
	Enabled         bool `json:"enabled"`
	DurationMinutes int  `json:"duration_minutes"`
	BreakMinutes    int  `json:"break_minutes"`
	BlockChat       bool `json:"block_chat"`
}

type UserSetting struct {
	BaseModel

	UserID             uint   `gorm:"not null;uniqueIndex"`
	Theme              string `gorm:"not null;default:light"` // "light", "dark", "system"
	Language           string `gorm:"not null;default:en"`
	FontSize           int    `gorm:"not null;default:14"` // bounded 8..32
	NotifyFriends      bool   `gorm:"not null;default:true"`
	NotifyChat         bool   `gorm:"not null;default:true"`
	NotifyAchievements bool   `gorm:"not null;default:true"`
	FocusMode          datatypes.JSONType[FocusMode] `gorm:"type:json"`

	// Relationships
	User *User `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}
