package models

import "gorm.io/gorm"

type Material struct {
	gorm.Model

	UserID     uint   `gorm:"not null;index"`
	Title      string `gorm:"not null"`
	Category   string `gorm:"index"`
	Content    string `gorm:"type:text"`
	FilePath   string
	Visibility string `gorm:"not null;default:private"` // "private", "friends", "public"
	Rating     int    // bounded 1..5, 0 = unrated

	// Relationships
	User User `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}
