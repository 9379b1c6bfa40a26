package models

import (
	"time"

	"gorm.io/gorm"
)

type Goal struct {
	gorm.Model

	UserID      uint   `gorm:"not null;index"`
	Title       string `gorm:"not null"`
	Description string `gorm:"size:1000"`
	Category    string `gorm:"index"`
	Progress    int    `gorm:"not null;default:0"`      // bounded 0..100
	Status      string `gorm:"not null;default:active"` // "active", "completed", "abandoned"
	StartDate   time.Time
	EndDate     time.Time

	// Relationships
	User User `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}
