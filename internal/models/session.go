package models

import (
	"time"

	"gorm.io/gorm"
)

type StudySession struct {
	gorm.Model

	UserID          uint   `gorm:"not null;index"`
	Subject         string `gorm:"not null"`
	StartedAt       time.Time `gorm:"not null;index"`
	EndedAt         time.Time `gorm:"not null"`
	DurationMinutes int    `gorm:"not null;default:0"`
	FocusRating     int    // bounded 1..5, 0 = unrated
	Note            string `gorm:"size:1000"`

	// Relationships
	User User `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}
