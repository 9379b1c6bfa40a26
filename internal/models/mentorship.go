package models

import "time"

type Mentorship struct {
	BaseModel

	MentorID uint   `gorm:"not null;uniqueIndex:idx_mentor_mentee"`
	MenteeID uint   `gorm:"not null;uniqueIndex:idx_mentor_mentee"`
	Subject  string `gorm:"not null"`
	Status   string `gorm:"not null;default:pending"` // "pending", "accepted", "declined", "ended"
	EndedAt  *time.Time

	// Relationships
	Mentor User `gorm:"foreignKey:MentorID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Mentee User `gorm:"foreignKey:MenteeID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
