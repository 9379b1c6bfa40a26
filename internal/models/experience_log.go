package models

// ExperienceLog is append-only: one row per experience grant with the amount
// and a reason tag. Never updated after insert.
type ExperienceLog struct {
	BaseModel

	UserID uint   `gorm:"not null;index"`
	Amount int    `gorm:"not null"`
	Reason string `gorm:"not null"` // "session_completed", "goal_completed", "achievement", ...

	// Relationships
	User User `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}
