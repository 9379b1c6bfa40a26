package models

type UserProfile struct {
	BaseModel

	UserID           uint   `gorm:"not null;uniqueIndex"`
	Bio              string `gorm:"size:500"`
	AvatarPath       string
	Timezone         string `gorm:"not null;default:UTC"`
	DailyGoalMinutes int    `gorm:"not null;default:60"`

	// Relationships
	User *User `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}
