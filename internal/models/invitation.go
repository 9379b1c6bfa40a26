package models

// GroupInvitation allows one pending row per (group, invitee); declined and
// expired rows stay for audit, so the pair index is not unique and the
// pending check lives in the service transaction.
type GroupInvitation struct {
	BaseModel

	GroupID   uint   `gorm:"not null;index:idx_group_invitee"`
	InviteeID uint   `gorm:"not null;index:idx_group_invitee"`
	InviterID uint   `gorm:"not null;index"`
	Status    string `gorm:"not null;default:pending"` // "pending", "accepted", "declined", "expired"
	Message   string `gorm:"size:500"`

	// Relationships
	Group   StudyGroup `gorm:"foreignKey:GroupID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Invitee User       `gorm:"foreignKey:InviteeID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Inviter User       `gorm:"foreignKey:InviterID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
