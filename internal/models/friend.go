package models

// Friend stores one row per pair. RequesterID/AddresseeID keep the direction
// (who sent the request); uniqueness of the unordered pair is enforced by the
// service checking both directions plus the ordered unique index.
type Friend struct {
	BaseModel

	RequesterID uint   `gorm:"not null;uniqueIndex:idx_friend_pair"`
	AddresseeID uint   `gorm:"not null;uniqueIndex:idx_friend_pair"`
	Status      string `gorm:"not null;default:pending"` // "pending", "accepted", "rejected", "blocked"

	// Relationships
	Requester User `gorm:"foreignKey:RequesterID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Addressee User `gorm:"foreignKey:AddresseeID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
