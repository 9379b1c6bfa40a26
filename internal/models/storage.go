package models

type StorageSetting struct {
	BaseModel

	UserID     uint   `gorm:"not null;uniqueIndex"`
	Provider   string `gorm:"not null;default:local"` // "local", "s3"
	BucketURL  string
	QuotaBytes int64 `gorm:"not null;default:104857600"`
	UsedBytes  int64 `gorm:"not null;default:0"`

	// Relationships
	User *User `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}

// StorageUsageLog is append-only: one row per upload/delete recording the
// byte delta and the action that caused it. Never updated after insert.
type StorageUsageLog struct {
	BaseModel

	UserID     uint   `gorm:"not null;index"`
	DeltaBytes int64  `gorm:"not null"`
	Action     string `gorm:"not null"` // "upload", "delete"
	FilePath   string

	// Relationships
	User User `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}
