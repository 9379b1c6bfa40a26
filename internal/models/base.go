package models

import (
	"time"
)

// BaseModel is the shared shape for tables that are never soft-deleted
// (history/log tables and other append-only records). Soft-deleted entities
// embed gorm.Model instead.
type BaseModel struct {
	ID        uint `gorm:"primarykey" json:"id"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
