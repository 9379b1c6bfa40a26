package models

import "time"

// Backup records one dump run. Active is 1 while the run is in progress and
// NULL afterwards; its unique index means at most one row can be in progress
// at a time, so two concurrent create calls cannot both pass the guard.
type Backup struct {
	BaseModel

	Status       string `gorm:"not null;default:in_progress"` // "in_progress", "completed", "failed"
	Type         string `gorm:"not null;default:full"`        // "incremental"/"differential" are schema placeholders
	Active       *uint8 `gorm:"uniqueIndex"`
	FilePath     string
	SizeBytes    int64
	ErrorMessage string `gorm:"size:1000"`
	StartedAt    time.Time `gorm:"not null"`
	FinishedAt   *time.Time
}
