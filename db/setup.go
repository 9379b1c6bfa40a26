package db

import (
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/studyhive-dev/studyhive/internal/models"
)

// Connect opens the MySQL connection and caps the pool. The pool limit is
// the only shared mutable state across requests; when exhausted, callers
// queue on the pool rather than failing immediately.
func Connect(dsn string, maxConns int) (*gorm.DB, error) {
	gormDB, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxOpenConns(maxConns)
	sqlDB.SetMaxIdleConns(maxConns / 2)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return gormDB, nil
}

func Migrate(gormDB *gorm.DB) error {
	tables := []interface{}{
		&models.User{},
		&models.UserProfile{},
		&models.UserSetting{},
		&models.StorageSetting{},
		&models.StorageUsageLog{},
		&models.Achievement{},
		&models.UserAchievement{},
		&models.AchievementHistory{},
		&models.ExperienceLog{},
		&models.Friend{},
		&models.StudyGroup{},
		&models.GroupMember{},
		&models.GroupInvitation{},
		&models.Goal{},
		&models.StudySession{},
		&models.Material{},
		&models.Notification{},
		&models.ChatRoom{},
		&models.ChatRoomParticipant{},
		&models.ChatMessage{},
		&models.Mentorship{},
		&models.Backup{},
	}

	migrator := gormDB.Migrator()

	for _, table := range tables {
		if !migrator.HasTable(table) {
			if err := gormDB.AutoMigrate(table); err != nil {
				return err
			}
		}
	}

	return nil
}
