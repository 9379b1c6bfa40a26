package services

import (
	"context"
	"errors"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/studyhive-dev/studyhive/internal/apperrors"
	"github.com/studyhive-dev/studyhive/internal/backup"
	"github.com/studyhive-dev/studyhive/internal/models"
	"github.com/studyhive-dev/studyhive/internal/types"
	"github.com/studyhive-dev/studyhive/internal/utils"
)

type BackupService struct {
	db       *gorm.DB
	runner   *backup.Runner
	notifier *WebhookNotifier
}

func NewBackupService(db *gorm.DB, runner *backup.Runner, notifier *WebhookNotifier) *BackupService {
	return &BackupService{db: db, runner: runner, notifier: notifier}
}

// Create runs one backup. The insert claims the nullable-unique active flag,
// so when two calls race, exactly one row ends up in_progress and the other
// call gets a 409 straight from the database.
func (s *BackupService) Create(ctx context.Context) (*models.Backup, error) {
	active := uint8(1)

	record := models.Backup{
		Status:    types.BackupStatusInProgress,
		Type:      "full",
		Active:    &active,
		StartedAt: time.Now().UTC(),
	}

	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		if apperrors.IsDuplicate(err) {
			return nil, apperrors.Conflict("A backup is already in progress")
		}
		return nil, err
	}

	path, size, dumpErr := s.runner.Dump(ctx)

	now := time.Now().UTC()

	if dumpErr != nil {
		updates := map[string]interface{}{
			"status":        types.BackupStatusFailed,
			"active":        nil,
			"error_message": dumpErr.Error(),
			"finished_at":   now,
		}

		if err := s.db.WithContext(ctx).Model(&record).Updates(updates).Error; err != nil {
			log.WithError(err).Error("failed to record backup failure")
		}

		record.Status = types.BackupStatusFailed
		record.ErrorMessage = dumpErr.Error()
		s.notify(&record)

		return &record, nil
	}

	updates := map[string]interface{}{
		"status":      types.BackupStatusCompleted,
		"active":      nil,
		"file_path":   path,
		"size_bytes":  size,
		"finished_at": now,
	}

	if err := s.db.WithContext(ctx).Model(&record).Updates(updates).Error; err != nil {
		return nil, err
	}

	record.Status = types.BackupStatusCompleted
	record.FilePath = path
	record.SizeBytes = size
	record.FinishedAt = &now
	s.notify(&record)

	return &record, nil
}

// RestoreLatest replays the most recent completed backup.
func (s *BackupService) RestoreLatest(ctx context.Context) (*models.Backup, error) {
	var record models.Backup

	err := s.db.WithContext(ctx).
		Where("status = ?", types.BackupStatusCompleted).
		Order("finished_at DESC, id DESC").
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("No completed backup to restore")
		}
		return nil, err
	}

	if err := s.runner.Restore(ctx, record.FilePath); err != nil {
		return nil, apperrors.Internal("Restore failed")
	}

	return &record, nil
}

func (s *BackupService) List(ctx context.Context, page utils.Page) ([]models.Backup, int64, error) {
	query := s.db.WithContext(ctx).Model(&models.Backup{})

	var total int64

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var backups []models.Backup

	err := query.Order("created_at DESC, id DESC").
		Limit(page.Limit).
		Offset(page.Offset()).
		Find(&backups).Error
	if err != nil {
		return nil, 0, err
	}

	return backups, total, nil
}

// Delete removes the record and its dump file. In-progress backups cannot
// be deleted.
func (s *BackupService) Delete(ctx context.Context, id uint) error {
	var record models.Backup

	err := s.db.WithContext(ctx).First(&record, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("Backup not found")
		}
		return err
	}

	if record.Status == types.BackupStatusInProgress {
		return apperrors.Conflict("Cannot delete a backup that is in progress")
	}

	if err := s.db.WithContext(ctx).Delete(&record).Error; err != nil {
		return err
	}

	if record.FilePath != "" {
		if err := os.Remove(record.FilePath); err != nil && !os.IsNotExist(err) {
			log.WithError(err).WithField("path", record.FilePath).Warn("failed to remove backup file")
		}
	}

	return nil
}

func (s *BackupService) notify(record *models.Backup) {
	if s.notifier == nil {
		return
	}

	if err := s.notifier.NotifyBackup(record); err != nil {
		log.WithError(err).Warn("backup webhook notification failed")
	}
}
