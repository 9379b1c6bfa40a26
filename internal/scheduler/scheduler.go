package scheduler

import (
	"context"
	"errors"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/studyhive-dev/studyhive/internal/apperrors"
	"github.com/studyhive-dev/studyhive/internal/services"
)

// Scheduler runs automatic backups on a fixed interval. A zero interval
// disables it.
type Scheduler struct {
	backups  *services.BackupService
	interval time.Duration
	ctx      context.Context
	cancel   context.CancelFunc
}

func NewScheduler(backups *services.BackupService, interval time.Duration) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		backups:  backups,
		interval: interval,
		ctx:      ctx,
		cancel:   cancel,
	}
}

func (s *Scheduler) Start() {
	if s.interval <= 0 {
		return
	}

	log.WithField("interval", s.interval).Info("starting backup scheduler")

	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				s.run()
			}
		}
	}()
}

func (s *Scheduler) Stop() {
	s.cancel()
}

func (s *Scheduler) run() {
	record, err := s.backups.Create(s.ctx)
	if err != nil {
		// A manual backup already holding the active flag is expected;
		// everything else is worth a log line.
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.Status == 409 {
			log.Info("skipping scheduled backup: one is already in progress")
			return
		}
		log.WithError(err).Error("scheduled backup failed to start")
		return
	}

	log.WithFields(log.Fields{
		"backup_id": record.ID,
		"status":    record.Status,
	}).Info("scheduled backup finished")
}
