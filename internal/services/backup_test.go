package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	mysqldrv "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyhive-dev/studyhive/internal/apperrors"
)

func TestBackupCreateConflictWhileInProgress(t *testing.T) {
	gormDB, mock := newMockDB(t)
	backups := NewBackupService(gormDB, nil, nil)

	// The active-flag unique index rejects a second in-progress row at
	// insert time, so the losing caller sees the duplicate straight away.
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `backups`").
		WillReturnError(&mysqldrv.MySQLError{Number: 1062, Message: "Duplicate entry '1' for key 'idx_backups_active'"})
	mock.ExpectRollback()

	_, err := backups.Create(context.Background())
	require.Error(t, err)

	appErr := apperrors.From(err)
	assert.Equal(t, http.StatusConflict, appErr.Status)
	assert.Equal(t, "A backup is already in progress", appErr.Message)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBackupDeleteInProgressRejected(t *testing.T) {
	gormDB, mock := newMockDB(t)
	backups := NewBackupService(gormDB, nil, nil)

	mock.ExpectQuery("SELECT \\* FROM `backups`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "status", "started_at"}).
			AddRow(7, "in_progress", time.Now()))

	err := backups.Delete(context.Background(), 7)
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, apperrors.From(err).Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBackupRestoreWithoutCompletedBackup(t *testing.T) {
	gormDB, mock := newMockDB(t)
	backups := NewBackupService(gormDB, nil, nil)

	mock.ExpectQuery("SELECT \\* FROM `backups`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := backups.RestoreLatest(context.Background())
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperrors.From(err).Status)
}
