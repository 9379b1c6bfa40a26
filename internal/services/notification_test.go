package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyhive-dev/studyhive/internal/apperrors"
)

func TestNotificationMarkReadUpdatesUnread(t *testing.T) {
	gormDB, mock := newMockDB(t)
	notifications := NewNotificationService(gormDB)

	mock.ExpectQuery("SELECT \\* FROM `notifications`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "is_read"}).
			AddRow(5, 1, false))

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `notifications`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := notifications.MarkRead(context.Background(), 5, 1)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationMarkReadIsIdempotent(t *testing.T) {
	gormDB, mock := newMockDB(t)
	notifications := NewNotificationService(gormDB)

	mock.ExpectQuery("SELECT \\* FROM `notifications`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "is_read"}).
			AddRow(5, 1, true))

	// Already read: no update statement should follow.
	err := notifications.MarkRead(context.Background(), 5, 1)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationMarkReadNotOwned(t *testing.T) {
	gormDB, mock := newMockDB(t)
	notifications := NewNotificationService(gormDB)

	mock.ExpectQuery("SELECT \\* FROM `notifications`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	err := notifications.MarkRead(context.Background(), 5, 99)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperrors.From(err).Status)
}

func TestNotificationDeleteNotOwned(t *testing.T) {
	gormDB, mock := newMockDB(t)
	notifications := NewNotificationService(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `notifications`").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := notifications.Delete(context.Background(), 5, 99)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperrors.From(err).Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationUnreadCount(t *testing.T) {
	gormDB, mock := newMockDB(t)
	notifications := NewNotificationService(gormDB)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `notifications`").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(3))

	count, err := notifications.UnreadCount(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}
