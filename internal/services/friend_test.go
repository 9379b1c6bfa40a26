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

func TestFriendSendRequestRejectsSelf(t *testing.T) {
	gormDB, mock := newMockDB(t)
	friends := NewFriendService(gormDB, NewNotificationService(gormDB))

	_, err := friends.SendRequest(context.Background(), 1, 1)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperrors.From(err).Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFriendSendRequestDetectsReversePair(t *testing.T) {
	gormDB, mock := newMockDB(t)
	friends := NewFriendService(gormDB, NewNotificationService(gormDB))

	mock.ExpectQuery("SELECT \\* FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "nickname"}).AddRow(2, "badger"))

	// The pair already has a row, created from the other direction.
	mock.ExpectQuery("SELECT \\* FROM `friends`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "requester_id", "addressee_id", "status"}).
			AddRow(9, 2, 1, "pending"))

	_, err := friends.SendRequest(context.Background(), 1, 2)
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, apperrors.From(err).Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFriendSendRequestAlreadyFriends(t *testing.T) {
	gormDB, mock := newMockDB(t)
	friends := NewFriendService(gormDB, NewNotificationService(gormDB))

	mock.ExpectQuery("SELECT \\* FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(2))

	mock.ExpectQuery("SELECT \\* FROM `friends`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "requester_id", "addressee_id", "status"}).
			AddRow(9, 1, 2, "accepted"))

	_, err := friends.SendRequest(context.Background(), 1, 2)
	require.Error(t, err)

	appErr := apperrors.From(err)
	assert.Equal(t, http.StatusConflict, appErr.Status)
	assert.Equal(t, "You are already friends", appErr.Message)
}

func TestFriendAcceptNotAddressee(t *testing.T) {
	gormDB, mock := newMockDB(t)
	friends := NewFriendService(gormDB, NewNotificationService(gormDB))

	// Addressee check lives in the WHERE clause, so an outsider accepting
	// matches zero rows and the transaction rolls back.
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `friends`").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err := friends.Accept(context.Background(), 9, 99)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperrors.From(err).Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFriendRejectNotAddressee(t *testing.T) {
	gormDB, mock := newMockDB(t)
	friends := NewFriendService(gormDB, NewNotificationService(gormDB))

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `friends`").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := friends.Reject(context.Background(), 9, 99)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperrors.From(err).Status)
}

func TestAreFriendsEitherDirection(t *testing.T) {
	gormDB, mock := newMockDB(t)
	friends := NewFriendService(gormDB, NewNotificationService(gormDB))

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `friends`").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(1))

	ok, err := friends.AreFriends(context.Background(), 2, 1)
	require.NoError(t, err)
	assert.True(t, ok)
}
