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

func TestMentorshipRequestRejectsSelf(t *testing.T) {
	gormDB, mock := newMockDB(t)
	mentorships := NewMentorshipService(gormDB, NewNotificationService(gormDB))

	_, err := mentorships.Request(context.Background(), 1, 1, "algebra")
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperrors.From(err).Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMentorshipDeclineNotMentor(t *testing.T) {
	gormDB, mock := newMockDB(t)
	mentorships := NewMentorshipService(gormDB, NewNotificationService(gormDB))

	// Only the mentor of a pending request can decline it; anyone else sees
	// the same 404 as a missing row.
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `mentorships`").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := mentorships.Decline(context.Background(), 3, 99)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperrors.From(err).Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMentorshipListRejectsBadRoleFilter(t *testing.T) {
	gormDB, mock := newMockDB(t)
	mentorships := NewMentorshipService(gormDB, NewNotificationService(gormDB))

	_, _, err := mentorships.List(context.Background(), 1, "advisor", "", pageOne())
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperrors.From(err).Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}
