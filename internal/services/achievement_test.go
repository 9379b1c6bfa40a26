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

func newAchievementService(t *testing.T) (*AchievementService, sqlmock.Sqlmock) {
	t.Helper()

	gormDB, mock := newMockDB(t)
	return NewAchievementService(gormDB, NewExperienceService(gormDB)), mock
}

func TestAddProgressRejectsNonPositiveDelta(t *testing.T) {
	achievements, mock := newAchievementService(t)

	_, err := achievements.AddProgress(context.Background(), 1, 3, 0)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperrors.From(err).Status)

	_, err = achievements.AddProgress(context.Background(), 1, 3, -10)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperrors.From(err).Status)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAcquireRejectsSecondAcquire(t *testing.T) {
	achievements, mock := newAchievementService(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT \\* FROM `achievements`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "required_progress"}).AddRow(3, 100))
	mock.ExpectQuery("SELECT \\* FROM `user_achievements`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "achievement_id", "progress", "is_acquired"}).
			AddRow(7, 1, 3, 100, true))
	mock.ExpectRollback()

	_, err := achievements.Acquire(context.Background(), 1, 3)
	require.Error(t, err)

	appErr := apperrors.From(err)
	assert.Equal(t, http.StatusBadRequest, appErr.Status)
	assert.Equal(t, "Achievement already acquired", appErr.Message)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAcquireRequiresEnoughProgress(t *testing.T) {
	achievements, mock := newAchievementService(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT \\* FROM `achievements`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "required_progress"}).AddRow(3, 100))
	mock.ExpectQuery("SELECT \\* FROM `user_achievements`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "achievement_id", "progress", "is_acquired"}).
			AddRow(7, 1, 3, 40, false))
	mock.ExpectRollback()

	_, err := achievements.Acquire(context.Background(), 1, 3)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperrors.From(err).Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAcquireWithoutProgressRow(t *testing.T) {
	achievements, mock := newAchievementService(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT \\* FROM `achievements`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "required_progress"}).AddRow(3, 100))
	mock.ExpectQuery("SELECT \\* FROM `user_achievements`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	_, err := achievements.Acquire(context.Background(), 1, 3)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperrors.From(err).Status)
}

func TestAcquireUnknownAchievement(t *testing.T) {
	achievements, mock := newAchievementService(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT \\* FROM `achievements`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	_, err := achievements.Acquire(context.Background(), 1, 404)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperrors.From(err).Status)
}
