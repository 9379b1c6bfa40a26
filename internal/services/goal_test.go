package services

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyhive-dev/studyhive/internal/apperrors"
	"github.com/studyhive-dev/studyhive/internal/utils"
)

func TestGoalCreateValidation(t *testing.T) {
	gormDB, mock := newMockDB(t)
	goals := NewGoalService(gormDB)

	now := time.Now()

	_, err := goals.Create(context.Background(), 1, CreateGoalInput{
		Title:     "   ",
		StartDate: now,
		EndDate:   now.Add(time.Hour),
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperrors.From(err).Status)

	_, err = goals.Create(context.Background(), 1, CreateGoalInput{
		Title:     "Read chapter 4",
		StartDate: now,
		EndDate:   now.Add(-time.Hour),
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperrors.From(err).Status)

	// Neither invalid input should reach the database.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGoalUpdateNotOwnedReturnsNotFound(t *testing.T) {
	gormDB, mock := newMockDB(t)
	goals := NewGoalService(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `goals`").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	progress := 50

	_, err := goals.Update(context.Background(), 10, 99, UpdateGoalInput{Progress: &progress})
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperrors.From(err).Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGoalUpdateProgressRange(t *testing.T) {
	gormDB, mock := newMockDB(t)
	goals := NewGoalService(gormDB)

	progress := 150

	_, err := goals.Update(context.Background(), 10, 1, UpdateGoalInput{Progress: &progress})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperrors.From(err).Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGoalUpdateReloadsRow(t *testing.T) {
	gormDB, mock := newMockDB(t)
	goals := NewGoalService(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `goals`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	mock.ExpectQuery("SELECT \\* FROM `goals`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "title", "progress", "status"}).
			AddRow(10, 1, "Read chapter 4", 50, "active"))

	progress := 50

	goal, err := goals.Update(context.Background(), 10, 1, UpdateGoalInput{Progress: &progress})
	require.NoError(t, err)
	assert.Equal(t, 50, goal.Progress)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGoalCreateAcceptsMultibyteTitle(t *testing.T) {
	gormDB, mock := newMockDB(t)
	goals := NewGoalService(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `goals`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	// 150 characters but 450 bytes: the limit counts characters.
	title := strings.Repeat("学", 150)
	now := time.Now()

	goal, err := goals.Create(context.Background(), 1, CreateGoalInput{
		Title:     title,
		StartDate: now,
		EndDate:   now.Add(time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, title, goal.Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGoalListPagesAreDisjointAndOrdered(t *testing.T) {
	gormDB, mock := newMockDB(t)
	goals := NewGoalService(gormDB)

	columns := []string{"id", "user_id", "title"}

	// Page 1: newest two rows, no OFFSET clause.
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `goals`").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(4))
	mock.ExpectQuery("SELECT \\* FROM `goals` .*ORDER BY created_at DESC, id DESC LIMIT \\?$").
		WithArgs(1, 2).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(40, 1, "fourth").
			AddRow(30, 1, "third"))

	pageOne, totalOne, err := goals.List(context.Background(), 1, GoalFilters{}, utils.Page{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(4), totalOne)

	// Page 2: same ordering, offset past the first page.
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `goals`").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(4))
	mock.ExpectQuery("SELECT \\* FROM `goals` .*ORDER BY created_at DESC, id DESC LIMIT \\? OFFSET \\?").
		WithArgs(1, 2, 2).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(20, 1, "second").
			AddRow(10, 1, "first"))

	pageTwo, totalTwo, err := goals.List(context.Background(), 1, GoalFilters{}, utils.Page{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(4), totalTwo)

	seen := make(map[uint]bool)
	var ids []uint
	for _, goal := range append(pageOne, pageTwo...) {
		assert.False(t, seen[goal.ID], "goal %d appeared on both pages", goal.ID)
		seen[goal.ID] = true
		ids = append(ids, goal.ID)
	}

	assert.Equal(t, []uint{40, 30, 20, 10}, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGoalDeleteNotOwnedReturnsNotFound(t *testing.T) {
	gormDB, mock := newMockDB(t)
	goals := NewGoalService(gormDB)

	// Soft delete, so the statement is an update.
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `goals`").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := goals.Delete(context.Background(), 10, 99)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperrors.From(err).Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}
