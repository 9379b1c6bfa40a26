package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/studyhive-dev/studyhive/internal/services"
)

func newFriendRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	gormDB, mock := newMockDB(t)
	handler := NewFriendHandler(services.NewFriendService(gormDB, services.NewNotificationService(gormDB)))

	r := gin.New()

	friends := r.Group("/friends", stubUser(1))
	{
		friends.GET("", handler.List)
		friends.DELETE("/:user_id", handler.Unfriend)
	}

	return r, mock
}

func TestUnfriendReachesService(t *testing.T) {
	r, mock := newFriendRouter(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `friends`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/friends/5", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Friend removed")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUnfriendUnknownUserReturnsNotFound(t *testing.T) {
	r, mock := newFriendRouter(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `friends`").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/friends/5", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUnfriendRejectsBadID(t *testing.T) {
	r, mock := newFriendRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/friends/not-a-number", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
