package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/studyhive-dev/studyhive/internal/services"
	"github.com/studyhive-dev/studyhive/internal/types"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	gormDB, err := gorm.Open(gormmysql.New(gormmysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return gormDB, mock
}

// stubUser injects an authenticated user the way the real middleware does.
func stubUser(id uint) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Set(types.ContextUserKey, types.AuthenticatedUser{
			ID:       id,
			Nickname: "tester",
			Email:    "tester@example.com",
		})
		ctx.Next()
	}
}

func newGoalRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	gormDB, mock := newMockDB(t)
	handler := NewGoalHandler(services.NewGoalService(gormDB))

	r := gin.New()

	goals := r.Group("/goals", stubUser(1))
	{
		goals.POST("", handler.Create)
		goals.GET("/:id", handler.Get)
		goals.PATCH("/:id", handler.Update)
		goals.DELETE("/:id", handler.Delete)
	}

	return r, mock
}

func TestGoalCreateRejectsMissingFields(t *testing.T) {
	r, mock := newGoalRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/goals", strings.NewReader(`{"description":"no title"}`))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGoalCreateReturnsEnvelope(t *testing.T) {
	r, mock := newGoalRouter(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `goals`").
		WillReturnResult(sqlmock.NewResult(10, 1))
	mock.ExpectCommit()

	body := `{"title":"Read chapter 4","start_date":"2026-09-01T00:00:00Z","end_date":"2026-09-30T00:00:00Z"}`

	req := httptest.NewRequest(http.MethodPost, "/goals", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"success":true`)
	assert.Contains(t, w.Body.String(), "Read chapter 4")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGoalGetUnknownIDReturnsNotFound(t *testing.T) {
	r, mock := newGoalRouter(t)

	mock.ExpectQuery("SELECT \\* FROM `goals`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/goals/999", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
}

func TestGoalGetRejectsBadID(t *testing.T) {
	r, mock := newGoalRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/goals/abc", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGoalDeleteNotOwnedReturnsNotFound(t *testing.T) {
	r, mock := newGoalRouter(t)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `goals`").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/goals/10", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}
