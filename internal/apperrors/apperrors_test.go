package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestConstructors(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, Validation("bad").Status)
	assert.Equal(t, http.StatusUnauthorized, Unauthorized("no").Status)
	assert.Equal(t, http.StatusForbidden, Forbidden("no").Status)
	assert.Equal(t, http.StatusNotFound, NotFound("missing").Status)
	assert.Equal(t, http.StatusConflict, Conflict("dup").Status)
	assert.Equal(t, http.StatusInternalServerError, Internal("boom").Status)
	assert.Equal(t, "missing", NotFound("missing").Error())
}

func TestIsDuplicate(t *testing.T) {
	assert.True(t, IsDuplicate(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}))
	assert.True(t, IsDuplicate(fmt.Errorf("create: %w", &mysql.MySQLError{Number: 1062})))
	assert.True(t, IsDuplicate(gorm.ErrDuplicatedKey))
	assert.False(t, IsDuplicate(&mysql.MySQLError{Number: 1452}))
	assert.False(t, IsDuplicate(errors.New("something else")))
	assert.False(t, IsDuplicate(nil))
}

func TestFrom(t *testing.T) {
	original := NotFound("Goal not found")
	assert.Same(t, original, From(fmt.Errorf("wrapped: %w", original)))

	notFound := From(gorm.ErrRecordNotFound)
	assert.Equal(t, http.StatusNotFound, notFound.Status)

	conflict := From(&mysql.MySQLError{Number: 1062})
	assert.Equal(t, http.StatusConflict, conflict.Status)

	internal := From(errors.New("driver: bad connection"))
	assert.Equal(t, http.StatusInternalServerError, internal.Status)
	assert.Equal(t, "Internal server error", internal.Message)
}
