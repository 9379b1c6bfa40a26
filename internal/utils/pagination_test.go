package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/studyhive-dev/studyhive/internal/types"
)

func pageFor(t *testing.T, query string) Page {
	t.Helper()

	gin.SetMode(gin.TestMode)

	ctx, _ := gin.CreateTestContext(httptest.NewRecorder())
	ctx.Request = httptest.NewRequest("GET", "/?"+query, nil)

	return ParsePage(ctx)
}

func TestParsePageDefaults(t *testing.T) {
	page := pageFor(t, "")
	assert.Equal(t, types.DefaultPage, page.Page)
	assert.Equal(t, types.DefaultPageSize, page.Limit)
}

func TestParsePageExplicit(t *testing.T) {
	page := pageFor(t, "page=3&limit=50")
	assert.Equal(t, 3, page.Page)
	assert.Equal(t, 50, page.Limit)
	assert.Equal(t, 100, page.Offset())
}

func TestParsePageCapsLimit(t *testing.T) {
	page := pageFor(t, "limit=10000")
	assert.Equal(t, types.MaxPageSize, page.Limit)
}

func TestParsePageIgnoresGarbage(t *testing.T) {
	page := pageFor(t, "page=zero&limit=-5")
	assert.Equal(t, types.DefaultPage, page.Page)
	assert.Equal(t, types.DefaultPageSize, page.Limit)
}
