// internal/utils/pagination_test.go
package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func paramsFor(t *testing.T, rawQuery string) PaginationParams {
	t.Helper()
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/v1/products?"+rawQuery, nil)
	return GetPaginationParams(c)
}

func TestGetPaginationParamsDefaults(t *testing.T) {
	params := paramsFor(t, "")
	assert.Equal(t, 1, params.Page)
	assert.Equal(t, defaultPageSize, params.Limit)
	assert.Equal(t, "created_at", params.Sort)
	assert.Equal(t, "desc", params.Order)
}

func TestGetPaginationParamsClampsInvalidValues(t *testing.T) {
	params := paramsFor(t, "page=0&limit=9999&order=sideways")
	assert.Equal(t, 1, params.Page)
	assert.Equal(t, defaultPageSize, params.Limit)
	assert.Equal(t, "desc", params.Order)

	params = paramsFor(t, "page=3&limit=12&sort=price&order=asc&category=vases&search=lamp")
	assert.Equal(t, 3, params.Page)
	assert.Equal(t, 12, params.Limit)
	assert.Equal(t, 24, params.Offset())
	assert.Equal(t, "price", params.Sort)
	assert.Equal(t, "asc", params.Order)
	assert.Equal(t, "vases", params.Category)
	assert.Equal(t, "lamp", params.Search)
}

func TestCreatePaginationResultRoundsUp(t *testing.T) {
	result := CreatePaginationResult(nil, 21, PaginationParams{Page: 1, Limit: 10})
	assert.Equal(t, 3, result.TotalPages)
	assert.Equal(t, int64(21), result.Total)
}
