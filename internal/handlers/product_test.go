// internal/handlers/product_test.go
package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/centremall/mall-backend/internal/apperrors"
)

func testContext(t *testing.T, url string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, url, nil)
	return c
}

func TestStatsShopScope(t *testing.T) {
	scope, err := statsShopScope("")
	require.NoError(t, err)
	assert.Nil(t, scope, "no shopId means mall-wide stats")

	scope, err = statsShopScope("3f2b8c44-9c1a-4f6e-8d2b-1a2b3c4d5e6f")
	require.NoError(t, err)
	require.NotNil(t, scope)
	assert.Equal(t, "3f2b8c44-9c1a-4f6e-8d2b-1a2b3c4d5e6f", scope.String())

	_, err = statsShopScope("not-a-uuid")
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperrors.StatusOf(err))
}

func TestProductFiltersFromQueryStockRange(t *testing.T) {
	c := testContext(t, "/products?minStock=2&maxStock=10&minPrice=1.5")

	filters := productFiltersFromQuery(c)

	require.NotNil(t, filters.MinStock)
	assert.Equal(t, 2, *filters.MinStock)
	require.NotNil(t, filters.MaxStock)
	assert.Equal(t, 10, *filters.MaxStock)
	require.NotNil(t, filters.MinPrice)
	assert.Equal(t, 1.5, *filters.MinPrice)
	assert.Nil(t, filters.MaxPrice)
}

func TestProductFiltersFromQueryIgnoresGarbage(t *testing.T) {
	c := testContext(t, "/products?minStock=plenty&isPromotion=oui")

	filters := productFiltersFromQuery(c)

	assert.Nil(t, filters.MinStock)
	assert.Nil(t, filters.IsPromotion)
}
