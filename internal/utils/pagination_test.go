// internal/utils/pagination_test.go
package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePagination(t *testing.T) {
	params := NormalizePagination(PaginationParams{Page: 0, Limit: -5})
	assert.Equal(t, 1, params.Page)
	assert.Equal(t, 10, params.Limit)
	assert.Equal(t, "createdAt", params.SortBy)
	assert.Equal(t, "desc", params.SortOrder)

	params = NormalizePagination(PaginationParams{Page: 3, Limit: 25, SortBy: "name", SortOrder: "asc"})
	assert.Equal(t, 3, params.Page)
	assert.Equal(t, 25, params.Limit)
	assert.Equal(t, "name", params.SortBy)
	assert.Equal(t, "asc", params.SortOrder)

	params = NormalizePagination(PaginationParams{SortOrder: "sideways"})
	assert.Equal(t, "desc", params.SortOrder)
}

func TestCreatePaginationResult(t *testing.T) {
	items := []string{"a", "b", "c", "d", "e"}
	params := PaginationParams{Page: 2, Limit: 5}

	result := CreatePaginationResult(items, 12, params)

	assert.Equal(t, 2, result.Page)
	assert.Equal(t, 5, result.Limit)
	assert.Equal(t, int64(12), result.Total)
	assert.Equal(t, 3, result.TotalPages)
	assert.Equal(t, items, result.Items)
}

func TestCreatePaginationResultExactFit(t *testing.T) {
	result := CreatePaginationResult([]int{}, 20, PaginationParams{Page: 1, Limit: 10})
	assert.Equal(t, 2, result.TotalPages)

	result = CreatePaginationResult([]int{}, 0, PaginationParams{Page: 1, Limit: 10})
	assert.Equal(t, 0, result.TotalPages)
}
