package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractPaginationDefaults(t *testing.T) {
	req := httptest.NewRequest("GET", "/stock/balance", nil)
	p, err := ExtractPagination(req)
	require.NoError(t, err)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 100, p.Limit)
	assert.Equal(t, 0, p.Offset)
}

func TestExtractPaginationExplicit(t *testing.T) {
	req := httptest.NewRequest("GET", "/stock/balance?page=3&limit=25", nil)
	p, err := ExtractPagination(req)
	require.NoError(t, err)
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 25, p.Limit)
	assert.Equal(t, 50, p.Offset)
}

func TestExtractPaginationInvalid(t *testing.T) {
	for _, q := range []string{"page=0", "page=-1", "page=abc", "limit=0", "limit=x"} {
		req := httptest.NewRequest("GET", "/stock/balance?"+q, nil)
		_, err := ExtractPagination(req)
		assert.Error(t, err, q)
	}
}

func TestSetPaginationStats(t *testing.T) {
	p := PaginationParams{Page: 1, Limit: 25}
	p.SetPaginationStats(51)
	assert.Equal(t, 51, p.TotalRecords)
	assert.Equal(t, 3, p.TotalPages)

	p.SetPaginationStats(0)
	assert.Equal(t, 0, p.TotalPages)
}
