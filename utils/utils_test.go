package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "asha@example.com", NormalizeEmail(" Asha@Example.COM "))
	assert.Equal(t, "a@b.com", NormalizeEmail("a&b.com"))
	assert.Empty(t, NormalizeEmail("  "))
}

func TestGenerateID(t *testing.T) {
	id := GenerateID(12)
	assert.Len(t, id, 12)
	for _, c := range id {
		valid := (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9')
		assert.True(t, valid, string(c))
	}
	assert.NotEqual(t, GenerateID(12), GenerateID(12))
}

func TestParseQueryOptionsDefaults(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/products", nil)
	opts := ParseQueryOptions(r, 12)

	assert.Equal(t, 1, opts.Page)
	assert.Equal(t, 12, opts.Limit)
	assert.Equal(t, 0, opts.Skip())
}

func TestParseQueryOptions(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/products?page=3&limit=20&category=handbags&search=tote&sort=price-low&status=Pending", nil)
	opts := ParseQueryOptions(r, 12)

	assert.Equal(t, 3, opts.Page)
	assert.Equal(t, 20, opts.Limit)
	assert.Equal(t, "handbags", opts.Category)
	assert.Equal(t, "tote", opts.Search)
	assert.Equal(t, "price-low", opts.Sort)
	assert.Equal(t, "Pending", opts.Status)
	assert.Equal(t, 40, opts.Skip())
}

func TestParseQueryOptionsRejectsBadValues(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/products?page=-1&limit=0", nil)
	opts := ParseQueryOptions(r, 12)

	assert.Equal(t, 1, opts.Page)
	assert.Equal(t, 12, opts.Limit)
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 1, TotalPages(0, 20))
	assert.Equal(t, 1, TotalPages(20, 20))
	assert.Equal(t, 2, TotalPages(21, 20))
	assert.Equal(t, 5, TotalPages(100, 20))
}
