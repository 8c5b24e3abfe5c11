package products

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

func intPtr(i int) *int { return &i }

func boolPtr(b bool) *bool { return &b }

func TestBuildUpdateFieldsOnlyWritesProvidedFields(t *testing.T) {
	fields, msg := buildUpdateFields(productPatch{Name: strPtr("Weekender Duffel")})

	require.Empty(t, msg)
	assert.Equal(t, "Weekender Duffel", fields["name"])
	assert.NotContains(t, fields, "stock")
	assert.NotContains(t, fields, "salePrice")
	assert.NotContains(t, fields, "featured")
	assert.NotContains(t, fields, "price")
}

func TestBuildUpdateFieldsZeroValuesWhenExplicit(t *testing.T) {
	fields, msg := buildUpdateFields(productPatch{
		SalePrice: floatPtr(0),
		Stock:     intPtr(0),
		Featured:  boolPtr(false),
	})

	require.Empty(t, msg)
	assert.Equal(t, float64(0), fields["salePrice"])
	assert.Equal(t, 0, fields["stock"])
	assert.Equal(t, false, fields["featured"])
}

func TestBuildUpdateFieldsValidation(t *testing.T) {
	_, msg := buildUpdateFields(productPatch{Name: strPtr("  ")})
	assert.Equal(t, "Name must be between 1 and 100 characters", msg)

	_, msg = buildUpdateFields(productPatch{Price: floatPtr(-1)})
	assert.Equal(t, "Price cannot be negative", msg)

	_, msg = buildUpdateFields(productPatch{Stock: intPtr(-3)})
	assert.Equal(t, "Stock cannot be negative", msg)

	_, msg = buildUpdateFields(productPatch{Category: strPtr("furniture")})
	assert.Equal(t, "Invalid category", msg)
}

func TestBuildUpdateFieldsEmptyPatch(t *testing.T) {
	fields, msg := buildUpdateFields(productPatch{})
	assert.Empty(t, msg)
	assert.Empty(t, fields)
}
