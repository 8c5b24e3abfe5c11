package products

import (
	"testing"

	"mcsons/models"

	"github.com/stretchr/testify/assert"
)

func TestRecalculateRatingEmpty(t *testing.T) {
	rating, count := RecalculateRating(nil)
	assert.Equal(t, float64(0), rating)
	assert.Equal(t, 0, count)
}

func TestRecalculateRating(t *testing.T) {
	reviews := []models.Review{
		{Rating: 5},
		{Rating: 4},
		{Rating: 3},
	}
	rating, count := RecalculateRating(reviews)
	assert.Equal(t, 4.0, rating)
	assert.Equal(t, 3, count)
}

func TestValidateProduct(t *testing.T) {
	valid := models.Product{
		Name:     "Leather Handbag",
		Price:    1499,
		Stock:    10,
		Category: "handbags",
	}
	assert.Empty(t, validateProduct(valid))

	bad := valid
	bad.Name = ""
	assert.Equal(t, "Name must be between 1 and 100 characters", validateProduct(bad))

	bad = valid
	bad.Price = -1
	assert.Equal(t, "Price cannot be negative", validateProduct(bad))

	bad = valid
	bad.Stock = -1
	assert.Equal(t, "Stock cannot be negative", validateProduct(bad))

	bad = valid
	bad.Category = "furniture"
	assert.Equal(t, "Invalid category", validateProduct(bad))
}
