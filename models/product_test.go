package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEffectivePrice(t *testing.T) {
	tests := []struct {
		name      string
		price     float64
		salePrice float64
		want      float64
	}{
		{"no sale", 1999, 0, 1999},
		{"valid sale", 1999, 1499, 1499},
		{"sale equals price", 1999, 1999, 1999},
		{"sale above price", 1999, 2499, 1999},
		{"negative sale ignored", 1999, -5, 1999},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Product{Price: tt.price, SalePrice: tt.salePrice}
			assert.Equal(t, tt.want, p.EffectivePrice())
		})
	}
}

func TestValidCategory(t *testing.T) {
	assert.True(t, ValidCategory("handbags"))
	assert.True(t, ValidCategory("trolley-luggage"))
	assert.False(t, ValidCategory("shoes"))
	assert.False(t, ValidCategory(""))
}

func TestPrimaryImage(t *testing.T) {
	p := Product{Images: []string{"/a.jpg", "/b.jpg"}}
	assert.Equal(t, "/a.jpg", p.PrimaryImage())

	p = Product{Image: "/c.jpg"}
	assert.Equal(t, "/c.jpg", p.PrimaryImage())

	assert.Empty(t, Product{}.PrimaryImage())
}
