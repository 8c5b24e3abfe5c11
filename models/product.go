package models

import "time"

// Categories the store sells. Fixed set, mirrored by the storefront nav.
var ProductCategories = []string{"handbags", "trolley-luggage", "travel-bags", "backpacks"}

type Review struct {
	UserID    string    `json:"user" bson:"user"`
	Name      string    `json:"name" bson:"name"`
	Rating    float64   `json:"rating" bson:"rating"`
	Comment   string    `json:"comment" bson:"comment"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

type Product struct {
	ProductID   string    `json:"productid" bson:"productid"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description" bson:"description"`
	Price       float64   `json:"price" bson:"price"`
	SalePrice   float64   `json:"salePrice,omitempty" bson:"salePrice,omitempty"`
	Category    string    `json:"category" bson:"category"`
	Stock       int       `json:"stock" bson:"stock"`
	Images      []string  `json:"images" bson:"images"`
	Image       string    `json:"image" bson:"image"`
	Rating      float64   `json:"rating" bson:"rating"`
	NumReviews  int       `json:"numReviews" bson:"numReviews"`
	Reviews     []Review  `json:"reviews" bson:"reviews"`
	Featured    bool      `json:"featured" bson:"featured"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
}

// EffectivePrice is the sale price when it is set and strictly below the
// list price, otherwise the list price.
func (p Product) EffectivePrice() float64 {
	if p.SalePrice > 0 && p.SalePrice < p.Price {
		return p.SalePrice
	}
	return p.Price
}

// PrimaryImage keeps the single-image field and the images list in step.
func (p Product) PrimaryImage() string {
	if p.Image != "" {
		return p.Image
	}
	if len(p.Images) > 0 {
		return p.Images[0]
	}
	return ""
}

func ValidCategory(c string) bool {
	for _, cat := range ProductCategories {
		if c == cat {
			return true
		}
	}
	return false
}
