package models

import "time"

// CartItem snapshots name, effective price and image at add time so the
// cart display stays stable if the product record changes.
type CartItem struct {
	ProductID string  `json:"product" bson:"product"`
	Name      string  `json:"name" bson:"name"`
	Price     float64 `json:"price" bson:"price"`
	Quantity  int     `json:"quantity" bson:"quantity"`
	Image     string  `json:"image" bson:"image"`
}

// Cart is one document per user, created lazily on first access.
type Cart struct {
	CartID    string     `json:"cartid" bson:"cartid"`
	UserID    string     `json:"user" bson:"user"`
	Items     []CartItem `json:"items" bson:"items"`
	UpdatedAt time.Time  `json:"updatedAt" bson:"updatedAt"`
}
