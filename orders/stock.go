package orders

import (
	"context"
	"log"

	"mcsons/db"
	"mcsons/models"

	"go.mongodb.org/mongo-driver/bson"
)

// StockStore abstracts the per-line stock writes used by checkout and
// cancellation.
type StockStore interface {
	// Claim atomically decrements stock when at least qty is available.
	Claim(ctx context.Context, productID string, qty int) (bool, error)
	// Restore adds qty back; a missing product is not an error.
	Restore(ctx context.Context, productID string, qty int) error
}

type mongoStock struct{}

func (mongoStock) Claim(ctx context.Context, productID string, qty int) (bool, error) {
	res, err := db.ProductsCollection.UpdateOne(ctx,
		bson.M{"productid": productID, "stock": bson.M{"$gte": qty}},
		bson.M{"$inc": bson.M{"stock": -qty}},
	)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}

func (mongoStock) Restore(ctx context.Context, productID string, qty int) error {
	res, err := db.ProductsCollection.UpdateOne(ctx,
		bson.M{"productid": productID},
		bson.M{"$inc": bson.M{"stock": qty}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		log.Printf("restock skipped, product %s no longer exists", productID)
	}
	return nil
}

var productStock StockStore = mongoStock{}

// ClaimStock decrements stock for every line. When a line cannot be
// claimed, the lines already claimed are restored and the losing line's
// name is returned, so the caller fails the whole checkout.
func ClaimStock(ctx context.Context, store StockStore, items []models.OrderItem) string {
	for i, item := range items {
		ok, err := store.Claim(ctx, item.ProductID, item.Quantity)
		if err != nil || !ok {
			if err != nil {
				log.Printf("stock claim failed for %s: %v", item.ProductID, err)
			}
			restoreItems(ctx, store, items[:i])
			return item.Name
		}
	}
	return ""
}

func restoreItems(ctx context.Context, store StockStore, items []models.OrderItem) {
	for _, item := range items {
		if err := store.Restore(ctx, item.ProductID, item.Quantity); err != nil {
			log.Printf("restock failed for %s: %v", item.ProductID, err)
		}
	}
}

// RestoreStock adds each line's quantity back to product stock. Lines for
// products that were deleted since the order was placed are skipped; a
// failure on one line never blocks the rest.
func RestoreStock(ctx context.Context, items []models.OrderItem) {
	restoreItems(ctx, productStock, items)
}
