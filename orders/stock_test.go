package orders

import (
	"context"
	"testing"

	"mcsons/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStock struct {
	levels   map[string]int
	restores int
}

func newFakeStock(levels map[string]int) *fakeStock {
	return &fakeStock{levels: levels}
}

func (f *fakeStock) Claim(_ context.Context, productID string, qty int) (bool, error) {
	if f.levels[productID] < qty {
		return false, nil
	}
	f.levels[productID] -= qty
	return true, nil
}

func (f *fakeStock) Restore(_ context.Context, productID string, qty int) error {
	f.levels[productID] += qty
	f.restores++
	return nil
}

func TestClaimStockSuccess(t *testing.T) {
	store := newFakeStock(map[string]int{"prd1": 5, "prd2": 3})
	items := []models.OrderItem{
		{ProductID: "prd1", Name: "Leather Handbag", Quantity: 2},
		{ProductID: "prd2", Name: "Cabin Trolley", Quantity: 3},
	}

	name := ClaimStock(context.Background(), store, items)

	require.Empty(t, name)
	assert.Equal(t, 3, store.levels["prd1"])
	assert.Equal(t, 0, store.levels["prd2"])
	assert.Zero(t, store.restores)
}

func TestClaimStockRollsBackEarlierLines(t *testing.T) {
	store := newFakeStock(map[string]int{"prd1": 5, "prd2": 1})
	items := []models.OrderItem{
		{ProductID: "prd1", Name: "Leather Handbag", Quantity: 2},
		{ProductID: "prd2", Name: "Cabin Trolley", Quantity: 3},
	}

	name := ClaimStock(context.Background(), store, items)

	assert.Equal(t, "Cabin Trolley", name)
	assert.Equal(t, 5, store.levels["prd1"])
	assert.Equal(t, 1, store.levels["prd2"])
	assert.Equal(t, 1, store.restores)
}

func TestClaimStockFirstLineFailsTouchesNothing(t *testing.T) {
	store := newFakeStock(map[string]int{"prd1": 0, "prd2": 3})
	items := []models.OrderItem{
		{ProductID: "prd1", Name: "Leather Handbag", Quantity: 1},
		{ProductID: "prd2", Name: "Cabin Trolley", Quantity: 1},
	}

	name := ClaimStock(context.Background(), store, items)

	assert.Equal(t, "Leather Handbag", name)
	assert.Equal(t, 3, store.levels["prd2"])
	assert.Zero(t, store.restores)
}

func TestRestockOnChange(t *testing.T) {
	assert.True(t, RestockOnChange(models.OrderPending, models.OrderCancelled))
	assert.True(t, RestockOnChange(models.OrderShipped, models.OrderCancelled))

	// A second cancellation must not restock again.
	assert.False(t, RestockOnChange(models.OrderCancelled, models.OrderCancelled))

	assert.False(t, RestockOnChange(models.OrderPending, models.OrderAccepted))
	assert.False(t, RestockOnChange(models.OrderShipped, models.OrderDelivered))
}
