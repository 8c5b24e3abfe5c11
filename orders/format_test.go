package orders

import (
	"encoding/json"
	"testing"
	"time"

	"mcsons/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleOrder() models.Order {
	return models.Order{
		OrderID: "ordabc123def456",
		UserID:  "u1234567890",
		Items: []models.OrderItem{
			{ProductID: "prd111", Name: "Leather Handbag", Price: 1499, Quantity: 1, Image: "/static/productpic/a.jpg"},
			{ProductID: "prd222", Name: "Cabin Trolley", Price: 2999, Quantity: 2, Image: "/static/productpic/b.jpg"},
		},
		Shipping: models.Shipping{
			FullName: "Asha Verma",
			Phone:    "9876543210",
			Address:  "12 MG Road",
			City:     "Pune",
			State:    "Maharashtra",
			Pincode:  "411001",
		},
		PaymentMethod: models.PaymentMethodCOD,
		PaymentStatus: models.PaymentPending,
		Total:         7497,
		Status:        models.OrderPending,
		CreatedAt:     time.Now(),
	}
}

func TestFormatOrderDualViewsAgree(t *testing.T) {
	view := FormatOrder(sampleOrder())

	assert.Equal(t, view.TotalPrice, view.TotalAmount)
	assert.Equal(t, view.ShippingDetails.Name, view.ShippingAddress.FullName)
	assert.Equal(t, view.ShippingDetails.Address, view.ShippingAddress.Address)
	assert.Equal(t, view.ShippingDetails.City, view.ShippingAddress.City)
	assert.Equal(t, view.ShippingDetails.Pincode, view.ShippingAddress.Pincode)
	assert.Equal(t, view.Phone, view.ShippingDetails.Phone)

	require.Len(t, view.Items, len(view.OrderItems))
	for i, ref := range view.Items {
		assert.Equal(t, view.OrderItems[i].ProductID, ref.ProductID)
		assert.Equal(t, view.OrderItems[i].Quantity, ref.Quantity)
		assert.Equal(t, view.OrderItems[i].Price, ref.Price)
	}
}

func TestFormatOrderEmptyRequestsSerializeAsArray(t *testing.T) {
	view := FormatOrder(sampleOrder())

	data, err := json.Marshal(view)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"returnExchangeRequests":[]`)
}

func TestLineRefRoundTrip(t *testing.T) {
	order := sampleOrder()

	refs := ToLineRefs(order.Items)
	rebuilt := FromLineRefs(refs)

	require.Len(t, rebuilt, len(order.Items))
	for i := range rebuilt {
		assert.Equal(t, order.Items[i].ProductID, rebuilt[i].ProductID)
		assert.Equal(t, order.Items[i].Quantity, rebuilt[i].Quantity)
		assert.Equal(t, order.Items[i].Price, rebuilt[i].Price)
	}
	assert.Equal(t, DeriveTotal(order.Items), DeriveTotal(rebuilt))
}

func TestDeriveTotal(t *testing.T) {
	assert.Equal(t, float64(0), DeriveTotal(nil))
	assert.Equal(t, 7497.0, DeriveTotal(sampleOrder().Items))
}

func TestNormalizeShippingPrefersCanonicalShape(t *testing.T) {
	var input shippingInput
	require.NoError(t, json.Unmarshal([]byte(`{
		"shippingAddress": {"fullName":"Asha Verma","address":"12 MG Road","city":"Pune","state":"MH","pincode":"411001"},
		"shippingDetails": {"name":"Old Name","phone":"1112223334","address":"Old Addr","city":"Old City","pincode":"000000"},
		"phone": "9876543210"
	}`), &input))

	s := input.NormalizeShipping("Account Name")

	assert.Equal(t, "Asha Verma", s.FullName)
	assert.Equal(t, "12 MG Road", s.Address)
	assert.Equal(t, "9876543210", s.Phone)
	assert.Equal(t, "MH", s.State)
}

func TestNormalizeShippingLegacyShape(t *testing.T) {
	var input shippingInput
	require.NoError(t, json.Unmarshal([]byte(`{
		"shippingDetails": {"name":"Asha Verma","phone":"1112223334","address":"12 MG Road","city":"Pune","pincode":"411001"}
	}`), &input))

	s := input.NormalizeShipping("Account Name")

	assert.Equal(t, "Asha Verma", s.FullName)
	assert.Equal(t, "1112223334", s.Phone)
	assert.Equal(t, "411001", s.Pincode)
	assert.Empty(t, s.State)
}

func TestNormalizeShippingFallsBackToAccountName(t *testing.T) {
	var input shippingInput
	require.NoError(t, json.Unmarshal([]byte(`{
		"shippingAddress": {"address":"12 MG Road","city":"Pune","state":"MH","pincode":"411001"},
		"phone": "9876543210"
	}`), &input))

	s := input.NormalizeShipping("Account Name")

	assert.Equal(t, "Account Name", s.FullName)
}
