package orders

import (
	"encoding/json"
	"testing"

	"mcsons/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusUpdatePayloadOrderStatusField(t *testing.T) {
	var p statusUpdatePayload
	require.NoError(t, json.Unmarshal([]byte(`{"orderStatus":"Cancelled"}`), &p))

	assert.Equal(t, models.OrderCancelled, p.Value())
	assert.True(t, ValidStatus(p.Value()))
}

func TestStatusUpdatePayloadLegacyAlias(t *testing.T) {
	var p statusUpdatePayload
	require.NoError(t, json.Unmarshal([]byte(`{"status":"Shipped"}`), &p))

	assert.Equal(t, models.OrderShipped, p.Value())
}

func TestStatusUpdatePayloadOrderStatusWins(t *testing.T) {
	var p statusUpdatePayload
	require.NoError(t, json.Unmarshal([]byte(`{"orderStatus":"Delivered","status":"Pending"}`), &p))

	assert.Equal(t, models.OrderDelivered, p.Value())
}

func TestStatusUpdatePayloadEmptyIsInvalid(t *testing.T) {
	var p statusUpdatePayload
	require.NoError(t, json.Unmarshal([]byte(`{}`), &p))

	assert.False(t, ValidStatus(p.Value()))
}
