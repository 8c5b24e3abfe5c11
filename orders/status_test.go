package orders

import (
	"testing"

	"mcsons/models"

	"github.com/stretchr/testify/assert"
)

func TestValidStatus(t *testing.T) {
	for _, s := range AllowedStatuses {
		assert.True(t, ValidStatus(s), s)
	}
	assert.False(t, ValidStatus(models.OrderProcessing))
	assert.False(t, ValidStatus("pending"))
	assert.False(t, ValidStatus(""))
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, IsTerminal(models.OrderDelivered))
	assert.True(t, IsTerminal(models.OrderCancelled))
	assert.False(t, IsTerminal(models.OrderPending))
	assert.False(t, IsTerminal(models.OrderShipped))
}

func TestCanTransitionHappyPath(t *testing.T) {
	assert.True(t, CanTransition(models.OrderPending, models.OrderAccepted))
	assert.True(t, CanTransition(models.OrderAccepted, models.OrderShipped))
	assert.True(t, CanTransition(models.OrderShipped, models.OrderDelivered))
}

func TestCanTransitionNoSkipping(t *testing.T) {
	assert.False(t, CanTransition(models.OrderPending, models.OrderShipped))
	assert.False(t, CanTransition(models.OrderPending, models.OrderDelivered))
	assert.False(t, CanTransition(models.OrderAccepted, models.OrderDelivered))
}

func TestCanTransitionNoBackwards(t *testing.T) {
	assert.False(t, CanTransition(models.OrderShipped, models.OrderAccepted))
	assert.False(t, CanTransition(models.OrderAccepted, models.OrderPending))
	assert.False(t, CanTransition(models.OrderPending, models.OrderPending))
}

func TestCanTransitionCancellation(t *testing.T) {
	assert.True(t, CanTransition(models.OrderPending, models.OrderCancelled))
	assert.True(t, CanTransition(models.OrderAccepted, models.OrderCancelled))
	assert.True(t, CanTransition(models.OrderShipped, models.OrderCancelled))
}

func TestCanTransitionTerminalStatesAreFinal(t *testing.T) {
	for _, to := range AllowedStatuses {
		assert.False(t, CanTransition(models.OrderDelivered, to), "Delivered -> "+to)
		assert.False(t, CanTransition(models.OrderCancelled, to), "Cancelled -> "+to)
	}
}
