package orders

import "mcsons/models"

// AllowedStatuses are the values an admin may set through the status
// endpoint. The stored enum also tolerates a legacy Processing value on
// old documents, but it is never a valid target.
var AllowedStatuses = []string{
	models.OrderPending,
	models.OrderAccepted,
	models.OrderShipped,
	models.OrderDelivered,
	models.OrderCancelled,
}

func ValidStatus(s string) bool {
	for _, allowed := range AllowedStatuses {
		if s == allowed {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions are possible.
func IsTerminal(status string) bool {
	return status == models.OrderDelivered || status == models.OrderCancelled
}

// forward is the customer-visible happy path. Each status advances to
// exactly one successor.
var forward = map[string]string{
	models.OrderPending:  models.OrderAccepted,
	models.OrderAccepted: models.OrderShipped,
	models.OrderShipped:  models.OrderDelivered,
}

// RestockOnChange reports whether moving to next releases the order's
// claimed stock. Only the first entry into Cancelled restocks, so repeating
// a cancellation never doubles inventory.
func RestockOnChange(current, next string) bool {
	return next == models.OrderCancelled && current != models.OrderCancelled
}

// CanTransition reports whether the strict lifecycle permits moving from
// one status to another: one step forward, or cancellation from any
// non-terminal state. Admin overrides bypass this check.
func CanTransition(from, to string) bool {
	if from == to {
		return false
	}
	if IsTerminal(from) {
		return false
	}
	if to == models.OrderCancelled {
		return true
	}
	return forward[from] == to
}
