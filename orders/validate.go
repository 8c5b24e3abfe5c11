package orders

import (
	"strings"

	"mcsons/models"
)

// ValidateRefund checks refund details for a return request. UPI needs a
// VPA; bank transfers need the full account tuple. Returns a normalized
// copy (trimmed, IFSC upper-cased) and an error message, empty on success.
func ValidateRefund(refund models.RefundDetails) (models.RefundDetails, string) {
	refund.UPIID = strings.TrimSpace(refund.UPIID)
	refund.AccountHolder = strings.TrimSpace(refund.AccountHolder)
	refund.AccountNumber = strings.TrimSpace(refund.AccountNumber)
	refund.IFSC = strings.ToUpper(strings.TrimSpace(refund.IFSC))
	refund.BankName = strings.TrimSpace(refund.BankName)

	switch refund.Mode {
	case models.RefundModeUPI:
		if refund.UPIID == "" {
			return refund, "UPI ID is required for UPI refunds"
		}
	case models.RefundModeBank:
		if refund.AccountHolder == "" || refund.AccountNumber == "" ||
			refund.IFSC == "" || refund.BankName == "" {
			return refund, "Complete bank details are required for bank refunds"
		}
	default:
		return refund, "Refund mode must be UPI or Bank Transfer"
	}
	return refund, ""
}

// BuildExchange validates an exchange target against the original order
// total. Exchanges are upgrade-only: the requested product must cost more
// than what was already paid, and the difference is collected on delivery.
func BuildExchange(productName, color string, requestedPrice, orderTotal float64) (models.ExchangeDetails, string) {
	if strings.TrimSpace(productName) == "" {
		return models.ExchangeDetails{}, "Exchange product is required"
	}
	if requestedPrice <= orderTotal {
		return models.ExchangeDetails{}, "Exchange is only available for a product of higher value"
	}
	return models.ExchangeDetails{
		ProductName:         strings.TrimSpace(productName),
		Color:               strings.TrimSpace(color),
		Price:               requestedPrice,
		PreviousOrderAmount: orderTotal,
		ExtraPayable:        requestedPrice - orderTotal,
	}, ""
}

// ValidRequestStatus guards the admin status update for return/exchange
// requests.
func ValidRequestStatus(s string) bool {
	switch s {
	case models.RequestRequested, models.RequestApproved,
		models.RequestRejected, models.RequestCompleted:
		return true
	}
	return false
}
