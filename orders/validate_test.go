package orders

import (
	"testing"
	"time"

	"mcsons/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRefundUPI(t *testing.T) {
	refund, msg := ValidateRefund(models.RefundDetails{
		Mode:  models.RefundModeUPI,
		UPIID: " asha@upi ",
	})
	assert.Empty(t, msg)
	assert.Equal(t, "asha@upi", refund.UPIID)

	_, msg = ValidateRefund(models.RefundDetails{Mode: models.RefundModeUPI})
	assert.Equal(t, "UPI ID is required for UPI refunds", msg)
}

func TestValidateRefundBank(t *testing.T) {
	refund, msg := ValidateRefund(models.RefundDetails{
		Mode:          models.RefundModeBank,
		AccountHolder: "Asha Verma",
		AccountNumber: "123456789012",
		IFSC:          "hdfc0001234",
		BankName:      "HDFC Bank",
	})
	assert.Empty(t, msg)
	assert.Equal(t, "HDFC0001234", refund.IFSC)

	_, msg = ValidateRefund(models.RefundDetails{
		Mode:          models.RefundModeBank,
		AccountHolder: "Asha Verma",
		AccountNumber: "123456789012",
	})
	assert.Equal(t, "Complete bank details are required for bank refunds", msg)
}

func TestValidateRefundUnknownMode(t *testing.T) {
	_, msg := ValidateRefund(models.RefundDetails{Mode: "Cheque"})
	assert.NotEmpty(t, msg)
}

func TestBuildExchangeUpgradeOnly(t *testing.T) {
	_, msg := BuildExchange("Cabin Trolley", "Black", 1999, 2999)
	assert.Equal(t, "Exchange is only available for a product of higher value", msg)

	_, msg = BuildExchange("Cabin Trolley", "Black", 2999, 2999)
	assert.NotEmpty(t, msg)

	exchange, msg := BuildExchange("Cabin Trolley XL", "Black", 3999, 2999)
	require.Empty(t, msg)
	assert.Equal(t, 1000.0, exchange.ExtraPayable)
	assert.Equal(t, 2999.0, exchange.PreviousOrderAmount)
	assert.Equal(t, 3999.0, exchange.Price)
}

func TestBuildExchangeRequiresProduct(t *testing.T) {
	_, msg := BuildExchange("  ", "Black", 3999, 2999)
	assert.Equal(t, "Exchange product is required", msg)
}

func TestValidRequestStatus(t *testing.T) {
	for _, s := range []string{
		models.RequestRequested, models.RequestApproved,
		models.RequestRejected, models.RequestCompleted,
	} {
		assert.True(t, ValidRequestStatus(s), s)
	}
	assert.False(t, ValidRequestStatus("Pending"))
	assert.False(t, ValidRequestStatus(""))
}

func TestBuildReturnRequestReturn(t *testing.T) {
	order := sampleOrder()
	now := time.Now()

	req, msg := BuildReturnRequest(returnRequestInput{
		RequestType: models.RequestTypeReturn,
		Reason:      "Damaged on arrival",
		RefundMode:  models.RefundModeUPI,
		UPIID:       "asha@upi",
	}, order, order.UserID, now)

	require.Empty(t, msg)
	assert.Equal(t, models.RequestRequested, req.Status)
	assert.Equal(t, order.UserID, req.CustomerUID)
	assert.True(t, req.Active())
	require.NotNil(t, req.Refund)
	assert.Nil(t, req.Exchange)
	assert.Equal(t, now, req.CreatedAt)
	assert.Equal(t, now, req.UpdatedAt)
}

func TestBuildReturnRequestExchange(t *testing.T) {
	order := sampleOrder()

	req, msg := BuildReturnRequest(returnRequestInput{
		RequestType: models.RequestTypeExchange,
		Reason:      "Need a bigger size",
		ProductName: "Cabin Trolley XL",
		Color:       "Black",
		Price:       7999,
	}, order, order.UserID, time.Now())

	require.Empty(t, msg)
	require.NotNil(t, req.Exchange)
	assert.Nil(t, req.Refund)
	assert.Equal(t, order.Total, req.Exchange.PreviousOrderAmount)
	assert.Equal(t, 7999-order.Total, req.Exchange.ExtraPayable)
}

func TestBuildReturnRequestRejectsUnknownType(t *testing.T) {
	_, msg := BuildReturnRequest(returnRequestInput{RequestType: "Refund"}, sampleOrder(), "u1", time.Now())
	assert.Equal(t, "Request type must be Return or Exchange", msg)
}

func TestActiveReturnRequestSlot(t *testing.T) {
	order := sampleOrder()
	assert.Nil(t, order.ActiveReturnRequest())

	order.ReturnRequests = []models.ReturnRequest{
		{RequestID: "ret1", Status: models.RequestRejected},
		{RequestID: "ret2", Status: models.RequestCompleted},
	}
	assert.Nil(t, order.ActiveReturnRequest())

	order.ReturnRequests = append(order.ReturnRequests,
		models.ReturnRequest{RequestID: "ret3", Status: models.RequestApproved})
	active := order.ActiveReturnRequest()
	require.NotNil(t, active)
	assert.Equal(t, "ret3", active.RequestID)
}
