package models

import "time"

// Order statuses. Processing is a legacy value still accepted on input but
// never produced by any transition.
const (
	OrderPending    = "Pending"
	OrderAccepted   = "Accepted"
	OrderShipped    = "Shipped"
	OrderDelivered  = "Delivered"
	OrderCancelled  = "Cancelled"
	OrderProcessing = "Processing"
)

const (
	PaymentPending = "Pending"
	PaymentPaid    = "Paid"
)

const PaymentMethodCOD = "COD"

// Return/exchange request statuses.
const (
	RequestRequested = "Requested"
	RequestApproved  = "Approved"
	RequestRejected  = "Rejected"
	RequestCompleted = "Completed"
)

const (
	RequestTypeReturn   = "Return"
	RequestTypeExchange = "Exchange"
)

const (
	RefundModeUPI  = "UPI"
	RefundModeBank = "Bank"
)

// OrderItem is an immutable line: the product reference plus a denormalized
// snapshot of name, effective price and image taken at checkout.
type OrderItem struct {
	ProductID string  `json:"product" bson:"product"`
	Name      string  `json:"name" bson:"name"`
	Price     float64 `json:"price" bson:"price"`
	Quantity  int     `json:"quantity" bson:"quantity"`
	Image     string  `json:"image" bson:"image"`
}

// Shipping is the single canonical shipping shape. The two historical API
// shapes (shippingDetails / shippingAddress) are derived views, see the
// orders package.
type Shipping struct {
	FullName string `json:"fullName" bson:"fullName"`
	Phone    string `json:"phone" bson:"phone"`
	Address  string `json:"address" bson:"address"`
	City     string `json:"city" bson:"city"`
	State    string `json:"state" bson:"state"`
	Pincode  string `json:"pincode" bson:"pincode"`
}

type RefundDetails struct {
	Mode          string `json:"refundMode" bson:"refundMode"`
	UPIID         string `json:"upiId,omitempty" bson:"upiId,omitempty"`
	AccountHolder string `json:"accountHolderName,omitempty" bson:"accountHolderName,omitempty"`
	AccountNumber string `json:"accountNumber,omitempty" bson:"accountNumber,omitempty"`
	IFSC          string `json:"ifscCode,omitempty" bson:"ifscCode,omitempty"`
	BankName      string `json:"bankName,omitempty" bson:"bankName,omitempty"`
}

type ExchangeDetails struct {
	ProductName         string  `json:"requestedProductName" bson:"requestedProductName"`
	Color               string  `json:"requestedProductColor" bson:"requestedProductColor"`
	Price               float64 `json:"requestedProductPrice" bson:"requestedProductPrice"`
	PreviousOrderAmount float64 `json:"previousOrderAmount" bson:"previousOrderAmount"`
	ExtraPayable        float64 `json:"extraPayable" bson:"extraPayable"`
}

type ReturnRequest struct {
	RequestID   string           `json:"requestId" bson:"requestId"`
	RequestType string           `json:"requestType" bson:"requestType"`
	Reason      string           `json:"reason" bson:"reason"`
	Status      string           `json:"status" bson:"status"`
	CustomerUID string           `json:"customerUid" bson:"customerUid"`
	Refund      *RefundDetails   `json:"refundDetails,omitempty" bson:"refundDetails,omitempty"`
	Exchange    *ExchangeDetails `json:"exchangeDetails,omitempty" bson:"exchangeDetails,omitempty"`
	CreatedAt   time.Time        `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt" bson:"updatedAt"`
}

// Active means the request still occupies the order's single request slot.
func (r ReturnRequest) Active() bool {
	return r.Status == RequestRequested || r.Status == RequestApproved
}

// Order is stored in the canonical shape only. Legacy dual fields are
// produced at the API boundary.
type Order struct {
	OrderID        string          `json:"orderid" bson:"orderid"`
	UserID         string          `json:"user" bson:"user"`
	Items          []OrderItem     `json:"items" bson:"items"`
	Shipping       Shipping        `json:"shipping" bson:"shipping"`
	PaymentMethod  string          `json:"paymentMethod" bson:"paymentMethod"`
	PaymentStatus  string          `json:"paymentStatus" bson:"paymentStatus"`
	Total          float64         `json:"total" bson:"total"`
	Status         string          `json:"orderStatus" bson:"orderStatus"`
	TrackingID     string          `json:"trackingId" bson:"trackingId"`
	ReturnRequests []ReturnRequest `json:"returnExchangeRequests" bson:"returnExchangeRequests"`
	ShippedAt      *time.Time      `json:"shippedAt,omitempty" bson:"shippedAt,omitempty"`
	DeliveredAt    *time.Time      `json:"deliveredAt,omitempty" bson:"deliveredAt,omitempty"`
	CreatedAt      time.Time       `json:"createdAt" bson:"createdAt"`
}

// ActiveReturnRequest returns the request currently holding the slot, if any.
func (o Order) ActiveReturnRequest() *ReturnRequest {
	for i := range o.ReturnRequests {
		if o.ReturnRequests[i].Active() {
			return &o.ReturnRequests[i]
		}
	}
	return nil
}
