package orders

import (
	"time"

	"mcsons/models"
)

// LineRef is the slim legacy "items" view: product reference, quantity and
// unit price without the denormalized snapshot fields.
type LineRef struct {
	ProductID string  `json:"product"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// legacyShippingDetails / legacyShippingAddress are the two historical
// shapes older clients still read. Both are derived from the canonical
// Shipping struct at the boundary; nothing stores them.
type legacyShippingDetails struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city"`
	Pincode string `json:"pincode"`
}

type legacyShippingAddress struct {
	FullName string `json:"fullName"`
	Address  string `json:"address"`
	City     string `json:"city"`
	State    string `json:"state"`
	Pincode  string `json:"pincode"`
}

// OrderView is the wire shape of an order: the canonical fields plus every
// legacy alias, all derived.
type OrderView struct {
	OrderID         string                 `json:"orderid"`
	UserID          string                 `json:"userId"`
	OrderItems      []models.OrderItem     `json:"orderItems"`
	Items           []LineRef              `json:"items"`
	ShippingDetails legacyShippingDetails  `json:"shippingDetails"`
	ShippingAddress legacyShippingAddress  `json:"shippingAddress"`
	Phone           string                 `json:"phone"`
	PaymentMethod   string                 `json:"paymentMethod"`
	PaymentStatus   string                 `json:"paymentStatus"`
	TotalPrice      float64                `json:"totalPrice"`
	TotalAmount     float64                `json:"totalAmount"`
	OrderStatus     string                 `json:"orderStatus"`
	TrackingID      string                 `json:"trackingId"`
	ReturnRequests  []models.ReturnRequest `json:"returnExchangeRequests"`
	ShippedAt       *time.Time             `json:"shippedAt,omitempty"`
	DeliveredAt     *time.Time             `json:"deliveredAt,omitempty"`
	CreatedAt       time.Time              `json:"createdAt"`
}

// ToLineRefs projects full order lines onto the slim legacy list.
func ToLineRefs(items []models.OrderItem) []LineRef {
	refs := make([]LineRef, 0, len(items))
	for _, item := range items {
		refs = append(refs, LineRef{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}
	return refs
}

// FromLineRefs rebuilds order lines from the slim list. Snapshot fields
// are unknown at this level and stay empty.
func FromLineRefs(refs []LineRef) []models.OrderItem {
	items := make([]models.OrderItem, 0, len(refs))
	for _, ref := range refs {
		items = append(items, models.OrderItem{
			ProductID: ref.ProductID,
			Quantity:  ref.Quantity,
			Price:     ref.Price,
		})
	}
	return items
}

// DeriveTotal recomputes an order total from its lines.
func DeriveTotal(items []models.OrderItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// FormatOrder derives the full wire shape from a stored order.
func FormatOrder(o models.Order) OrderView {
	requests := o.ReturnRequests
	if requests == nil {
		requests = []models.ReturnRequest{}
	}

	return OrderView{
		OrderID:    o.OrderID,
		UserID:     o.UserID,
		OrderItems: o.Items,
		Items:      ToLineRefs(o.Items),
		ShippingDetails: legacyShippingDetails{
			Name:    o.Shipping.FullName,
			Phone:   o.Shipping.Phone,
			Address: o.Shipping.Address,
			City:    o.Shipping.City,
			Pincode: o.Shipping.Pincode,
		},
		ShippingAddress: legacyShippingAddress{
			FullName: o.Shipping.FullName,
			Address:  o.Shipping.Address,
			City:     o.Shipping.City,
			State:    o.Shipping.State,
			Pincode:  o.Shipping.Pincode,
		},
		Phone:          o.Shipping.Phone,
		PaymentMethod:  o.PaymentMethod,
		PaymentStatus:  o.PaymentStatus,
		TotalPrice:     o.Total,
		TotalAmount:    o.Total,
		OrderStatus:    o.Status,
		TrackingID:     o.TrackingID,
		ReturnRequests: requests,
		ShippedAt:      o.ShippedAt,
		DeliveredAt:    o.DeliveredAt,
		CreatedAt:      o.CreatedAt,
	}
}

func FormatOrders(list []models.Order) []OrderView {
	views := make([]OrderView, 0, len(list))
	for _, o := range list {
		views = append(views, FormatOrder(o))
	}
	return views
}

// shippingInput accepts both historical request shapes.
type shippingInput struct {
	ShippingAddress *struct {
		FullName string `json:"fullName"`
		Address  string `json:"address"`
		City     string `json:"city"`
		State    string `json:"state"`
		Pincode  string `json:"pincode"`
	} `json:"shippingAddress"`
	ShippingDetails *struct {
		Name    string `json:"name"`
		Phone   string `json:"phone"`
		Address string `json:"address"`
		City    string `json:"city"`
		Pincode string `json:"pincode"`
	} `json:"shippingDetails"`
	Phone         string `json:"phone"`
	PaymentMethod string `json:"paymentMethod"`
}

// NormalizeShipping folds either legacy request shape into the canonical
// one. The name falls back through: explicit full name, legacy details
// name, account name.
func (in shippingInput) NormalizeShipping(accountName string) models.Shipping {
	s := models.Shipping{}

	if in.ShippingAddress != nil {
		s.FullName = in.ShippingAddress.FullName
		s.Address = in.ShippingAddress.Address
		s.City = in.ShippingAddress.City
		s.State = in.ShippingAddress.State
		s.Pincode = in.ShippingAddress.Pincode
	}
	if in.ShippingDetails != nil {
		if s.FullName == "" {
			s.FullName = in.ShippingDetails.Name
		}
		if s.Address == "" {
			s.Address = in.ShippingDetails.Address
		}
		if s.City == "" {
			s.City = in.ShippingDetails.City
		}
		if s.Pincode == "" {
			s.Pincode = in.ShippingDetails.Pincode
		}
	}
	if s.FullName == "" {
		s.FullName = accountName
	}

	s.Phone = in.Phone
	if s.Phone == "" && in.ShippingDetails != nil {
		s.Phone = in.ShippingDetails.Phone
	}

	return s
}
