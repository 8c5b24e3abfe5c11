package orders

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"time"

	"mcsons/db"
	"mcsons/models"
	"mcsons/mq"
	"mcsons/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type returnRequestInput struct {
	RequestType string  `json:"requestType"`
	Reason      string  `json:"reason"`
	RefundMode  string  `json:"refundMode"`
	UPIID       string  `json:"upiId"`
	AccountName string  `json:"accountHolderName"`
	AccountNo   string  `json:"accountNumber"`
	IFSC        string  `json:"ifscCode"`
	BankName    string  `json:"bankName"`
	ProductName string  `json:"requestedProductName"`
	Color       string  `json:"requestedProductColor"`
	Price       float64 `json:"requestedProductPrice"`
}

// BuildReturnRequest validates the raw request against the order and
// produces the request to append. Returns an error message, empty on
// success. Kept free of storage concerns so the rules are testable.
func BuildReturnRequest(input returnRequestInput, order models.Order, userID string, now time.Time) (models.ReturnRequest, string) {
	req := models.ReturnRequest{
		RequestID:   "ret" + utils.GenerateID(12),
		RequestType: input.RequestType,
		Reason:      input.Reason,
		Status:      models.RequestRequested,
		CustomerUID: userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	switch input.RequestType {
	case models.RequestTypeReturn:
		refund, msg := ValidateRefund(models.RefundDetails{
			Mode:          input.RefundMode,
			UPIID:         input.UPIID,
			AccountHolder: input.AccountName,
			AccountNumber: input.AccountNo,
			IFSC:          input.IFSC,
			BankName:      input.BankName,
		})
		if msg != "" {
			return req, msg
		}
		req.Refund = &refund
	case models.RequestTypeExchange:
		exchange, msg := BuildExchange(input.ProductName, input.Color, input.Price, order.Total)
		if msg != "" {
			return req, msg
		}
		req.Exchange = &exchange
	default:
		return req, "Request type must be Return or Exchange"
	}

	return req, ""
}

// RequestReturnExchange opens a return or exchange request on a delivered
// order. One active request per order; a rejected or completed request
// frees the slot.
func RequestReturnExchange(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var input returnRequestInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	orderID := ps.ByName("id")
	order, ok := loadOrder(ctx, orderID)
	if !ok {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	}
	if order.UserID != userID {
		utils.RespondWithError(w, http.StatusForbidden, "Access denied")
		return
	}
	if order.Status != models.OrderDelivered {
		utils.RespondWithError(w, http.StatusBadRequest, "Only delivered orders are eligible for return or exchange")
		return
	}
	if order.ActiveReturnRequest() != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "An active return or exchange request already exists for this order")
		return
	}

	req, msg := BuildReturnRequest(input, order, userID, time.Now())
	if msg != "" {
		utils.RespondWithError(w, http.StatusBadRequest, msg)
		return
	}

	if _, err := db.OrdersCollection.UpdateOne(ctx,
		bson.M{"orderid": orderID},
		bson.M{"$push": bson.M{"returnExchangeRequests": req}}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to submit request")
		return
	}

	go mq.Emit("return-requested", mq.Event{EntityType: "order", EntityID: orderID, Method: "POST", UserID: userID})

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{
		"success": true,
		"message": "Request submitted successfully",
		"request": req,
	})
}

// returnRow is one flattened request with its order context, the shape the
// admin console renders.
type returnRow struct {
	OrderID   string               `json:"orderId"`
	UserID    string               `json:"userId"`
	OrderDate time.Time            `json:"orderDate"`
	Total     float64              `json:"totalAmount"`
	Request   models.ReturnRequest `json:"request"`
}

// GetReturnRequests lists every return/exchange request across orders for
// the admin console, newest request first.
func GetReturnRequests(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	opts := utils.ParseQueryOptions(r, 300)
	if opts.Limit > 1000 {
		opts.Limit = 1000
	}

	list, err := findOrders(ctx,
		bson.M{"returnExchangeRequests.0": bson.M{"$exists": true}},
		options.Find().
			SetSort(bson.D{{Key: "createdAt", Value: -1}}).
			SetLimit(int64(opts.Limit)))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not retrieve requests")
		return
	}

	rows := []returnRow{}
	for _, order := range list {
		for _, req := range order.ReturnRequests {
			if opts.Status != "" && opts.Status != "all" && req.Status != opts.Status {
				continue
			}
			rows = append(rows, returnRow{
				OrderID:   order.OrderID,
				UserID:    order.UserID,
				OrderDate: order.CreatedAt,
				Total:     order.Total,
				Request:   req,
			})
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Request.CreatedAt.After(rows[j].Request.CreatedAt)
	})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"success":  true,
		"requests": rows,
		"total":    len(rows),
	})
}

// UpdateReturnStatus sets the status of one request, addressed by its id
// across all orders.
func UpdateReturnStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var input struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if !ValidRequestStatus(input.Status) {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request status")
		return
	}

	requestID := ps.ByName("requestId")
	res, err := db.OrdersCollection.UpdateOne(ctx,
		bson.M{"returnExchangeRequests.requestId": requestID},
		bson.M{"$set": bson.M{
			"returnExchangeRequests.$.status":    input.Status,
			"returnExchangeRequests.$.updatedAt": time.Now(),
		}})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update request")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Request not found")
		return
	}

	go mq.Emit("return-status-updated", mq.Event{EntityType: "order", EntityID: requestID, Method: "PUT"})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "message": "Request status updated"})
}
