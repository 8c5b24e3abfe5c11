package orders

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"mcsons/db"
	"mcsons/models"
	"mcsons/mq"
	"mcsons/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

func loadOrder(ctx context.Context, orderID string) (models.Order, bool) {
	var order models.Order
	err := db.OrdersCollection.FindOne(ctx, bson.M{"orderid": orderID}).Decode(&order)
	return order, err == nil
}

func respondUpdated(ctx context.Context, w http.ResponseWriter, orderID, message string) {
	order, ok := loadOrder(ctx, orderID)
	if !ok {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"success": true,
		"message": message,
		"order":   FormatOrder(order),
	})
}

// AcceptOrder moves a Pending order to Accepted. Any other starting status
// is rejected; the admin override endpoint exists for corrections.
func AcceptOrder(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	orderID := ps.ByName("id")
	order, ok := loadOrder(ctx, orderID)
	if !ok {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	}
	if order.Status != models.OrderPending {
		utils.RespondWithError(w, http.StatusBadRequest, "Only pending orders can be accepted")
		return
	}

	_, err := db.OrdersCollection.UpdateOne(ctx,
		bson.M{"orderid": orderID},
		bson.M{"$set": bson.M{"orderStatus": models.OrderAccepted}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to accept order")
		return
	}

	go mq.Emit("order-accepted", mq.Event{EntityType: "order", EntityID: orderID, Method: "PUT"})
	respondUpdated(ctx, w, orderID, "Order accepted")
}

// UpdateTracking stores the courier tracking id and marks the order
// Shipped, stamping shippedAt on the way.
func UpdateTracking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var input struct {
		TrackingID string `json:"trackingId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	input.TrackingID = strings.TrimSpace(input.TrackingID)
	if input.TrackingID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Tracking ID is required")
		return
	}

	orderID := ps.ByName("id")
	now := time.Now()

	res, err := db.OrdersCollection.UpdateOne(ctx,
		bson.M{"orderid": orderID},
		bson.M{"$set": bson.M{
			"trackingId":  input.TrackingID,
			"orderStatus": models.OrderShipped,
			"shippedAt":   now,
		}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update tracking")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	}

	go mq.Emit("order-shipped", mq.Event{EntityType: "order", EntityID: orderID, Method: "PUT"})
	respondUpdated(ctx, w, orderID, "Tracking updated")
}

// statusUpdatePayload carries the admin status override. The console sends
// orderStatus; status is an older alias still seen from scripted clients.
type statusUpdatePayload struct {
	OrderStatus string `json:"orderStatus"`
	Status      string `json:"status"`
}

func (p statusUpdatePayload) Value() string {
	if p.OrderStatus != "" {
		return p.OrderStatus
	}
	return p.Status
}

// UpdateOrderStatus is the admin override: any of the five canonical
// statuses may be set regardless of the current one. Moving into Cancelled
// restores stock; moving into Shipped or Delivered stamps the timestamp if
// it is not already set.
func UpdateOrderStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var input statusUpdatePayload
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	next := input.Value()
	if !ValidStatus(next) {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid order status")
		return
	}

	orderID := ps.ByName("id")
	order, ok := loadOrder(ctx, orderID)
	if !ok {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	}

	if RestockOnChange(order.Status, next) {
		RestoreStock(ctx, order.Items)
	}

	set := bson.M{"orderStatus": next}
	now := time.Now()
	if next == models.OrderShipped && order.ShippedAt == nil {
		set["shippedAt"] = now
	}
	if next == models.OrderDelivered && order.DeliveredAt == nil {
		set["deliveredAt"] = now
	}

	if _, err := db.OrdersCollection.UpdateOne(ctx,
		bson.M{"orderid": orderID}, bson.M{"$set": set}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update order status")
		return
	}

	go mq.Emit("order-status-updated", mq.Event{EntityType: "order", EntityID: orderID, Method: "PUT"})
	respondUpdated(ctx, w, orderID, "Order status updated")
}

// CancelOrder lets a customer cancel their own order while it is still in
// a non-terminal state. Stock goes back immediately.
func CancelOrder(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	orderID := ps.ByName("id")
	order, ok := loadOrder(ctx, orderID)
	if !ok {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	}

	if order.UserID != utils.GetUserIDFromRequest(r) && !utils.IsAdminRequest(r) {
		utils.RespondWithError(w, http.StatusForbidden, "Access denied")
		return
	}
	if !CanTransition(order.Status, models.OrderCancelled) {
		utils.RespondWithError(w, http.StatusBadRequest, "Order can no longer be cancelled")
		return
	}

	RestoreStock(ctx, order.Items)

	if _, err := db.OrdersCollection.UpdateOne(ctx,
		bson.M{"orderid": orderID},
		bson.M{"$set": bson.M{"orderStatus": models.OrderCancelled}}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to cancel order")
		return
	}

	go mq.Emit("order-cancelled", mq.Event{EntityType: "order", EntityID: orderID, Method: "PUT", UserID: order.UserID})
	respondUpdated(ctx, w, orderID, "Order cancelled")
}
