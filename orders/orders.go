package orders

import (
	"context"
	"net/http"
	"time"

	"mcsons/db"
	"mcsons/models"
	"mcsons/mq"
	"mcsons/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func findOrders(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Order, error) {
	cursor, err := db.OrdersCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	list := []models.Order{}
	if err := cursor.All(ctx, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// GetMyOrders lists the caller's orders, newest first.
func GetMyOrders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	list, err := findOrders(ctx, bson.M{"user": userID},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not retrieve orders")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "orders": FormatOrders(list)})
}

// GetOrdersByUser lists a user's orders. Callers may read their own; admins
// may read anyone's.
func GetOrdersByUser(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	target := ps.ByName("userId")
	caller := utils.GetUserIDFromRequest(r)
	if caller != target && !utils.IsAdminRequest(r) {
		utils.RespondWithError(w, http.StatusForbidden, "Access denied")
		return
	}

	list, err := findOrders(ctx, bson.M{"user": target},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not retrieve orders")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "orders": FormatOrders(list)})
}

// GetOrder returns one order to its owner or an admin.
func GetOrder(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var order models.Order
	err := db.OrdersCollection.FindOne(ctx, bson.M{"orderid": ps.ByName("id")}).Decode(&order)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	}

	if order.UserID != utils.GetUserIDFromRequest(r) && !utils.IsAdminRequest(r) {
		utils.RespondWithError(w, http.StatusForbidden, "Access denied")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "order": FormatOrder(order)})
}

// GetOrdersForAdmin returns every order, newest first, without pagination.
// Kept for the legacy dashboard; GetAllOrders is the paginated variant.
func GetOrdersForAdmin(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	list, err := findOrders(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not retrieve orders")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "orders": FormatOrders(list)})
}

// GetAllOrders lists orders for the admin console with an optional status
// filter, pagination, and the running revenue over paid orders.
func GetAllOrders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	opts := utils.ParseQueryOptions(r, 20)

	filter := bson.M{}
	if opts.Status != "" && opts.Status != "all" {
		filter["orderStatus"] = opts.Status
	}

	list, err := findOrders(ctx, filter, options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64(opts.Skip())).
		SetLimit(int64(opts.Limit)))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not retrieve orders")
		return
	}

	total, err := db.OrdersCollection.CountDocuments(ctx, filter)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	revenue, err := paidRevenue(ctx)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"success":      true,
		"orders":       FormatOrders(list),
		"totalPages":   utils.TotalPages(total, opts.Limit),
		"currentPage":  opts.Page,
		"total":        total,
		"totalRevenue": revenue,
	})
}

// DeleteOrder removes an order permanently. Stock goes back unless the
// order was already cancelled, since cancellation restocked it.
func DeleteOrder(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	orderID := ps.ByName("id")

	var order models.Order
	if err := db.OrdersCollection.FindOne(ctx, bson.M{"orderid": orderID}).Decode(&order); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	}

	if RestockOnChange(order.Status, models.OrderCancelled) {
		RestoreStock(ctx, order.Items)
	}

	if _, err := db.OrdersCollection.DeleteOne(ctx, bson.M{"orderid": orderID}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete order")
		return
	}

	go mq.Emit("order-deleted", mq.Event{EntityType: "order", EntityID: orderID, Method: "DELETE"})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "message": "Order deleted successfully"})
}
