package orders

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"mcsons/cart"
	"mcsons/db"
	"mcsons/models"
	"mcsons/mq"
	"mcsons/rdx"
	"mcsons/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// CreateOrder converts the user's cart into a Pending order.
//
// Stock is claimed in two phases: every line is validated against current
// stock first, then each line is decremented with a conditional update so a
// concurrent checkout can never drive stock negative. If any decrement
// loses the race, the ones already applied are rolled back and the whole
// checkout fails.
func CreateOrder(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var input shippingInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if input.PaymentMethod != "" && input.PaymentMethod != models.PaymentMethodCOD {
		utils.RespondWithError(w, http.StatusBadRequest, "Only Cash on Delivery is supported")
		return
	}

	userCart, err := cart.LoadOrCreateCart(ctx, userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not retrieve cart")
		return
	}
	if len(userCart.Items) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Cart is empty")
		return
	}

	var account models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&account); err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "User not found")
		return
	}

	shipping := input.NormalizeShipping(account.Name)
	if shipping.Address == "" || shipping.Pincode == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Shipping address is required")
		return
	}

	// Phase 1: validate every line against live stock and snapshot prices.
	items := make([]models.OrderItem, 0, len(userCart.Items))
	for _, line := range userCart.Items {
		var product models.Product
		err := db.ProductsCollection.FindOne(ctx, bson.M{"productid": line.ProductID}).Decode(&product)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Some products in cart are no longer available")
			return
		}
		if product.Stock < line.Quantity {
			utils.RespondWithError(w, http.StatusBadRequest, "Insufficient stock for "+product.Name)
			return
		}
		items = append(items, models.OrderItem{
			ProductID: product.ProductID,
			Name:      product.Name,
			Price:     product.EffectivePrice(),
			Quantity:  line.Quantity,
			Image:     product.PrimaryImage(),
		})
	}

	// Phase 2: claim stock line by line. Each claim re-checks the quantity
	// so a racing checkout fails here instead of oversubscribing; a lost
	// claim rolls the earlier lines back.
	if name := ClaimStock(ctx, productStock, items); name != "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Insufficient stock for "+name)
		return
	}

	order := models.Order{
		OrderID:        "ord" + utils.GenerateID(12),
		UserID:         userID,
		Items:          items,
		Shipping:       shipping,
		PaymentMethod:  models.PaymentMethodCOD,
		PaymentStatus:  models.PaymentPending,
		Total:          DeriveTotal(items),
		Status:         models.OrderPending,
		ReturnRequests: []models.ReturnRequest{},
		CreatedAt:      time.Now(),
	}

	if _, err := db.OrdersCollection.InsertOne(ctx, order); err != nil {
		RestoreStock(ctx, items)
		log.Println("CreateOrder insert error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to place order")
		return
	}

	// Cart clears after the order exists; a failure here leaves a stale
	// cart but never a lost order.
	if _, err := db.CartsCollection.UpdateOne(ctx,
		bson.M{"user": userID},
		bson.M{"$set": bson.M{"items": []models.CartItem{}, "updatedAt": time.Now()}},
	); err != nil {
		log.Println("CreateOrder cart clear error:", err)
	}

	rdx.InvalidatePrefix("productlist:")
	go mq.Emit("order-created", mq.Event{EntityType: "order", EntityID: order.OrderID, Method: "POST", UserID: userID})

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{
		"success": true,
		"message": "Order placed successfully",
		"order":   FormatOrder(order),
	})
}
