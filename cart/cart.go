package cart

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"mcsons/db"
	"mcsons/models"
	"mcsons/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// LoadOrCreateCart fetches the user's cart, creating an empty one on first
// access.
func LoadOrCreateCart(ctx context.Context, userID string) (models.Cart, error) {
	var cart models.Cart
	err := db.CartsCollection.FindOne(ctx, bson.M{"user": userID}).Decode(&cart)
	if err == mongo.ErrNoDocuments {
		cart = models.Cart{
			CartID:    "crt" + utils.GenerateID(12),
			UserID:    userID,
			Items:     []models.CartItem{},
			UpdatedAt: time.Now(),
		}
		if _, err := db.CartsCollection.InsertOne(ctx, cart); err != nil {
			return cart, err
		}
		return cart, nil
	}
	if cart.Items == nil {
		cart.Items = []models.CartItem{}
	}
	return cart, err
}

func saveItems(ctx context.Context, userID string, items []models.CartItem) error {
	_, err := db.CartsCollection.UpdateOne(ctx,
		bson.M{"user": userID},
		bson.M{"$set": bson.M{"items": items, "updatedAt": time.Now()}},
	)
	return err
}

// GetCart returns the user's cart, creating it lazily.
func GetCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	cart, err := LoadOrCreateCart(ctx, userID)
	if err != nil {
		log.Println("GetCart error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not retrieve cart")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "cart": cart})
}

// AddToCart adds a product line or bumps the quantity of an existing line.
// The stored price is the effective price at add time.
func AddToCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var input struct {
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if input.Quantity <= 0 {
		input.Quantity = 1
	}

	var product models.Product
	if err := db.ProductsCollection.FindOne(ctx, bson.M{"productid": input.ProductID}).Decode(&product); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}

	if product.Stock < input.Quantity {
		utils.RespondWithError(w, http.StatusBadRequest, "Insufficient stock")
		return
	}

	cart, err := LoadOrCreateCart(ctx, userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not retrieve cart")
		return
	}

	found := false
	for i := range cart.Items {
		if cart.Items[i].ProductID == input.ProductID {
			newQuantity := cart.Items[i].Quantity + input.Quantity
			if newQuantity > product.Stock {
				utils.RespondWithError(w, http.StatusBadRequest, "Insufficient stock for requested quantity")
				return
			}
			cart.Items[i].Quantity = newQuantity
			found = true
			break
		}
	}
	if !found {
		cart.Items = append(cart.Items, models.CartItem{
			ProductID: product.ProductID,
			Name:      product.Name,
			Price:     product.EffectivePrice(),
			Quantity:  input.Quantity,
			Image:     product.PrimaryImage(),
		})
	}

	if err := saveItems(ctx, userID, cart.Items); err != nil {
		log.Println("AddToCart save error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to add to cart")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "cart": cart})
}

// UpdateCartItem sets a line's quantity; zero or less removes the line.
func UpdateCartItem(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var input struct {
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	var cart models.Cart
	if err := db.CartsCollection.FindOne(ctx, bson.M{"user": userID}).Decode(&cart); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Cart not found")
		return
	}

	idx := -1
	for i := range cart.Items {
		if cart.Items[i].ProductID == input.ProductID {
			idx = i
			break
		}
	}
	if idx == -1 {
		utils.RespondWithError(w, http.StatusNotFound, "Item not found in cart")
		return
	}

	if input.Quantity <= 0 {
		cart.Items = append(cart.Items[:idx], cart.Items[idx+1:]...)
	} else {
		var product models.Product
		err := db.ProductsCollection.FindOne(ctx, bson.M{"productid": input.ProductID}).Decode(&product)
		if err != nil || product.Stock < input.Quantity {
			utils.RespondWithError(w, http.StatusBadRequest, "Insufficient stock")
			return
		}
		cart.Items[idx].Quantity = input.Quantity
	}

	if err := saveItems(ctx, userID, cart.Items); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update cart")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "cart": cart})
}

// RemoveFromCart drops a product line.
func RemoveFromCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var input struct {
		ProductID string `json:"productId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	var cart models.Cart
	if err := db.CartsCollection.FindOne(ctx, bson.M{"user": userID}).Decode(&cart); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Cart not found")
		return
	}

	kept := cart.Items[:0]
	for _, item := range cart.Items {
		if item.ProductID != input.ProductID {
			kept = append(kept, item)
		}
	}
	cart.Items = kept

	if err := saveItems(ctx, userID, cart.Items); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update cart")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "cart": cart})
}

// ClearCart empties the cart without deleting the document.
func ClearCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := saveItems(ctx, userID, []models.CartItem{}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to clear cart")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "message": "Cart cleared successfully"})
}
