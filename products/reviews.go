package products

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"mcsons/db"
	"mcsons/models"
	"mcsons/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// RecalculateRating derives the aggregate rating fields from the review
// list. Rating is the plain mean, zero when there are no reviews.
func RecalculateRating(reviews []models.Review) (float64, int) {
	if len(reviews) == 0 {
		return 0, 0
	}
	var sum float64
	for _, rev := range reviews {
		sum += rev.Rating
	}
	return sum / float64(len(reviews)), len(reviews)
}

// AddReview appends a review and refreshes the derived rating fields.
func AddReview(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var input struct {
		Rating  float64 `json:"rating"`
		Comment string  `json:"comment"`
		Name    string  `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if input.Rating < 0 || input.Rating > 5 {
		utils.RespondWithError(w, http.StatusBadRequest, "Rating must be between 0 and 5")
		return
	}

	productID := ps.ByName("id")

	var product models.Product
	if err := db.ProductsCollection.FindOne(ctx, bson.M{"productid": productID}).Decode(&product); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}

	review := models.Review{
		UserID:    userID,
		Name:      input.Name,
		Rating:    input.Rating,
		Comment:   input.Comment,
		CreatedAt: time.Now(),
	}

	reviews := append(product.Reviews, review)
	rating, numReviews := RecalculateRating(reviews)

	update := bson.M{"$set": bson.M{
		"reviews":    reviews,
		"rating":     rating,
		"numReviews": numReviews,
	}}
	if _, err := db.ProductsCollection.UpdateOne(ctx, bson.M{"productid": productID}, update); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "message": "Review added successfully"})
}
