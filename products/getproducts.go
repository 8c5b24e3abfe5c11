package products

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"mcsons/db"
	"mcsons/models"
	"mcsons/rdx"
	"mcsons/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetProducts lists products with category/search filters, sorting and
// pagination. Results are cached per query in Redis.
func GetProducts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	opts := utils.ParseQueryOptions(r, 12)

	cacheKey := fmt.Sprintf("productlist:%s:%s:%s:%d:%d",
		opts.Category, opts.Search, opts.Sort, opts.Page, opts.Limit)
	if cached, err := rdx.RdxGet(cacheKey); err == nil && cached != "" {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(cached))
		return
	}

	filter := bson.M{}
	if opts.Category != "" && opts.Category != "all" {
		filter["category"] = opts.Category
	}
	if opts.Search != "" {
		filter["$or"] = []bson.M{
			{"name": bson.M{"$regex": opts.Search, "$options": "i"}},
			{"description": bson.M{"$regex": opts.Search, "$options": "i"}},
		}
	}

	sort := bson.D{{Key: "createdAt", Value: -1}}
	switch opts.Sort {
	case "price-low":
		sort = bson.D{{Key: "price", Value: 1}}
	case "price-high":
		sort = bson.D{{Key: "price", Value: -1}}
	case "rating":
		sort = bson.D{{Key: "rating", Value: -1}}
	}

	findOpts := options.Find().
		SetSort(sort).
		SetSkip(int64(opts.Skip())).
		SetLimit(int64(opts.Limit))

	cursor, err := db.ProductsCollection.Find(ctx, filter, findOpts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}
	for i := range products {
		products[i].Image = products[i].PrimaryImage()
	}

	total, err := db.ProductsCollection.CountDocuments(ctx, filter)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	payload := utils.M{
		"success":     true,
		"products":    products,
		"totalPages":  utils.TotalPages(total, opts.Limit),
		"currentPage": opts.Page,
		"total":       total,
	}

	if data, err := json.Marshal(payload); err == nil {
		rdx.SetWithExpiry(cacheKey, string(data), 60*time.Second)
	}

	utils.RespondWithJSON(w, http.StatusOK, payload)
}

// GetFeaturedProducts returns up to 8 in-stock featured products.
func GetFeaturedProducts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	findOpts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(8)

	cursor, err := db.ProductsCollection.Find(ctx,
		bson.M{"featured": true, "stock": bson.M{"$gt": 0}}, findOpts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}
	for i := range products {
		products[i].Image = products[i].PrimaryImage()
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "products": products})
}

// GetProduct fetches one product by id.
func GetProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var product models.Product
	err := db.ProductsCollection.FindOne(ctx, bson.M{"productid": ps.ByName("id")}).Decode(&product)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}

	product.Image = product.PrimaryImage()
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "product": product})
}

// GetCategories returns the fixed category set with display metadata.
func GetCategories(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	categories := []utils.M{
		{"name": "Handbags", "slug": "handbags", "image": "/images/handbags.jpg"},
		{"name": "Trolley Luggage", "slug": "trolley-luggage", "image": "/images/trolley.jpg"},
		{"name": "Travel Bags", "slug": "travel-bags", "image": "/images/travel.jpg"},
		{"name": "Backpacks", "slug": "backpacks", "image": "/images/backpacks.jpg"},
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "categories": categories})
}
