package products

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"mcsons/db"
	"mcsons/models"
	"mcsons/mq"
	"mcsons/rdx"
	"mcsons/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var productUploadPath = "./static/productpic"

// parseProductForm accepts either a JSON body or multipart form data with an
// optional image file, mirroring the two admin-console upload paths.
func parseProductForm(r *http.Request) (models.Product, bool, error) {
	var p models.Product

	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseMultipartForm(10 << 20); err != nil {
			return p, false, err
		}
		p.Name = strings.TrimSpace(r.FormValue("name"))
		p.Description = r.FormValue("description")
		p.Category = r.FormValue("category")
		p.Price, _ = strconv.ParseFloat(r.FormValue("price"), 64)
		p.SalePrice, _ = strconv.ParseFloat(r.FormValue("salePrice"), 64)
		p.Stock, _ = strconv.Atoi(r.FormValue("stock"))
		p.Featured = r.FormValue("featured") == "true"
		return p, true, nil
	}

	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		return p, false, err
	}
	p.Name = strings.TrimSpace(p.Name)
	return p, false, nil
}

func saveProductImage(w http.ResponseWriter, r *http.Request) (string, bool) {
	file, header, err := r.FormFile("image")
	if err == http.ErrMissingFile {
		return "", true
	}
	if err != nil {
		http.Error(w, "Error retrieving image file: "+err.Error(), http.StatusBadRequest)
		return "", false
	}
	defer file.Close()

	if !utils.ValidateImageFileType(w, header) {
		return "", false
	}

	filename, err := utils.SaveImageFile(file, header, productUploadPath)
	if err != nil {
		http.Error(w, "Error saving image: "+err.Error(), http.StatusInternalServerError)
		return "", false
	}

	ext := filepath.Ext(filename)
	id := strings.TrimSuffix(filename, ext)
	if err := utils.CreateThumb(id, productUploadPath, ext, 300); err != nil {
		log.Printf("thumbnail generation failed for %s: %v", filename, err)
	}

	return "/static/productpic/" + filename, true
}

func validateProduct(p models.Product) string {
	if p.Name == "" || len(p.Name) > 100 {
		return "Name must be between 1 and 100 characters"
	}
	if len(p.Description) > 2000 {
		return "Description cannot exceed 2000 characters"
	}
	if p.Price < 0 {
		return "Price cannot be negative"
	}
	if p.SalePrice < 0 {
		return "Sale price cannot be negative"
	}
	if p.Stock < 0 {
		return "Stock cannot be negative"
	}
	if !models.ValidCategory(p.Category) {
		return "Invalid category"
	}
	return ""
}

// CreateProduct inserts a product, or updates the existing one when an
// admin re-submits the same name within a category.
func CreateProduct(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	input, isMultipart, err := parseProductForm(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid product payload")
		return
	}

	if isMultipart {
		imageURL, ok := saveProductImage(w, r)
		if !ok {
			return
		}
		if imageURL != "" {
			input.Image = imageURL
			input.Images = []string{imageURL}
		}
	}

	if input.Image == "" && len(input.Images) > 0 {
		input.Image = input.Images[0]
	}
	if input.Image != "" && len(input.Images) == 0 {
		input.Images = []string{input.Image}
	}
	if input.Image == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Product image is required")
		return
	}

	if msg := validateProduct(input); msg != "" {
		utils.RespondWithError(w, http.StatusBadRequest, msg)
		return
	}

	// Same name within a category updates in place instead of duplicating.
	dupFilter := bson.M{
		"category": input.Category,
		"name":     bson.M{"$regex": "^" + regexp.QuoteMeta(input.Name) + "$", "$options": "i"},
	}
	var existing models.Product
	err = db.ProductsCollection.FindOne(ctx, dupFilter).Decode(&existing)
	if err == nil {
		update := bson.M{"$set": bson.M{
			"name":        input.Name,
			"description": input.Description,
			"price":       input.Price,
			"salePrice":   input.SalePrice,
			"stock":       input.Stock,
			"images":      input.Images,
			"image":       input.Image,
			"featured":    input.Featured,
		}}
		if _, err := db.ProductsCollection.UpdateOne(ctx, bson.M{"productid": existing.ProductID}, update); err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}
		rdx.InvalidatePrefix("productlist:")

		db.ProductsCollection.FindOne(ctx, bson.M{"productid": existing.ProductID}).Decode(&existing)
		utils.RespondWithJSON(w, http.StatusOK, utils.M{
			"success": true,
			"message": "Existing product updated",
			"product": existing,
		})
		return
	} else if err != mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	input.ProductID = "prd" + utils.GenerateID(12)
	input.Reviews = []models.Review{}
	input.CreatedAt = time.Now()

	if _, err := db.ProductsCollection.InsertOne(ctx, input); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to insert product: "+err.Error())
		return
	}

	rdx.InvalidatePrefix("productlist:")
	go mq.Emit("product-created", mq.Event{EntityType: "product", EntityID: input.ProductID, Method: "POST"})

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"success": true, "product": input})
}

// productPatch is a partial update: nil means the field was absent from
// the request and must not be written.
type productPatch struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	Price       *float64 `json:"price"`
	SalePrice   *float64 `json:"salePrice"`
	Stock       *int     `json:"stock"`
	Featured    *bool    `json:"featured"`
}

func parseProductPatch(r *http.Request) (productPatch, bool, error) {
	var p productPatch

	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseMultipartForm(10 << 20); err != nil {
			return p, false, err
		}
		form := r.MultipartForm.Value
		if v, ok := formField(form, "name"); ok {
			p.Name = &v
		}
		if v, ok := formField(form, "description"); ok {
			p.Description = &v
		}
		if v, ok := formField(form, "category"); ok {
			p.Category = &v
		}
		if v, ok := formField(form, "price"); ok {
			price, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return p, true, err
			}
			p.Price = &price
		}
		if v, ok := formField(form, "salePrice"); ok {
			salePrice, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return p, true, err
			}
			p.SalePrice = &salePrice
		}
		if v, ok := formField(form, "stock"); ok {
			stock, err := strconv.Atoi(v)
			if err != nil {
				return p, true, err
			}
			p.Stock = &stock
		}
		if v, ok := formField(form, "featured"); ok {
			featured := v == "true"
			p.Featured = &featured
		}
		return p, true, nil
	}

	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		return p, false, err
	}
	return p, false, nil
}

func formField(form map[string][]string, key string) (string, bool) {
	vals, ok := form[key]
	if !ok || len(vals) == 0 {
		return "", false
	}
	return vals[0], true
}

// buildUpdateFields turns a patch into the $set document, writing only the
// fields the request carried.
func buildUpdateFields(p productPatch) (bson.M, string) {
	fields := bson.M{}
	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		if name == "" || len(name) > 100 {
			return nil, "Name must be between 1 and 100 characters"
		}
		fields["name"] = name
	}
	if p.Description != nil {
		if len(*p.Description) > 2000 {
			return nil, "Description cannot exceed 2000 characters"
		}
		fields["description"] = *p.Description
	}
	if p.Category != nil {
		if !models.ValidCategory(*p.Category) {
			return nil, "Invalid category"
		}
		fields["category"] = *p.Category
	}
	if p.Price != nil {
		if *p.Price < 0 {
			return nil, "Price cannot be negative"
		}
		fields["price"] = *p.Price
	}
	if p.SalePrice != nil {
		if *p.SalePrice < 0 {
			return nil, "Sale price cannot be negative"
		}
		fields["salePrice"] = *p.SalePrice
	}
	if p.Stock != nil {
		if *p.Stock < 0 {
			return nil, "Stock cannot be negative"
		}
		fields["stock"] = *p.Stock
	}
	if p.Featured != nil {
		fields["featured"] = *p.Featured
	}
	return fields, ""
}

// UpdateProduct applies a partial update; absent fields keep their stored
// values.
func UpdateProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	productID := ps.ByName("id")

	patch, isMultipart, err := parseProductPatch(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid product payload")
		return
	}

	updateFields, msg := buildUpdateFields(patch)
	if msg != "" {
		utils.RespondWithError(w, http.StatusBadRequest, msg)
		return
	}

	if isMultipart {
		imageURL, ok := saveProductImage(w, r)
		if !ok {
			return
		}
		if imageURL != "" {
			updateFields["image"] = imageURL
			updateFields["images"] = []string{imageURL}
		}
	}

	if len(updateFields) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "No fields to update")
		return
	}

	result, err := db.ProductsCollection.UpdateOne(ctx,
		bson.M{"productid": productID},
		bson.M{"$set": updateFields},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if result.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}

	rdx.InvalidatePrefix("productlist:")
	rdx.RdxDel("product:" + productID)
	go mq.Emit("product-updated", mq.Event{EntityType: "product", EntityID: productID, Method: "PUT"})

	var product models.Product
	if err := db.ProductsCollection.FindOne(ctx, bson.M{"productid": productID}).Decode(&product); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "product": product})
}

// DeleteProduct removes a product permanently. Historical orders keep their
// denormalized snapshots, so no cascade.
func DeleteProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	productID := ps.ByName("id")

	result, err := db.ProductsCollection.DeleteOne(ctx, bson.M{"productid": productID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if result.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}

	rdx.InvalidatePrefix("productlist:")
	rdx.RdxDel("product:" + productID)
	go mq.Emit("product-deleted", mq.Event{EntityType: "product", EntityID: productID, Method: "DELETE"})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "message": "Product deleted successfully"})
}
