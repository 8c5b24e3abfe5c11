package auth

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"mcsons/db"
	"mcsons/globals"
	"mcsons/middleware"
	"mcsons/models"
	"mcsons/mq"
	"mcsons/utils"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 12 * time.Hour

func generateToken(user models.User) (string, error) {
	claims := &middleware.Claims{
		Name:   user.Name,
		UserID: user.UserID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(globals.JwtSecret)
}

func registerHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name      string `json:"name"`
		Email     string `json:"email"`
		Password  string `json:"password"`
		Phone     string `json:"phone"`
		Address   string `json:"address"`
		StoreName string `json:"storeName"`
		City      string `json:"city"`
		State     string `json:"state"`
		Pincode   string `json:"pincode"`
		GSTNumber string `json:"gstNumber"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	email := utils.NormalizeEmail(input.Email)
	if input.Name == "" || email == "" || input.Password == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Name, email and password are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	err := db.UserCollection.FindOne(ctx, bson.M{"email": email}).Err()
	if err == nil {
		utils.RespondWithError(w, http.StatusBadRequest, "User already exists with this email")
		return
	} else if err != mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Failed to hash password for %s: %v", email, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	user := models.User{
		UserID:    "u" + utils.GenerateID(10),
		Name:      input.Name,
		Email:     email,
		Password:  string(hashedPassword),
		Role:      []string{"user"},
		Phone:     input.Phone,
		Address:   input.Address,
		StoreName: input.StoreName,
		City:      input.City,
		State:     input.State,
		Pincode:   input.Pincode,
		GSTNumber: input.GSTNumber,
		CreatedAt: time.Now(),
	}

	if _, err := db.UserCollection.InsertOne(ctx, user); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to register user")
		return
	}

	token, err := generateToken(user)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	go mq.Emit("user-registered", mq.Event{EntityType: "user", EntityID: user.UserID, Method: "POST"})

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{
		"success": true,
		"token":   token,
		"user":    user.Profile(),
	})
}

func loginHandler(w http.ResponseWriter, r *http.Request, adminOnly bool) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	email := utils.NormalizeEmail(input.Email)
	if email == "" || input.Password == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Please provide email and password")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var user models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	if adminOnly && !user.IsAdmin() {
		utils.RespondWithError(w, http.StatusForbidden, "Only admin can login to owner panel")
		return
	}

	token, err := generateToken(user)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	db.UserCollection.UpdateOne(ctx,
		bson.M{"userid": user.UserID},
		bson.M{"$set": bson.M{"last_login": time.Now()}},
	)

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"success": true,
		"token":   token,
		"user":    user.Profile(),
	})
}

func getProfileHandler(w http.ResponseWriter, r *http.Request) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var user models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&user); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "user": user.Profile()})
}

func updateProfileHandler(w http.ResponseWriter, r *http.Request) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var input struct {
		Name      string `json:"name"`
		Phone     string `json:"phone"`
		Address   string `json:"address"`
		StoreName string `json:"storeName"`
		City      string `json:"city"`
		State     string `json:"state"`
		Pincode   string `json:"pincode"`
		GSTNumber string `json:"gstNumber"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"name":      input.Name,
		"phone":     input.Phone,
		"address":   input.Address,
		"storeName": input.StoreName,
		"city":      input.City,
		"state":     input.State,
		"pincode":   input.Pincode,
		"gstNumber": input.GSTNumber,
	}}

	if _, err := db.UserCollection.UpdateOne(ctx, bson.M{"userid": userID}, update); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	var user models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&user); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "user": user.Profile()})
}

func deleteAccountHandler(w http.ResponseWriter, r *http.Request) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized request")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	res, err := db.UserCollection.DeleteOne(ctx, bson.M{"userid": userID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}

	// Orders are kept for bookkeeping; only the cart goes with the account.
	if _, err := db.CartsCollection.DeleteMany(ctx, bson.M{"user": userID}); err != nil {
		log.Printf("Cart cleanup for %s failed: %v", userID, err)
	}

	go mq.Emit("user-deleted", mq.Event{EntityType: "user", EntityID: userID, Method: "DELETE"})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "message": "Account deleted successfully"})
}
