// Command resetowner creates or resets the store owner account. Run it once
// against a fresh database, or whenever the owner credentials need a reset:
//
//	OWNER_EMAIL=owner@example.com OWNER_PASSWORD=... go run ./scripts/resetowner
package main

import (
	"context"
	"log"
	"os"
	"time"

	"mcsons/db"
	"mcsons/models"
	"mcsons/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	email := utils.NormalizeEmail(os.Getenv("OWNER_EMAIL"))
	password := os.Getenv("OWNER_PASSWORD")
	if email == "" || password == "" {
		log.Fatal("OWNER_EMAIL and OWNER_PASSWORD must be set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var existing models.User
	err = db.UserCollection.FindOne(ctx, bson.M{"email": email}).Decode(&existing)
	switch err {
	case nil:
		update := bson.M{"$set": bson.M{"password": string(hash)}}
		if !existing.IsAdmin() {
			update["$addToSet"] = bson.M{"role": "admin"}
		}
		if _, err := db.UserCollection.UpdateOne(ctx, bson.M{"userid": existing.UserID}, update); err != nil {
			log.Fatalf("failed to update owner: %v", err)
		}
		log.Printf("owner account %s reset", email)
	case mongo.ErrNoDocuments:
		owner := models.User{
			UserID:    "u" + utils.GenerateID(10),
			Name:      "Store Owner",
			Email:     email,
			Password:  string(hash),
			Role:      []string{"admin", "user"},
			CreatedAt: time.Now(),
		}
		if _, err := db.UserCollection.InsertOne(ctx, owner); err != nil {
			log.Fatalf("failed to create owner: %v", err)
		}
		log.Printf("owner account %s created", email)
	default:
		log.Fatalf("lookup failed: %v", err)
	}
}
