package db

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	UserCollection     *mongo.Collection
	ProductsCollection *mongo.Collection
	CartsCollection    *mongo.Collection
	OrdersCollection   *mongo.Collection
	ContactsCollection *mongo.Collection
	Client             *mongo.Client
)

// Initialize MongoDB connection
func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	var err error
	Client, err = mongo.Connect(context.TODO(), options.Client().ApplyURI(uri))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	dbName := os.Getenv("MONGODB_DB")
	if dbName == "" {
		dbName = "mcsonsdb"
	}

	UserCollection = Client.Database(dbName).Collection("users")
	ProductsCollection = Client.Database(dbName).Collection("products")
	CartsCollection = Client.Database(dbName).Collection("carts")
	OrdersCollection = Client.Database(dbName).Collection("orders")
	ContactsCollection = Client.Database(dbName).Collection("contacts")
}
