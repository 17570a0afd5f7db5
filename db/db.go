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
	MenuCollection         *mongo.Collection
	CategoriesCollection   *mongo.Collection
	ReservationsCollection *mongo.Collection
	SlotConfigCollection   *mongo.Collection
	UserCollection         *mongo.Collection
	Client                 *mongo.Client
)

// Initialize MongoDB connection
func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	var err error
	Client, err = mongo.Connect(context.TODO(), options.Client().ApplyURI(uri))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	MenuCollection = Client.Database("grillbox").Collection("menu")
	CategoriesCollection = Client.Database("grillbox").Collection("categories")
	ReservationsCollection = Client.Database("grillbox").Collection("reservations")
	SlotConfigCollection = Client.Database("grillbox").Collection("slotconfig")
	UserCollection = Client.Database("grillbox").Collection("users")
}
