package database

import (
	"context"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var Client *mongo.Client

func ConnectDB() {
	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		log.Fatal("MONGO_URI environment variable not set")
	}

	client, err := mongo.NewClient(options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err = client.Connect(ctx)
	if err != nil {
		log.Fatal(err)
	}

	// Ping the primary
	err = client.Ping(ctx, nil)
	if err != nil {
		log.Fatal(err)
	}

	Client = client
	log.Println("Successfully connected to MongoDB!")
}

// DB returns the application database named by the DB_NAME env var.
func DB() *mongo.Database {
	return Client.Database(os.Getenv("DB_NAME"))
}

// EnsureIndexes creates the uniqueness constraints the counter and idempotency
// logic relies on: one user per email, one payment per transactionId, one
// report record per lesson, one favorite per (lesson, user) pair.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	unique := options.Index().SetUnique(true)

	_, err := db.Collection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: unique,
	})
	if err != nil {
		return err
	}

	_, err = db.Collection("payments").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "transactionId", Value: 1}},
		Options: unique,
	})
	if err != nil {
		return err
	}

	_, err = db.Collection("reports").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "lessonId", Value: 1}},
		Options: unique,
	})
	if err != nil {
		return err
	}

	_, err = db.Collection("favorites").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "lessonId", Value: 1},
			{Key: "userEmail", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	})
	return err
}
