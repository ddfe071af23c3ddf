package datastore

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names.
const (
	artisansCollection       = "artisans"
	productStoriesCollection = "product_stories"
	transcriptionsCollection = "transcriptions"
)

// MongoStore wraps the MongoDB client and the collections the platform uses.
type MongoStore struct {
	client         *mongo.Client
	database       *mongo.Database
	artisans       *mongo.Collection
	productStories *mongo.Collection
	transcriptions *mongo.Collection
}

// Store is a global store instance (for simplicity in this context).
// The persistence coordinator receives its sink explicitly; this global is
// for handler-level lookups at the edges of the application.
var Store *MongoStore

// InitMongo connects to MongoDB, ensures indexes, and sets the global Store.
// This should be called at application startup.
func InitMongo(uri, databaseName string) error {
	store, err := NewMongoStore(uri, databaseName)
	if err != nil {
		return err
	}
	Store = store
	log.Println("MongoDB store initialized successfully.")
	return nil
}

// NewMongoStore connects to MongoDB and prepares the collections.
func NewMongoStore(uri, databaseName string) (*MongoStore, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	db := client.Database(databaseName)
	store := &MongoStore{
		client:         client,
		database:       db,
		artisans:       db.Collection(artisansCollection),
		productStories: db.Collection(productStoriesCollection),
		transcriptions: db.Collection(transcriptionsCollection),
	}

	if err := store.createIndexes(); err != nil {
		return nil, fmt.Errorf("failed to create indexes: %w", err)
	}

	return store, nil
}

func (s *MongoStore) createIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// One story document per (artisan, product) pair. The unique index is
	// what makes repeat submissions land on the same document.
	storyIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "artisan_id", Value: 1},
			{Key: "product_id", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	}
	if _, err := s.productStories.Indexes().CreateOne(ctx, storyIndex); err != nil {
		return fmt.Errorf("product_stories index: %w", err)
	}

	artisanIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "artisan_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := s.artisans.Indexes().CreateOne(ctx, artisanIndex); err != nil {
		return fmt.Errorf("artisans index: %w", err)
	}

	return nil
}

// Close disconnects the underlying MongoDB client.
func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}
