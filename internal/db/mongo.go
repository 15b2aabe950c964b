package db

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	DefaultMongoURL = "mongodb://localhost:27017"
	DefaultMongoDB  = "meals_spotter"
)

// ConnectMongo opens a client, pings it and makes sure the indexes exist.
// Callers own the returned client and must Disconnect it.
func ConnectMongo(ctx context.Context, uri, dbName string) (*mongo.Client, *mongo.Database, error) {
	if uri == "" {
		uri = DefaultMongoURL
	}
	if dbName == "" {
		dbName = DefaultMongoDB
	}

	clientOptions := options.Client().ApplyURI(uri).
		SetConnectTimeout(10 * time.Second).
		SetServerSelectionTimeout(10 * time.Second)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, nil, fmt.Errorf("cannot ping MongoDB: %w", err)
	}

	database := client.Database(dbName)
	if err := ensureIndexes(ctx, database); err != nil {
		_ = client.Disconnect(ctx)
		return nil, nil, err
	}

	log.Printf("✅ Connected to MongoDB, database: %s", dbName)
	return client, database, nil
}

func ensureIndexes(ctx context.Context, database *mongo.Database) error {
	emailIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := database.Collection("users").Indexes().CreateOne(ctx, emailIndex); err != nil {
		return fmt.Errorf("cannot create users.email index: %w", err)
	}

	ownerIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "owner_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := database.Collection("messes").Indexes().CreateOne(ctx, ownerIndex); err != nil {
		return fmt.Errorf("cannot create messes.owner_id index: %w", err)
	}

	createdIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "created_at", Value: -1}},
	}
	if _, err := database.Collection("messes").Indexes().CreateOne(ctx, createdIndex); err != nil {
		return fmt.Errorf("cannot create messes.created_at index: %w", err)
	}

	return nil
}
