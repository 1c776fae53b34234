package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/taskflow/taskflow-api/internal/config"
)

// Collection names
const (
	CollectionUsers         = "Users"
	CollectionProjects      = "Projects"
	CollectionTasks         = "Tasks"
	CollectionArchivedTasks = "ArchivedTasks"
)

const connectTimeout = 10 * time.Second

// Connect establishes the MongoDB connection and returns the database handle.
func Connect(ctx context.Context, cfg *config.Config) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return client.Database(cfg.MongoDatabase), nil
}

// EnsureIndexes creates the indexes the application relies on. The unique
// email index is what backs the duplicate-registration conflict.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	_, err := db.Collection(CollectionUsers).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create unique email index: %w", err)
	}

	_, err = db.Collection(CollectionTasks).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "status", Value: 1}, {Key: "deadline", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create task status index: %w", err)
	}

	return nil
}
