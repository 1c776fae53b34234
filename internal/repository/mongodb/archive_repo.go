package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/taskflow/taskflow-api/internal/database"
	"github.com/taskflow/taskflow-api/internal/models"
	"github.com/taskflow/taskflow-api/internal/repository"
)

// MongoArchivedTaskRepository is a mongo-driver implementation of ArchivedTaskRepository
type MongoArchivedTaskRepository struct {
	coll *mongo.Collection
}

// NewArchivedTaskRepository creates a new ArchivedTaskRepository
func NewArchivedTaskRepository(db *mongo.Database) repository.ArchivedTaskRepository {
	return &MongoArchivedTaskRepository{coll: db.Collection(database.CollectionArchivedTasks)}
}

// Create inserts an archived copy and fills in its id
func (r *MongoArchivedTaskRepository) Create(ctx context.Context, archived *models.ArchivedTask) error {
	if archived.ID.IsZero() {
		archived.ID = primitive.NewObjectID()
	}
	if _, err := r.coll.InsertOne(ctx, archived); err != nil {
		return fmt.Errorf("insert archived task: %w", err)
	}
	return nil
}

// FindAll lists every archived task
func (r *MongoArchivedTaskRepository) FindAll(ctx context.Context) ([]models.ArchivedTask, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find archived tasks: %w", err)
	}
	var archived []models.ArchivedTask
	if err := cursor.All(ctx, &archived); err != nil {
		return nil, fmt.Errorf("decode archived tasks: %w", err)
	}
	return archived, nil
}
