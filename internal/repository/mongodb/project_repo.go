package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/taskflow/taskflow-api/internal/database"
	"github.com/taskflow/taskflow-api/internal/models"
	"github.com/taskflow/taskflow-api/internal/repository"
)

// MongoProjectRepository is a mongo-driver implementation of ProjectRepository
type MongoProjectRepository struct {
	coll *mongo.Collection
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *mongo.Database) repository.ProjectRepository {
	return &MongoProjectRepository{coll: db.Collection(database.CollectionProjects)}
}

// Create inserts a new project and fills in its id
func (r *MongoProjectRepository) Create(ctx context.Context, project *models.Project) error {
	if project.ID.IsZero() {
		project.ID = primitive.NewObjectID()
	}
	if _, err := r.coll.InsertOne(ctx, project); err != nil {
		return fmt.Errorf("insert project: %w", err)
	}
	return nil
}

// FindByID finds a project by ID
func (r *MongoProjectRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Project, error) {
	var project models.Project
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&project)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("find project: %w", err)
	}
	return &project, nil
}

// FindByCreator lists projects created by the given user
func (r *MongoProjectRepository) FindByCreator(ctx context.Context, creatorID primitive.ObjectID) ([]models.Project, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"createdBy": creatorID})
	if err != nil {
		return nil, fmt.Errorf("find projects: %w", err)
	}
	var projects []models.Project
	if err := cursor.All(ctx, &projects); err != nil {
		return nil, fmt.Errorf("decode projects: %w", err)
	}
	return projects, nil
}

// Replace replaces the whole project document
func (r *MongoProjectRepository) Replace(ctx context.Context, project *models.Project) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": project.ID}, project)
	if err != nil {
		return fmt.Errorf("replace project: %w", err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// AddTask appends a task id to the project's taskIds list
func (r *MongoProjectRepository) AddTask(ctx context.Context, projectID, taskID primitive.ObjectID) error {
	update := bson.M{"$addToSet": bson.M{"taskIds": taskID}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": projectID}, update)
	if err != nil {
		return fmt.Errorf("add task to project: %w", err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a project. Ids referencing it elsewhere are left in place.
func (r *MongoProjectRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
