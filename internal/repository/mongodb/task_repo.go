package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/taskflow/taskflow-api/internal/database"
	"github.com/taskflow/taskflow-api/internal/models"
	"github.com/taskflow/taskflow-api/internal/repository"
)

// MongoTaskRepository is a mongo-driver implementation of TaskRepository
type MongoTaskRepository struct {
	coll *mongo.Collection
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *mongo.Database) repository.TaskRepository {
	return &MongoTaskRepository{coll: db.Collection(database.CollectionTasks)}
}

// Create inserts a new task and fills in its id
func (r *MongoTaskRepository) Create(ctx context.Context, task *models.Task) error {
	if task.ID.IsZero() {
		task.ID = primitive.NewObjectID()
	}
	if _, err := r.coll.InsertOne(ctx, task); err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

// FindByID finds a task by ID
func (r *MongoTaskRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Task, error) {
	var task models.Task
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&task)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("find task: %w", err)
	}
	return &task, nil
}

// FindAll lists every task
func (r *MongoTaskRepository) FindAll(ctx context.Context) ([]models.Task, error) {
	return r.findMany(ctx, bson.M{})
}

// FindByAssigneeAndProject lists tasks assigned to a user within a project
func (r *MongoTaskRepository) FindByAssigneeAndProject(ctx context.Context, userID, projectID primitive.ObjectID) ([]models.Task, error) {
	return r.findMany(ctx, bson.M{"assignedUserId": userID, "projectId": projectID})
}

// FindByProject lists every task in a project
func (r *MongoTaskRepository) FindByProject(ctx context.Context, projectID primitive.ObjectID) ([]models.Task, error) {
	return r.findMany(ctx, bson.M{"projectId": projectID})
}

// FindByProjectDueBetween lists project tasks whose deadline falls in [from, to)
func (r *MongoTaskRepository) FindByProjectDueBetween(ctx context.Context, projectID primitive.ObjectID, from, to time.Time) ([]models.Task, error) {
	filter := bson.M{
		"projectId": projectID,
		"deadline":  bson.M{"$gte": from, "$lt": to},
	}
	return r.findMany(ctx, filter)
}

// FindCompletedBefore lists completed tasks with a deadline strictly before the cutoff
func (r *MongoTaskRepository) FindCompletedBefore(ctx context.Context, cutoff time.Time) ([]models.Task, error) {
	filter := bson.M{
		"status":   models.StatusCompleted,
		"deadline": bson.M{"$lt": cutoff},
	}
	return r.findMany(ctx, filter)
}

// Replace replaces the whole task document
func (r *MongoTaskRepository) Replace(ctx context.Context, task *models.Task) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": task.ID}, task)
	if err != nil {
		return fmt.Errorf("replace task: %w", err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// UpdateStatus sets the status field only
func (r *MongoTaskRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.TaskStatus) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return fmt.Errorf("update task status: %w", err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a task
func (r *MongoTaskRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *MongoTaskRepository) findMany(ctx context.Context, filter bson.M) ([]models.Task, error) {
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find tasks: %w", err)
	}
	var tasks []models.Task
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, fmt.Errorf("decode tasks: %w", err)
	}
	return tasks, nil
}
