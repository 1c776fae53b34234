package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/taskflow/taskflow-api/internal/models"
)

var (
	// ErrNotFound is returned when no document matches the given filter.
	ErrNotFound = errors.New("repository: not found")
	// ErrDuplicateEmail is returned when a create would violate the unique
	// email constraint.
	ErrDuplicateEmail = errors.New("repository: email already registered")
)

// UserRepository defines the interface for user data access.
//
// The array-append methods are append-if-absent on a named array field,
// issued as a single update so concurrent appends cannot lose each other.
type UserRepository interface {
	// Create inserts a new user and fills in its id
	Create(ctx context.Context, user *models.User) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)

	// FindByIDs finds all users whose ids are in the given set
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// FindAll lists every user
	FindAll(ctx context.Context) ([]models.User, error)

	// CountByIDs counts how many of the given user ids exist
	CountByIDs(ctx context.Context, ids []primitive.ObjectID) (int64, error)

	// UpdatePassword replaces the stored password hash
	UpdatePassword(ctx context.Context, id primitive.ObjectID, passwordHash string) error

	// AddProjectToMembers appends the project id to every listed user's projectIds
	AddProjectToMembers(ctx context.Context, memberIDs []primitive.ObjectID, projectID primitive.ObjectID) error

	// AddOwned appends an owned entity id to the user's ownerOf list
	AddOwned(ctx context.Context, ownerID, ownedID primitive.ObjectID) error

	// AddTask appends a task id to the user's task list
	AddTask(ctx context.Context, userID, taskID primitive.ObjectID) error

	// Delete removes a user
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// Create inserts a new project and fills in its id
	Create(ctx context.Context, project *models.Project) error

	// FindByID finds a project by ID
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Project, error)

	// FindByCreator lists projects created by the given user
	FindByCreator(ctx context.Context, creatorID primitive.ObjectID) ([]models.Project, error)

	// Replace replaces the whole project document
	Replace(ctx context.Context, project *models.Project) error

	// AddTask appends a task id to the project's taskIds list
	AddTask(ctx context.Context, projectID, taskID primitive.ObjectID) error

	// Delete removes a project
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create inserts a new task and fills in its id
	Create(ctx context.Context, task *models.Task) error

	// FindByID finds a task by ID
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Task, error)

	// FindAll lists every task
	FindAll(ctx context.Context) ([]models.Task, error)

	// FindByAssigneeAndProject lists tasks assigned to a user within a project
	FindByAssigneeAndProject(ctx context.Context, userID, projectID primitive.ObjectID) ([]models.Task, error)

	// FindByProject lists every task in a project
	FindByProject(ctx context.Context, projectID primitive.ObjectID) ([]models.Task, error)

	// FindByProjectDueBetween lists project tasks whose deadline falls in [from, to)
	FindByProjectDueBetween(ctx context.Context, projectID primitive.ObjectID, from, to time.Time) ([]models.Task, error)

	// FindCompletedBefore lists completed tasks with a deadline strictly before the cutoff
	FindCompletedBefore(ctx context.Context, cutoff time.Time) ([]models.Task, error)

	// Replace replaces the whole task document
	Replace(ctx context.Context, task *models.Task) error

	// UpdateStatus sets the status field only
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.TaskStatus) error

	// Delete removes a task
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// ArchivedTaskRepository defines the interface for archived task data access
type ArchivedTaskRepository interface {
	// Create inserts an archived copy and fills in its id
	Create(ctx context.Context, archived *models.ArchivedTask) error

	// FindAll lists every archived task
	FindAll(ctx context.Context) ([]models.ArchivedTask, error)
}
