package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/taskflow/taskflow-api/internal/repository"
)

var errStoreOffline = errors.New("store offline")

// failingUserRepo wraps a real repository and fails selected secondary
// updates, for exercising partial-failure paths.
type failingUserRepo struct {
	repository.UserRepository
	failAddOwned   bool
	failAddMembers bool
	failAddTask    bool
}

func (f *failingUserRepo) AddOwned(ctx context.Context, ownerID, ownedID primitive.ObjectID) error {
	if f.failAddOwned {
		return errStoreOffline
	}
	return f.UserRepository.AddOwned(ctx, ownerID, ownedID)
}

func (f *failingUserRepo) AddProjectToMembers(ctx context.Context, memberIDs []primitive.ObjectID, projectID primitive.ObjectID) error {
	if f.failAddMembers {
		return errStoreOffline
	}
	return f.UserRepository.AddProjectToMembers(ctx, memberIDs, projectID)
}

func (f *failingUserRepo) AddTask(ctx context.Context, userID, taskID primitive.ObjectID) error {
	if f.failAddTask {
		return errStoreOffline
	}
	return f.UserRepository.AddTask(ctx, userID, taskID)
}

// failingTaskRepo fails deletes, for exercising the archive-then-delete
// duplication bias.
type failingTaskRepo struct {
	repository.TaskRepository
	failDelete bool
}

func (f *failingTaskRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	if f.failDelete {
		return errStoreOffline
	}
	return f.TaskRepository.Delete(ctx, id)
}

var _ repository.UserRepository = (*failingUserRepo)(nil)
var _ repository.TaskRepository = (*failingTaskRepo)(nil)
