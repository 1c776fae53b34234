package inmemory

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/taskflow/taskflow-api/internal/models"
	"github.com/taskflow/taskflow-api/internal/repository"
)

// UserStorage is an in-memory UserRepository backed by a map. It mirrors the
// store semantics the mongo implementation relies on, including the unique
// email constraint and append-if-absent array updates.
type UserStorage struct {
	mtx     sync.RWMutex
	storage map[primitive.ObjectID]*models.User
}

func NewUserStorage() *UserStorage {
	return &UserStorage{storage: make(map[primitive.ObjectID]*models.User)}
}

func (s *UserStorage) Create(ctx context.Context, user *models.User) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	for _, existing := range s.storage {
		if existing.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	stored := *user
	s.storage[user.ID] = &stored
	return nil
}

func (s *UserStorage) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	user, ok := s.storage[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *UserStorage) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	var users []models.User
	for _, id := range ids {
		if user, ok := s.storage[id]; ok {
			users = append(users, *user)
		}
	}
	return users, nil
}

func (s *UserStorage) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	for _, user := range s.storage {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *UserStorage) FindAll(ctx context.Context) ([]models.User, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	users := make([]models.User, 0, len(s.storage))
	for _, user := range s.storage {
		users = append(users, *user)
	}
	return users, nil
}

func (s *UserStorage) CountByIDs(ctx context.Context, ids []primitive.ObjectID) (int64, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	var count int64
	for _, id := range ids {
		if _, ok := s.storage[id]; ok {
			count++
		}
	}
	return count, nil
}

func (s *UserStorage) UpdatePassword(ctx context.Context, id primitive.ObjectID, passwordHash string) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	user, ok := s.storage[id]
	if !ok {
		return repository.ErrNotFound
	}
	user.PasswordHash = passwordHash
	return nil
}

func (s *UserStorage) AddProjectToMembers(ctx context.Context, memberIDs []primitive.ObjectID, projectID primitive.ObjectID) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	for _, id := range memberIDs {
		if user, ok := s.storage[id]; ok {
			user.ProjectIDs = appendIfAbsent(user.ProjectIDs, projectID)
		}
	}
	return nil
}

func (s *UserStorage) AddOwned(ctx context.Context, ownerID, ownedID primitive.ObjectID) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	user, ok := s.storage[ownerID]
	if !ok {
		return repository.ErrNotFound
	}
	user.OwnerOf = appendIfAbsent(user.OwnerOf, ownedID)
	return nil
}

func (s *UserStorage) AddTask(ctx context.Context, userID, taskID primitive.ObjectID) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	user, ok := s.storage[userID]
	if !ok {
		return repository.ErrNotFound
	}
	user.TaskIDs = appendIfAbsent(user.TaskIDs, taskID)
	return nil
}

func (s *UserStorage) Delete(ctx context.Context, id primitive.ObjectID) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.storage[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.storage, id)
	return nil
}

func appendIfAbsent(ids []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	for _, existing := range ids {
		if existing == id {
			return ids
		}
	}
	return append(ids, id)
}
