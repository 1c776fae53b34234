package inmemory

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/taskflow/taskflow-api/internal/models"
	"github.com/taskflow/taskflow-api/internal/repository"
)

// TaskStorage is an in-memory TaskRepository backed by a map.
type TaskStorage struct {
	mtx     sync.RWMutex
	storage map[primitive.ObjectID]*models.Task
}

func NewTaskStorage() *TaskStorage {
	return &TaskStorage{storage: make(map[primitive.ObjectID]*models.Task)}
}

func (s *TaskStorage) Create(ctx context.Context, task *models.Task) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if task.ID.IsZero() {
		task.ID = primitive.NewObjectID()
	}
	stored := *task
	s.storage[task.ID] = &stored
	return nil
}

func (s *TaskStorage) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Task, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	task, ok := s.storage[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *task
	return &copied, nil
}

func (s *TaskStorage) FindAll(ctx context.Context) ([]models.Task, error) {
	return s.findMany(func(t *models.Task) bool { return true })
}

func (s *TaskStorage) FindByAssigneeAndProject(ctx context.Context, userID, projectID primitive.ObjectID) ([]models.Task, error) {
	return s.findMany(func(t *models.Task) bool {
		return t.AssignedUserID == userID && t.ProjectID == projectID
	})
}

func (s *TaskStorage) FindByProject(ctx context.Context, projectID primitive.ObjectID) ([]models.Task, error) {
	return s.findMany(func(t *models.Task) bool { return t.ProjectID == projectID })
}

func (s *TaskStorage) FindByProjectDueBetween(ctx context.Context, projectID primitive.ObjectID, from, to time.Time) ([]models.Task, error) {
	return s.findMany(func(t *models.Task) bool {
		return t.ProjectID == projectID && !t.Deadline.Before(from) && t.Deadline.Before(to)
	})
}

func (s *TaskStorage) FindCompletedBefore(ctx context.Context, cutoff time.Time) ([]models.Task, error) {
	return s.findMany(func(t *models.Task) bool {
		return t.Status == models.StatusCompleted && t.Deadline.Before(cutoff)
	})
}

func (s *TaskStorage) Replace(ctx context.Context, task *models.Task) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.storage[task.ID]; !ok {
		return repository.ErrNotFound
	}
	stored := *task
	s.storage[task.ID] = &stored
	return nil
}

func (s *TaskStorage) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.TaskStatus) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	task, ok := s.storage[id]
	if !ok {
		return repository.ErrNotFound
	}
	task.Status = status
	return nil
}

func (s *TaskStorage) Delete(ctx context.Context, id primitive.ObjectID) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.storage[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.storage, id)
	return nil
}

func (s *TaskStorage) findMany(match func(*models.Task) bool) ([]models.Task, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	var tasks []models.Task
	for _, task := range s.storage {
		if match(task) {
			tasks = append(tasks, *task)
		}
	}
	return tasks, nil
}
