package inmemory

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/taskflow/taskflow-api/internal/models"
	"github.com/taskflow/taskflow-api/internal/repository"
)

// ProjectStorage is an in-memory ProjectRepository backed by a map.
type ProjectStorage struct {
	mtx     sync.RWMutex
	storage map[primitive.ObjectID]*models.Project
}

func NewProjectStorage() *ProjectStorage {
	return &ProjectStorage{storage: make(map[primitive.ObjectID]*models.Project)}
}

func (s *ProjectStorage) Create(ctx context.Context, project *models.Project) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if project.ID.IsZero() {
		project.ID = primitive.NewObjectID()
	}
	stored := *project
	s.storage[project.ID] = &stored
	return nil
}

func (s *ProjectStorage) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Project, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	project, ok := s.storage[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *project
	return &copied, nil
}

func (s *ProjectStorage) FindByCreator(ctx context.Context, creatorID primitive.ObjectID) ([]models.Project, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	var projects []models.Project
	for _, project := range s.storage {
		if project.CreatedBy == creatorID {
			projects = append(projects, *project)
		}
	}
	return projects, nil
}

func (s *ProjectStorage) Replace(ctx context.Context, project *models.Project) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.storage[project.ID]; !ok {
		return repository.ErrNotFound
	}
	stored := *project
	s.storage[project.ID] = &stored
	return nil
}

func (s *ProjectStorage) AddTask(ctx context.Context, projectID, taskID primitive.ObjectID) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	project, ok := s.storage[projectID]
	if !ok {
		return repository.ErrNotFound
	}
	project.TaskIDs = appendIfAbsent(project.TaskIDs, taskID)
	return nil
}

func (s *ProjectStorage) Delete(ctx context.Context, id primitive.ObjectID) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.storage[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.storage, id)
	return nil
}
