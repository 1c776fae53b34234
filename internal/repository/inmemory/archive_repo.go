package inmemory

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/taskflow/taskflow-api/internal/models"
)

// ArchivedTaskStorage is an in-memory ArchivedTaskRepository backed by a map.
type ArchivedTaskStorage struct {
	mtx     sync.RWMutex
	storage map[primitive.ObjectID]*models.ArchivedTask
}

func NewArchivedTaskStorage() *ArchivedTaskStorage {
	return &ArchivedTaskStorage{storage: make(map[primitive.ObjectID]*models.ArchivedTask)}
}

func (s *ArchivedTaskStorage) Create(ctx context.Context, archived *models.ArchivedTask) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if archived.ID.IsZero() {
		archived.ID = primitive.NewObjectID()
	}
	stored := *archived
	s.storage[archived.ID] = &stored
	return nil
}

func (s *ArchivedTaskStorage) FindAll(ctx context.Context) ([]models.ArchivedTask, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	archived := make([]models.ArchivedTask, 0, len(s.storage))
	for _, a := range s.storage {
		archived = append(archived, *a)
	}
	return archived, nil
}
