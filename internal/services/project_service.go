package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/taskflow/taskflow-api/internal/logger"
	"github.com/taskflow/taskflow-api/internal/models"
	"github.com/taskflow/taskflow-api/internal/repository"
)

var (
	ErrProjectNotFound        = errors.New("project not found")
	ErrProjectNameRequired    = errors.New("project name is required")
	ErrNoMembers              = errors.New("member ids are required")
	ErrInvalidMemberReference = errors.New("one or more member ids do not reference an existing user")
)

// ProjectService coordinates project writes and their fan-out across the
// user collection. None of the multi-collection operations are wrapped in a
// transaction; the insert happens only after validation, and the follow-up
// membership updates are best-effort with every failure surfaced.
type ProjectService struct {
	projectRepo repository.ProjectRepository
	userRepo    repository.UserRepository
}

// NewProjectService creates a new ProjectService.
func NewProjectService(projectRepo repository.ProjectRepository, userRepo repository.UserRepository) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		userRepo:    userRepo,
	}
}

// CreateProjectInput represents parameters to create a new project.
type CreateProjectInput struct {
	ProjectName string
	Description string
	Deadline    time.Time
	Members     []primitive.ObjectID
}

// CreateProjectResult reports the created project plus any failed follow-up
// updates to member and creator records.
type CreateProjectResult struct {
	Project           *models.Project
	SecondaryFailures []SecondaryFailure
}

// CreateProject validates membership, inserts the project, then fans out:
// the project id is appended to every member's projectIds and to the
// creator's ownerOf. Member validation happens strictly before the insert,
// so an invalid member list writes nothing.
func (s *ProjectService) CreateProject(ctx context.Context, input CreateProjectInput, creatorID primitive.ObjectID) (*CreateProjectResult, error) {
	if strings.TrimSpace(input.ProjectName) == "" {
		return nil, ErrProjectNameRequired
	}
	if len(input.Members) == 0 {
		return nil, ErrNoMembers
	}

	count, err := s.userRepo.CountByIDs(ctx, input.Members)
	if err != nil {
		return nil, fmt.Errorf("failed to verify members: %w", err)
	}
	if count != int64(len(uniqueIDs(input.Members))) {
		return nil, ErrInvalidMemberReference
	}

	project := &models.Project{
		ProjectName: input.ProjectName,
		Description: input.Description,
		Deadline:    input.Deadline,
		Members:     input.Members,
		CreatedBy:   creatorID,
	}

	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	result := &CreateProjectResult{Project: project}

	if err := s.userRepo.AddProjectToMembers(ctx, project.Members, project.ID); err != nil {
		logger.Warn("project created but member update failed",
			zap.String("project_id", project.ID.Hex()),
			zap.Error(err))
		result.SecondaryFailures = append(result.SecondaryFailures, SecondaryFailure{
			Step: "append project to member projectIds",
			Err:  err,
		})
	}

	if err := s.userRepo.AddOwned(ctx, creatorID, project.ID); err != nil {
		logger.Warn("project created but creator update failed",
			zap.String("project_id", project.ID.Hex()),
			zap.String("creator_id", creatorID.Hex()),
			zap.Error(err))
		result.SecondaryFailures = append(result.SecondaryFailures, SecondaryFailure{
			Step: "append project to creator ownerOf",
			Err:  err,
		})
	}

	return result, nil
}

// GetProject retrieves a project by id.
func (s *ProjectService) GetProject(ctx context.Context, id primitive.ObjectID) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return project, nil
}

// ListByCreator lists projects the user created.
func (s *ProjectService) ListByCreator(ctx context.Context, creatorID primitive.ObjectID) ([]models.Project, error) {
	projects, err := s.projectRepo.FindByCreator(ctx, creatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// GetMembers resolves a project's member ids to user records. Ids of
// since-deleted users are tolerated and simply absent from the result.
func (s *ProjectService) GetMembers(ctx context.Context, projectID primitive.ObjectID) ([]models.User, error) {
	project, err := s.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if len(project.Members) == 0 {
		return nil, nil
	}

	users, err := s.userRepo.FindByIDs(ctx, project.Members)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve members: %w", err)
	}
	return users, nil
}

// UpdateProject replaces the stored project, keeping its id.
func (s *ProjectService) UpdateProject(ctx context.Context, id primitive.ObjectID, updated *models.Project) error {
	updated.ID = id
	if err := s.projectRepo.Replace(ctx, updated); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("failed to update project: %w", err)
	}
	return nil
}

// DeleteProject removes the project document. There is no cascade: task
// documents and id lists on users keep any references they had.
func (s *ProjectService) DeleteProject(ctx context.Context, id primitive.ObjectID) error {
	if err := s.projectRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return nil
}

func uniqueIDs(ids []primitive.ObjectID) []primitive.ObjectID {
	seen := make(map[primitive.ObjectID]struct{}, len(ids))
	unique := ids[:0:0]
	for _, id := range ids {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			unique = append(unique, id)
		}
	}
	return unique
}
