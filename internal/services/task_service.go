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
	ErrTaskNotFound     = errors.New("task not found")
	ErrTaskNameRequired = errors.New("task name is required")
	ErrInvalidStatus    = errors.New("invalid task status")
)

// TaskService coordinates task writes, their fan-out into the user and
// project collections, and the archival batch. As with projects, nothing is
// transactional: the insert is the primary write and the id-list appends
// after it are best-effort and reported when they fail.
type TaskService struct {
	taskRepo    repository.TaskRepository
	projectRepo repository.ProjectRepository
	userRepo    repository.UserRepository
	archiveRepo repository.ArchivedTaskRepository
}

// NewTaskService creates a new TaskService.
func NewTaskService(
	taskRepo repository.TaskRepository,
	projectRepo repository.ProjectRepository,
	userRepo repository.UserRepository,
	archiveRepo repository.ArchivedTaskRepository,
) *TaskService {
	return &TaskService{
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
		userRepo:    userRepo,
		archiveRepo: archiveRepo,
	}
}

// CreateTaskInput represents parameters to create a new task.
type CreateTaskInput struct {
	TaskName       string
	Description    string
	ProjectID      primitive.ObjectID
	AssignedUserID primitive.ObjectID
	Deadline       time.Time
	Status         string
}

// CreateTaskResult reports the created task plus any failed follow-up
// updates to the assignee and project records.
type CreateTaskResult struct {
	Task              *models.Task
	SecondaryFailures []SecondaryFailure
}

// CreateTask validates references, inserts the task, then appends its id to
// the assignee's task list and the project's taskIds. Insertion success is
// reported even when a secondary update fails.
func (s *TaskService) CreateTask(ctx context.Context, input CreateTaskInput) (*CreateTaskResult, error) {
	if strings.TrimSpace(input.TaskName) == "" {
		return nil, ErrTaskNameRequired
	}

	status, err := models.ParseTaskStatus(input.Status)
	if err != nil {
		return nil, ErrInvalidStatus
	}

	if _, err := s.projectRepo.FindByID(ctx, input.ProjectID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to verify project: %w", err)
	}
	if _, err := s.userRepo.FindByID(ctx, input.AssignedUserID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to verify assignee: %w", err)
	}

	task := &models.Task{
		TaskName:       input.TaskName,
		Description:    input.Description,
		ProjectID:      input.ProjectID,
		AssignedUserID: input.AssignedUserID,
		Deadline:       input.Deadline,
		Status:         status,
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	result := &CreateTaskResult{Task: task}

	if err := s.userRepo.AddTask(ctx, task.AssignedUserID, task.ID); err != nil {
		logger.Warn("task created but assignee update failed",
			zap.String("task_id", task.ID.Hex()),
			zap.String("user_id", task.AssignedUserID.Hex()),
			zap.Error(err))
		result.SecondaryFailures = append(result.SecondaryFailures, SecondaryFailure{
			Step: "append task to assignee tasks",
			Err:  err,
		})
	}

	if err := s.projectRepo.AddTask(ctx, task.ProjectID, task.ID); err != nil {
		logger.Warn("task created but project update failed",
			zap.String("task_id", task.ID.Hex()),
			zap.String("project_id", task.ProjectID.Hex()),
			zap.Error(err))
		result.SecondaryFailures = append(result.SecondaryFailures, SecondaryFailure{
			Step: "append task to project taskIds",
			Err:  err,
		})
	}

	return result, nil
}

// GetTask retrieves a task by id.
func (s *TaskService) GetTask(ctx context.Context, id primitive.ObjectID) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// ListTasks lists every task.
func (s *TaskService) ListTasks(ctx context.Context) ([]models.Task, error) {
	tasks, err := s.taskRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// ListByAssigneeAndProject lists tasks assigned to a user within a project.
func (s *TaskService) ListByAssigneeAndProject(ctx context.Context, userID, projectID primitive.ObjectID) ([]models.Task, error) {
	tasks, err := s.taskRepo.FindByAssigneeAndProject(ctx, userID, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// ListByProject lists every task in a project.
func (s *TaskService) ListByProject(ctx context.Context, projectID primitive.ObjectID) ([]models.Task, error) {
	tasks, err := s.taskRepo.FindByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// ListDueToday lists project tasks whose deadline falls on the given day.
func (s *TaskService) ListDueToday(ctx context.Context, projectID primitive.ObjectID, now time.Time) ([]models.Task, error) {
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	end := start.Add(24 * time.Hour)

	tasks, err := s.taskRepo.FindByProjectDueBetween(ctx, projectID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks due today: %w", err)
	}
	return tasks, nil
}

// UpdateTask replaces the stored task, keeping its id.
func (s *TaskService) UpdateTask(ctx context.Context, id primitive.ObjectID, updated *models.Task) error {
	if _, err := models.ParseTaskStatus(string(updated.Status)); err != nil {
		return ErrInvalidStatus
	}
	updated.ID = id
	if err := s.taskRepo.Replace(ctx, updated); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to update task: %w", err)
	}
	return nil
}

// UpdateStatus sets a task's status.
func (s *TaskService) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.Task, error) {
	parsed, err := models.ParseTaskStatus(status)
	if err != nil {
		return nil, ErrInvalidStatus
	}

	if err := s.taskRepo.UpdateStatus(ctx, id, parsed); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to update status: %w", err)
	}

	return s.GetTask(ctx, id)
}

// DeleteTask removes a task. Id lists on the project and assignee keep any
// references they had.
func (s *TaskService) DeleteTask(ctx context.Context, id primitive.ObjectID) error {
	if err := s.taskRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

// ArchiveResult reports the archival batch outcome.
type ArchiveResult struct {
	Archived          int
	SecondaryFailures []SecondaryFailure
}

// ArchiveCompletedPastDeadline copies every completed task whose deadline
// has passed into the archive and deletes the original. Per task the copy
// goes in first; when the delete then fails, the task exists in both places.
// That duplication is the chosen failure bias: never lose the record.
// An empty matching set is a zero-count success.
func (s *TaskService) ArchiveCompletedPastDeadline(ctx context.Context, now time.Time) (*ArchiveResult, error) {
	tasks, err := s.taskRepo.FindCompletedBefore(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("failed to find archivable tasks: %w", err)
	}

	result := &ArchiveResult{}
	for _, task := range tasks {
		archived := models.NewArchivedTask(task, now)
		if err := s.archiveRepo.Create(ctx, &archived); err != nil {
			logger.Warn("failed to archive task",
				zap.String("task_id", task.ID.Hex()),
				zap.Error(err))
			result.SecondaryFailures = append(result.SecondaryFailures, SecondaryFailure{
				Step: "archive task " + task.ID.Hex(),
				Err:  err,
			})
			continue
		}

		if err := s.taskRepo.Delete(ctx, task.ID); err != nil {
			// Archived copy exists alongside the live task now.
			logger.Warn("task archived but original not deleted",
				zap.String("task_id", task.ID.Hex()),
				zap.Error(err))
			result.SecondaryFailures = append(result.SecondaryFailures, SecondaryFailure{
				Step: "delete archived original " + task.ID.Hex(),
				Err:  err,
			})
		}

		result.Archived++
	}

	return result, nil
}
