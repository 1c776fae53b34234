package dto

import (
	"time"

	"github.com/taskflow/taskflow-api/internal/models"
)

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID             string    `json:"id"`
	TaskName       string    `json:"task_name"`
	Description    string    `json:"description"`
	ProjectID      string    `json:"project_id"`
	AssignedUserID string    `json:"assigned_user_id"`
	Deadline       time.Time `json:"deadline"`
	Status         string    `json:"status"`
}

// CreateTaskResponse reports the created task and any failed fan-out updates.
type CreateTaskResponse struct {
	Task              TaskDTO  `json:"task"`
	SecondaryFailures []string `json:"secondary_failures,omitempty"`
}

// ArchiveResponse reports the archival batch outcome.
type ArchiveResponse struct {
	Archived          int      `json:"archived"`
	SecondaryFailures []string `json:"secondary_failures,omitempty"`
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	return TaskDTO{
		ID:             task.ID.Hex(),
		TaskName:       task.TaskName,
		Description:    task.Description,
		ProjectID:      task.ProjectID.Hex(),
		AssignedUserID: task.AssignedUserID.Hex(),
		Deadline:       task.Deadline,
		Status:         string(task.Status),
	}
}

// ToTaskDTOs converts a slice of tasks
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	dtos := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		dtos[i] = ToTaskDTO(task)
	}
	return dtos
}
