package dto

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/taskflow/taskflow-api/internal/models"
)

// ProjectDTO represents a project in API responses
type ProjectDTO struct {
	ID          string    `json:"id"`
	ProjectName string    `json:"project_name"`
	Description string    `json:"description"`
	Deadline    time.Time `json:"deadline"`
	Members     []string  `json:"members"`
	TaskIDs     []string  `json:"task_ids"`
	CreatedBy   string    `json:"created_by"`
}

// CreateProjectResponse reports the created project and any failed
// fan-out updates, so partial success is visible to the caller.
type CreateProjectResponse struct {
	Project           ProjectDTO `json:"project"`
	SecondaryFailures []string   `json:"secondary_failures,omitempty"`
}

// ToProjectDTO converts a Project model to ProjectDTO
func ToProjectDTO(project models.Project) ProjectDTO {
	return ProjectDTO{
		ID:          project.ID.Hex(),
		ProjectName: project.ProjectName,
		Description: project.Description,
		Deadline:    project.Deadline,
		Members:     hexIDs(project.Members),
		TaskIDs:     hexIDs(project.TaskIDs),
		CreatedBy:   project.CreatedBy.Hex(),
	}
}

// ToProjectDTOs converts a slice of projects
func ToProjectDTOs(projects []models.Project) []ProjectDTO {
	dtos := make([]ProjectDTO, len(projects))
	for i, project := range projects {
		dtos[i] = ToProjectDTO(project)
	}
	return dtos
}

func hexIDs(ids []primitive.ObjectID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.Hex()
	}
	return out
}
