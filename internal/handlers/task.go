package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/taskflow/taskflow-api/internal/dto"
	apierrors "github.com/taskflow/taskflow-api/internal/errors"
	"github.com/taskflow/taskflow-api/internal/middleware"
	"github.com/taskflow/taskflow-api/internal/models"
	"github.com/taskflow/taskflow-api/internal/services"
)

// TaskHandler coordinates task HTTP handlers.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

type taskRequest struct {
	TaskName       string    `json:"task_name" binding:"required"`
	Description    string    `json:"description"`
	ProjectID      string    `json:"project_id" binding:"required"`
	AssignedUserID string    `json:"assigned_user_id" binding:"required"`
	Deadline       time.Time `json:"deadline" binding:"required"`
	Status         string    `json:"status"`
}

// ListTasks returns every task.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	tasks, err := h.taskService.ListTasks(c.Request.Context())
	if err != nil {
		respondTaskError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTaskDTOs(tasks))
}

// GetTask returns one task by id.
func (h *TaskHandler) GetTask(c *gin.Context) {
	id, ok := parseObjectID(c, c.Param("id"))
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(c.Request.Context(), id)
	if err != nil {
		respondTaskError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// CreateTask creates a task. A response with secondary_failures set means
// the task exists but an id-list append did not land.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	projectID, ok := parseObjectID(c, req.ProjectID)
	if !ok {
		return
	}
	userID, ok := parseObjectID(c, req.AssignedUserID)
	if !ok {
		return
	}

	result, err := h.taskService.CreateTask(c.Request.Context(), services.CreateTaskInput{
		TaskName:       req.TaskName,
		Description:    req.Description,
		ProjectID:      projectID,
		AssignedUserID: userID,
		Deadline:       req.Deadline,
		Status:         req.Status,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.CreateTaskResponse{
		Task:              dto.ToTaskDTO(*result.Task),
		SecondaryFailures: services.Messages(result.SecondaryFailures),
	})
}

// TasksByUserAndProject lists tasks assigned to a user within a project.
func (h *TaskHandler) TasksByUserAndProject(c *gin.Context) {
	userID, ok := parseObjectID(c, c.Param("userId"))
	if !ok {
		return
	}
	projectID, ok := parseObjectID(c, c.Param("projectId"))
	if !ok {
		return
	}

	tasks, err := h.taskService.ListByAssigneeAndProject(c.Request.Context(), userID, projectID)
	if err != nil {
		respondTaskError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTaskDTOs(tasks))
}

// TasksDueToday lists project tasks whose deadline falls today.
func (h *TaskHandler) TasksDueToday(c *gin.Context) {
	projectID, ok := parseObjectID(c, c.Param("projectId"))
	if !ok {
		return
	}

	tasks, err := h.taskService.ListDueToday(c.Request.Context(), projectID, time.Now())
	if err != nil {
		respondTaskError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTaskDTOs(tasks))
}

// ProjectTasksForUser lists the acting user's tasks within a project.
func (h *TaskHandler) ProjectTasksForUser(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}
	projectID, ok := parseObjectID(c, c.Param("projectId"))
	if !ok {
		return
	}

	tasks, err := h.taskService.ListByAssigneeAndProject(c.Request.Context(), userID, projectID)
	if err != nil {
		respondTaskError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTaskDTOs(tasks))
}

// ProjectTasksAdmin lists every task in a project regardless of assignee.
// The admin role is enforced by middleware.
func (h *TaskHandler) ProjectTasksAdmin(c *gin.Context) {
	projectID, ok := parseObjectID(c, c.Param("projectId"))
	if !ok {
		return
	}

	tasks, err := h.taskService.ListByProject(c.Request.Context(), projectID)
	if err != nil {
		respondTaskError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTaskDTOs(tasks))
}

// UpdateTask replaces a task's fields.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	id, ok := parseObjectID(c, c.Param("id"))
	if !ok {
		return
	}

	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	projectID, ok := parseObjectID(c, req.ProjectID)
	if !ok {
		return
	}
	userID, ok := parseObjectID(c, req.AssignedUserID)
	if !ok {
		return
	}

	status, err := models.ParseTaskStatus(req.Status)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task status")
		return
	}

	task := &models.Task{
		TaskName:       req.TaskName,
		Description:    req.Description,
		ProjectID:      projectID,
		AssignedUserID: userID,
		Deadline:       req.Deadline,
		Status:         status,
	}

	if err := h.taskService.UpdateTask(c.Request.Context(), id, task); err != nil {
		respondTaskError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Task updated successfully."})
}

// UpdateStatus sets a task's status.
func (h *TaskHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseObjectID(c, c.Param("id"))
	if !ok {
		return
	}

	type statusRequest struct {
		Status string `json:"status" binding:"required"`
	}

	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		respondTaskError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// DeleteTask removes a task.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	id, ok := parseObjectID(c, c.Param("id"))
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(c.Request.Context(), id); err != nil {
		respondTaskError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully."})
}

// ArchiveCompleted moves every completed, past-deadline task into the
// archive. A zero count is a success.
func (h *TaskHandler) ArchiveCompleted(c *gin.Context) {
	result, err := h.taskService.ArchiveCompletedPastDeadline(c.Request.Context(), time.Now())
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ArchiveResponse{
		Archived:          result.Archived,
		SecondaryFailures: services.Messages(result.SecondaryFailures),
	})
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNameRequired),
		errors.Is(err, services.ErrInvalidStatus):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrTaskNotFound),
		errors.Is(err, services.ErrProjectNotFound),
		errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.StoreError(c, "")
	}
}
