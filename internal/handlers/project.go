package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/taskflow/taskflow-api/internal/dto"
	apierrors "github.com/taskflow/taskflow-api/internal/errors"
	"github.com/taskflow/taskflow-api/internal/middleware"
	"github.com/taskflow/taskflow-api/internal/services"
)

// ProjectHandler coordinates project HTTP handlers.
type ProjectHandler struct {
	projectService *services.ProjectService
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(projectService *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

type projectRequest struct {
	ProjectName string    `json:"project_name" binding:"required"`
	Description string    `json:"description"`
	Deadline    time.Time `json:"deadline" binding:"required"`
	Members     []string  `json:"members"`
}

// CreateProject creates a project owned by the acting user. A response with
// secondary_failures set means the project exists but some membership
// updates did not land.
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	creatorID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	members, ok := parseObjectIDs(c, req.Members)
	if !ok {
		return
	}

	result, err := h.projectService.CreateProject(c.Request.Context(), services.CreateProjectInput{
		ProjectName: req.ProjectName,
		Description: req.Description,
		Deadline:    req.Deadline,
		Members:     members,
	}, creatorID)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.CreateProjectResponse{
		Project:           dto.ToProjectDTO(*result.Project),
		SecondaryFailures: services.Messages(result.SecondaryFailures),
	})
}

// GetProject returns one project by id.
func (h *ProjectHandler) GetProject(c *gin.Context) {
	id, ok := parseObjectID(c, c.Param("id"))
	if !ok {
		return
	}

	project, err := h.projectService.GetProject(c.Request.Context(), id)
	if err != nil {
		respondProjectError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToProjectDTO(*project))
}

// UserProjects lists projects created by the acting user.
func (h *ProjectHandler) UserProjects(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	projects, err := h.projectService.ListByCreator(c.Request.Context(), userID)
	if err != nil {
		respondProjectError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToProjectDTOs(projects))
}

// GetMembers resolves a project's member ids to user records.
func (h *ProjectHandler) GetMembers(c *gin.Context) {
	projectID, ok := parseObjectID(c, c.Param("projectId"))
	if !ok {
		return
	}

	members, err := h.projectService.GetMembers(c.Request.Context(), projectID)
	if err != nil {
		respondProjectError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToUserDTOs(members))
}

// UpdateProject replaces a project's fields.
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	id, ok := parseObjectID(c, c.Param("id"))
	if !ok {
		return
	}

	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	members, ok := parseObjectIDs(c, req.Members)
	if !ok {
		return
	}

	existing, err := h.projectService.GetProject(c.Request.Context(), id)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	existing.ProjectName = req.ProjectName
	existing.Description = req.Description
	existing.Deadline = req.Deadline
	existing.Members = members

	if err := h.projectService.UpdateProject(c.Request.Context(), id, existing); err != nil {
		respondProjectError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Project updated successfully."})
}

// DeleteProject removes a project.
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	id, ok := parseObjectID(c, c.Param("id"))
	if !ok {
		return
	}

	if err := h.projectService.DeleteProject(c.Request.Context(), id); err != nil {
		respondProjectError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Project deleted successfully."})
}

func respondProjectError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrProjectNameRequired),
		errors.Is(err, services.ErrNoMembers),
		errors.Is(err, services.ErrInvalidMemberReference):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrProjectNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.StoreError(c, "")
	}
}

func parseObjectIDs(c *gin.Context, raw []string) ([]primitive.ObjectID, bool) {
	ids := make([]primitive.ObjectID, 0, len(raw))
	for _, s := range raw {
		id, err := primitive.ObjectIDFromHex(s)
		if err != nil {
			apierrors.BadRequest(c, "Invalid id: "+s)
			return nil, false
		}
		ids = append(ids, id)
	}
	return ids, true
}
