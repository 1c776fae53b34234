package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/taskflow/taskflow-api/internal/constants"
	"github.com/taskflow/taskflow-api/internal/middleware"
	"github.com/taskflow/taskflow-api/internal/repository/inmemory"
	"github.com/taskflow/taskflow-api/internal/services"
)

const testSecret = "handlers-test-secret"

type testServer struct {
	router   *gin.Engine
	users    *inmemory.UserStorage
	projects *inmemory.ProjectStorage
	tasks    *inmemory.TaskStorage
	archive  *inmemory.ArchivedTaskStorage
}

// newTestServer wires the full route surface over in-memory storage with the
// default role policy: self-registered accounts are admins, admin-created
// accounts are regular users.
func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	srv := &testServer{
		users:    inmemory.NewUserStorage(),
		projects: inmemory.NewProjectStorage(),
		tasks:    inmemory.NewTaskStorage(),
		archive:  inmemory.NewArchivedTaskStorage(),
	}

	tokens := services.NewTokenService(testSecret)
	auth := services.NewAuthService(srv.users, services.RolePolicy{
		SelfRegister: constants.RoleAdmin,
		AdminCreated: constants.RoleUser,
	})
	projectService := services.NewProjectService(srv.projects, srv.users)
	taskService := services.NewTaskService(srv.tasks, srv.projects, srv.users, srv.archive)

	userHandler := NewUserHandler(auth, tokens, false)
	projectHandler := NewProjectHandler(projectService)
	taskHandler := NewTaskHandler(taskService)

	requireAuth := middleware.RequireAuth(tokens)
	requireAdmin := middleware.RequireRole(auth, constants.RoleAdmin)

	r := gin.New()

	user := r.Group("/user")
	{
		user.POST("/register", userHandler.Register)
		user.POST("/registerByAdmin", requireAuth, requireAdmin, userHandler.RegisterByAdmin)
		user.POST("/login", userHandler.Login)
		user.POST("/logout", userHandler.Logout)
		user.POST("/change-password", requireAuth, userHandler.ChangePassword)
		user.GET("/users", userHandler.ListUsers)
		user.GET("/ownerOf", requireAuth, userHandler.OwnerOf)
		user.GET("/:id", userHandler.GetUser)
		user.DELETE("/delete", userHandler.DeleteUser)
	}

	projects := r.Group("/projects")
	{
		projects.POST("/create", requireAuth, projectHandler.CreateProject)
		projects.GET("/get/:id", projectHandler.GetProject)
		projects.GET("/userProjects", requireAuth, projectHandler.UserProjects)
		projects.GET("/:projectId/members", projectHandler.GetMembers)
		projects.PUT("/update/:id", projectHandler.UpdateProject)
		projects.DELETE("/delete/:id", projectHandler.DeleteProject)
	}

	tasks := r.Group("/tasks")
	{
		tasks.GET("", taskHandler.ListTasks)
		tasks.GET("/:id", taskHandler.GetTask)
		tasks.GET("/user/:userId/project/:projectId", taskHandler.TasksByUserAndProject)
		tasks.GET("/project/:projectId/today", taskHandler.TasksDueToday)
		tasks.GET("/project/:projectId/all-tasks", requireAuth, taskHandler.ProjectTasksForUser)
		tasks.GET("/project/:projectId/all-tasks-admin", requireAuth, requireAdmin, taskHandler.ProjectTasksAdmin)
		tasks.POST("/create", taskHandler.CreateTask)
		tasks.POST("/archive-and-delete-completed-tasks", taskHandler.ArchiveCompleted)
		tasks.PUT("/update-status/:id", taskHandler.UpdateStatus)
		tasks.PUT("/:id", taskHandler.UpdateTask)
		tasks.DELETE("/:id", taskHandler.DeleteTask)
	}

	srv.router = r
	return srv
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func registerBody(email string) map[string]string {
	return map[string]string{
		"email":      email,
		"password":   "s3cret-pass",
		"first_name": "Ada",
		"last_name":  "Lovelace",
	}
}

func (s *testServer) register(t *testing.T, email string) map[string]any {
	t.Helper()
	w := s.do(t, http.MethodPost, "/user/register", "", registerBody(email))
	require.Equal(t, http.StatusCreated, w.Code)
	return decode(t, w)
}

func (s *testServer) login(t *testing.T, email string) (string, *httptest.ResponseRecorder) {
	t.Helper()
	w := s.do(t, http.MethodPost, "/user/login", "", map[string]string{
		"email":    email,
		"password": "s3cret-pass",
	})
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token, w
}

// registerAndLogin creates an account and returns its id and a token for it.
func (s *testServer) registerAndLogin(t *testing.T, email string) (string, string) {
	t.Helper()
	body := s.register(t, email)
	id := body["user"].(map[string]any)["id"].(string)
	token, _ := s.login(t, email)
	return id, token
}
