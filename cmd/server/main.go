package main

import (
	"context"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/taskflow/taskflow-api/internal/config"
	"github.com/taskflow/taskflow-api/internal/constants"
	"github.com/taskflow/taskflow-api/internal/database"
	"github.com/taskflow/taskflow-api/internal/handlers"
	"github.com/taskflow/taskflow-api/internal/logger"
	"github.com/taskflow/taskflow-api/internal/middleware"
	"github.com/taskflow/taskflow-api/internal/repository"
	"github.com/taskflow/taskflow-api/internal/repository/inmemory"
	"github.com/taskflow/taskflow-api/internal/repository/mongodb"
	"github.com/taskflow/taskflow-api/internal/services"
	"github.com/taskflow/taskflow-api/internal/worker"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := logger.Init(cfg.LogDevelopment); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	ctx := context.Background()

	// Wire the persistence backend
	var (
		userRepo    repository.UserRepository
		projectRepo repository.ProjectRepository
		taskRepo    repository.TaskRepository
		archiveRepo repository.ArchivedTaskRepository
	)
	switch cfg.RepositoryType {
	case config.RepositoryInMemory:
		userRepo = inmemory.NewUserStorage()
		projectRepo = inmemory.NewProjectStorage()
		taskRepo = inmemory.NewTaskStorage()
		archiveRepo = inmemory.NewArchivedTaskStorage()
	default:
		db, err := database.Connect(ctx, cfg)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		if err := database.EnsureIndexes(ctx, db); err != nil {
			log.Fatalf("Failed to create indexes: %v", err)
		}
		userRepo = mongodb.NewUserRepository(db)
		projectRepo = mongodb.NewProjectRepository(db)
		taskRepo = mongodb.NewTaskRepository(db)
		archiveRepo = mongodb.NewArchivedTaskRepository(db)
	}

	// Initialize services
	tokens := services.NewTokenService(cfg.JWTSecret)
	authService := services.NewAuthService(userRepo, services.RolePolicy{
		SelfRegister: cfg.SelfRegisterRole,
		AdminCreated: cfg.AdminCreatedRole,
	})
	projectService := services.NewProjectService(projectRepo, userRepo)
	taskService := services.NewTaskService(taskRepo, projectRepo, userRepo, archiveRepo)

	// Initialize handlers
	userHandler := handlers.NewUserHandler(authService, tokens, cfg.CookieSecure)
	projectHandler := handlers.NewProjectHandler(projectService)
	taskHandler := handlers.NewTaskHandler(taskService)

	// Background archival sweep
	if cfg.ArchiveInterval > 0 {
		go worker.NewArchiveWorker(taskService, cfg.ArchiveInterval).Start(ctx)
	}

	// Initialize Gin router
	r := gin.Default()

	// The frontend runs on another origin and sends the session cookie.
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = false
	corsCfg.AllowOriginFunc = func(origin string) bool { return true }
	corsCfg.AllowCredentials = true
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	r.Use(cors.New(corsCfg))

	requireAuth := middleware.RequireAuth(tokens)
	requireAdmin := middleware.RequireRole(authService, constants.RoleAdmin)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

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

	// Start server
	logger.Info("server starting on :" + cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
