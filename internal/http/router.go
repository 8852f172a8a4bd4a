package http

import (
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/libraryhub/library/internal/readonly"
)

// NewRouter creates and configures the HTTP router with all endpoints.
// Uses RouterConfig to receive all dependencies.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.Use(RequestIDMiddleware())
	router.Use(SecurityHeadersMiddleware())
	router.Use(CORSMiddleware())
	router.Use(readonly.NewMiddleware(cfg.ReadOnly).Handler())

	// Static frontend
	if cfg.StaticPath != "" {
		router.Static("/static", cfg.StaticPath)
		router.StaticFile("/", filepath.Join(cfg.StaticPath, "index.html"))
	}

	// Health endpoints
	health := NewHealthController(cfg.Database, cfg.Version)
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	api := router.Group("/api")

	booksController := NewBooksController(cfg.Books)
	api.GET("/books", booksController.ListBooks)
	api.POST("/books", booksController.CreateBook)
	api.GET("/books/:id", booksController.GetBook)

	usersController := NewUsersController(cfg.Users)
	api.GET("/users", usersController.ListUsers)
	api.POST("/users", usersController.CreateUser)
	api.GET("/users/:id", usersController.GetUser)

	borrowingsController := NewBorrowingsController(cfg.Circulation, cfg.Audit)
	api.GET("/borrowings", borrowingsController.ListBorrowings)
	api.POST("/borrowings", borrowingsController.Borrow)
	api.GET("/borrowings/:id", borrowingsController.GetBorrowing)
	api.PUT("/borrowings/:id", borrowingsController.Return)

	// Audit endpoints
	if cfg.Audit != nil {
		auditController := NewAuditController(cfg.Audit)
		api.GET("/audit", auditController.GetAuditEvents)
		api.GET("/borrowings/:id/audit", borrowingsController.History)
	}

	if cfg.Consistency != nil {
		consistencyController := NewConsistencyController(cfg.Consistency, cfg.Schedule)
		api.GET("/admin/consistency", consistencyController.Check)
	}

	// Task management endpoints
	if cfg.TaskQueue != nil {
		tasksController := NewTasksController(cfg.TaskQueue)
		api.GET("/tasks/types", tasksController.ListTaskTypes)
		api.GET("/tasks/:id", tasksController.GetTaskStatus)
		api.POST("/tasks/:type/run", tasksController.RunTask)
	}

	return router
}
