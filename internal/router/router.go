package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/taskboard/backend/api/handler"
)

type Handlers struct {
	Auth   *apiHandler.AuthHandler
	User   *apiHandler.UserHandler
	Task   *apiHandler.TaskHandler
	Status *apiHandler.TaskStatusHandler
	Label  *apiHandler.LabelHandler
	Health *apiHandler.HealthHandler
}

// New wires the route table. Login and registration are the only open API
// routes; everything else requires a bearer token.
func New(handlers Handlers, authMiddleware func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	// Open routes
	r.POST("/api/login", handlers.Auth.Login)
	r.POST("/api/users", handlers.User.Register)

	// Users
	r.GET("/api/users", authMiddleware(handlers.User.List))
	r.GET("/api/users/{id}", authMiddleware(handlers.User.Get))
	r.PUT("/api/users/{id}", authMiddleware(handlers.User.Update))
	r.DELETE("/api/users/{id}", authMiddleware(handlers.User.Delete))

	// Tasks
	r.GET("/api/tasks", authMiddleware(handlers.Task.List))
	r.GET("/api/tasks/{id}", authMiddleware(handlers.Task.Get))
	r.POST("/api/tasks", authMiddleware(handlers.Task.Create))
	r.PUT("/api/tasks/{id}", authMiddleware(handlers.Task.Update))
	r.DELETE("/api/tasks/{id}", authMiddleware(handlers.Task.Delete))

	// Task statuses
	r.GET("/api/statuses", authMiddleware(handlers.Status.List))
	r.GET("/api/statuses/{id}", authMiddleware(handlers.Status.Get))
	r.POST("/api/statuses", authMiddleware(handlers.Status.Create))
	r.PUT("/api/statuses/{id}", authMiddleware(handlers.Status.Update))
	r.DELETE("/api/statuses/{id}", authMiddleware(handlers.Status.Delete))

	// Labels
	r.GET("/api/labels", authMiddleware(handlers.Label.List))
	r.GET("/api/labels/{id}", authMiddleware(handlers.Label.Get))
	r.POST("/api/labels", authMiddleware(handlers.Label.Create))
	r.PUT("/api/labels/{id}", authMiddleware(handlers.Label.Update))
	r.DELETE("/api/labels/{id}", authMiddleware(handlers.Label.Delete))

	return r
}
