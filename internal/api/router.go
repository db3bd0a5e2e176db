package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/Vt221001/employee-management/docs"
	"github.com/Vt221001/employee-management/internal/api/handler"
	"github.com/Vt221001/employee-management/internal/api/middleware"
	"github.com/Vt221001/employee-management/internal/core/domain"
	"github.com/Vt221001/employee-management/internal/core/ports"
	"github.com/Vt221001/employee-management/internal/core/token"
	"github.com/Vt221001/employee-management/internal/realtime"
)

// Deps bundles everything the router needs. The notifier gateway is an
// explicitly constructed instance injected here, not a package global.
type Deps struct {
	Sessions ports.SessionService
	Projects ports.ProjectService
	Tasks    ports.TaskService
	Stats    ports.StatsService
	Access   *token.Codec
	Gateway  *realtime.Gateway
	Mongo    *mongo.Database
	Redis    *redis.Client
	Log      zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("employee_mgmt"))

	// --- Handlers ---
	sessionHandler := handler.NewSessionHandler(d.Sessions)
	projectHandler := handler.NewProjectHandler(d.Projects)
	taskHandler := handler.NewTaskHandler(d.Tasks)
	statsHandler := handler.NewStatsHandler(d.Stats)

	authRequired := middleware.Auth(d.Access)
	adminOnly := middleware.RequireRoles(domain.RoleAdmin)
	managers := middleware.RequireRoles(domain.RoleAdmin, domain.RoleProjectManager)

	api := e.Group("/api")

	// --- Session lifecycle ---
	api.POST("/user-register", sessionHandler.Register)
	api.POST("/user-login", sessionHandler.Login)
	api.POST("/user-logout", sessionHandler.Logout)
	api.POST("/user-refresh-token", sessionHandler.Refresh)
	api.GET("/user-activate-toggle/:userId", sessionHandler.ToggleActive, authRequired, adminOnly)
	api.PUT("/change-user-password/:userId", sessionHandler.ChangePassword, authRequired)
	api.GET("/single-user/:userId", sessionHandler.GetUser, authRequired)
	api.PUT("/update-user/:userId", sessionHandler.UpdateUser, authRequired)
	api.DELETE("/delete-user/:userId", sessionHandler.DeleteUser, authRequired, adminOnly)
	api.GET("/all-users", sessionHandler.ListUsers, authRequired, managers)
	api.GET("/dashboard-data", statsHandler.Dashboard, authRequired)

	// --- Projects ---
	api.POST("/create-project", projectHandler.Create, authRequired, managers)
	api.GET("/get-projects", projectHandler.List, authRequired)
	api.GET("/get-project/:projectId", projectHandler.Get, authRequired)
	api.POST("/assign-team", projectHandler.AssignTeam, authRequired, managers)

	// --- Tasks ---
	api.POST("/create-task", taskHandler.Create, authRequired, managers)
	api.GET("/get-tasks/:projectId", taskHandler.ListByProject, authRequired)
	api.GET("/get-task-by-userid/:userId", taskHandler.ListByAssignee, authRequired)
	api.PUT("/update-task-status", taskHandler.UpdateStatus, authRequired)

	// --- Realtime channel ---
	e.GET("/ws", echo.WrapHandler(d.Gateway))

	// --- Health checks, metrics, docs (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(d.Mongo, d.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
