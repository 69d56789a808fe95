package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sitecraft/agency-backend/internal/config"
	"github.com/sitecraft/agency-backend/internal/http/handlers"
	"github.com/sitecraft/agency-backend/internal/http/middleware"
	"github.com/sitecraft/agency-backend/internal/models"
	"github.com/sitecraft/agency-backend/internal/service"
)

// SetupRouter собирает все маршруты портала.
func SetupRouter(
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	estimateHandler *handlers.EstimateHandler,
	taskHandler *handlers.TaskHandler,
	employeeHandler *handlers.EmployeeHandler,
	scheduleHandler *handlers.ScheduleHandler,
	mediaHandler *handlers.MediaHandler,
	wsHandler *handlers.WSHandler,
	healthHandler *handlers.HealthHandler,
	tokenManager *service.TokenManager,
) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	r.GET("/health", healthHandler.Health)
	r.StaticFS("/media", http.Dir(cfg.MediaStoragePath))

	api := r.Group("/api")

	// Публичные маршруты маркетингового сайта
	publicRateLimit := middleware.RateLimitMiddleware(cfg.RateLimitLimit, cfg.RateLimitPeriod)
	api.GET("/catalog", estimateHandler.Catalog)
	api.POST("/estimate", publicRateLimit, estimateHandler.Estimate)
	api.POST("/tasks", publicRateLimit, taskHandler.Create)
	api.POST("/schedules", publicRateLimit, scheduleHandler.Create)
	api.GET("/ws", wsHandler.Handle)

	authGroup := api.Group("/auth")
	authGroup.Use(middleware.RateLimitMiddleware(5, cfg.RateLimitPeriod))
	{
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/refresh", authHandler.Refresh)
		authGroup.POST("/logout", authHandler.Logout)
	}

	protectedAuth := api.Group("/auth")
	protectedAuth.Use(middleware.AuthMiddleware(tokenManager))
	{
		protectedAuth.GET("/me", authHandler.Me)
	}

	// Портал: доступ для всех сотрудников
	portal := api.Group("/portal")
	portal.Use(middleware.AuthMiddleware(tokenManager))
	{
		portal.GET("/tasks", taskHandler.List)
		portal.GET("/tasks/:id", middleware.UUIDValidator("id"), taskHandler.Get)
	}

	// Администрирование
	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware(tokenManager), middleware.RequireRole(models.RoleAdmin))
	{
		admin.GET("/tasks", taskHandler.List)
		admin.GET("/tasks/:id", middleware.UUIDValidator("id"), taskHandler.Get)
		admin.PUT("/tasks/:id", middleware.UUIDValidator("id"), taskHandler.Update)
		admin.PATCH("/tasks/:id/status", middleware.UUIDValidator("id"), taskHandler.UpdateStatus)
		admin.PATCH("/tasks/:id/assignee", middleware.UUIDValidator("id"), taskHandler.Assign)
		admin.DELETE("/tasks/:id", middleware.UUIDValidator("id"), taskHandler.Delete)
		admin.POST("/tasks/:id/attachments", middleware.UUIDValidator("id"), mediaHandler.AttachToTask)

		admin.POST("/employees", employeeHandler.Create)
		admin.GET("/employees", employeeHandler.List)
		admin.GET("/employees/:id", middleware.UUIDValidator("id"), employeeHandler.Get)
		admin.PATCH("/employees/:id", middleware.UUIDValidator("id"), employeeHandler.Update)
		admin.GET("/employees/:id/payout", middleware.UUIDValidator("id"), employeeHandler.Payout)

		admin.GET("/schedules", scheduleHandler.List)
		admin.GET("/schedules/:id", middleware.UUIDValidator("id"), scheduleHandler.Get)
		admin.PATCH("/schedules/:id", middleware.UUIDValidator("id"), scheduleHandler.Update)
		admin.DELETE("/schedules/:id", middleware.UUIDValidator("id"), scheduleHandler.Delete)

		admin.POST("/media", mediaHandler.Upload)
		admin.DELETE("/media/:id", middleware.UUIDValidator("id"), mediaHandler.Delete)
	}

	return r
}
