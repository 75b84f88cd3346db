package http

import (
	"goalsapp/internal/adapter/http/handler"
	"goalsapp/internal/adapter/http/middleware"
	. "goalsapp/pkg/config"
	. "goalsapp/pkg/middlewares"
	. "goalsapp/pkg/tracing"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

type HandlersConfig struct {
	GoalHandler   *handler.GoalHandler
	TaskHandler   *handler.TaskHandler
	HealthHandler *handler.HealthHandler
}

func SetupRouter(handlers HandlersConfig, metrics *AppMetrics, logger *LokiLogger) *gin.Engine {
	return SetupRouterWithConfig(handlers, metrics, logger, GetDefaultConfig())
}

func SetupRouterWithConfig(handlers HandlersConfig, metrics *AppMetrics, logger *LokiLogger, config *AppConfig) *gin.Engine {
	if logger == nil {
		logger = NewNopLogger()
	}

	router := gin.New()

	setupGinMiddleware(router, metrics, logger, config)

	if handlers.HealthHandler != nil {
		router.GET("/", handlers.HealthHandler.Root)
		router.GET("/healthz", handlers.HealthHandler.Health)
	}

	if handlers.GoalHandler != nil {
		setupGoalRoutes(router, handlers.GoalHandler)
	}

	if handlers.TaskHandler != nil {
		setupTaskRoutes(router, handlers.TaskHandler)
	}

	return router
}

func setupGinMiddleware(router *gin.Engine, metrics *AppMetrics, logger *LokiLogger, config *AppConfig) {
	httpsEnforcer := NewHTTPSEnforcer(config.EnforceHTTPS, logger.Zap())
	router.Use(httpsEnforcer.HTTPSMiddleware())

	router.Use(otelgin.Middleware(config.ServiceName))
	router.Use(middleware.CurrentMiddleware())
	router.Use(middleware.SentryMiddleware())
	router.Use(LoggingMiddleware(logger))
	router.Use(gin.Recovery())
	router.Use(CORSMiddleware(config.CORSAllowedOrigins))

	if config.RateLimitEnabled {
		rateLimiter := NewRateLimiter(logger.Zap(), metrics, config.RateLimitConfigs)
		router.Use(rateLimiter.RateLimitMiddleware())
	}

	router.Use(MetricsMiddleware(metrics))

	if config.ResponseCacheTTL > 0 {
		responseCache := NewResponseCache(config.ResponseCacheTTL, logger.Zap(), metrics)
		router.Use(responseCache.CacheMiddleware())
	}
}

func setupGoalRoutes(router *gin.Engine, goalHandler *handler.GoalHandler) {
	goals := router.Group("/goals")
	{
		goals.POST("", goalHandler.CreateGoal)
		goals.GET("", goalHandler.GetAllGoals)
		goals.GET("/:id", goalHandler.GetGoal)
		goals.PUT("/:id", goalHandler.UpdateGoal)
		goals.DELETE("/:id", goalHandler.DeleteGoal)
	}
}

func setupTaskRoutes(router *gin.Engine, taskHandler *handler.TaskHandler) {
	router.POST("/goals/:id/tasks", taskHandler.CreateTask)
	router.GET("/goals/:id/tasks", taskHandler.GetTasksByGoal)

	tasks := router.Group("/tasks")
	{
		tasks.GET("/:id", taskHandler.GetTask)
		tasks.PUT("/:id", taskHandler.UpdateTask)
		tasks.DELETE("/:id", taskHandler.DeleteTask)
	}
}
