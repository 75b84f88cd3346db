package http

import (
	"goalsapp/internal/adapter/database"
	"goalsapp/internal/adapter/database/repository"
	"goalsapp/internal/adapter/http/handler"
	"goalsapp/internal/adapter/http/validation"
	"goalsapp/internal/core/port"
	"goalsapp/internal/core/service"
	"goalsapp/pkg/config"
	"goalsapp/pkg/tracing"
)

// Container wires one shared database handle into every repository, service
// and handler.
type Container struct {
	GoalRepo port.GoalRepository
	TaskRepo port.TaskRepository

	GoalService port.GoalService
	TaskService port.TaskService

	GoalHandler   *handler.GoalHandler
	TaskHandler   *handler.TaskHandler
	HealthHandler *handler.HealthHandler
}

func NewContainer(db *database.DB, logger *config.LokiLogger, metrics *tracing.AppMetrics) *Container {
	validator := validation.NewValidator()

	goalRepo := repository.NewGoalRepository(db, metrics)
	taskRepo := repository.NewTaskRepository(db, metrics)

	var recorder port.OperationRecorder
	if metrics != nil {
		recorder = metrics
	}

	goalSvc := service.NewGoalService(goalRepo, validator, recorder)
	taskSvc := service.NewTaskService(taskRepo, goalRepo, validator, recorder)

	return &Container{
		GoalRepo: goalRepo,
		TaskRepo: taskRepo,

		GoalService: goalSvc,
		TaskService: taskSvc,

		GoalHandler:   handler.NewGoalHandler(goalSvc, logger),
		TaskHandler:   handler.NewTaskHandler(taskSvc, logger),
		HealthHandler: handler.NewHealthHandler(db, logger),
	}
}

func (c *Container) Handlers() HandlersConfig {
	return HandlersConfig{
		GoalHandler:   c.GoalHandler,
		TaskHandler:   c.TaskHandler,
		HealthHandler: c.HealthHandler,
	}
}
