package handler

import (
	"net/http"

	. "goalsapp/internal/adapter/http/helper"
	"goalsapp/internal/core/domain"
	"goalsapp/internal/core/model/request"
	"goalsapp/internal/core/port"
	"goalsapp/internal/core/util"
	"goalsapp/pkg/config"
	. "goalsapp/pkg/tracing"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

type TaskHandler struct {
	svc    port.TaskService
	Logger *config.LokiLogger
}

func NewTaskHandler(taskService port.TaskService, logger *config.LokiLogger) *TaskHandler {
	if logger == nil {
		logger = config.NewNopLogger()
	}

	return &TaskHandler{
		svc:    taskService,
		Logger: logger,
	}
}

// CreateTask adds a task under the goal named by the :id path parameter.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	ctx, span := CreateChildSpan(c.Request.Context(), "handler.task.CreateTask", []attribute.KeyValue{
		attribute.String("handler.operation", "CreateTask"),
	})

	defer span.End()

	goalID, err := util.ParamID(c, "id")
	if err != nil {
		SendError(c, http.StatusNotFound, domain.ErrGoalNotFound.Error())
		return
	}

	params, err := util.ParamsToMap[request.TaskRequest](c)
	if err != nil {
		SendBadRequestError(c, invalidBody)
		return
	}

	span.SetAttributes(attribute.Int64("goal.id", goalID))

	task, err := h.svc.Create(ctx, goalID, params)
	if err != nil {
		AddSpanError(span, err)
		SendDomainError(c, h.Logger, err, "internal server error while creating the task")
		return
	}

	SendSuccess(c, http.StatusCreated, task)
}

func (h *TaskHandler) GetTasksByGoal(c *gin.Context) {
	goalID, err := util.ParamID(c, "id")
	if err != nil {
		SendError(c, http.StatusNotFound, domain.ErrGoalNotFound.Error())
		return
	}

	tasks, err := h.svc.ListByGoal(c.Request.Context(), goalID)
	if err != nil {
		SendDomainError(c, h.Logger, err, "internal server error while listing tasks")
		return
	}

	SendSuccess(c, http.StatusOK, tasks)
}

func (h *TaskHandler) GetTask(c *gin.Context) {
	id, err := util.ParamID(c, "id")
	if err != nil {
		SendError(c, http.StatusNotFound, domain.ErrTaskNotFound.Error())
		return
	}

	task, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		SendDomainError(c, h.Logger, err, "internal server error while fetching the task")
		return
	}

	SendSuccess(c, http.StatusOK, task)
}

func (h *TaskHandler) UpdateTask(c *gin.Context) {
	ctx, span := CreateChildSpan(c.Request.Context(), "handler.task.UpdateTask", []attribute.KeyValue{
		attribute.String("handler.operation", "UpdateTask"),
	})

	defer span.End()

	id, err := util.ParamID(c, "id")
	if err != nil {
		SendError(c, http.StatusNotFound, domain.ErrTaskNotFound.Error())
		return
	}

	params, err := util.ParamsToMap[request.TaskRequest](c)
	if err != nil {
		SendBadRequestError(c, invalidBody)
		return
	}

	span.SetAttributes(attribute.Int64("task.id", id))

	task, err := h.svc.Update(ctx, id, params)
	if err != nil {
		AddSpanError(span, err)
		SendDomainError(c, h.Logger, err, "internal server error while updating the task")
		return
	}

	SendSuccess(c, http.StatusOK, task)
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	id, err := util.ParamID(c, "id")
	if err != nil {
		SendError(c, http.StatusNotFound, domain.ErrTaskNotFound.Error())
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		SendDomainError(c, h.Logger, err, "internal server error while deleting the task")
		return
	}

	c.Status(http.StatusNoContent)
}
