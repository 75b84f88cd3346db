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

const invalidBody = "request body must be a JSON object"

type GoalHandler struct {
	svc    port.GoalService
	Logger *config.LokiLogger
}

func NewGoalHandler(goalService port.GoalService, logger *config.LokiLogger) *GoalHandler {
	if logger == nil {
		logger = config.NewNopLogger()
	}

	return &GoalHandler{
		svc:    goalService,
		Logger: logger,
	}
}

func (h *GoalHandler) CreateGoal(c *gin.Context) {
	ctx, span := CreateChildSpan(c.Request.Context(), "handler.goal.CreateGoal", []attribute.KeyValue{
		attribute.String("handler.operation", "CreateGoal"),
	})

	defer span.End()

	params, err := util.ParamsToMap[request.GoalRequest](c)
	if err != nil {
		SendBadRequestError(c, invalidBody)
		return
	}

	goal, err := h.svc.Create(ctx, params)
	if err != nil {
		AddSpanError(span, err)
		SendDomainError(c, h.Logger, err, "internal server error while creating the goal")
		return
	}

	span.SetAttributes(attribute.Int64("goal.id", goal.ID))

	SendSuccess(c, http.StatusCreated, goal)
}

func (h *GoalHandler) GetAllGoals(c *gin.Context) {
	ctx, span := CreateChildSpan(c.Request.Context(), "handler.goal.GetAllGoals", []attribute.KeyValue{
		attribute.String("handler.operation", "GetAllGoals"),
	})

	defer span.End()

	goals, err := h.svc.List(ctx)
	if err != nil {
		AddSpanError(span, err)
		SendDomainError(c, h.Logger, err, "internal server error while listing goals")
		return
	}

	span.SetAttributes(attribute.Int("goal.count", len(goals)))

	SendSuccess(c, http.StatusOK, goals)
}

func (h *GoalHandler) GetGoal(c *gin.Context) {
	id, err := util.ParamID(c, "id")
	if err != nil {
		SendError(c, http.StatusNotFound, domain.ErrGoalNotFound.Error())
		return
	}

	goal, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		SendDomainError(c, h.Logger, err, "internal server error while fetching the goal")
		return
	}

	SendSuccess(c, http.StatusOK, goal)
}

func (h *GoalHandler) UpdateGoal(c *gin.Context) {
	ctx, span := CreateChildSpan(c.Request.Context(), "handler.goal.UpdateGoal", []attribute.KeyValue{
		attribute.String("handler.operation", "UpdateGoal"),
	})

	defer span.End()

	id, err := util.ParamID(c, "id")
	if err != nil {
		SendError(c, http.StatusNotFound, domain.ErrGoalNotFound.Error())
		return
	}

	params, err := util.ParamsToMap[request.GoalRequest](c)
	if err != nil {
		SendBadRequestError(c, invalidBody)
		return
	}

	span.SetAttributes(attribute.Int64("goal.id", id))

	goal, err := h.svc.Update(ctx, id, params)
	if err != nil {
		AddSpanError(span, err)
		SendDomainError(c, h.Logger, err, "internal server error while updating the goal")
		return
	}

	SendSuccess(c, http.StatusOK, goal)
}

func (h *GoalHandler) DeleteGoal(c *gin.Context) {
	id, err := util.ParamID(c, "id")
	if err != nil {
		SendError(c, http.StatusNotFound, domain.ErrGoalNotFound.Error())
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		SendDomainError(c, h.Logger, err, "internal server error while deleting the goal")
		return
	}

	c.Status(http.StatusNoContent)
}
