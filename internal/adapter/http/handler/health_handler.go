package handler

import (
	"context"
	"net/http"

	"goalsapp/internal/core/model/response"
	"goalsapp/pkg/config"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const Banner = "Goal tracking API is running!"

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db     Pinger
	Logger *config.LokiLogger
}

func NewHealthHandler(db Pinger, logger *config.LokiLogger) *HealthHandler {
	if logger == nil {
		logger = config.NewNopLogger()
	}

	return &HealthHandler{db: db, Logger: logger}
}

func (h *HealthHandler) Root(c *gin.Context) {
	c.String(http.StatusOK, Banner)
}

// Health reports 503 while storage does not answer.
func (h *HealthHandler) Health(c *gin.Context) {
	if err := h.db.Ping(c.Request.Context()); err != nil {
		h.Logger.WarnWithTrace(c.Request.Context(), "Health check failed", zap.Error(err))

		c.JSON(http.StatusServiceUnavailable, response.StatusResponse{Status: "unavailable", Database: "down"})
		return
	}

	c.JSON(http.StatusOK, response.StatusResponse{Status: "ok", Database: "up"})
}
