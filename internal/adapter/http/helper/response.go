package helper

import (
	"errors"
	"net/http"

	"goalsapp/internal/core/domain"
	"goalsapp/internal/core/model/response"
	"goalsapp/pkg/config"
	"goalsapp/pkg/tracing"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func SendSuccess(c *gin.Context, statusCode int, data any) {
	c.JSON(statusCode, data)
}

func SendError(c *gin.Context, statusCode int, message string, details ...domain.FieldError) {
	c.JSON(statusCode, response.ErrorResponse{
		Message: message,
		Errors:  details,
	})
}

func SendBadRequestError(c *gin.Context, message string) {
	SendError(c, http.StatusBadRequest, message)
}

// SendDomainError maps err onto the HTTP error taxonomy. Anything that is not a
// validation, date or not-found error is logged, reported to Sentry and
// answered with fallback so no internal detail reaches the caller.
func SendDomainError(c *gin.Context, logger *config.LokiLogger, err error, fallback string) {
	var validationErr *domain.ValidationError

	switch {
	case errors.As(err, &validationErr):
		SendError(c, http.StatusBadRequest, validationErr.Message, validationErr.Details...)
	case errors.Is(err, domain.ErrDateFormat):
		SendError(c, http.StatusBadRequest, domain.ErrDateFormat.Error())
	case errors.Is(err, domain.ErrGoalNotFound):
		SendError(c, http.StatusNotFound, domain.ErrGoalNotFound.Error())
	case errors.Is(err, domain.ErrTaskNotFound):
		SendError(c, http.StatusNotFound, domain.ErrTaskNotFound.Error())
	case errors.Is(err, domain.ErrNotFound):
		SendError(c, http.StatusNotFound, err.Error())
	default:
		SendInternalError(c, logger, err, fallback)
	}
}

func SendInternalError(c *gin.Context, logger *config.LokiLogger, err error, message string) {
	ctx := c.Request.Context()

	if logger != nil {
		logger.ErrorWithTrace(ctx, message,
			zap.Error(err),
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
		)
	}

	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub()
	}

	hub.WithScope(func(scope *sentry.Scope) {
		if traceID := tracing.GetTraceID(ctx); traceID != "" {
			scope.SetTag("trace_id", traceID)
		}
		hub.CaptureException(err)
	})

	SendError(c, http.StatusInternalServerError, message)
}
