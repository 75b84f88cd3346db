package middleware

import (
	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
)

// SentryMiddleware gives every request its own hub tagged with the request id,
// so captured errors can be matched with the access log.
func SentryMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		hub := sentry.CurrentHub().Clone()

		hub.Scope().SetRequest(c.Request)
		if requestID, ok := GetCurrent(c).GetString("request_id"); ok {
			hub.Scope().SetTag("request_id", requestID)
		}

		c.Request = c.Request.WithContext(sentry.SetHubOnContext(c.Request.Context(), hub))

		c.Next()
	}
}
