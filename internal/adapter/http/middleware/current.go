package middleware

import (
	ct "goalsapp/pkg/context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-ID"

// CurrentMiddleware stores a Current in the request context, reusing the
// caller's X-Request-ID or minting a new one.
func CurrentMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		current := ct.NewCurrent()

		requestID := c.GetHeader(RequestIDHeader)
		if _, err := uuid.Parse(requestID); err != nil {
			requestID = uuid.New().String()
		}

		current.Set("request_id", requestID)
		current.Set("user_agent", c.Request.UserAgent())
		current.Set("ip_address", c.ClientIP())
		current.Set("method", c.Request.Method)
		current.Set("path", c.Request.URL.Path)

		c.Request = c.Request.WithContext(ct.WithCurrent(c.Request.Context(), current))
		c.Set("current", current)
		c.Header(RequestIDHeader, requestID)

		c.Next()
	}
}

func GetCurrent(c *gin.Context) *ct.Current {
	if current, ok := c.Get("current"); ok {
		if curr, ok := current.(*ct.Current); ok {
			return curr
		}
	}

	return ct.GetCurrent(c.Request.Context())
}
