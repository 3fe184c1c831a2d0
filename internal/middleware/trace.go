package middleware

import (
	"github.com/gin-gonic/gin"

	"time-tracking-assistant/pkg/log"
)

const RequestIDHeader = "X-Request-ID"

// Trace attaches a request id to the request context and echoes it back.
// A client supplied X-Request-ID is reused, otherwise a UUID is generated.
func (m Middleware) Trace() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := log.WithTraceID(c.Request.Context(), c.GetHeader(RequestIDHeader))
		c.Request = c.Request.WithContext(ctx)
		c.Header(RequestIDHeader, log.TraceIDFromContext(ctx))
		c.Next()
	}
}
