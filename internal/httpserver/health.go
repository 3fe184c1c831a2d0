package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"time-tracking-assistant/pkg/response"
)

// Health response constants (single source for version and service identity).
const (
	HealthVersion = "1.0.0"
	ServiceName   = "time-tracking-assistant"

	readyTimeout = 2 * time.Second
)

// @Summary Health Check
// @Description Check if the service is healthy
// @Tags System
// @Produce json
// @Success 200 {object} response.Resp
// @Router /health [get]
func (srv *HTTPServer) healthCheck(c *gin.Context) {
	response.OK(c, gin.H{
		"status":  "healthy",
		"version": HealthVersion,
		"service": ServiceName,
	})
}

// readyCheck reports ready only when the database answers a ping.
// @Summary Readiness Check
// @Description Check if the database answers
// @Tags System
// @Produce json
// @Success 200 {object} response.Resp
// @Failure 503 {object} response.Resp
// @Router /ready [get]
func (srv *HTTPServer) readyCheck(c *gin.Context) {
	if srv.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), readyTimeout)
		defer cancel()
		if err := srv.db.PingContext(ctx); err != nil {
			srv.l.Warnf(ctx, "httpserver.readyCheck: database ping failed: %v", err)
			response.ErrorWithStatus(c, http.StatusServiceUnavailable, "database unavailable", gin.H{
				"status":  "not_ready",
				"service": ServiceName,
			})
			return
		}
	}

	response.OK(c, gin.H{
		"status":  "ready",
		"version": HealthVersion,
		"service": ServiceName,
	})
}

// @Summary Liveness Check
// @Description Check if the service is alive
// @Tags System
// @Produce json
// @Success 200 {object} response.Resp
// @Router /live [get]
func (srv *HTTPServer) liveCheck(c *gin.Context) {
	response.OK(c, gin.H{
		"status":  "alive",
		"version": HealthVersion,
		"service": ServiceName,
	})
}
