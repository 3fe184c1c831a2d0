package http

import (
	"github.com/gin-gonic/gin"

	"time-tracking-assistant/internal/middleware"
)

// RegisterRoutes maps the tracker endpoints. All of them require the API key.
func RegisterRoutes(rg *gin.RouterGroup, h Handler, mw middleware.Middleware) {
	t := rg.Group("/tracker", mw.Auth(), mw.RateLimit())
	{
		t.POST("/track", h.Track)
		t.GET("/status", h.Status)
		t.GET("/history", h.History)
		t.GET("/stats", h.Stats)
	}
}
