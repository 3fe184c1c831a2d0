package http

import (
	"github.com/gin-gonic/gin"

	"time-tracking-assistant/internal/tracker"
	"time-tracking-assistant/pkg/log"
)

// Handler is the public interface for the tracker HTTP delivery layer.
type Handler interface {
	Track(c *gin.Context)
	Status(c *gin.Context)
	History(c *gin.Context)
	Stats(c *gin.Context)
}

type handler struct {
	l  log.Logger
	uc tracker.UseCase
}

// New creates a new HTTP handler for the tracker domain.
func New(l log.Logger, uc tracker.UseCase) Handler {
	return &handler{
		l:  l,
		uc: uc,
	}
}
