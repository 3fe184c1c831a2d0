package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"time-tracking-assistant/internal/tracker"
	"time-tracking-assistant/pkg/response"
)

// writeError maps use case errors to HTTP responses. data is echoed back
// so a model reply survives a storage failure.
func (h *handler) writeError(c *gin.Context, err error, data any) {
	switch {
	case isClientError(err):
		response.ErrorWithStatus(c, http.StatusBadRequest, h.mapError(err), nil)
	case errors.Is(err, tracker.ErrModelUnavailable):
		response.ErrorWithStatus(c, http.StatusServiceUnavailable, h.mapError(err), nil)
	case errors.Is(err, tracker.ErrStorage):
		response.ErrorWithStatus(c, http.StatusServiceUnavailable, h.mapError(err), data)
	default:
		response.InternalError(c, err)
	}
}

// mapError translates domain errors into client-facing messages.
func (h *handler) mapError(err error) string {
	switch {
	case errors.Is(err, tracker.ErrEmptyMessage):
		return tracker.ErrEmptyMessage.Error()
	case errors.Is(err, tracker.ErrInvalidDays):
		return tracker.ErrInvalidDays.Error()
	case errors.Is(err, tracker.ErrModelUnavailable):
		return "language model unavailable, try again later"
	case errors.Is(err, tracker.ErrStorage):
		return "storage unavailable, the command was not saved"
	default:
		return response.DefaultErrorMessage
	}
}
