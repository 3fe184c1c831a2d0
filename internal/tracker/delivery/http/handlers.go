package http

import (
	"github.com/gin-gonic/gin"

	"time-tracking-assistant/pkg/response"
)

// Track sends one message through the assistant and applies its command.
// @Summary Track a message
// @Description Sends one message through the assistant and applies the start or stop it decides on
// @Tags Tracker
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param X-User-ID header string true "Owner ID"
// @Param X-Username header string false "Owner display name"
// @Param body body trackReq true "Message"
// @Success 200 {object} trackResp
// @Failure 400 {object} response.Resp
// @Failure 401 {object} response.Resp
// @Failure 503 {object} response.Resp "Model or storage unavailable"
// @Router /api/v1/tracker/track [post]
func (h *handler) Track(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processTrackReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.Track(ctx, req.scope, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.Track: %v", err)
		h.writeError(c, err, h.newTrackResp(output))
		return
	}

	response.OK(c, h.newTrackResp(output))
}

// Status lists running tasks.
// @Summary Running tasks
// @Tags Tracker
// @Produce json
// @Security ApiKeyAuth
// @Param X-User-ID header string true "Owner ID"
// @Success 200 {object} statusResp
// @Failure 401 {object} response.Resp
// @Router /api/v1/tracker/status [get]
func (h *handler) Status(c *gin.Context) {
	ctx := c.Request.Context()

	sc, err := h.processScope(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.Status(ctx, sc)
	if err != nil {
		h.l.Errorf(ctx, "uc.Status: %v", err)
		h.writeError(c, err, nil)
		return
	}

	response.OK(c, h.newStatusResp(output))
}

// History lists completed entries of the last N days.
// @Summary Completed tasks
// @Tags Tracker
// @Produce json
// @Security ApiKeyAuth
// @Param X-User-ID header string true "Owner ID"
// @Param days query int false "Look-back window in days (1-365, default 1)"
// @Success 200 {object} historyResp
// @Failure 400 {object} response.Resp
// @Failure 401 {object} response.Resp
// @Router /api/v1/tracker/history [get]
func (h *handler) History(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processHistoryReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.History(ctx, req.scope, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.History: %v", err)
		h.writeError(c, err, nil)
		return
	}

	response.OK(c, h.newHistoryResp(output))
}

// Stats sums today's time per task.
// @Summary Time per task today
// @Tags Tracker
// @Produce json
// @Security ApiKeyAuth
// @Param X-User-ID header string true "Owner ID"
// @Success 200 {object} statsResp
// @Failure 401 {object} response.Resp
// @Router /api/v1/tracker/stats [get]
func (h *handler) Stats(c *gin.Context) {
	ctx := c.Request.Context()

	sc, err := h.processScope(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.Stats(ctx, sc)
	if err != nil {
		h.l.Errorf(ctx, "uc.Stats: %v", err)
		h.writeError(c, err, nil)
		return
	}

	response.OK(c, h.newStatsResp(output))
}
