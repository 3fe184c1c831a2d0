package http

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"time-tracking-assistant/internal/model"
)

const (
	userIDHeader   = "X-User-ID"
	usernameHeader = "X-Username"
)

var errMissingUserID = errors.New("X-User-ID header is required")

// processScope reads the acting owner from the request headers.
func (h *handler) processScope(c *gin.Context) (model.Scope, error) {
	sc := model.Scope{
		UserID:   strings.TrimSpace(c.GetHeader(userIDHeader)),
		Username: strings.TrimSpace(c.GetHeader(usernameHeader)),
	}
	if sc.UserID == "" {
		return sc, errMissingUserID
	}
	return sc, nil
}

// processTrackReq binds and validates the track request body.
func (h *handler) processTrackReq(c *gin.Context) (trackReq, error) {
	var req trackReq
	sc, err := h.processScope(c)
	if err != nil {
		return req, err
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	req.scope = sc
	return req, req.validate()
}

// processHistoryReq binds and validates the history query parameters.
func (h *handler) processHistoryReq(c *gin.Context) (historyReq, error) {
	var req historyReq
	sc, err := h.processScope(c)
	if err != nil {
		return req, err
	}
	if err := c.ShouldBindQuery(&req); err != nil {
		return req, err
	}
	req.scope = sc
	return req, req.validate()
}
