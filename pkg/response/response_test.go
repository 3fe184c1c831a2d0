package response_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"time-tracking-assistant/pkg/response"
)

func TestEnvelopes(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name      string
		write     func(c *gin.Context)
		wantCode  int
		wantBody  string
		wantAbort bool
	}{
		{
			name:     "ok",
			write:    func(c *gin.Context) { response.OK(c, gin.H{"reply": "Starting Foo."}) },
			wantCode: http.StatusOK,
			wantBody: `{"error_code":0,"message":"Success","data":{"reply":"Starting Foo."}}`,
		},
		{
			name:     "bad request keeps data",
			write:    func(c *gin.Context) { response.Error(c, errors.New("message is empty"), map[string]interface{}{"field": "message"}) },
			wantCode: http.StatusBadRequest,
			wantBody: `{"error_code":1,"message":"message is empty","data":{"field":"message"}}`,
		},
		{
			name:     "bad request without data",
			write:    func(c *gin.Context) { response.Error(c, errors.New("days must be between 1 and 365"), nil) },
			wantCode: http.StatusBadRequest,
			wantBody: `{"error_code":1,"message":"days must be between 1 and 365","data":{}}`,
		},
		{
			name: "explicit status echoes data",
			write: func(c *gin.Context) {
				response.ErrorWithStatus(c, http.StatusServiceUnavailable, "storage unavailable", gin.H{"reply": "Starting Foo."})
			},
			wantCode: http.StatusServiceUnavailable,
			wantBody: `{"error_code":503,"message":"storage unavailable","data":{"reply":"Starting Foo."}}`,
		},
		{
			name:     "internal error hides cause",
			write:    func(c *gin.Context) { response.InternalError(c, errors.New("pq: connection refused")) },
			wantCode: http.StatusInternalServerError,
			wantBody: `{"error_code":500,"message":"Something went wrong"}`,
		},
		{
			name:      "unauthorized",
			write:     response.Unauthorized,
			wantCode:  http.StatusUnauthorized,
			wantBody:  `{"error_code":401,"message":"Unauthorized"}`,
			wantAbort: true,
		},
		{
			name:      "forbidden",
			write:     response.Forbidden,
			wantCode:  http.StatusForbidden,
			wantBody:  `{"error_code":403,"message":"Forbidden"}`,
			wantAbort: true,
		},
		{
			name:      "too many requests",
			write:     response.TooManyRequests,
			wantCode:  http.StatusTooManyRequests,
			wantBody:  `{"error_code":429,"message":"Too many requests"}`,
			wantAbort: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			tt.write(c)

			assert.Equal(t, tt.wantCode, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
			assert.Equal(t, tt.wantAbort, c.IsAborted())
		})
	}
}
