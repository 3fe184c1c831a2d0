package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/gin-gonic/gin"

	"time-tracking-assistant/pkg/response"
)

const (
	APIKeyHeader           = "X-API-Key"
	TelegramSecretHeader   = "X-Telegram-Bot-Api-Secret-Token"
	authorizationBearerPfx = "Bearer "
)

// Auth requires the configured API key in X-API-Key or as a bearer token.
// With no key configured every request is rejected.
func (m Middleware) Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(APIKeyHeader)
		if key == "" {
			key = strings.TrimPrefix(c.GetHeader("Authorization"), authorizationBearerPfx)
		}

		if m.apiKey == "" || !secureEqual(key, m.apiKey) {
			m.l.Warnf(c.Request.Context(), "middleware.Auth: rejected request from %s", c.ClientIP())
			response.Unauthorized(c)
			return
		}
		c.Next()
	}
}

// TelegramWebhook checks the secret token Telegram echoes on every webhook
// call. It is a no-op when no secret is configured.
func (m Middleware) TelegramWebhook() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.webhookSecret != "" && !secureEqual(c.GetHeader(TelegramSecretHeader), m.webhookSecret) {
			m.l.Warnf(c.Request.Context(), "middleware.TelegramWebhook: invalid secret token from %s", c.ClientIP())
			response.Forbidden(c)
			return
		}
		c.Next()
	}
}

func secureEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
