package middleware

import (
	"time-tracking-assistant/pkg/log"
)

// Config carries the secrets and limits the middlewares enforce.
type Config struct {
	APIKey          string
	WebhookSecret   string
	RateLimitPerMin int
	RateLimitBurst  int
}

type Middleware struct {
	l             log.Logger
	apiKey        string
	webhookSecret string
	limiter       *rateLimiter
}

func New(l log.Logger, cfg Config) Middleware {
	return Middleware{
		l:             l,
		apiKey:        cfg.APIKey,
		webhookSecret: cfg.WebhookSecret,
		limiter:       newRateLimiter(cfg.RateLimitPerMin, cfg.RateLimitBurst),
	}
}
