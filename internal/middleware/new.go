package middleware

import (
	"agent-gateway/config"
	"agent-gateway/pkg/log"
)

type Middleware struct {
	l           log.Logger
	config      *config.Config
	rateLimiter *rateLimiter
}

func New(l log.Logger, cfg *config.Config) Middleware {
	return Middleware{
		l:           l,
		config:      cfg,
		rateLimiter: newRateLimiter(cfg.Router.RateLimitPerMin),
	}
}
