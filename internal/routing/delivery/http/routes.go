package http

import (
	"github.com/gin-gonic/gin"

	"agent-gateway/internal/middleware"
)

// RegisterRoutes maps HTTP verbs and paths to Handler methods.
// The routing endpoint requires a bearer token and is rate limited;
// health and metrics stay open for probes and scrapers.
func RegisterRoutes(r *gin.Engine, h Handler, mw middleware.Middleware) {
	r.POST("/router", mw.Auth(), mw.RateLimit(), h.ProcessRequest)
	r.GET("/router/health", h.Health)
	r.GET("/metrics", h.Metrics)
}
