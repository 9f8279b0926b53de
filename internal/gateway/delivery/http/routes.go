package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes maps HTTP verbs and paths to Handler methods. All
// registry endpoints stay open; the registry listens inside the
// cluster only.
func RegisterRoutes(r *gin.Engine, h Handler) {
	r.GET("/health", h.Health)
	r.GET("/status", h.Status)
	r.GET("/services", h.Services)
	r.POST("/sync", h.Sync)
}
