package middleware

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS allows the configured origins; with no origins configured it
// allows everything, matching the gateway's permissive default.
func (m Middleware) CORS() gin.HandlerFunc {
	config := cors.DefaultConfig()
	if len(m.config.Router.CORSOrigins) > 0 {
		config.AllowOrigins = m.config.Router.CORSOrigins
	} else {
		config.AllowAllOrigins = true
	}
	config.AllowCredentials = !config.AllowAllOrigins
	config.AllowHeaders = append(config.AllowHeaders, "Authorization")
	return cors.New(config)
}
