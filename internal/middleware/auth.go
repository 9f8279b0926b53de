package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// TokenContextKey is where Auth stores the raw bearer token so
// handlers can forward it to downstream services.
const TokenContextKey = "bearer_token"

// Auth requires a bearer token on the request. The token is not
// verified here; it is forwarded as-is to the registry and agents,
// which own validation.
func (m Middleware) Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		c.Set(TokenContextKey, token)
		c.Next()
	}
}

// Token returns the bearer token stored by Auth, or "".
func Token(c *gin.Context) string {
	token, _ := c.Get(TokenContextKey)
	s, _ := token.(string)
	return s
}
