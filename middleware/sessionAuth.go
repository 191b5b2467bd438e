package middleware

import (
	"net/http"
	"strings"

	"travelorbit/utils"

	"github.com/gin-gonic/gin"
)

// SessionAuthMiddleware resolves the Bearer token to a session id and puts
// it on the request context. Conversation routes never trust a session id
// from the body or URL.
func SessionAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
				"code":  0,
			})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		sessionID, err := utils.ExtractSessionIDFromToken(tokenString)
		if err != nil || sessionID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
				"code":  0,
			})
			return
		}

		c.Set("sessionID", sessionID)
		c.Next()
	}
}
