package middleware

import (
	"strings"

	"taskboard/common"
	"taskboard/config"
	"taskboard/services"

	"github.com/gin-gonic/gin"
)

// AccessTokenMiddleware resolves the caller's user id from the bearer
// access token and stores it in the context under "userId". Every route
// outside /auth runs behind it.
func AccessTokenMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.Request.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(401, gin.H{"error": "Authorization header is missing"})
			return
		}
		tokenString := strings.TrimPrefix(header, "Bearer ")
		userID, ok := services.DecodeAccessToken(cfg, tokenString, false)
		if !ok {
			c.AbortWithStatusJSON(401, gin.H{"error": common.ErrAccTknExpired})
			return
		}
		if !services.IsValidID(userID) {
			c.AbortWithStatusJSON(401, gin.H{"error": common.ErrAccTknInvalid})
			return
		}
		c.Set("userId", userID)
		c.Next()
	}
}
