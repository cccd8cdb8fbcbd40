package middleware

import (
	"net/http"
	"strings"

	"meetbook/utils"

	"github.com/gin-gonic/gin"
)

// AdminAuthMiddleware guards the reporting endpoints. Tokens are minted by the
// admin login handler and verified against the configured secret.
func AdminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		subject, err := utils.VerifyAdminToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized admin access"})
			return
		}

		c.Set("adminUser", subject)
		c.Set("isAdmin", true)
		c.Next()
	}
}
