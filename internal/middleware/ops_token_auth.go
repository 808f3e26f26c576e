package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// OpsTokenAuth guards the operational admin routes (reconciliation, contra
// audit) with a static operator token. The configured value is a bcrypt hash
// so the plaintext token never lives in config or logs.
func OpsTokenAuth(opsTokenHash string) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		if opsTokenHash == "" {
			logger.Error("Operator token hash not configured, refusing admin access")
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin routes disabled"})
			return
		}

		token := c.GetHeader("x-ops-token")
		if token == "" {
			logger.Warn("Operator token header missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "x-ops-token header required"})
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(opsTokenHash), []byte(token)); err != nil {
			logger.Warn("Operator token rejected")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid operator token"})
			return
		}

		c.Set("authMethod", "ops_token")
		c.Next()
	}
}
