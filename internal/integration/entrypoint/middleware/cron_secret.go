package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	domainerror "github.com/finance-tracker/recurring/internal/domain/error"
	"github.com/finance-tracker/recurring/internal/integration/entrypoint/dto"
)

// CronSecretHeader carries the shared secret of external schedulers.
const CronSecretHeader = "X-Cron-Secret"

// RequireCronSecret rejects requests whose X-Cron-Secret header does not match secret.
// An empty secret disables the check.
func RequireCronSecret(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			c.Next()
			return
		}

		provided := c.GetHeader(CronSecretHeader)
		if subtle.ConstantTimeCompare([]byte(provided), []byte(secret)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error: "Invalid cron secret",
				Code:  string(domainerror.ErrCodeInvalidCronSecret),
			})
			return
		}

		c.Next()
	}
}
