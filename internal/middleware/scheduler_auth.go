package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "budgetlens/internal/errors"
)

const schedulerKeyHeader = "X-API-Key"

var (
	errSchedulerNotConfigured = &apperrors.AppError{
		Code:       "SCHEDULER_NOT_CONFIGURED",
		Message:    "Scheduler endpoints are not configured",
		Kind:       apperrors.KindUnavailable,
		StatusCode: http.StatusServiceUnavailable,
	}
	errInvalidAPIKey = apperrors.WithMessage(apperrors.ErrUnauthorized, "Invalid or missing API key")
)

// SchedulerAuthMiddleware guards the endpoints called by the alert sweep job.
// It compares the X-API-Key header with the configured key in constant time.
// An empty key disables the endpoints.
func SchedulerAuthMiddleware(apiKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if apiKey == "" {
			c.AbortWithStatusJSON(errSchedulerNotConfigured.StatusCode, errorBody(errSchedulerNotConfigured))
			return
		}
		key := c.GetHeader(schedulerKeyHeader)
		if subtle.ConstantTimeCompare([]byte(key), []byte(apiKey)) != 1 {
			abortWithError(c, errInvalidAPIKey)
			return
		}
		c.Next()
	}
}
