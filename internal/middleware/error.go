package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "budgetlens/internal/errors"
	"budgetlens/internal/logger"
)

// ErrorHandler returns a Gin middleware that converts errors set on the Gin
// context into consistent JSON error responses. Client errors are returned
// with their code and message; upstream and internal failures are logged and
// answered with a generic internal error.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		// Process the last error (most relevant in a middleware chain)
		err := c.Errors.Last().Err
		status := apperrors.HTTPStatus(err)

		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && (status < 500 || status == http.StatusNotImplemented) {
			c.JSON(status, errorBody(appErr))
			return
		}

		logger.Get().Errorw("unexpected error",
			"error", err.Error(),
			"kind", apperrors.KindOf(err),
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
		)
		c.JSON(status, errorBody(apperrors.ErrInternalServer))
	}
}

// abortWithError stops the chain with an AppError body.
func abortWithError(c *gin.Context, err *apperrors.AppError) {
	c.AbortWithStatusJSON(apperrors.HTTPStatus(err), errorBody(err))
}

func errorBody(err *apperrors.AppError) gin.H {
	return gin.H{
		"error": gin.H{
			"code":    err.Code,
			"message": err.Message,
		},
	}
}
