package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "budgetlens/internal/errors"
	"budgetlens/internal/logger"
	"budgetlens/internal/middleware"
	"budgetlens/internal/uuid"
)

// ErrorDetail represents the inner error object in an error response.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// getUserID extracts the authenticated user ID from the Gin context.
// Returns ErrUnauthorized if not present.
func getUserID(c *gin.Context) (string, error) {
	userID := c.GetString(middleware.UserIDKey)
	if userID == "" {
		return "", apperrors.ErrUnauthorized
	}
	return userID, nil
}

// parsePathID reads a UUID path parameter and returns its canonical form.
// Returns ErrInvalidInput if the parameter is not a valid UUID.
func parsePathID(c *gin.Context, param string) (string, error) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+param)
	}
	return id, nil
}

// parseDate accepts YYYY-MM-DD or RFC 3339. An empty value is the zero time,
// which the report services read as "use the budget's window".
func parseDate(value, name string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.DateOnly, value); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+name+", expected YYYY-MM-DD")
	}
	return t.UTC(), nil
}

// parseDateQuery reads an optional date query parameter.
func parseDateQuery(c *gin.Context, name string) (time.Time, error) {
	return parseDate(c.Query(name), name)
}

// parseDateWindow reads two optional date query parameters and rejects an
// inverted window.
func parseDateWindow(c *gin.Context, startName, endName string) (time.Time, time.Time, error) {
	start, err := parseDateQuery(c, startName)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := parseDateQuery(c, endName)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		return time.Time{}, time.Time{}, apperrors.ErrInvalidDateRange
	}
	return start, end, nil
}

// respondWithError writes a consistent JSON error response. Client errors keep
// their code and message. Upstream and internal failures are logged with
// their detail and answered with a generic internal error.
func respondWithError(c *gin.Context, err error) {
	status := apperrors.HTTPStatus(err)

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && (status < http.StatusInternalServerError || status == http.StatusNotImplemented) {
		c.JSON(status, ErrorResponse{Error: ErrorDetail{Code: appErr.Code, Message: appErr.Message}})
		return
	}

	logger.Get().Errorw("request failed",
		"error", err.Error(),
		"kind", apperrors.KindOf(err),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)
	c.JSON(status, ErrorResponse{Error: ErrorDetail{
		Code:    apperrors.ErrInternalServer.Code,
		Message: apperrors.ErrInternalServer.Message,
	}})
}
