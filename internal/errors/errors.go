// Package errors provides custom error types for the budget analytics service.
// All service-layer errors should use AppError so callers can branch on Kind
// instead of matching message text, and so responses never leak internal details.
package errors

import (
	"errors"
	"net/http"
)

// Kind classifies an AppError. The transport layer maps it to a status code.
type Kind string

const (
	KindNotFound     Kind = "not_found"
	KindAccessDenied Kind = "access_denied"
	KindUpstream     Kind = "upstream"
	KindInvalidInput Kind = "invalid_input"
	KindUnauthorized Kind = "unauthorized"
	KindUnavailable  Kind = "unavailable"
	KindRateLimited  Kind = "rate_limited"
	KindInternal     Kind = "internal"
)

// AppError represents a structured application error with an error code,
// kind, human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Kind       Kind   `json:"-"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Is reports whether target is an AppError with the same code, so that
// wrapped copies of a sentinel still match it.
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		Kind:       sentinel.Kind,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		Kind:       sentinel.Kind,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Upstream wraps a data provider failure. The original message is kept as the
// error message so it propagates to the caller unchanged.
func Upstream(err error) *AppError {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{
		Code:       ErrUpstream.Code,
		Message:    err.Error(),
		Kind:       KindUpstream,
		StatusCode: ErrUpstream.StatusCode,
		Internal:   err,
	}
}

// KindOf returns the Kind of err, KindInternal for plain errors and "" for nil.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Kind != "" {
		return appErr.Kind
	}
	return KindInternal
}

// HTTPStatus maps an error to the status code the transport layer responds with.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindNotFound:
		return http.StatusNotFound
	case KindAccessDenied:
		return http.StatusForbidden
	case KindInvalidInput:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindUnavailable:
		return http.StatusNotImplemented
	case KindRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// Authentication & authorization errors.
var (
	ErrUnauthorized = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", Kind: KindUnauthorized, StatusCode: http.StatusUnauthorized}
	ErrForbidden    = &AppError{Code: "FORBIDDEN", Message: "Access denied", Kind: KindAccessDenied, StatusCode: http.StatusForbidden}
	ErrRateLimited  = &AppError{Code: "RATE_LIMITED", Message: "Too many requests", Kind: KindRateLimited, StatusCode: http.StatusTooManyRequests}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", Kind: KindInvalidInput, StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", Kind: KindNotFound, StatusCode: http.StatusNotFound}
	ErrUpstream       = &AppError{Code: "UPSTREAM_FAILURE", Message: "A data provider failed", Kind: KindUpstream, StatusCode: http.StatusInternalServerError}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", Kind: KindInternal, StatusCode: http.StatusInternalServerError}
)

// Category errors.
var (
	ErrCategoryNotFound = &AppError{Code: "CATEGORY_NOT_FOUND", Message: "Category not found", Kind: KindNotFound, StatusCode: http.StatusNotFound}
)

// Budget errors. ErrBudgetNotFound's message is relied on by API clients and must not change.
var (
	ErrBudgetNotFound     = &AppError{Code: "BUDGET_NOT_FOUND", Message: "Budget not found", Kind: KindNotFound, StatusCode: http.StatusNotFound}
	ErrBudgetAccessDenied = &AppError{Code: "BUDGET_ACCESS_DENIED", Message: "Budget access denied", Kind: KindAccessDenied, StatusCode: http.StatusForbidden}
	ErrInvalidDateRange   = &AppError{Code: "INVALID_DATE_RANGE", Message: "Start date must not be after end date", Kind: KindInvalidInput, StatusCode: http.StatusBadRequest}
)

// Report and export errors.
var (
	ErrUnsupportedReportType   = &AppError{Code: "UNSUPPORTED_REPORT_TYPE", Message: "Unsupported report type", Kind: KindInvalidInput, StatusCode: http.StatusBadRequest}
	ErrUnsupportedExportFormat = &AppError{Code: "UNSUPPORTED_EXPORT_FORMAT", Message: "Unsupported export format", Kind: KindInvalidInput, StatusCode: http.StatusBadRequest}
	ErrRendererUnavailable     = &AppError{Code: "RENDERER_UNAVAILABLE", Message: "No renderer is configured for this format", Kind: KindUnavailable, StatusCode: http.StatusNotImplemented}
)
