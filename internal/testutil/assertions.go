package testutil

import (
	"errors"
	"testing"

	apperrors "budgetlens/internal/errors"
)

// AssertAppError checks that err is an *AppError with the expected error code.
func AssertAppError(t *testing.T, err error, expectedCode string) {
	t.Helper()

	if err == nil {
		t.Fatalf("expected AppError with code %q, got nil", expectedCode)
	}

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *AppError, got %T: %v", err, err)
	}

	if appErr.Code != expectedCode {
		t.Errorf("expected error code %q, got %q (message: %s)", expectedCode, appErr.Code, appErr.Message)
	}
}

// AssertErrorKind checks that err carries the expected Kind.
func AssertErrorKind(t *testing.T, err error, expected apperrors.Kind) {
	t.Helper()

	if err == nil {
		t.Fatalf("expected error of kind %q, got nil", expected)
	}
	if got := apperrors.KindOf(err); got != expected {
		t.Errorf("expected error kind %q, got %q (message: %s)", expected, got, err.Error())
	}
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
