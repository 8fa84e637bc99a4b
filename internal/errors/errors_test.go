package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestKindOf(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		if got := KindOf(nil); got != "" {
			t.Errorf("expected empty kind, got %q", got)
		}
	})

	t.Run("sentinel", func(t *testing.T) {
		if got := KindOf(ErrBudgetNotFound); got != KindNotFound {
			t.Errorf("expected %q, got %q", KindNotFound, got)
		}
	})

	t.Run("wrapped_sentinel", func(t *testing.T) {
		err := fmt.Errorf("loading: %w", ErrBudgetAccessDenied)
		if got := KindOf(err); got != KindAccessDenied {
			t.Errorf("expected %q, got %q", KindAccessDenied, got)
		}
	})

	t.Run("plain_error", func(t *testing.T) {
		if got := KindOf(errors.New("boom")); got != KindInternal {
			t.Errorf("expected %q, got %q", KindInternal, got)
		}
	})
}

func TestUpstream(t *testing.T) {
	t.Run("keeps_original_message", func(t *testing.T) {
		err := Upstream(errors.New("connection refused"))
		if err.Error() != "connection refused" {
			t.Errorf("expected original message, got %q", err.Error())
		}
		if err.Kind != KindUpstream {
			t.Errorf("expected upstream kind, got %q", err.Kind)
		}
	})

	t.Run("passes_app_errors_through", func(t *testing.T) {
		err := Upstream(ErrBudgetNotFound)
		if err != ErrBudgetNotFound {
			t.Errorf("expected the sentinel back, got %v", err)
		}
	})

	t.Run("nil", func(t *testing.T) {
		if Upstream(nil) != nil {
			t.Error("expected nil")
		}
	})
}

func TestIs(t *testing.T) {
	wrapped := Wrap(ErrBudgetNotFound, errors.New("record not found"))
	if !errors.Is(wrapped, ErrBudgetNotFound) {
		t.Error("wrapped copy should match its sentinel")
	}
	if errors.Is(wrapped, ErrCategoryNotFound) {
		t.Error("different codes should not match")
	}
}

func TestHTTPStatus(t *testing.T) {
	cases := map[string]struct {
		err  error
		want int
	}{
		"not_found":     {ErrBudgetNotFound, http.StatusNotFound},
		"access_denied": {ErrBudgetAccessDenied, http.StatusForbidden},
		"invalid_input": {ErrInvalidDateRange, http.StatusBadRequest},
		"unavailable":   {ErrRendererUnavailable, http.StatusNotImplemented},
		"rate_limited":  {ErrRateLimited, http.StatusTooManyRequests},
		"upstream":      {Upstream(errors.New("db down")), http.StatusInternalServerError},
		"plain":         {errors.New("boom"), http.StatusInternalServerError},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			if got := HTTPStatus(tc.err); got != tc.want {
				t.Errorf("expected %d, got %d", tc.want, got)
			}
		})
	}
}

func TestBudgetMessages(t *testing.T) {
	if ErrBudgetNotFound.Message != "Budget not found" {
		t.Errorf("unexpected not-found message %q", ErrBudgetNotFound.Message)
	}
	if ErrBudgetAccessDenied.Message != "Budget access denied" {
		t.Errorf("unexpected access-denied message %q", ErrBudgetAccessDenied.Message)
	}
}
