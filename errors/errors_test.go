package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"
)

func TestAppErrorString(t *testing.T) {
	err := New(ErrCodeNotFound, "missing", http.StatusNotFound)
	if got := err.Error(); got != "NOT_FOUND: missing" {
		t.Fatalf("unexpected error string: %s", got)
	}

	wrapped := err.WithCause(stderrors.New("row not found"))
	if got := wrapped.Error(); got != "NOT_FOUND: missing (cause: row not found)" {
		t.Fatalf("unexpected wrapped string: %s", got)
	}
}

func TestUnwrap(t *testing.T) {
	cause := stderrors.New("disk full")
	err := Internal(cause)

	if !stderrors.Is(err, cause) {
		t.Fatal("expected errors.Is to find the cause")
	}
}

func TestConstructorsStatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    *AppError
		code   ErrorCode
		status int
	}{
		{"invalid input", InvalidInput("username", "too short"), ErrCodeInvalidInput, http.StatusBadRequest},
		{"invalid credentials", InvalidCredentials(), ErrCodeInvalidCredentials, http.StatusNotFound},
		{"unauthorized", Unauthorized(""), ErrCodeUnauthorized, http.StatusUnauthorized},
		{"forbidden", Forbidden(), ErrCodeForbidden, http.StatusForbidden},
		{"rate limited", RateLimited(30 * time.Second), ErrCodeRateLimited, http.StatusTooManyRequests},
		{"not found", NotFound("account", "42"), ErrCodeNotFound, http.StatusNotFound},
		{"already exists", AlreadyExists("account"), ErrCodeAlreadyExists, http.StatusConflict},
		{"internal", Internal(stderrors.New("boom")), ErrCodeInternal, http.StatusInternalServerError},
		{"database", Database("insert", stderrors.New("locked")), ErrCodeDatabaseError, http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.err.Code != tc.code {
				t.Errorf("expected code %s, got %s", tc.code, tc.err.Code)
			}
			if tc.err.HTTPStatus != tc.status {
				t.Errorf("expected status %d, got %d", tc.status, tc.err.HTTPStatus)
			}
		})
	}
}

func TestRateLimitedRetryAfterDetail(t *testing.T) {
	err := RateLimited(90 * time.Second)
	if !err.Retryable {
		t.Error("rate limited errors must be retryable")
	}
	secs, ok := err.Details["retry_after_seconds"].(int)
	if !ok || secs < 90 {
		t.Fatalf("expected retry_after_seconds >= 90, got %v", err.Details["retry_after_seconds"])
	}
}

func TestToResponseDropsCause(t *testing.T) {
	err := Internal(stderrors.New("connection string with password"))
	resp := err.ToResponse()

	if resp.Error.Message != "An unexpected error occurred." {
		t.Fatalf("unexpected client message: %s", resp.Error.Message)
	}
	out := fmt.Sprintf("%+v", resp)
	if strings.Contains(out, "connection string") {
		t.Fatalf("cause leaked into client response: %s", out)
	}
}

func TestAsAppError(t *testing.T) {
	appErr := NotFound("product", "1")
	wrapped := fmt.Errorf("handler: %w", appErr)

	got, ok := AsAppError(wrapped)
	if !ok || got.Code != ErrCodeNotFound {
		t.Fatalf("expected wrapped AppError to be recovered, got %v", got)
	}

	if _, ok := AsAppError(stderrors.New("plain")); ok {
		t.Fatal("plain errors must not convert")
	}
}
