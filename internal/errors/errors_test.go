package errors

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestAuthErrorMessage(t *testing.T) {
	err := NewAuthError("")
	if err.Error() != "authentication failed: API key may be missing or invalid" {
		t.Errorf("unexpected default message: %s", err.Error())
	}

	err = NewAuthError("key rejected")
	if err.Error() != "authentication failed: key rejected" {
		t.Errorf("unexpected message: %s", err.Error())
	}
}

func TestAuthErrorIs(t *testing.T) {
	err := NewAuthError("bad key")
	if !errors.Is(err, ErrNoAPIKey) {
		t.Error("AuthError should match ErrNoAPIKey")
	}
}

func TestAPIError(t *testing.T) {
	err := NewAPIError(500, "https://openrouter.ai/api/v1/chat/completions", "internal error")
	want := "API error [500] at https://openrouter.ai/api/v1/chat/completions: internal error"
	if err.Error() != want {
		t.Errorf("got %q, want %q", err.Error(), want)
	}

	err = NewAPIError(0, "endpoint", "oops")
	if err.Error() != "API error at endpoint: oops" {
		t.Errorf("unexpected message without status: %s", err.Error())
	}
}

func TestMemberErrorUnwrap(t *testing.T) {
	inner := NewRateLimitError("")
	err := NewMemberError("openai/gpt-5.1", inner)

	if !IsRateLimitError(err) {
		t.Error("wrapped rate limit error should be detected")
	}
	if GetMemberModel(err) != "openai/gpt-5.1" {
		t.Errorf("GetMemberModel = %q", GetMemberModel(err))
	}
	if GetMemberModel(inner) != "" {
		t.Error("non-member error should yield empty model")
	}
}

func TestIsAuthErrorByStatus(t *testing.T) {
	if !IsAuthError(NewAPIError(401, "ep", "unauthorized")) {
		t.Error("401 should be an auth error")
	}
	if !IsAuthError(NewAPIError(403, "ep", "forbidden")) {
		t.Error("403 should be an auth error")
	}
	if IsAuthError(NewAPIError(500, "ep", "server")) {
		t.Error("500 should not be an auth error")
	}
}

func TestIsRateLimitErrorByStatus(t *testing.T) {
	if !IsRateLimitError(NewAPIError(429, "ep", "slow down")) {
		t.Error("429 should be a rate limit error")
	}
}

func TestIsTimeoutError(t *testing.T) {
	if !IsTimeoutError(NewTimeoutError("")) {
		t.Error("TimeoutError should be a timeout")
	}
	if !IsTimeoutError(fmt.Errorf("wrapped: %w", context.DeadlineExceeded)) {
		t.Error("DeadlineExceeded should be a timeout")
	}
	if IsTimeoutError(errors.New("boring")) {
		t.Error("plain error should not be a timeout")
	}
}

func TestGetHTTPStatus(t *testing.T) {
	wrapped := fmt.Errorf("request failed: %w", NewAPIError(429, "ep", "limit"))
	if GetHTTPStatus(wrapped) != 429 {
		t.Errorf("GetHTTPStatus = %d, want 429", GetHTTPStatus(wrapped))
	}
	if GetHTTPStatus(errors.New("plain")) != 0 {
		t.Error("plain error should yield status 0")
	}
	if GetEndpoint(wrapped) != "ep" {
		t.Errorf("GetEndpoint = %q", GetEndpoint(wrapped))
	}
}

func TestParseErrorIs(t *testing.T) {
	err := NewParseError("bad json", "choices.0")
	if !errors.Is(err, ErrInvalidResponse) {
		t.Error("ParseError should match ErrInvalidResponse")
	}
}
