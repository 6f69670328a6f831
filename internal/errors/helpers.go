package errors

import (
	"context"
	"errors"
	"net"
	"strings"
)

// IsAuthError reports whether err is an authentication failure.
func IsAuthError(err error) bool {
	var authErr *AuthError
	if errors.As(err, &authErr) {
		return true
	}
	if errors.Is(err, ErrNoAPIKey) {
		return true
	}
	if status := GetHTTPStatus(err); status == 401 || status == 403 {
		return true
	}
	return false
}

// IsRateLimitError reports whether err is a rate limit or quota failure.
func IsRateLimitError(err error) bool {
	var rlErr *RateLimitError
	if errors.As(err, &rlErr) {
		return true
	}
	return GetHTTPStatus(err) == 429
}

// IsTimeoutError reports whether err is a timeout.
func IsTimeoutError(err error) bool {
	var toErr *TimeoutError
	if errors.As(err, &toErr) {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// IsNetworkError reports whether err is a transport-level failure.
func IsNetworkError(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	// url.Error wraps DNS and dial failures without a stable type
	msg := strings.ToLower(errString(err))
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "no such host")
}

// GetHTTPStatus returns the HTTP status attached to err, or 0.
func GetHTTPStatus(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// GetEndpoint returns the endpoint attached to err, or "".
func GetEndpoint(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Endpoint
	}
	return ""
}

// GetMemberModel returns the council model attached to err, or "".
func GetMemberModel(err error) string {
	var memberErr *MemberError
	if errors.As(err, &memberErr) {
		return memberErr.Model
	}
	return ""
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
