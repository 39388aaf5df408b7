package connectors

import (
	"context"
	"errors"
	"net/http"
)

// IsRetryable reports whether repeating the call that produced err could
// succeed. Transport failures, 408, 429 and 5xx qualify. The client itself
// never retries; callers decide. A cancelled context is never retryable.
func IsRetryable(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}

	var transport *TransportError
	if errors.As(err, &transport) {
		return true
	}

	var status *HTTPStatusError
	if !errors.As(err, &status) {
		return false
	}

	code := status.StatusCode
	if code >= 500 && code <= 599 {
		return true
	}
	if code == http.StatusTooManyRequests {
		return true
	}
	if code == http.StatusRequestTimeout {
		return true
	}
	return false
}
