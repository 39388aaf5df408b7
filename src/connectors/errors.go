package connectors

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"trading212/src/mapper"
	"trading212/src/model"
)

// Both are shared with the packages that produce them.
type (
	ValidationError = model.ValidationError
	ParseError      = mapper.ParseError
)

// StatusMessages maps the status codes the API documents to their meaning.
var StatusMessages = map[int]string{
	http.StatusBadRequest:      "bad request, check the payload",
	http.StatusUnauthorized:    "bad API key",
	http.StatusForbidden:       "scope missing for API key",
	http.StatusNotFound:        "not found",
	http.StatusRequestTimeout:  "timed out",
	http.StatusTooManyRequests: "limited, too many requests",
}

// GetStatusMsg returns a readable message for a status code.
func GetStatusMsg(code int) string {
	if msg, ok := StatusMessages[code]; ok {
		return msg
	}
	if text := http.StatusText(code); text != "" {
		return strings.ToLower(text)
	}
	return fmt.Sprintf("unknown status %d", code)
}

// ConfigurationError is returned at construction time, before any request.
type ConfigurationError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ConfigurationError) Error() string {
	msg := fmt.Sprintf("trading212 config %s: %s", e.Field, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// TransportError means no HTTP response arrived (DNS, TLS, timeout, cancel).
type TransportError struct {
	Method string
	Path   string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: transport: %v", e.Method, e.Path, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// HTTPStatusError carries a non-2xx answer. Message is the body verbatim;
// Code is the "code" field of a JSON error body when the server sent one.
type HTTPStatusError struct {
	Method     string
	Path       string
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPStatusError) Error() string {
	msg := fmt.Sprintf("%s %s: HTTP %d (%s)", e.Method, e.Path, e.StatusCode, GetStatusMsg(e.StatusCode))
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

func newHTTPStatusError(method, path string, status int, body []byte) *HTTPStatusError {
	e := &HTTPStatusError{Method: method, Path: path, StatusCode: status, Message: strings.TrimSpace(string(body))}
	var payload struct {
		Code string `json:"code"`
	}
	if json.Unmarshal(body, &payload) == nil {
		e.Code = payload.Code
	}
	return e
}

// NotSupportedError is returned for operations the current mode cannot serve.
type NotSupportedError struct {
	Operation string
	Mode      AccountMode
}

func (e *NotSupportedError) Error() string {
	return fmt.Sprintf("%s is not available in %s mode", e.Operation, e.Mode)
}
