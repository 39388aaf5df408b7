// REST API CLIENT FOR THE TRADING 212 PUBLIC API (equity, pies, history)
// RESTY ONLY, NO INTERNAL RETRY
package connectors

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"trading212/src/metrics"

	"github.com/go-resty/resty/v2"
	logger "github.com/sirupsen/logrus"
)

// Version is reported in the User-Agent header.
const Version = "0.3.0"

const alreadyAbsentText = "ALREADY_ABSENT"

// AlreadyAbsentBody is what Request returns for a DELETE answered with 404:
// the resource is gone either way, so the caller gets a sentinel instead of
// an error.
var AlreadyAbsentBody = json.RawMessage(`"` + alreadyAbsentText + `"`)

// -----------------------------
// CLIENT
// -----------------------------

// Trading212Client is safe for concurrent use. Every method issues exactly
// one HTTP request and caches nothing.
type Trading212Client struct {
	apiKey  string
	mode    AccountMode
	baseURL string
	http    *resty.Client
}

func NewTrading212Client(cfg Config) (*Trading212Client, error) {
	mode, err := cfg.Mode()
	if err != nil {
		return nil, err
	}
	apiKey, err := cfg.ResolveAPIKey()
	if err != nil {
		return nil, err
	}
	baseURL, err := cfg.ResolveBaseURL()
	if err != nil {
		return nil, err
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetRetryCount(0)

	logger.WithFields(map[string]interface{}{
		"component": "Trading212Client",
		"mode":      mode,
		"baseURL":   baseURL,
	}).Debug("Trading 212 client ready")

	return &Trading212Client{
		apiKey:  apiKey,
		mode:    mode,
		baseURL: baseURL,
		http:    httpClient,
	}, nil
}

// NewTrading212ClientFromEnv builds a client from the environment and the
// local env files.
func NewTrading212ClientFromEnv() (*Trading212Client, error) {
	return NewTrading212Client(GetConfig())
}

func (c *Trading212Client) Mode() AccountMode { return c.mode }

func (c *Trading212Client) BaseURL() string { return c.baseURL }

// -----------------------------
// LOW-LEVEL REQUEST
// -----------------------------

// Request performs one call and returns the raw JSON body.
//
//	2xx with a body       -> body
//	2xx without a body    -> nil
//	DELETE answered 404   -> AlreadyAbsentBody
//	any other non-2xx     -> *HTTPStatusError
//	no response           -> *TransportError
func (c *Trading212Client) Request(ctx context.Context, method, path string, query url.Values, body any) (json.RawMessage, error) {
	return c.do(ctx, "raw", method, path, query, body)
}

func (c *Trading212Client) do(ctx context.Context, op, method, path string, query url.Values, body any) (json.RawMessage, error) {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	log := logger.WithFields(map[string]interface{}{
		"component": "Trading212Client",
		"op":        op,
		"method":    method,
		"path":      path,
	})

	req := c.http.R().
		SetContext(ctx).
		SetHeader("Authorization", c.apiKey).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "trading212-go/"+Version)

	if len(query) > 0 {
		req = req.SetQueryParamsFromValues(query)
	}
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("%s %s: encode body: %w", method, path, err)
		}
		req = req.SetBody(payload)
	}

	start := time.Now()
	resp, err := req.Execute(method, path)
	elapsed := time.Since(start)
	if err != nil {
		metrics.ObserveAPICall(op, method, 0, elapsed)
		log.WithError(err).WithField("duration_ms", elapsed.Milliseconds()).Warn("Trading 212 request failed")
		return nil, &TransportError{Method: method, Path: path, Err: err}
	}

	status := resp.StatusCode()
	raw := resp.Body()
	metrics.ObserveAPICall(op, method, status, elapsed)
	log = log.WithFields(map[string]interface{}{
		"status":      status,
		"duration_ms": elapsed.Milliseconds(),
	})

	switch {
	case status >= 200 && status < 300:
		log.Debug("Trading 212 request done")
		if len(bytes.TrimSpace(raw)) == 0 {
			return nil, nil
		}
		return json.RawMessage(raw), nil
	case method == http.MethodDelete && status == http.StatusNotFound:
		log.Info("Delete target already absent")
		return AlreadyAbsentBody, nil
	default:
		log.WithField("body", truncate(string(raw), 512)).Warn("Trading 212 request rejected")
		return nil, newHTTPStatusError(method, path, status, raw)
	}
}

// DeleteOutcome is the result of a delete or cancel call.
type DeleteOutcome string

const (
	Deleted       DeleteOutcome = "deleted"
	AlreadyAbsent DeleteOutcome = "already_absent"
)

func (c *Trading212Client) deleteResource(ctx context.Context, op, path string) (DeleteOutcome, error) {
	raw, err := c.do(ctx, op, http.MethodDelete, path, nil, nil)
	if err != nil {
		return "", err
	}
	if bytes.Equal(bytes.TrimSpace(raw), AlreadyAbsentBody) {
		return AlreadyAbsent, nil
	}
	return Deleted, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
