// Package api implements the client for the remote purchy service: a thin
// transport over its REST endpoints plus typed operations for accounts and
// purchies.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/kmadhuranga/purchy/internal/common"
)

// Transport performs JSON requests against a single base endpoint and
// normalizes every non-2xx response into an *Error. It does no retries,
// caching, or authentication.
type Transport struct {
	httpClient *http.Client
	baseURL    string
}

// NewTransport creates a transport for the given base URL. The base URL is
// injected here rather than read from any process-wide state.
func NewTransport(baseURL string) (*Transport, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("%w: api base URL", common.ErrMissingConfig)
	}
	u, err := url.Parse(baseURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, fmt.Errorf("%w: api base URL %q must be an absolute http(s) URL", common.ErrInvalidConfig, baseURL)
	}

	return &Transport{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

// Do issues a request and returns the parsed JSON body. A 2xx response with
// an empty body resolves to nil; a 2xx response with a body that is not
// valid JSON fails with ErrMalformedResponse.
func (t *Transport) Do(ctx context.Context, method, path string, query url.Values, body any) (json.RawMessage, error) {
	u := t.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	common.LogDebug("purchy service request", common.Fields{
		"method": method,
		"path":   path,
		"query":  query.Encode(),
	})

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			common.LogError(closeErr, "failed to close response body", nil)
		}
	}()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newError(resp.StatusCode, raw)
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		// Success without content is valid.
		return nil, nil
	}
	if !json.Valid(trimmed) {
		return nil, fmt.Errorf("%w: %s %s returned HTTP %d with a non-JSON body",
			ErrMalformedResponse, method, path, resp.StatusCode)
	}

	return json.RawMessage(trimmed), nil
}

// newError shapes a non-2xx response into an *Error. The server's message
// field wins when the body parses as JSON; the raw text is kept for
// diagnostics either way.
func newError(status int, raw []byte) *Error {
	apiErr := &Error{
		Status:  status,
		Message: fmt.Sprintf("HTTP %d", status),
		RawBody: string(raw),
	}

	var parsed map[string]any
	if len(raw) > 0 && json.Unmarshal(raw, &parsed) == nil {
		apiErr.Body = parsed
		if msg, ok := parsed["message"].(string); ok && msg != "" {
			apiErr.Message = msg
		}
	}

	return apiErr
}
