package integrations

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/kenjiO/repo-activity/pkg/errors"
	"github.com/kenjiO/repo-activity/pkg/observability"
)

// Client provides shared HTTP functionality for API clients.
// It sends exactly one request per call and normalizes every failure into
// an [*errors.Error].
type Client struct {
	http    *http.Client
	headers map[string]string
}

// NewClient creates a Client with the given default headers.
// Headers are applied to all requests made through this client.
// Pass nil for headers if no default headers are needed.
func NewClient(headers map[string]string) *Client {
	return &Client{
		http:    NewHTTPClient(),
		headers: headers,
	}
}

// Get performs an HTTP GET request and JSON-decodes the response into v.
// Decode failures are returned as plain errors; the caller decides what a
// malformed body means for its API.
func (c *Client) Get(ctx context.Context, url string, v any) error {
	body, err := c.GetBytes(ctx, url)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// GetBytes performs an HTTP GET request and returns the full response body of
// a 2xx response. A 2xx response with no body yields an empty slice.
func (c *Client) GetBytes(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &errors.Error{Code: errors.ErrCodeTransport, Message: err.Error()}
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	hooks := observability.HTTP()
	host, path := req.URL.Host, req.URL.Path
	hooks.OnRequest(ctx, req.Method, host, path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, host, path, err)
		return nil, errors.Wrap(errors.ErrCodeTransport, err, NoResponseMessage)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		hooks.OnError(ctx, req.Method, host, path, err)
		return nil, errors.Wrap(errors.ErrCodeTransport, err, NoResponseMessage)
	}
	hooks.OnResponse(ctx, req.Method, host, path, resp.StatusCode, time.Since(start))

	if err := checkStatus(resp.StatusCode, body); err != nil {
		return nil, err
	}
	return body, nil
}

// checkStatus maps a non-2xx status to an ErrCodeHTTP error whose message is
// the status code followed by the server's message.
func checkStatus(code int, body []byte) error {
	if code >= 200 && code < 300 {
		return nil
	}
	return &errors.Error{
		Code:    errors.ErrCodeHTTP,
		Message: fmt.Sprintf("%d %s", code, serverMessage(code, body)),
		Status:  code,
	}
}

// serverMessage extracts the "message" field that GitHub-style APIs put in
// error bodies, falling back to the status text.
func serverMessage(code int, body []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &payload) == nil && payload.Message != "" {
		return payload.Message
	}
	if text := http.StatusText(code); text != "" {
		return text
	}
	return "Unknown Status"
}
