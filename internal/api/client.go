package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"
)

// TokenSource supplies the current bearer token, or "" when there is none.
// The session store owns the token; the client only reads it per request.
type TokenSource func() string

// Client manages communication with the property backend.
type Client struct {
	BaseURL      *url.URL
	HTTPClient   *http.Client
	Token        TokenSource
	MaxRetries   int           // how many times to retry read requests
	RetryInitial time.Duration // initial backoff
}

// NewClient initializes a client against the given base URL. maxRetries and
// retryInitial only govern idempotent reads; mutations are never retried.
func NewClient(baseURL string, token TokenSource, maxRetries int, retryInitial time.Duration) (*Client, error) {
	parsed, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid baseURL: %w", err)
	}
	if maxRetries < 0 {
		maxRetries = 0
	}
	if retryInitial <= 0 {
		retryInitial = 1 * time.Second
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("cookie jar: %w", err)
	}
	if token == nil {
		token = func() string { return "" }
	}

	return &Client{
		BaseURL:      parsed,
		HTTPClient:   &http.Client{Timeout: 30 * time.Second, Jar: jar},
		Token:        token,
		MaxRetries:   maxRetries,
		RetryInitial: retryInitial,
	}, nil
}

// doRequest builds, executes and parses a JSON request. GETs retry on 429
// and 5xx with exponential backoff; everything else gets a single attempt,
// and 4xx-class outcomes are always authoritative.
func (c *Client) doRequest(ctx context.Context, method, reqPath string, query url.Values, body any, out any) error {
	var attempt int
	backoff := c.RetryInitial

	for {
		err := c.doOnce(ctx, method, reqPath, query, body, out)
		if err == nil {
			return nil
		}
		if method != http.MethodGet || attempt >= c.MaxRetries || !retryable(err) {
			return err
		}
		attempt++
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}
}

func retryable(err error) bool {
	var rlErr *RateLimitError
	if errors.As(err, &rlErr) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status >= 500
	}
	// Transport-level failures (no HTTP status at all).
	var permErr *PermissionError
	return !errors.As(err, &permErr)
}

// doOnce performs a single HTTP request attempt (no retries).
func (c *Client) doOnce(ctx context.Context, method, reqPath string, query url.Values, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		jsonBytes, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(jsonBytes)
	}

	req, err := c.newRequest(ctx, method, reqPath, query, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	return c.execute(req, out)
}

// doMultipart sends a pre-built multipart payload. Never retried.
func (c *Client) doMultipart(ctx context.Context, method, reqPath string, payload *Payload, out any) error {
	var buf bytes.Buffer
	contentType, err := payload.Encode(&buf)
	if err != nil {
		return fmt.Errorf("failed to encode multipart payload: %w", err)
	}

	req, err := c.newRequest(ctx, method, reqPath, nil, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	return c.execute(req, out)
}

func (c *Client) newRequest(ctx context.Context, method, reqPath string, query url.Values, body io.Reader) (*http.Request, error) {
	u := *c.BaseURL
	u.Path = path.Join(c.BaseURL.Path, reqPath)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if tok := c.Token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	return req, nil
}

func (c *Client) execute(req *http.Request, out any) error {
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.handleHTTPError(resp)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// errorBody is the backend's error shape. `errors` is present on remote
// validation failures as a field -> message(s) map.
type errorBody struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Error   string              `json:"error"`
	Errors  map[string][]string `json:"errors"`
}

// handleHTTPError parses a 4xx/5xx body into the matching typed error.
func (c *Client) handleHTTPError(resp *http.Response) error {
	status := resp.StatusCode
	bodyBytes, _ := io.ReadAll(resp.Body)

	var eb errorBody
	if err := json.Unmarshal(bodyBytes, &eb); err != nil {
		eb.Message = strings.TrimSpace(string(bodyBytes))
	}
	msg := eb.Message
	if msg == "" {
		msg = eb.Error
	}

	switch {
	case status == http.StatusForbidden && isPermissionMessage(msg):
		return &PermissionError{Message: msg}
	case status == http.StatusTooManyRequests:
		var resetTime time.Time
		if resetStr := resp.Header.Get("X-RateLimit-Reset"); resetStr != "" {
			if sec, err := strconv.ParseInt(resetStr, 10, 64); err == nil {
				resetTime = time.Unix(sec, 0)
			}
		}
		return &RateLimitError{Message: msg, ResetTimestamp: resetTime}
	default:
		return &APIError{Status: status, Message: msg, Fields: eb.Errors}
	}
}
