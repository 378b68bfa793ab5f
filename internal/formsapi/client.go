// Package formsapi is the HTTP client for the remote form-construction
// service. It owns authentication, the one-write-per-second policy,
// and the translation of compiled batches into wire requests.
package formsapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the base URL for the form service API.
	DefaultBaseURL = "https://forms.googleapis.com"

	// DefaultTimeout is the default HTTP timeout.
	DefaultTimeout = 30 * time.Second

	// writesPerSecond is the externally imposed write ceiling per
	// credential. The limiter refuses locally rather than queueing, so
	// the caller decides when to retry.
	writesPerSecond = 1
)

// Client communicates with the form service HTTP API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithBaseURL sets a custom base URL.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient sets a custom HTTP client, bypassing the oauth2
// transport. Intended for tests.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithWriteLimit overrides the write rate limit.
func WithWriteLimit(perSecond float64, burst int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}

// NewClient creates a client whose requests carry tokens from ts.
func NewClient(ts oauth2.TokenSource, opts ...ClientOption) *Client {
	httpClient := oauth2.NewClient(context.Background(), ts)
	httpClient.Timeout = DefaultTimeout

	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: httpClient,
		limiter:    rate.NewLimiter(rate.Limit(writesPerSecond), 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FormInfo is the remote form's identity and metadata.
type FormInfo struct {
	FormID       string         `json:"formId"`
	ResponderURI string         `json:"responderUri"`
	Info         map[string]any `json:"info"`
}

// CreateForm creates a new remote form. The service only accepts a
// title at creation time; the description goes in a follow-up batch.
func (c *Client) CreateForm(ctx context.Context, title string) (*FormInfo, error) {
	if err := c.reserveWrite(); err != nil {
		return nil, err
	}
	body := map[string]any{
		"info": map[string]any{
			"title":         title,
			"documentTitle": title,
		},
	}
	var info FormInfo
	if err := c.do(ctx, http.MethodPost, "/v1/forms", body, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// BatchUpdate submits a batch of item/settings/info requests against
// an existing form in one call.
func (c *Client) BatchUpdate(ctx context.Context, formID string, requests []map[string]any) (map[string]any, error) {
	if len(requests) == 0 {
		return map[string]any{}, nil
	}
	if err := c.reserveWrite(); err != nil {
		return nil, err
	}
	body := map[string]any{"requests": requests}
	var result map[string]any
	if err := c.do(ctx, http.MethodPost, "/v1/forms/"+formID+":batchUpdate", body, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// Form is the remote form document: info, items and settings.
type Form struct {
	FormID       string           `json:"formId"`
	Info         map[string]any   `json:"info"`
	Items        []map[string]any `json:"items"`
	Settings     map[string]any   `json:"settings"`
	ResponderURI string           `json:"responderUri"`
}

// GetForm retrieves a form's info, items and settings.
func (c *Client) GetForm(ctx context.Context, formID string) (*Form, error) {
	var f Form
	if err := c.do(ctx, http.MethodGet, "/v1/forms/"+formID, nil, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

// FormResponse is a single submitted response.
type FormResponse struct {
	ResponseID        string         `json:"responseId"`
	CreateTime        string         `json:"createTime"`
	LastSubmittedTime string         `json:"lastSubmittedTime"`
	Answers           map[string]any `json:"answers"`
}

// ListResponses retrieves all responses submitted to a form.
func (c *Client) ListResponses(ctx context.Context, formID string) ([]FormResponse, error) {
	var result struct {
		Responses []FormResponse `json:"responses"`
	}
	if err := c.do(ctx, http.MethodGet, "/v1/forms/"+formID+"/responses", nil, &result); err != nil {
		return nil, err
	}
	return result.Responses, nil
}

// DeleteForm permanently deletes a form from the storage service.
func (c *Client) DeleteForm(ctx context.Context, formID string) error {
	if err := c.reserveWrite(); err != nil {
		return err
	}
	return c.do(ctx, http.MethodDelete, "/v1/forms/"+formID, nil, nil)
}

// reserveWrite enforces the write ceiling locally: when no token is
// available the call is refused before anything goes on the wire.
func (c *Client) reserveWrite() error {
	if c.limiter.Allow() {
		return nil
	}
	return &RateLimitError{RetryAfter: time.Second}
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &RemoteAPIError{
			StatusCode: resp.StatusCode,
			Message:    remoteMessage(respBody),
		}
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// remoteMessage pulls the error message out of the service's error
// envelope, falling back to the raw body.
func remoteMessage(body []byte) string {
	var envelope struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error.Message != "" {
		return envelope.Error.Message
	}
	return string(body)
}

// Close releases any resources held by the underlying transport.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}
