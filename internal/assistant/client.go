package assistant

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

const (
	// DefaultBaseURL is the Gemini REST API root
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

	// DefaultModel is the model queried when none is configured
	DefaultModel = "gemini-2.5-flash"

	// DefaultTemperature keeps answers close to the data
	DefaultTemperature = 0.2

	// MaxResponseSize caps how much of a response body is read
	MaxResponseSize = 10 * 1024 * 1024
)

var (
	// ErrNotConfigured indicates the API key is not set
	ErrNotConfigured = errors.New("gemini API key not configured")

	// ErrAuthFailed indicates the API key was rejected
	ErrAuthFailed = errors.New("authentication failed")

	// ErrRateLimited indicates the quota was exhausted
	ErrRateLimited = errors.New("rate limited")

	// ErrModelNotFound indicates the configured model does not exist
	ErrModelNotFound = errors.New("model not found")
)

// APIError is an error payload returned by the service
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("gemini error [%s] (HTTP %d): %s", e.Code, e.Status, e.Message)
	}
	return fmt.Sprintf("gemini error (HTTP %d): %s", e.Status, e.Message)
}

// Part is a fragment of content
type Part struct {
	Text string `json:"text"`
}

// Content is a role-tagged list of parts
type Content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

// GenerationConfig carries the sampling settings
type GenerationConfig struct {
	Temperature float64 `json:"temperature"`
}

// GenerateRequest is the body of a generateContent call
type GenerateRequest struct {
	SystemInstruction *Content         `json:"systemInstruction,omitempty"`
	Contents          []Content        `json:"contents"`
	GenerationConfig  GenerationConfig `json:"generationConfig"`
}

// GenerateResponse is the subset of the generateContent response we read
type GenerateResponse struct {
	Candidates []struct {
		Content      Content `json:"content"`
		FinishReason string  `json:"finishReason"`
	} `json:"candidates"`
}

// Text joins the text parts of the first candidate
func (r *GenerateResponse) Text() string {
	if len(r.Candidates) == 0 {
		return ""
	}
	var b strings.Builder
	for _, p := range r.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}
	return b.String()
}

type apiErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// Client talks to the Gemini generateContent endpoint.
// It never retries and sets no timeout of its own.
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

// NewClient creates a client for apiKey. An empty key yields a client
// whose Generate returns ErrNotConfigured without any network I/O.
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:     strings.TrimSpace(apiKey),
		baseURL:    DefaultBaseURL,
		model:      DefaultModel,
		httpClient: &http.Client{},
	}
}

// WithBaseURL sets a custom base URL for the API
func (c *Client) WithBaseURL(u string) *Client {
	c.baseURL = strings.TrimSuffix(u, "/")
	return c
}

// WithModel sets the model identifier
func (c *Client) WithModel(model string) *Client {
	if model != "" {
		c.model = model
	}
	return c
}

// WithHTTPClient replaces the underlying HTTP client
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

// Model returns the configured model identifier
func (c *Client) Model() string {
	return c.model
}

// IsConfigured reports whether an API key is set
func (c *Client) IsConfigured() bool {
	return c.apiKey != ""
}

// Generate performs one generateContent call and returns the reply text
func (c *Client) Generate(ctx context.Context, reqBody GenerateRequest) (string, error) {
	if !c.IsConfigured() {
		return "", ErrNotConfigured
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, url.PathEscape(c.model))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := readResponse(resp)
	if err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		return "", handleErrorResponse(resp.StatusCode, body)
	}

	var out GenerateResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}
	return out.Text(), nil
}

func readResponse(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if len(body) > MaxResponseSize {
		return nil, fmt.Errorf("response exceeded maximum size of %d bytes", MaxResponseSize)
	}
	return body, nil
}

// handleErrorResponse maps non-200 responses to errors
func handleErrorResponse(status int, body []byte) error {
	apiErr := &APIError{Status: status, Message: http.StatusText(status)}

	var parsed apiErrorResponse
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Error.Message != "" {
		apiErr.Code = parsed.Error.Status
		apiErr.Message = parsed.Error.Message
	}

	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %w", ErrAuthFailed, apiErr)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %w", ErrModelNotFound, apiErr)
	case http.StatusTooManyRequests:
		return fmt.Errorf("%w: %w", ErrRateLimited, apiErr)
	default:
		return apiErr
	}
}
