package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	app_errors "supportbot/internal/errors"
	"supportbot/internal/model"
	"supportbot/internal/validation"
)

// maxErrorBody caps how much of a failed response is kept for diagnostics.
const maxErrorBody = 4 << 10

// ChatRequest is the body of POST /api/chat.
type ChatRequest struct {
	Message   string `json:"message" validate:"required"`
	Provider  string `json:"provider" validate:"required"`
	SessionID string `json:"session_id" validate:"required"`
}

// ChatResponse is the body returned by POST /api/chat.
type ChatResponse struct {
	Response       string               `json:"response"`
	ConversationID model.ConversationID `json:"conversation_id"`
	Provider       string               `json:"provider,omitempty"`
	SessionID      string               `json:"session_id,omitempty"`
	Timestamp      model.Timestamp      `json:"timestamp"`
}

// RateRequest is the body of POST /api/rate.
type RateRequest struct {
	ConversationID model.ConversationID `json:"conversation_id" validate:"required"`
	Rating         int                  `json:"rating" validate:"min=1,max=5"`
	Feedback       string               `json:"feedback"`
}

// RateResponse is the body returned by POST /api/rate.
type RateResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// HealthResponse is the body returned by GET /api/health.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// StatusError is returned when the backend answers with a non-2xx status.
// It unwraps to app_errors.ErrNetwork.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s returned non-success status %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}

func (e *StatusError) Unwrap() error { return app_errors.ErrNetwork }

// Client is the HTTP implementation of the backend REST surface.
type Client struct {
	client  *http.Client
	baseURL string
}

// NewClient returns a client for baseURL. A zero timeout means requests are
// bounded only by their context.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		client:  &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Providers lists the backend's language-model providers.
func (c *Client) Providers(ctx context.Context) ([]model.ProviderDescriptor, error) {
	var providers []model.ProviderDescriptor
	if err := c.do(ctx, http.MethodGet, "/api/providers", nil, &providers); err != nil {
		return nil, err
	}
	return providers, nil
}

// Chat sends one user message and returns the provider's answer.
func (c *Client) Chat(ctx context.Context, req *ChatRequest) (*ChatResponse, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	var resp ChatResponse
	if err := c.do(ctx, http.MethodPost, "/api/chat", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Rate submits a star rating for one conversation.
func (c *Client) Rate(ctx context.Context, req *RateRequest) (*RateResponse, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	var resp RateResponse
	if err := c.do(ctx, http.MethodPost, "/api/rate", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Analytics fetches the aggregate usage statistics.
func (c *Client) Analytics(ctx context.Context) (*model.AnalyticsSnapshot, error) {
	var snapshot model.AnalyticsSnapshot
	if err := c.do(ctx, http.MethodGet, "/api/analytics", nil, &snapshot); err != nil {
		return nil, err
	}
	if snapshot.ProviderComparison == nil {
		snapshot.ProviderComparison = map[string]model.StatBlock{}
	}
	return &snapshot, nil
}

// Conversations fetches the most recent conversation records, newest first.
func (c *Client) Conversations(ctx context.Context) ([]model.ConversationRecord, error) {
	var records []model.ConversationRecord
	if err := c.do(ctx, http.MethodGet, "/api/conversations", nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// Health calls the backend's health endpoint.
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	var resp HealthResponse
	if err := c.do(ctx, http.MethodGet, "/api/health", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// do performs one request. Transport failures, non-2xx statuses and
// undecodable bodies are all reported as app_errors.ErrNetwork.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("could not marshal request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("could not create http request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if in != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", app_errors.ErrNetwork, method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{Method: method, Path: path, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(bodyBytes))}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: could not decode %s %s response: %v", app_errors.ErrNetwork, method, path, err)
	}
	return nil
}
