// Package backend is the HTTP client for the resume service that generates,
// stores and bills resumes.
package backend

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

	"github.com/jonathan/resume-studio/internal/logger"
	"github.com/jonathan/resume-studio/internal/payload"
	"github.com/jonathan/resume-studio/internal/types"
)

// DefaultTimeout bounds every call to the resume service.
const DefaultTimeout = 30 * time.Second

// maxBodyBytes caps how much of a response is read.
const maxBodyBytes = 10 << 20

// Client talks to the resume service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// New creates a client for the service at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Generate asks the service to draft a resume from a free-text description.
// The body is returned undecoded; its shape varies between model versions.
func (c *Client) Generate(ctx context.Context, description string) (json.RawMessage, error) {
	body := map[string]string{"userDescription": description}
	var out json.RawMessage
	if err := c.do(ctx, "generate", http.MethodPost, "/api/v1/resume/generate", body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get fetches one stored resume.
func (c *Client) Get(ctx context.Context, id string) (*types.ResumeRecord, error) {
	var rec types.ResumeRecord
	if err := c.do(ctx, "get", http.MethodGet, "/api/v1/resume/"+url.PathEscape(id), nil, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// ListForUser lists the caller's stored resumes.
func (c *Client) ListForUser(ctx context.Context) ([]types.ResumeRecord, error) {
	records := []types.ResumeRecord{}
	if err := c.do(ctx, "list", http.MethodGet, "/api/v1/resume/user", nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// Create stores a new resume and returns its id.
func (c *Client) Create(ctx context.Context, req types.SaveResumeRequest) (string, error) {
	var rec types.ResumeRecord
	if err := c.do(ctx, "create", http.MethodPost, "/api/v1/resume", req, &rec); err != nil {
		return "", err
	}
	return rec.ID, nil
}

// Update replaces a stored resume.
func (c *Client) Update(ctx context.Context, id string, req types.SaveResumeRequest) error {
	return c.do(ctx, "update", http.MethodPut, "/api/v1/resume/"+url.PathEscape(id), req, nil)
}

// Delete removes a stored resume.
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, "delete", http.MethodDelete, "/api/v1/resume/"+url.PathEscape(id), nil, nil)
}

// Credits returns the caller's remaining credit balance.
func (c *Client) Credits(ctx context.Context) (int, error) {
	var env types.CreditsEnvelope
	if err := c.do(ctx, "credits", http.MethodGet, "/api/v1/resume/credits", nil, &env); err != nil {
		return 0, err
	}
	if !env.Success {
		return 0, envelopeError(env)
	}
	return env.Data.Credits, nil
}

// DeductCredit charges one credit for serviceType and returns the new balance.
func (c *Client) DeductCredit(ctx context.Context, serviceType string) (int, error) {
	req := types.DeductCreditRequest{ServiceType: serviceType}
	if err := req.Validate(); err != nil {
		return 0, fmt.Errorf("invalid credit deduction: %w", err)
	}

	var env types.CreditsEnvelope
	if err := c.do(ctx, "deduct credit", http.MethodPost, "/api/v1/resume/users/deduct-credit", req, &env); err != nil {
		return 0, err
	}
	if !env.Success {
		return 0, envelopeError(env)
	}
	return env.Data.Credits, nil
}

func envelopeError(env types.CreditsEnvelope) error {
	msg := env.Message
	if msg == "" {
		msg = "request was not successful"
	}
	return &APIError{StatusCode: http.StatusOK, Message: msg}
}

// do sends one JSON request. out may be nil when the body is not needed.
func (c *Client) do(ctx context.Context, op, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return &RequestError{Op: op, Cause: fmt.Errorf("failed to encode request: %w", err)}
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return &RequestError{Op: op, Cause: err}
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token, ok := TokenFrom(ctx); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &RequestError{Op: op, Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return &RequestError{Op: op, Cause: fmt.Errorf("failed to read response: %w", err)}
	}

	logger.Ctx(ctx).Debug().
		Str("op", op).
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("resume service call")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, Message: errorMessage(resp.StatusCode, data)}
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &RequestError{Op: op, Cause: fmt.Errorf("failed to decode response: %w", err)}
	}
	return nil
}

// errorMessage picks the most useful text out of an error body.
func errorMessage(status int, data []byte) string {
	if v, err := payload.Decode(data); err == nil {
		if obj, ok := payload.AsObject(v); ok {
			for _, key := range []string{"message", "error"} {
				if m, _ := obj.Get(key); payload.Truthy(m) {
					return payload.Compact(m)
				}
			}
		}
	}
	if text := http.StatusText(status); text != "" {
		return text
	}
	return fmt.Sprintf("HTTP status %d", status)
}
