// Package analyzer is the client for the remote resume analysis service.
//
// Analyze uploads a resume and a job description, retries transient failures
// and hands whatever comes back to analysis.Extract.
package analyzer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/jonathan/resume-studio/internal/analysis"
	"github.com/jonathan/resume-studio/internal/logger"
	"github.com/jonathan/resume-studio/internal/types"
)

const (
	// DefaultTimeout bounds a single analyzer attempt.
	DefaultTimeout = 90 * time.Second
	// DefaultRetryStep is the linear backoff unit between attempts.
	DefaultRetryStep = 1500 * time.Millisecond
	// DefaultMaxAttempts includes the first try.
	DefaultMaxAttempts = 2
	// DefaultCooldown is how long calls fail fast after retries are exhausted.
	DefaultCooldown = 8 * time.Second
)

// Client calls the analyzer service. It is safe for concurrent use; the
// cooldown window is shared by all callers.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	step        time.Duration
	maxAttempts int
	cooldown    time.Duration
	now         func() time.Time

	mu            sync.Mutex
	cooldownUntil time.Time
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the per-attempt timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithRetryStep sets the linear backoff unit.
func WithRetryStep(d time.Duration) Option {
	return func(c *Client) {
		if d >= 0 {
			c.step = d
		}
	}
}

// WithMaxAttempts sets how many times a request is tried.
func WithMaxAttempts(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxAttempts = n
		}
	}
}

// WithCooldown sets the fail-fast window after exhausted retries.
func WithCooldown(d time.Duration) Option {
	return func(c *Client) { c.cooldown = d }
}

// New creates a client for the analyzer at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		httpClient:  &http.Client{Timeout: DefaultTimeout},
		step:        DefaultRetryStep,
		maxAttempts: DefaultMaxAttempts,
		cooldown:    DefaultCooldown,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Analyze scores the resume in file against jobDescription.
func (c *Client) Analyze(ctx context.Context, jobDescription, fileName string, file io.Reader) (*types.AnalysisResult, error) {
	if remaining := c.cooldownRemaining(); remaining > 0 {
		return nil, &CooldownError{Remaining: remaining}
	}

	body, contentType, err := buildForm(jobDescription, fileName, file)
	if err != nil {
		return nil, err
	}

	log := logger.Ctx(ctx)
	attempt := 0
	var result *types.AnalysisResult

	operation := func() error {
		attempt++
		res, err := c.post(ctx, body, contentType)
		if err == nil {
			result = res
			return nil
		}
		if isRetryable(err) {
			return err
		}
		return backoff.Permanent(err)
	}
	notify := func(err error, wait time.Duration) {
		log.Warn().Err(err).Int("attempt", attempt).Dur("retry_in", wait).Msg("analyze attempt failed, retrying")
	}

	err = backoff.RetryNotify(operation, newBackOff(ctx, c.step, c.maxAttempts), notify)
	if err != nil {
		if isRetryable(err) && ctx.Err() == nil {
			c.startCooldown()
			log.Warn().Err(err).Dur("cooldown", c.cooldown).Msg("analyzer unavailable, cooling down")
		}
		return nil, err
	}
	return result, nil
}

// post makes one attempt.
func (c *Client) post(ctx context.Context, body []byte, contentType string) (*types.AnalysisResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/analyze", bytes.NewReader(body))
	if err != nil {
		return nil, &RequestError{Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &RequestError{Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RequestError{Message: "failed to read response body", Cause: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		statusErr := &StatusError{StatusCode: resp.StatusCode}
		if isRetryable(statusErr) {
			return nil, statusErr
		}
		// surface an error the analyzer reported in its body
		_, extractErr := analysis.Extract(raw)
		var e *analysis.ExtractionError
		if errors.As(extractErr, &e) && e.Kind == analysis.KindBackendError {
			return nil, e
		}
		return nil, statusErr
	}

	return analysis.Extract(raw)
}

func (c *Client) cooldownRemaining() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cooldownUntil.Sub(c.now())
}

func (c *Client) startCooldown() {
	if c.cooldown <= 0 {
		return
	}
	c.mu.Lock()
	c.cooldownUntil = c.now().Add(c.cooldown)
	c.mu.Unlock()
}

// buildForm encodes the multipart body once so retries can resend it.
func buildForm(jobDescription, fileName string, file io.Reader) ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if err := w.WriteField("jobDescription", jobDescription); err != nil {
		return nil, "", &RequestError{Message: "failed to encode job description", Cause: err}
	}
	part, err := w.CreateFormFile("resume", fileName)
	if err != nil {
		return nil, "", &RequestError{Message: "failed to encode resume", Cause: err}
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, "", &RequestError{Message: "failed to read resume", Cause: err}
	}
	if err := w.Close(); err != nil {
		return nil, "", &RequestError{Message: "failed to encode form", Cause: fmt.Errorf("close: %w", err)}
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}
