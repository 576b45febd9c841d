package analyzer

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/jonathan/resume-studio/internal/analysis"
)

// linearBackOff waits attempt × step between attempts.
type linearBackOff struct {
	step    time.Duration
	attempt int
}

func (b *linearBackOff) NextBackOff() time.Duration {
	b.attempt++
	return time.Duration(b.attempt) * b.step
}

func (b *linearBackOff) Reset() {
	b.attempt = 0
}

func newBackOff(ctx context.Context, step time.Duration, maxAttempts int) backoff.BackOff {
	retries := 0
	if maxAttempts > 1 {
		retries = maxAttempts - 1
	}
	return backoff.WithContext(backoff.WithMaxRetries(&linearBackOff{step: step}, uint64(retries)), ctx)
}

// isRetryable reports whether err is transient: gateway errors and timeouts.
// A response the analyzer did send is never retried, whatever it says.
func isRetryable(err error) bool {
	if err == nil || analysis.IsExtractionError(err) {
		return false
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		switch statusErr.StatusCode {
		case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			return true
		}
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "timeout")
}
