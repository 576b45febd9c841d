package analyzer

import (
	"fmt"
	"math"
	"time"
)

// CooldownError is returned while the client is backing off after the
// analyzer repeatedly failed with transient errors.
type CooldownError struct {
	Remaining time.Duration
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("analyzer is cooling down, try again in %ds", e.Seconds())
}

// Seconds returns the remaining cooldown rounded up to whole seconds.
func (e *CooldownError) Seconds() int {
	return int(math.Ceil(e.Remaining.Seconds()))
}

// StatusError is a non-success HTTP status from the analyzer whose body did
// not explain itself.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("analyzer returned HTTP status %d", e.StatusCode)
}

// RequestError is a failure to build, send or read an analyzer request.
type RequestError struct {
	Message string
	Cause   error
}

func (e *RequestError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("analyzer request failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("analyzer request failed: %s", e.Message)
}

func (e *RequestError) Unwrap() error {
	return e.Cause
}
