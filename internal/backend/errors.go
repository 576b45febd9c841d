package backend

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is a non-success answer from the resume service.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("resume service returned %d: %s", e.StatusCode, e.Message)
}

// RequestError is a failure to reach the resume service or read its answer.
type RequestError struct {
	Op    string
	Cause error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("resume service %s failed: %v", e.Op, e.Cause)
}

func (e *RequestError) Unwrap() error {
	return e.Cause
}

// IsNotFound reports whether err is an APIError carrying 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}
