package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/resume-studio/internal/analysis"
	"github.com/jonathan/resume-studio/internal/analyzer"
	"github.com/jonathan/resume-studio/internal/backend"
	"github.com/jonathan/resume-studio/internal/studio"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr *ErrValidation
		inputErr      *studio.InputError
		cooldownErr   *analyzer.CooldownError
		extractionErr *analysis.ExtractionError
		creditErr     *studio.CreditError
		apiErr        *backend.APIError
		statusErr     *analyzer.StatusError
		analyzerErr   *analyzer.RequestError
		backendErr    *backend.RequestError
	)

	switch {
	case errors.As(err, &validationErr), errors.As(err, &inputErr):
		return http.StatusBadRequest
	case errors.As(err, &cooldownErr), errors.Is(err, studio.ErrNoAnalyzer):
		return http.StatusServiceUnavailable
	case errors.As(err, &extractionErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &apiErr):
		switch apiErr.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound:
			return apiErr.StatusCode
		}
		// a refused deduction arrives as a 200 envelope with success=false
		if errors.As(err, &creditErr) && apiErr.StatusCode < http.StatusBadRequest {
			return http.StatusPaymentRequired
		}
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.As(err, &statusErr), errors.As(err, &analyzerErr), errors.As(err, &backendErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// RetryAfter returns the number of seconds a client should wait before
// retrying, for errors that carry one.
func RetryAfter(err error) (int, bool) {
	var cooldownErr *analyzer.CooldownError
	if errors.As(err, &cooldownErr) {
		return cooldownErr.Seconds(), true
	}
	return 0, false
}

// ErrorKind returns the extraction failure kind, or "".
func ErrorKind(err error) string {
	var extractionErr *analysis.ExtractionError
	if errors.As(err, &extractionErr) {
		return string(extractionErr.Kind)
	}
	return ""
}

// PublicMessage is the error text shown to API callers. Unclassified
// failures are not echoed back.
func PublicMessage(err error) string {
	if HTTPStatus(err) == http.StatusInternalServerError {
		return "Internal server error"
	}
	return err.Error()
}
