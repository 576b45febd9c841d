package analysis

import "errors"

// Kind classifies why an analyzer response could not be used.
type Kind string

const (
	// KindBackendError means the response body itself reported an error.
	KindBackendError Kind = "backend_error"
	// KindUnrecognized means no score, keywords or summary could be found.
	KindUnrecognized Kind = "unrecognized"
)

// GenericFailureMessage is reported when an unusable response carries no
// message of its own.
const GenericFailureMessage = "Unexpected response format from analyzer."

// ExtractionError is returned when no usable analysis could be recovered.
// Message is meant to be shown to the user as-is.
type ExtractionError struct {
	Kind    Kind
	Message string
}

func (e *ExtractionError) Error() string {
	return e.Message
}

// IsExtractionError reports whether err is, or wraps, an *ExtractionError.
func IsExtractionError(err error) bool {
	var target *ExtractionError
	return errors.As(err, &target)
}
