package payload

import "fmt"

// DecodeError represents a failure to turn input into a payload value
type DecodeError struct {
	Message string
	Cause   error
}

func (e *DecodeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("payload decode error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("payload decode error: %s", e.Message)
}

func (e *DecodeError) Unwrap() error {
	return e.Cause
}
