package studio

import "fmt"

// InputError is a caller mistake: a missing description, an empty file,
// an unknown id.
type InputError struct {
	Field   string
	Message string
	Cause   error
}

func (e *InputError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid %s: %s: %v", e.Field, e.Message, e.Cause)
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func (e *InputError) Unwrap() error {
	return e.Cause
}

// CreditError means the work was done but the credit could not be charged,
// so the result is withheld.
type CreditError struct {
	ServiceType string
	Cause       error
}

func (e *CreditError) Error() string {
	return fmt.Sprintf("failed to deduct credit for %s: %v", e.ServiceType, e.Cause)
}

func (e *CreditError) Unwrap() error {
	return e.Cause
}
