package domain

import "errors"

// Domain errors
var (
	ErrInvalidPhoneNumber = errors.New("invalid phone number")
	ErrRenderFailed       = errors.New("failed to generate bill PDF, please try again")
	ErrEmptyBill          = errors.New("bill content is empty")
	ErrExportNotFound     = errors.New("export not found")
)

// ValidationError represents a validation error with field and message information.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return e.Field + ": " + e.Message
	}
	return e.Message
}
