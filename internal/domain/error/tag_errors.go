// Package error defines domain-specific errors for the FinFlow API.
package error

import "errors"

// Tag domain errors.
var (
	// ErrTagNotFound is returned when a tag is absent or outside the caller's scope.
	ErrTagNotFound = errors.New("tag not found")

	// ErrTagNameTaken is returned when the owner already has a tag with the same name.
	ErrTagNameTaken = errors.New("tag name already in use")

	// ErrTagInUse is returned when deletion is blocked by referencing transactions.
	ErrTagInUse = errors.New("tag is referenced by transactions")

	// ErrMissingTagFields is returned when required tag fields are missing.
	ErrMissingTagFields = errors.New("name is required")
)

// TagErrorCode defines error codes for tag errors.
// Format: TAG-XXYYYY where XX is category and YYYY is specific error.
type TagErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeMissingTagFields TagErrorCode = "TAG-010001"

	// Conflict errors (02XXXX)
	ErrCodeTagNameTaken TagErrorCode = "TAG-020001"
	ErrCodeTagInUse     TagErrorCode = "TAG-020002"

	// Lookup errors (03XXXX)
	ErrCodeTagNotFound TagErrorCode = "TAG-030001"
)

// TagError represents a tag error with code and message.
type TagError struct {
	Code    TagErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *TagError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *TagError) Unwrap() error {
	return e.Err
}

// NewTagError creates a new TagError with the given code and message.
func NewTagError(code TagErrorCode, message string, err error) *TagError {
	return &TagError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
