// Package error defines domain-specific errors for the FinFlow API.
package error

import "errors"

// Category domain errors.
var (
	// ErrCategoryNotFound is returned when a category is absent or outside the caller's scope.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrCategoryNameTaken is returned when the owner already has a category with the same name.
	ErrCategoryNameTaken = errors.New("category name already in use")

	// ErrCategoryInUse is returned when deletion is blocked by referencing transactions.
	ErrCategoryInUse = errors.New("category is referenced by transactions")

	// ErrInvalidCategoryType is returned when the type is neither income nor expense.
	ErrInvalidCategoryType = errors.New("invalid category type")

	// ErrMissingCategoryFields is returned when required category fields are missing.
	ErrMissingCategoryFields = errors.New("name and type are required")
)

// CategoryErrorCode defines error codes for category errors.
// Format: CAT-XXYYYY where XX is category and YYYY is specific error.
type CategoryErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidCategoryType   CategoryErrorCode = "CAT-010001"
	ErrCodeMissingCategoryFields CategoryErrorCode = "CAT-010002"

	// Conflict errors (02XXXX)
	ErrCodeCategoryNameTaken CategoryErrorCode = "CAT-020001"
	ErrCodeCategoryInUse     CategoryErrorCode = "CAT-020002"

	// Lookup errors (03XXXX)
	ErrCodeCategoryNotFound CategoryErrorCode = "CAT-030001"
)

// CategoryError represents a category error with code and message.
type CategoryError struct {
	Code    CategoryErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *CategoryError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *CategoryError) Unwrap() error {
	return e.Err
}

// NewCategoryError creates a new CategoryError with the given code and message.
func NewCategoryError(code CategoryErrorCode, message string, err error) *CategoryError {
	return &CategoryError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
