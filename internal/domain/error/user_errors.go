// Package error defines domain-specific errors for the FinFlow API.
package error

import "errors"

// User domain errors.
var (
	// ErrUserNotFound is returned when a user is absent or outside the caller's scope.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidRole is returned when a role value is not one of regular, admin, viewer.
	ErrInvalidRole = errors.New("invalid role")

	// ErrReadOnlyRole is returned when a viewer attempts a mutating operation.
	ErrReadOnlyRole = errors.New("viewer accounts are read-only")

	// ErrDelegateNotFound is returned when a viewer's delegate target does not exist.
	ErrDelegateNotFound = errors.New("delegate user not found")

	// ErrDelegateNotAllowed is returned when delegation targets a viewer account.
	ErrDelegateNotAllowed = errors.New("cannot delegate to a viewer account")

	// ErrDelegateRequired is returned when a viewer is created without a delegate target.
	ErrDelegateRequired = errors.New("viewer accounts require a delegate user")

	// ErrUserHasDependents is returned when deletion is blocked by owned records.
	ErrUserHasDependents = errors.New("user still owns transactions, categories or goals")

	// ErrForbiddenUserWrite is returned when the caller may see the target user but not modify it.
	ErrForbiddenUserWrite = errors.New("not allowed to modify this user")
)

// UserErrorCode defines error codes for user errors.
// Format: USR-XXYYYY where XX is category and YYYY is specific error.
type UserErrorCode string

const (
	// Lookup errors (01XXXX)
	ErrCodeUserNotFound UserErrorCode = "USR-010001"

	// Mutation errors (02XXXX)
	ErrCodeInvalidRole       UserErrorCode = "USR-020001"
	ErrCodeReadOnlyRole      UserErrorCode = "USR-020002"
	ErrCodeDelegateNotFound  UserErrorCode = "USR-020003"
	ErrCodeDelegateViewer    UserErrorCode = "USR-020004"
	ErrCodeDelegateRequired  UserErrorCode = "USR-020005"
	ErrCodeUserHasDependents UserErrorCode = "USR-020006"
	ErrCodeForbiddenWrite    UserErrorCode = "USR-020007"
)

// UserError represents a user error with code and message.
type UserError struct {
	Code    UserErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *UserError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new UserError with the given code and message.
func NewUserError(code UserErrorCode, message string, err error) *UserError {
	return &UserError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
