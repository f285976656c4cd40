// Package error defines domain-specific errors for the FinFlow API.
package error

import "errors"

// Goal domain errors.
var (
	// ErrGoalNotFound is returned when a goal is absent or outside the caller's scope.
	ErrGoalNotFound = errors.New("goal not found")

	// ErrGoalNameTaken is returned when the owner already has a goal with the same name.
	ErrGoalNameTaken = errors.New("goal name already in use")

	// ErrInvalidTargetAmount is returned when the target amount is zero or negative.
	ErrInvalidTargetAmount = errors.New("target amount must be greater than zero")

	// ErrInvalidProgressAmount is returned when a progress amount is zero or negative.
	ErrInvalidProgressAmount = errors.New("progress amount must be greater than zero")

	// ErrGoalAlreadyCompleted is returned when progress is added to a completed goal.
	ErrGoalAlreadyCompleted = errors.New("goal is already completed")

	// ErrGoalCategoryNotFound is returned when the linked category does not belong to the goal's owner.
	ErrGoalCategoryNotFound = errors.New("category not found for this user")

	// ErrMissingGoalFields is returned when required goal fields are missing.
	ErrMissingGoalFields = errors.New("name and target_amount are required")

	// ErrInvalidTargetDate is returned when the target date is not in the future.
	ErrInvalidTargetDate = errors.New("target date must be in the future")

	// ErrInvalidCurrentAmount is returned when the starting amount is negative
	// or exceeds the target.
	ErrInvalidCurrentAmount = errors.New("current amount must be between zero and the target amount")
)

// GoalErrorCode defines error codes for goal errors.
// Format: GOL-XXYYYY where XX is category and YYYY is specific error.
type GoalErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidTargetAmount   GoalErrorCode = "GOL-010001"
	ErrCodeInvalidProgressAmount GoalErrorCode = "GOL-010002"
	ErrCodeGoalAlreadyCompleted  GoalErrorCode = "GOL-010003"
	ErrCodeMissingGoalFields     GoalErrorCode = "GOL-010004"
	ErrCodeInvalidTargetDate     GoalErrorCode = "GOL-010005"
	ErrCodeInvalidCurrentAmount  GoalErrorCode = "GOL-010006"

	// Conflict errors (02XXXX)
	ErrCodeGoalNameTaken         GoalErrorCode = "GOL-020001"
	ErrCodeGoalCategoryNotFound  GoalErrorCode = "GOL-020002"

	// Lookup errors (03XXXX)
	ErrCodeGoalNotFound GoalErrorCode = "GOL-030001"
)

// GoalError represents a goal error with code and message.
type GoalError struct {
	Code    GoalErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *GoalError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *GoalError) Unwrap() error {
	return e.Err
}

// NewGoalError creates a new GoalError with the given code and message.
func NewGoalError(code GoalErrorCode, message string, err error) *GoalError {
	return &GoalError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
