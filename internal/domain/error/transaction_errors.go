// Package error defines domain-specific errors for the FinFlow API.
package error

import "errors"

// Transaction domain errors.
var (
	// ErrTransactionNotFound is returned when a transaction is absent or outside the caller's scope.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrInvalidAmount is returned when the amount is zero or negative.
	ErrInvalidAmount = errors.New("amount must be greater than zero")

	// ErrInvalidTransactionType is returned when the type is neither income nor expense.
	ErrInvalidTransactionType = errors.New("invalid transaction type")

	// ErrTransactionCategoryNotFound is returned when the referenced category does not
	// belong to the transaction's owner.
	ErrTransactionCategoryNotFound = errors.New("category not found for this user")

	// ErrMissingTransactionFields is returned when required transaction fields are missing.
	ErrMissingTransactionFields = errors.New("amount, type, category_id and date are required")
)

// TransactionErrorCode defines error codes for transaction errors.
// Format: TXN-XXYYYY where XX is category and YYYY is specific error.
type TransactionErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidAmount          TransactionErrorCode = "TXN-010001"
	ErrCodeInvalidTransactionType TransactionErrorCode = "TXN-010002"
	ErrCodeMissingTxnFields       TransactionErrorCode = "TXN-010003"

	// Conflict errors (02XXXX)
	ErrCodeTxnCategoryNotFound TransactionErrorCode = "TXN-020001"

	// Lookup errors (03XXXX)
	ErrCodeTransactionNotFound TransactionErrorCode = "TXN-030001"
)

// TransactionError represents a transaction error with code and message.
type TransactionError struct {
	Code    TransactionErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *TransactionError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *TransactionError) Unwrap() error {
	return e.Err
}

// NewTransactionError creates a new TransactionError with the given code and message.
func NewTransactionError(code TransactionErrorCode, message string, err error) *TransactionError {
	return &TransactionError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
