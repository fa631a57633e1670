// Package error defines domain-specific errors for the Finance Tracker application.
package error

import "errors"

// Transaction errors. Occurrences materialized by the scheduler share these
// with manually entered transactions.
var (
	ErrTransactionNotFound              = errors.New("transaction not found")
	ErrNotAuthorizedToModifyTransaction = errors.New("not authorized to modify transaction")

	ErrInvalidTransactionType   = errors.New("invalid transaction type")
	ErrInvalidTransactionDate   = errors.New("invalid transaction date")
	ErrInvalidTransactionAmount = errors.New("invalid transaction amount")
	ErrDescriptionTooLong       = errors.New("description too long")
	ErrNotesTooLong             = errors.New("notes too long")

	ErrCategoryNotFoundForTransaction = errors.New("category not found")
	ErrCategoryNotOwnedByUser         = errors.New("category does not belong to user")

	// ErrTransactionNotPending is returned by approve and reject once the
	// occurrence has already been reviewed.
	ErrTransactionNotPending = errors.New("transaction is not pending approval")
)

// TransactionErrorCode defines error codes for transaction errors.
// Format: TXN-XXYYYY where XX is category and YYYY is specific error.
type TransactionErrorCode string

// Validation errors (01XXXX)
const (
	ErrCodeInvalidTransactionType   TransactionErrorCode = "TXN-010001"
	ErrCodeInvalidTransactionDate   TransactionErrorCode = "TXN-010002"
	ErrCodeInvalidTransactionAmount TransactionErrorCode = "TXN-010003"
	ErrCodeTransactionNotFound      TransactionErrorCode = "TXN-010004"
	ErrCodeNotAuthorizedTransaction TransactionErrorCode = "TXN-010005"
	ErrCodeTxnCategoryNotFound      TransactionErrorCode = "TXN-010006"
	ErrCodeTxnCategoryNotOwned      TransactionErrorCode = "TXN-010007"
	ErrCodeDescriptionTooLong       TransactionErrorCode = "TXN-010008"
	ErrCodeNotesTooLong             TransactionErrorCode = "TXN-010009"
	ErrCodeMissingTransactionFields TransactionErrorCode = "TXN-010010"
	ErrCodeInvalidTransactionStatus TransactionErrorCode = "TXN-010011"
)

// State errors (02XXXX)
const (
	ErrCodeTransactionNotPending TransactionErrorCode = "TXN-020001"
)

// TransactionError carries the API code of a failed transaction operation.
type TransactionError struct {
	Code    TransactionErrorCode
	Message string
	Err     error
}

func (e *TransactionError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *TransactionError) Unwrap() error { return e.Err }

// NewTransactionError creates a new TransactionError with the given code and message.
func NewTransactionError(code TransactionErrorCode, message string, err error) *TransactionError {
	return &TransactionError{Code: code, Message: message, Err: err}
}
