// Package error defines domain-specific errors for the Finance Tracker application.
package error

import "errors"

// Trend domain errors.
var (
	// ErrInvalidDateRange is returned when end_date is before start_date.
	ErrInvalidDateRange = errors.New("end_date must be after start_date")

	// ErrInvalidPeriod is returned when the period is not valid.
	ErrInvalidPeriod = errors.New("period must be: daily, weekly, monthly, or yearly")

	// ErrInvalidDateFormat is returned when date format is invalid.
	ErrInvalidDateFormat = errors.New("invalid date format, expected YYYY-MM-DD")
)

// TrendErrorCode defines error codes for trend errors.
// Format: TRD-XXYYYY where XX is category and YYYY is specific error.
type TrendErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidDateRange     TrendErrorCode = "TRD-010001"
	ErrCodeInvalidPeriod        TrendErrorCode = "TRD-010002"
	ErrCodeInvalidDateFormat    TrendErrorCode = "TRD-010003"
	ErrCodeInvalidTrendType     TrendErrorCode = "TRD-010004"
	ErrCodeInvalidTrendCategory TrendErrorCode = "TRD-010005"

	// Internal errors (99XXXX)
	ErrCodeTrendInternalError TrendErrorCode = "TRD-990001"
)

// TrendError represents a trend error with code and message.
type TrendError struct {
	Code    TrendErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *TrendError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *TrendError) Unwrap() error {
	return e.Err
}

// NewTrendError creates a new TrendError with the given code and message.
func NewTrendError(code TrendErrorCode, message string, err error) *TrendError {
	return &TrendError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
