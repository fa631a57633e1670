// Package error defines domain-specific errors for the Finance Tracker application.
package error

import "errors"

// Recurring definition domain errors.
var (
	// ErrRecurringDefinitionNotFound is returned when a recurring definition is not found.
	ErrRecurringDefinitionNotFound = errors.New("recurring definition not found")

	// ErrInvalidCadence is returned when the cadence kind is not one of the supported values.
	ErrInvalidCadence = errors.New("invalid cadence")

	// ErrInvalidInterval is returned when the interval is not a positive integer.
	ErrInvalidInterval = errors.New("interval must be a positive integer")

	// ErrInvalidDayOfWeek is returned when the day of week is outside 0-6.
	ErrInvalidDayOfWeek = errors.New("day of week must be between 0 and 6")

	// ErrInvalidDayOfMonth is returned when the day of month is outside 1-31.
	ErrInvalidDayOfMonth = errors.New("day of month must be between 1 and 31")

	// ErrInvalidMonthOfYear is returned when the month of year is outside 1-12.
	ErrInvalidMonthOfYear = errors.New("month of year must be between 1 and 12")

	// ErrNotAuthorizedToModifyRecurring is returned when the definition belongs to another user.
	ErrNotAuthorizedToModifyRecurring = errors.New("not authorized to modify recurring definition")

	// ErrOccurrenceAlreadyExists is returned by stores when an occurrence key is already taken.
	ErrOccurrenceAlreadyExists = errors.New("occurrence already exists")
)

// RecurringErrorCode defines error codes for recurring definition errors.
// Format: REC-XXYYYY where XX is category and YYYY is specific error.
type RecurringErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidCadence         RecurringErrorCode = "REC-010001"
	ErrCodeInvalidInterval        RecurringErrorCode = "REC-010002"
	ErrCodeInvalidDayOfWeek       RecurringErrorCode = "REC-010003"
	ErrCodeInvalidDayOfMonth      RecurringErrorCode = "REC-010004"
	ErrCodeInvalidMonthOfYear     RecurringErrorCode = "REC-010005"
	ErrCodeInvalidRecurringAmount RecurringErrorCode = "REC-010006"
	ErrCodeInvalidRecurringType   RecurringErrorCode = "REC-010007"
	ErrCodeRecurringDescription   RecurringErrorCode = "REC-010008"
	ErrCodeRecurringCategory      RecurringErrorCode = "REC-010009"
	ErrCodeInvalidEvaluationDate  RecurringErrorCode = "REC-010010"

	// Lookup/ownership errors (02XXXX)
	ErrCodeRecurringNotFound      RecurringErrorCode = "REC-020001"
	ErrCodeNotAuthorizedRecurring RecurringErrorCode = "REC-020002"

	// Trigger errors (03XXXX)
	ErrCodeInvalidCronSecret RecurringErrorCode = "REC-030001"
)

// RecurringError represents a recurring definition error with code and message.
type RecurringError struct {
	Code    RecurringErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *RecurringError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *RecurringError) Unwrap() error {
	return e.Err
}

// NewRecurringError creates a new RecurringError with the given code and message.
func NewRecurringError(code RecurringErrorCode, message string, err error) *RecurringError {
	return &RecurringError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
