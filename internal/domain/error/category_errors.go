// Package error defines domain-specific errors for the Finance Tracker application.
package error

import "errors"

// Category tree errors. Categories are per user and at most one level of
// nesting is created through the API, though stored trees may be deeper.
var (
	ErrCategoryNotFound       = errors.New("category not found")
	ErrParentCategoryNotFound = errors.New("parent category not found")

	// ErrCategoryNameExists is returned when the user already owns a category
	// with the same name, compared case-insensitively.
	ErrCategoryNameExists  = errors.New("category name already exists")
	ErrCategoryNameTooLong = errors.New("category name too long")
	ErrInvalidColorFormat  = errors.New("invalid color format")
	ErrInvalidCategoryType = errors.New("invalid category type")

	ErrNotAuthorizedToModifyCategory = errors.New("not authorized to modify category")

	// ErrCategoryHasChildren blocks deletes that would orphan subcategories
	// and break the trend rollup.
	ErrCategoryHasChildren = errors.New("category has subcategories")
)

// CategoryErrorCode defines error codes for category errors.
// Format: CAT-XXYYYY where XX is category and YYYY is specific error.
type CategoryErrorCode string

// Validation errors (01XXXX)
const (
	ErrCodeCategoryNameTooLong   CategoryErrorCode = "CAT-010001"
	ErrCodeInvalidColorFormat    CategoryErrorCode = "CAT-010002"
	ErrCodeCategoryNotFound      CategoryErrorCode = "CAT-010004"
	ErrCodeCategoryNameExists    CategoryErrorCode = "CAT-010005"
	ErrCodeNotAuthorizedCategory CategoryErrorCode = "CAT-010006"
	ErrCodeInvalidCategoryType   CategoryErrorCode = "CAT-010007"
	ErrCodeMissingCategoryFields CategoryErrorCode = "CAT-010008"
	ErrCodeParentNotFound        CategoryErrorCode = "CAT-010009"
	ErrCodeCategoryHasChildren   CategoryErrorCode = "CAT-010010"
)

// CategoryError carries the API code of a failed category operation.
type CategoryError struct {
	Code    CategoryErrorCode
	Message string
	Err     error
}

func (e *CategoryError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *CategoryError) Unwrap() error { return e.Err }

// NewCategoryError creates a new CategoryError with the given code and message.
func NewCategoryError(code CategoryErrorCode, message string, err error) *CategoryError {
	return &CategoryError{Code: code, Message: message, Err: err}
}
