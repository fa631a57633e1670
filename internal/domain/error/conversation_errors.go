// Package error defines domain-specific errors for the Finance Tracker application.
package error

import "errors"

// Conversation domain errors.
var (
	// ErrSessionNotFound is returned by session stores when no live session exists for a chat.
	ErrSessionNotFound = errors.New("conversation session not found")

	// ErrMissingChatID is returned when a message arrives without a chat identifier.
	ErrMissingChatID = errors.New("chat_id is required")
)

// ConversationErrorCode defines error codes for conversation errors.
// Format: CNV-XXYYYY where XX is category and YYYY is specific error.
type ConversationErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeMissingChatID ConversationErrorCode = "CNV-010001"
	ErrCodeEmptyMessage  ConversationErrorCode = "CNV-010002"

	// Internal errors (99XXXX)
	ErrCodeSessionStoreFailure ConversationErrorCode = "CNV-990001"
)

// ConversationError represents a conversation error with code and message.
type ConversationError struct {
	Code    ConversationErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ConversationError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ConversationError) Unwrap() error {
	return e.Err
}

// NewConversationError creates a new ConversationError with the given code and message.
func NewConversationError(code ConversationErrorCode, message string, err error) *ConversationError {
	return &ConversationError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
