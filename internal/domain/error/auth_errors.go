// Package error defines domain-specific errors for the Finance Tracker application.
package error

import "errors"

// Token validation errors. Tokens are issued elsewhere, so there are no
// login or registration errors here.
var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// AuthErrorCode defines error codes for request authentication failures.
// Format: AUTH-XXYYYY where XX is category and YYYY is specific error.
type AuthErrorCode string

const (
	// ErrCodeRateLimited is returned with 429 by the per-caller rate limiter.
	ErrCodeRateLimited AuthErrorCode = "AUTH-020003"

	ErrCodeInvalidToken AuthErrorCode = "AUTH-030001"
	ErrCodeExpiredToken AuthErrorCode = "AUTH-030002"
	ErrCodeMissingToken AuthErrorCode = "AUTH-030003"
)
