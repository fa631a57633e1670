// Package dto defines data transfer objects for API requests and responses.
package dto

import "github.com/google/uuid"

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// optionalID renders a nullable id for omitempty fields.
func optionalID(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}
