package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TokenClaims is what the API trusts about the caller after validation.
type TokenClaims struct {
	UserID    uuid.UUID
	Email     string
	ExpiresAt time.Time
}

// TokenService validates the HS256 access tokens shared with the identity service.
// GenerateAccessToken exists for local tooling and the integration suite.
type TokenService interface {
	GenerateAccessToken(ctx context.Context, userID uuid.UUID, email string) (string, error)
	ValidateAccessToken(ctx context.Context, token string) (*TokenClaims, error)
}
