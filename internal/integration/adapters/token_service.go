// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/finance-tracker/recurring/internal/application/adapter"
	domainerror "github.com/finance-tracker/recurring/internal/domain/error"
)

const (
	defaultAccessTokenDuration = 15 * time.Minute

	tokenIssuer     = "finance-tracker"
	tokenTypeAccess = "access"
)

// CustomClaims represents the custom claims for JWT tokens.
type CustomClaims struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// tokenService implements the adapter.TokenService interface.
type tokenService struct {
	secret   []byte
	duration time.Duration
}

// NewTokenService creates a new token service instance.
func NewTokenService(secret string, duration time.Duration) adapter.TokenService {
	if duration <= 0 {
		duration = defaultAccessTokenDuration
	}
	return &tokenService{
		secret:   []byte(secret),
		duration: duration,
	}
}

// GenerateAccessToken signs an access token for the given user.
func (s *tokenService) GenerateAccessToken(_ context.Context, userID uuid.UUID, email string) (string, error) {
	now := time.Now().UTC()
	claims := CustomClaims{
		UserID:    userID.String(),
		Email:     email,
		TokenType: tokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.duration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
			Subject:   userID.String(),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to generate access token: %w", err)
	}
	return token, nil
}

// ValidateAccessToken validates an access token and returns its claims.
func (s *tokenService) ValidateAccessToken(_ context.Context, token string) (*adapter.TokenClaims, error) {
	claims, err := s.parseJWT(token)
	if err != nil {
		return nil, err
	}

	if claims.TokenType != tokenTypeAccess {
		return nil, fmt.Errorf("%w: expected access token", domainerror.ErrInvalidToken)
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user ID: %v", domainerror.ErrInvalidToken, err)
	}

	return &adapter.TokenClaims{
		UserID:    userID,
		Email:     claims.Email,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// parseJWT parses and validates a JWT token.
func (s *tokenService) parseJWT(tokenString string) (*CustomClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &CustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithIssuer(tokenIssuer))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domainerror.ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", domainerror.ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, domainerror.ErrInvalidToken
	}

	return claims, nil
}
