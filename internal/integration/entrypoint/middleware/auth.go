// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/finance-tracker/recurring/internal/application/adapter"
	domainerror "github.com/finance-tracker/recurring/internal/domain/error"
	"github.com/finance-tracker/recurring/internal/integration/entrypoint/dto"
)

// ContextKey is a type for context keys.
type ContextKey string

// UserIDKey holds the uuid.UUID of the authenticated caller.
const UserIDKey ContextKey = "user_id"

const bearerPrefix = "Bearer "

// AuthMiddleware guards the user-facing routes with the access token issued by the identity service.
type AuthMiddleware struct {
	tokenService adapter.TokenService
}

func NewAuthMiddleware(tokenService adapter.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenService: tokenService}
}

// Authenticate rejects the request with 401 unless it carries a valid bearer token.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, code, message := bearerToken(c.GetHeader("Authorization"))
		if code != "" {
			abortUnauthorized(c, message, code)
			return
		}

		claims, err := m.tokenService.ValidateAccessToken(c.Request.Context(), token)
		switch {
		case errors.Is(err, domainerror.ErrExpiredToken):
			abortUnauthorized(c, "Token has expired", domainerror.ErrCodeExpiredToken)
			return
		case err != nil:
			abortUnauthorized(c, "Invalid or expired token", domainerror.ErrCodeInvalidToken)
			return
		}

		c.Set(string(UserIDKey), claims.UserID)
		c.Next()
	}
}

// bearerToken extracts the token from an Authorization header value.
// A non-empty code means the header is unusable.
func bearerToken(header string) (string, domainerror.AuthErrorCode, string) {
	if header == "" {
		return "", domainerror.ErrCodeMissingToken, "Authorization header is required"
	}
	token, found := strings.CutPrefix(header, bearerPrefix)
	if !found {
		return "", domainerror.ErrCodeInvalidToken, "Invalid authorization header format"
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", domainerror.ErrCodeMissingToken, "Token is required"
	}
	return token, "", ""
}

func abortUnauthorized(c *gin.Context, message string, code domainerror.AuthErrorCode) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
		Error: message,
		Code:  string(code),
	})
}

// GetUserIDFromContext returns the caller set by Authenticate.
func GetUserIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(string(UserIDKey))
	if !exists {
		return uuid.Nil, false
	}
	id, ok := value.(uuid.UUID)
	return id, ok
}
