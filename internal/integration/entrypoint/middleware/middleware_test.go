package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/finance-tracker/recurring/internal/application/adapter"
	domainerror "github.com/finance-tracker/recurring/internal/domain/error"
	"github.com/finance-tracker/recurring/internal/integration/entrypoint/dto"
)

type stubTokenService struct {
	adapter.TokenService
	userID uuid.UUID
	err    error
}

func (s stubTokenService) ValidateAccessToken(_ context.Context, token string) (*adapter.TokenClaims, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &adapter.TokenClaims{UserID: s.userID}, nil
}

func init() {
	gin.SetMode(gin.TestMode)
}

func TestAuthenticate(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name     string
		header   string
		err      error
		wantCode int
		wantErr  string
	}{
		{name: "missing header", wantCode: http.StatusUnauthorized, wantErr: string(domainerror.ErrCodeMissingToken)},
		{name: "not bearer", header: "Basic abc", wantCode: http.StatusUnauthorized, wantErr: string(domainerror.ErrCodeInvalidToken)},
		{name: "expired", header: "Bearer abc", err: domainerror.ErrExpiredToken, wantCode: http.StatusUnauthorized, wantErr: string(domainerror.ErrCodeExpiredToken)},
		{name: "invalid", header: "Bearer abc", err: domainerror.ErrInvalidToken, wantCode: http.StatusUnauthorized, wantErr: string(domainerror.ErrCodeInvalidToken)},
		{name: "valid", header: "Bearer abc", wantCode: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.Use(NewAuthMiddleware(stubTokenService{userID: userID, err: tt.err}).Authenticate())
			r.GET("/me", func(c *gin.Context) {
				id, _ := GetUserIDFromContext(c)
				c.String(http.StatusOK, id.String())
			})

			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantCode)
			}
			if tt.wantErr != "" {
				var body dto.ErrorResponse
				if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
					t.Fatalf("decode: %v", err)
				}
				if body.Code != tt.wantErr {
					t.Errorf("code = %s, want %s", body.Code, tt.wantErr)
				}
				return
			}
			if w.Body.String() != userID.String() {
				t.Errorf("user id not propagated: %s", w.Body.String())
			}
		})
	}
}

func TestRequireCronSecret(t *testing.T) {
	tests := []struct {
		name     string
		secret   string
		header   string
		wantCode int
	}{
		{name: "disabled", wantCode: http.StatusNoContent},
		{name: "match", secret: "s3cret", header: "s3cret", wantCode: http.StatusNoContent},
		{name: "mismatch", secret: "s3cret", header: "guess", wantCode: http.StatusUnauthorized},
		{name: "missing", secret: "s3cret", wantCode: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.POST("/run", RequireCronSecret(tt.secret), func(c *gin.Context) { c.Status(http.StatusNoContent) })

			req := httptest.NewRequest(http.MethodPost, "/run", nil)
			if tt.header != "" {
				req.Header.Set(CronSecretHeader, tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", w.Code, tt.wantCode)
			}
		})
	}
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiterWithConfig(2, time.Minute)
	r := gin.New()
	r.Use(rl.Middleware())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 3)
	for i := range codes {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		codes[i] = w.Code
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Errorf("unexpected status sequence %v", codes)
	}

	for _, entry := range rl.entries {
		entry.resetTime = time.Now().Add(-time.Second)
	}
	rl.Cleanup()
	if len(rl.entries) != 0 {
		t.Errorf("expected expired entries to be removed, got %d", len(rl.entries))
	}
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header    string
		wantToken string
		wantCode  domainerror.AuthErrorCode
	}{
		{header: "", wantCode: domainerror.ErrCodeMissingToken},
		{header: "Basic abc", wantCode: domainerror.ErrCodeInvalidToken},
		{header: "Bearer    ", wantCode: domainerror.ErrCodeMissingToken},
		{header: "Bearer abc.def", wantToken: "abc.def"},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			token, code, _ := bearerToken(tt.header)
			if token != tt.wantToken || code != tt.wantCode {
				t.Errorf("bearerToken(%q) = %q, %q; want %q, %q", tt.header, token, code, tt.wantToken, tt.wantCode)
			}
		})
	}
}
