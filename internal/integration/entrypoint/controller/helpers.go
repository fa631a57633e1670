// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainerror "github.com/finance-tracker/recurring/internal/domain/error"
	"github.com/finance-tracker/recurring/internal/integration/entrypoint/dto"
	"github.com/finance-tracker/recurring/internal/integration/entrypoint/middleware"
)

// requireUserID returns the authenticated user, writing a 401 when there is none.
func requireUserID(ctx *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
	}
	return userID, ok
}

// parseIDParam parses the :id path parameter, writing a 400 when it is not a UUID.
func parseIDParam(ctx *gin.Context, resource string) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid " + resource + " ID format",
		})
		return uuid.Nil, false
	}
	return id, true
}

// parseOptionalUUID parses s, returning nil for an empty string.
func parseOptionalUUID(s *string) (*uuid.UUID, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func parseDate(s string) (time.Time, error) {
	return time.Parse(dto.DateLayout, s)
}

func internalError(ctx *gin.Context) {
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}
