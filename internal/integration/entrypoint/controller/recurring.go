package controller

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/recurring/internal/application/adapter"
	"github.com/finance-tracker/recurring/internal/application/usecase/recurring"
	"github.com/finance-tracker/recurring/internal/domain/entity"
	domainerror "github.com/finance-tracker/recurring/internal/domain/error"
	"github.com/finance-tracker/recurring/internal/integration/entrypoint/dto"
)

// RecurringController handles recurring transaction endpoints.
type RecurringController struct {
	listUseCase       *recurring.ListDefinitionsUseCase
	getUseCase        *recurring.GetDefinitionUseCase
	createUseCase     *recurring.CreateDefinitionUseCase
	updateUseCase     *recurring.UpdateDefinitionUseCase
	deleteUseCase     *recurring.DeleteDefinitionUseCase
	processDueUseCase *recurring.ProcessDueUseCase
	clock             adapter.Clock
}

// NewRecurringController creates a new recurring controller instance.
func NewRecurringController(
	listUseCase *recurring.ListDefinitionsUseCase,
	getUseCase *recurring.GetDefinitionUseCase,
	createUseCase *recurring.CreateDefinitionUseCase,
	updateUseCase *recurring.UpdateDefinitionUseCase,
	deleteUseCase *recurring.DeleteDefinitionUseCase,
	processDueUseCase *recurring.ProcessDueUseCase,
	clock adapter.Clock,
) *RecurringController {
	return &RecurringController{
		listUseCase:       listUseCase,
		getUseCase:        getUseCase,
		createUseCase:     createUseCase,
		updateUseCase:     updateUseCase,
		deleteUseCase:     deleteUseCase,
		processDueUseCase: processDueUseCase,
		clock:             clock,
	}
}

// List handles GET /recurring-transactions requests.
func (c *RecurringController) List(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), recurring.ListDefinitionsInput{UserID: userID})
	if err != nil {
		c.handleRecurringError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToRecurringListResponse(output))
}

// Get handles GET /recurring-transactions/:id requests.
func (c *RecurringController) Get(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "recurring transaction")
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), recurring.GetDefinitionInput{ID: id, UserID: userID})
	if err != nil {
		c.handleRecurringError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToRecurringResponse(output))
}

// Create handles POST /recurring-transactions requests.
func (c *RecurringController) Create(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var req dto.CreateRecurringRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeRecurringDescription),
		})
		return
	}

	categoryID, err := parseOptionalUUID(req.CategoryID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid category ID format",
			Code:  string(domainerror.ErrCodeRecurringCategory),
		})
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), recurring.CreateDefinitionInput{
		UserID:      userID,
		Description: req.Description,
		Amount:      req.Amount,
		Type:        entity.TransactionType(req.Type),
		CategoryID:  categoryID,
		Cadence:     req.Cadence,
		Interval:    req.Interval,
		DayOfWeek:   req.DayOfWeek,
		DayOfMonth:  req.DayOfMonth,
		MonthOfYear: req.MonthOfYear,
	})
	if err != nil {
		c.handleRecurringError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToRecurringResponse(output.Definition))
}

// Update handles PATCH /recurring-transactions/:id requests.
func (c *RecurringController) Update(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "recurring transaction")
	if !ok {
		return
	}

	var req dto.UpdateRecurringRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
		})
		return
	}

	categoryID, err := parseOptionalUUID(req.CategoryID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid category ID format",
			Code:  string(domainerror.ErrCodeRecurringCategory),
		})
		return
	}

	input := recurring.UpdateDefinitionInput{
		ID:              id,
		UserID:          userID,
		Description:     req.Description,
		Amount:          req.Amount,
		CategoryID:      categoryID,
		ClearCategory:   req.ClearCategory,
		Cadence:         req.Cadence,
		Interval:        req.Interval,
		DayOfWeek:       req.DayOfWeek,
		ClearDayOfWeek:  req.ClearDayOfWeek,
		DayOfMonth:      req.DayOfMonth,
		ClearDayOfMonth: req.ClearDayOfMonth,
		MonthOfYear:     req.MonthOfYear,
	}
	if req.Type != nil {
		txnType := entity.TransactionType(*req.Type)
		input.Type = &txnType
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleRecurringError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToRecurringResponse(output.Definition))
}

// Delete handles DELETE /recurring-transactions/:id requests.
func (c *RecurringController) Delete(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	id, ok := parseIDParam(ctx, "recurring transaction")
	if !ok {
		return
	}

	if err := c.deleteUseCase.Execute(ctx.Request.Context(), recurring.DeleteDefinitionInput{ID: id, UserID: userID}); err != nil {
		c.handleRecurringError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// ProcessDue handles POST /recurring-transactions/process-due requests from external schedulers.
// The body is optional; without a date the run evaluates at the current time.
func (c *RecurringController) ProcessDue(ctx *gin.Context) {
	var req dto.ProcessDueRequest
	if err := ctx.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
		})
		return
	}

	evaluationDate := c.clock.Now()
	if req.Date != "" {
		date, err := parseDate(req.Date)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid date format. Use YYYY-MM-DD",
				Code:  string(domainerror.ErrCodeInvalidEvaluationDate),
			})
			return
		}
		evaluationDate = date
	}

	output, err := c.processDueUseCase.Execute(ctx.Request.Context(), recurring.ProcessDueInput{EvaluationDate: evaluationDate})
	if err != nil {
		slog.Error("Recurring run triggered over HTTP failed", "error", err)
		internalError(ctx)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToProcessDueResponse(output))
}

// handleRecurringError handles recurring errors and returns appropriate HTTP responses.
func (c *RecurringController) handleRecurringError(ctx *gin.Context, err error) {
	var recErr *domainerror.RecurringError
	if errors.As(err, &recErr) {
		ctx.JSON(c.getStatusCodeForRecurringError(recErr.Code), dto.ErrorResponse{
			Error: recErr.Message,
			Code:  string(recErr.Code),
		})
		return
	}

	internalError(ctx)
}

// getStatusCodeForRecurringError maps recurring error codes to HTTP status codes.
func (c *RecurringController) getStatusCodeForRecurringError(code domainerror.RecurringErrorCode) int {
	switch code {
	case domainerror.ErrCodeRecurringNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeNotAuthorizedRecurring:
		return http.StatusForbidden
	case domainerror.ErrCodeInvalidCronSecret:
		return http.StatusUnauthorized
	case domainerror.ErrCodeInvalidCadence,
		domainerror.ErrCodeInvalidInterval,
		domainerror.ErrCodeInvalidDayOfWeek,
		domainerror.ErrCodeInvalidDayOfMonth,
		domainerror.ErrCodeInvalidMonthOfYear,
		domainerror.ErrCodeInvalidRecurringAmount,
		domainerror.ErrCodeInvalidRecurringType,
		domainerror.ErrCodeRecurringDescription,
		domainerror.ErrCodeRecurringCategory,
		domainerror.ErrCodeInvalidEvaluationDate:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
