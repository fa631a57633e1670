package controller

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/finance-tracker/recurring/internal/application/usecase/transaction"
	"github.com/finance-tracker/recurring/internal/domain/entity"
	domainerror "github.com/finance-tracker/recurring/internal/domain/error"
	"github.com/finance-tracker/recurring/internal/integration/entrypoint/dto"
)

// TransactionController handles transaction endpoints.
type TransactionController struct {
	listUseCase    *transaction.ListTransactionsUseCase
	createUseCase  *transaction.CreateTransactionUseCase
	approveUseCase *transaction.ApproveTransactionUseCase
	rejectUseCase  *transaction.RejectTransactionUseCase
	deleteUseCase  *transaction.DeleteTransactionUseCase
}

// NewTransactionController creates a new transaction controller instance.
func NewTransactionController(
	listUseCase *transaction.ListTransactionsUseCase,
	createUseCase *transaction.CreateTransactionUseCase,
	approveUseCase *transaction.ApproveTransactionUseCase,
	rejectUseCase *transaction.RejectTransactionUseCase,
	deleteUseCase *transaction.DeleteTransactionUseCase,
) *TransactionController {
	return &TransactionController{
		listUseCase:    listUseCase,
		createUseCase:  createUseCase,
		approveUseCase: approveUseCase,
		rejectUseCase:  rejectUseCase,
		deleteUseCase:  deleteUseCase,
	}
}

// List handles GET /transactions requests.
// Query: start_date, end_date, category_ids (comma separated), type, status, page, limit.
func (c *TransactionController) List(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	input := transaction.ListTransactionsInput{
		UserID: userID,
	}

	// Parse date filters
	if startDateStr := ctx.Query("start_date"); startDateStr != "" {
		if startDate, err := parseDate(startDateStr); err == nil {
			input.StartDate = &startDate
		}
	}
	if endDateStr := ctx.Query("end_date"); endDateStr != "" {
		if endDate, err := parseDate(endDateStr); err == nil {
			input.EndDate = &endDate
		}
	}

	if categoryIDsStr := ctx.Query("category_ids"); categoryIDsStr != "" {
		for _, idStr := range strings.Split(categoryIDsStr, ",") {
			if id, err := uuid.Parse(strings.TrimSpace(idStr)); err == nil {
				input.CategoryIDs = append(input.CategoryIDs, id)
			}
		}
	}

	if typeStr := ctx.Query("type"); typeStr != "" {
		txnType := entity.TransactionType(typeStr)
		input.Type = &txnType
	}
	if statusStr := ctx.Query("status"); statusStr != "" {
		status := entity.TransactionStatus(strings.ToUpper(statusStr))
		if status != entity.TransactionStatusApproved && status != entity.TransactionStatusPendingApproval {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "status must be APPROVED or PENDING_APPROVAL",
				Code:  string(domainerror.ErrCodeInvalidTransactionStatus),
			})
			return
		}
		input.Status = &status
	}

	if definitionIDStr := ctx.Query("recurring_definition_id"); definitionIDStr != "" {
		definitionID, err := uuid.Parse(definitionIDStr)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid recurring_definition_id format",
			})
			return
		}
		input.RecurringDefinitionID = &definitionID
	}

	// Parse pagination
	if page, err := strconv.Atoi(ctx.Query("page")); err == nil {
		input.Page = page
	}
	if limit, err := strconv.Atoi(ctx.Query("limit")); err == nil {
		input.Limit = limit
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionListResponse(output))
}

// Create handles POST /transactions requests.
func (c *TransactionController) Create(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var req dto.CreateTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeMissingTransactionFields),
		})
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid date format. Use YYYY-MM-DD",
			Code:  string(domainerror.ErrCodeInvalidTransactionDate),
		})
		return
	}

	categoryID, err := parseOptionalUUID(req.CategoryID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid category ID format",
		})
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), transaction.CreateTransactionInput{
		UserID:      userID,
		Date:        date,
		Description: req.Description,
		Amount:      req.Amount,
		Type:        entity.TransactionType(req.Type),
		CategoryID:  categoryID,
		Notes:       req.Notes,
	})
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToTransactionResponse(output.Transaction))
}

// Approve handles POST /transactions/:id/approve requests.
func (c *TransactionController) Approve(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	transactionID, ok := parseIDParam(ctx, "transaction")
	if !ok {
		return
	}

	output, err := c.approveUseCase.Execute(ctx.Request.Context(), transaction.ApproveTransactionInput{
		TransactionID: transactionID,
		UserID:        userID,
	})
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionResponse(output))
}

// Reject handles POST /transactions/:id/reject requests.
func (c *TransactionController) Reject(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	transactionID, ok := parseIDParam(ctx, "transaction")
	if !ok {
		return
	}

	err := c.rejectUseCase.Execute(ctx.Request.Context(), transaction.RejectTransactionInput{
		TransactionID: transactionID,
		UserID:        userID,
	})
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Delete handles DELETE /transactions/:id requests.
func (c *TransactionController) Delete(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	transactionID, ok := parseIDParam(ctx, "transaction")
	if !ok {
		return
	}

	err := c.deleteUseCase.Execute(ctx.Request.Context(), transaction.DeleteTransactionInput{
		TransactionID: transactionID,
		UserID:        userID,
	})
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// handleTransactionError handles transaction errors and returns appropriate HTTP responses.
func (c *TransactionController) handleTransactionError(ctx *gin.Context, err error) {
	var txnErr *domainerror.TransactionError
	if errors.As(err, &txnErr) {
		ctx.JSON(c.getStatusCodeForTransactionError(txnErr.Code), dto.ErrorResponse{
			Error: txnErr.Message,
			Code:  string(txnErr.Code),
		})
		return
	}

	internalError(ctx)
}

// getStatusCodeForTransactionError maps transaction error codes to HTTP status codes.
func (c *TransactionController) getStatusCodeForTransactionError(code domainerror.TransactionErrorCode) int {
	switch code {
	case domainerror.ErrCodeTransactionNotFound,
		domainerror.ErrCodeTxnCategoryNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeNotAuthorizedTransaction,
		domainerror.ErrCodeTxnCategoryNotOwned:
		return http.StatusForbidden
	case domainerror.ErrCodeTransactionNotPending:
		return http.StatusConflict
	case domainerror.ErrCodeInvalidTransactionType,
		domainerror.ErrCodeInvalidTransactionDate,
		domainerror.ErrCodeInvalidTransactionAmount,
		domainerror.ErrCodeInvalidTransactionStatus,
		domainerror.ErrCodeDescriptionTooLong,
		domainerror.ErrCodeNotesTooLong,
		domainerror.ErrCodeMissingTransactionFields:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
