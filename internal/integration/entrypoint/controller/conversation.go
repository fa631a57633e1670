package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/recurring/internal/application/usecase/conversation"
	domainerror "github.com/finance-tracker/recurring/internal/domain/error"
	"github.com/finance-tracker/recurring/internal/integration/entrypoint/dto"
)

// ConversationController handles chat messages forwarded by the chat transport.
type ConversationController struct {
	handleMessageUseCase *conversation.HandleMessageUseCase
}

// NewConversationController creates a new conversation controller instance.
func NewConversationController(handleMessageUseCase *conversation.HandleMessageUseCase) *ConversationController {
	return &ConversationController{
		handleMessageUseCase: handleMessageUseCase,
	}
}

// Message handles POST /conversation/messages requests.
func (c *ConversationController) Message(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var req dto.ConversationMessageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeEmptyMessage),
		})
		return
	}

	output, err := c.handleMessageUseCase.Execute(ctx.Request.Context(), conversation.HandleMessageInput{
		ChatID: req.ChatID,
		UserID: userID,
		Text:   req.Text,
	})
	if err != nil {
		c.handleConversationError(ctx, err)
		return
	}

	response := dto.ConversationMessageResponse{
		Reply: output.Reply,
		Step:  string(output.Step),
	}
	if output.TransactionID != nil {
		id := output.TransactionID.String()
		response.TransactionID = &id
	}
	ctx.JSON(http.StatusOK, response)
}

// handleConversationError maps conversation errors to HTTP responses.
// Transaction validation errors raised on confirmation keep their own codes.
func (c *ConversationController) handleConversationError(ctx *gin.Context, err error) {
	var convErr *domainerror.ConversationError
	if errors.As(err, &convErr) {
		status := http.StatusBadRequest
		if convErr.Code == domainerror.ErrCodeSessionStoreFailure {
			status = http.StatusServiceUnavailable
		}
		ctx.JSON(status, dto.ErrorResponse{
			Error: convErr.Message,
			Code:  string(convErr.Code),
		})
		return
	}

	var txnErr *domainerror.TransactionError
	if errors.As(err, &txnErr) {
		ctx.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{
			Error: txnErr.Message,
			Code:  string(txnErr.Code),
		})
		return
	}

	internalError(ctx)
}
