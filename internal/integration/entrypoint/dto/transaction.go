package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/recurring/internal/application/usecase/transaction"
)

// CreateTransactionRequest is the body of POST /transactions. Amount is always
// positive; Type carries the direction.
type CreateTransactionRequest struct {
	Date        string          `json:"date" binding:"required"`
	Description string          `json:"description" binding:"required,min=1,max=255"`
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type" binding:"required,oneof=expense income"`
	CategoryID  *string         `json:"category_id,omitempty"`
	Notes       string          `json:"notes,omitempty" binding:"omitempty,max=1000"`
}

// TransactionResponse is one transaction. Occurrences created by the scheduler
// carry recurring_definition_id and start in PENDING_APPROVAL.
type TransactionResponse struct {
	ID                    string    `json:"id"`
	Date                  string    `json:"date"`
	Description           string    `json:"description"`
	Amount                string    `json:"amount"`
	Type                  string    `json:"type"`
	Status                string    `json:"status"`
	CategoryID            *string   `json:"category_id,omitempty"`
	CategoryName          string    `json:"category_name,omitempty"`
	CategoryColor         string    `json:"category_color,omitempty"`
	Notes                 string    `json:"notes"`
	RecurringDefinitionID *string   `json:"recurring_definition_id,omitempty"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

type PaginationResponse struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Pagination   PaginationResponse    `json:"pagination"`
}

func ToTransactionResponse(txn *transaction.TransactionOutput) TransactionResponse {
	return TransactionResponse{
		ID:                    txn.ID.String(),
		Date:                  txn.Date.Format(DateLayout),
		Description:           txn.Description,
		Amount:                txn.Amount.StringFixed(2),
		Type:                  string(txn.Type),
		Status:                string(txn.Status),
		CategoryID:            optionalID(txn.CategoryID),
		CategoryName:          txn.CategoryName,
		CategoryColor:         txn.CategoryColor,
		Notes:                 txn.Notes,
		RecurringDefinitionID: optionalID(txn.RecurringDefinitionID),
		CreatedAt:             txn.CreatedAt,
		UpdatedAt:             txn.UpdatedAt,
	}
}

func ToTransactionListResponse(output *transaction.ListTransactionsOutput) TransactionListResponse {
	transactions := make([]TransactionResponse, len(output.Transactions))
	for i, txn := range output.Transactions {
		transactions[i] = ToTransactionResponse(txn)
	}

	return TransactionListResponse{
		Transactions: transactions,
		Pagination: PaginationResponse{
			Page:       output.Pagination.Page,
			Limit:      output.Pagination.Limit,
			Total:      output.Pagination.Total,
			TotalPages: output.Pagination.TotalPages,
		},
	}
}
