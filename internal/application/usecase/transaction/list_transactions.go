package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/recurring/internal/application/adapter"
	"github.com/finance-tracker/recurring/internal/domain/entity"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// ListTransactionsInput represents the input for listing transactions.
// Status and RecurringDefinitionID let callers review the pending occurrences of a schedule.
type ListTransactionsInput struct {
	UserID                uuid.UUID
	StartDate             *time.Time
	EndDate               *time.Time
	CategoryIDs           []uuid.UUID
	Type                  *entity.TransactionType
	Status                *entity.TransactionStatus
	RecurringDefinitionID *uuid.UUID
	Page                  int
	Limit                 int
}

// PaginationOutput represents pagination information in the output.
type PaginationOutput struct {
	Page       int
	Limit      int
	Total      int64
	TotalPages int
}

// ListTransactionsOutput represents the output of listing transactions.
type ListTransactionsOutput struct {
	Transactions []*TransactionOutput
	Pagination   PaginationOutput
}

// ListTransactionsUseCase handles listing transactions logic.
type ListTransactionsUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewListTransactionsUseCase creates a new ListTransactionsUseCase instance.
func NewListTransactionsUseCase(transactionRepo adapter.TransactionRepository) *ListTransactionsUseCase {
	return &ListTransactionsUseCase{
		transactionRepo: transactionRepo,
	}
}

// Execute returns one page of the user's transactions, newest first.
func (uc *ListTransactionsUseCase) Execute(ctx context.Context, input ListTransactionsInput) (*ListTransactionsOutput, error) {
	filter := adapter.TransactionFilter{
		UserID:                input.UserID,
		StartDate:             input.StartDate,
		EndDate:               input.EndDate,
		CategoryIDs:           input.CategoryIDs,
		Type:                  input.Type,
		Status:                input.Status,
		RecurringDefinitionID: input.RecurringDefinitionID,
	}

	result, err := uc.transactionRepo.FindByFilter(ctx, filter, normalizePagination(input.Page, input.Limit))
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	transactions := make([]*TransactionOutput, 0, len(result.Transactions))
	for _, row := range result.Transactions {
		transactions = append(transactions, toTransactionOutput(row.Transaction, row.Category))
	}

	return &ListTransactionsOutput{
		Transactions: transactions,
		Pagination: PaginationOutput{
			Page:       result.Page,
			Limit:      result.Limit,
			Total:      result.Total,
			TotalPages: result.TotalPages,
		},
	}, nil
}

// normalizePagination clamps the page to at least 1 and the limit to [1, maxPageLimit].
func normalizePagination(page, limit int) adapter.TransactionPagination {
	page = max(page, 1)
	if limit < 1 {
		limit = defaultPageLimit
	}
	return adapter.TransactionPagination{Page: page, Limit: min(limit, maxPageLimit)}
}
