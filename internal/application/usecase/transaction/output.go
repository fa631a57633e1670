// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/recurring/internal/application/adapter"
	"github.com/finance-tracker/recurring/internal/domain/entity"
	domainerror "github.com/finance-tracker/recurring/internal/domain/error"
)

// TransactionOutput is a transaction as the API returns it. CategoryName and
// CategoryColor are set when the category was loaded with the transaction.
type TransactionOutput struct {
	ID                    uuid.UUID
	Date                  time.Time
	Description           string
	Amount                decimal.Decimal
	Type                  entity.TransactionType
	CategoryID            *uuid.UUID
	CategoryName          string
	CategoryColor         string
	Notes                 string
	Status                entity.TransactionStatus
	RecurringDefinitionID *uuid.UUID
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

func toTransactionOutput(transaction *entity.Transaction, category *entity.Category) *TransactionOutput {
	output := &TransactionOutput{
		ID:                    transaction.ID,
		Date:                  transaction.Date,
		Description:           transaction.Description,
		Amount:                transaction.Amount,
		Type:                  transaction.Type,
		CategoryID:            transaction.CategoryID,
		Notes:                 transaction.Notes,
		Status:                transaction.Status,
		RecurringDefinitionID: transaction.RecurringDefinitionID,
		CreatedAt:             transaction.CreatedAt,
		UpdatedAt:             transaction.UpdatedAt,
	}
	if category != nil {
		output.CategoryName = category.Name
		output.CategoryColor = category.Color
	}
	return output
}

// findOwned loads a transaction and checks that it belongs to the user.
func findOwned(ctx context.Context, repo adapter.TransactionRepository, id, userID uuid.UUID) (*entity.Transaction, error) {
	transaction, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerror.ErrTransactionNotFound) {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeTransactionNotFound,
				"transaction not found",
				domainerror.ErrTransactionNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find transaction: %w", err)
	}

	if transaction.UserID != userID {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeNotAuthorizedTransaction,
			"not authorized to modify this transaction",
			domainerror.ErrNotAuthorizedToModifyTransaction,
		)
	}

	return transaction, nil
}

// findPending loads an owned transaction that is still awaiting approval.
func findPending(ctx context.Context, repo adapter.TransactionRepository, id, userID uuid.UUID) (*entity.Transaction, error) {
	transaction, err := findOwned(ctx, repo, id, userID)
	if err != nil {
		return nil, err
	}

	if !transaction.IsPending() {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeTransactionNotPending,
			"transaction is not pending approval",
			domainerror.ErrTransactionNotPending,
		)
	}

	return transaction, nil
}
